package domain

import "time" // For status derivation

// Booking status values derived from the date range
const (
	StatusUpcoming  = "upcoming"  // Starts after today
	StatusOngoing   = "ongoing"   // Today falls inside the range
	StatusCompleted = "completed" // Ended before today
)

// Booking Model (as served by the backend)
type Booking struct {
	ID        int    `json:"id"`                   // Booking id
	VehicleID int    `json:"vehicle_id"`           // Booked vehicle
	Username  string `json:"username"`             // Booking owner
	StartDate string `json:"start_date"`           // First rental day (YYYY-MM-DD)
	EndDate   string `json:"end_date"`             // Last rental day (YYYY-MM-DD)
	CoinsUsed int    `json:"coins_used"`           // Coins charged for the booking
	CreatedAt string `json:"created_at,omitempty"` // Backend creation timestamp
	Status    string `json:"status,omitempty"`     // Derived: upcoming, ongoing, completed
}

// DeriveStatus classifies the booking against the given day
func (b *Booking) DeriveStatus(today time.Time) string {
	day := today.Format("2006-01-02") // Compare as YYYY-MM-DD strings
	switch {
	case b.EndDate < day:
		return StatusCompleted // Already over
	case b.StartDate > day:
		return StatusUpcoming // Not started yet
	default:
		return StatusOngoing // Covers today
	}
}

// CoinEntry is one append-only ledger row kept by the backend
type CoinEntry struct {
	Username      string         `json:"username"`                 // Ledger owner
	ChangeAmount  int            `json:"change_amount"`            // Signed amount, negative for spend
	Reason        string         `json:"reason"`                   // topup, booking or refund
	ReferenceType string         `json:"reference_type,omitempty"` // Kind of referenced record
	ReferenceID   string         `json:"reference_id,omitempty"`   // Caller-supplied trace id
	BalanceAfter  int            `json:"balance_after"`            // Balance after the change
	Metadata      map[string]any `json:"metadata,omitempty"`       // Free-form tags
}

// Metrics are the admin dashboard totals served by the backend
type Metrics struct {
	TotalUsers        int `json:"total_users"`        // Registered users
	TotalRentals      int `json:"total_rentals"`      // Bookings ever created
	TotalSpending     int `json:"total_spending"`     // Coins spent on bookings
	AvailableVehicles int `json:"available_vehicles"` // Vehicles free today
}
