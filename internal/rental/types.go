package rental

import (
	"fmt" // Error formatting

	"rental_gateway/internal/domain" // Backend entity shapes
)

// Ledger reasons accepted by the backend
const (
	ReasonTopup   = "topup"   // Manual top-up
	ReasonBooking = "booking" // Debit for a booking
	ReasonRefund  = "refund"  // Compensating credit
)

// CoinChange is the request body for /coins/spend and /coins/add
type CoinChange struct {
	Username      string         `json:"username"`                 // Ledger owner
	Amount        int            `json:"amount"`                   // Positive amount to move
	Reason        string         `json:"reason"`                   // topup, booking or refund
	ReferenceType string         `json:"reference_type,omitempty"` // Kind of referenced record
	ReferenceID   string         `json:"reference_id,omitempty"`   // Caller-supplied trace id
	Metadata      map[string]any `json:"metadata,omitempty"`       // Free-form tags
}

// BalanceOut is the backend's response to balance-changing calls
type BalanceOut struct {
	Username    string `json:"username"`     // Ledger owner
	CoinBalance int    `json:"coin_balance"` // Balance after the change
}

// BookingRequest is the request body for POST /bookings
type BookingRequest struct {
	VehicleID      int    `json:"vehicle_id"`                  // Vehicle to book
	Username       string `json:"username"`                    // Booking owner
	StartDate      string `json:"start_date"`                  // First rental day (YYYY-MM-DD)
	EndDate        string `json:"end_date"`                    // Last rental day (YYYY-MM-DD)
	CoinsUsed      int    `json:"coins_used"`                  // Coins charged
	CoinRatePerDay int    `json:"coin_rate_per_day,omitempty"` // Rate used for the charge
}

// bookingEnvelope matches the backend's {"booking": {...}} wrapper
type bookingEnvelope struct {
	Booking domain.Booking `json:"booking"` // Created booking record
}

// VehicleCreate is the request body for POST /vehicles
type VehicleCreate struct {
	TypeOfCar      string `json:"type_of_car"`                 // Vehicle type
	Brand          string `json:"brand"`                       // Brand name
	Model          string `json:"model"`                       // Model name
	RentStartDate  string `json:"rent_start_date,omitempty"`   // Earliest rentable date
	RentEndDate    string `json:"rent_end_date,omitempty"`     // Latest rentable date
	CoinRatePerDay int    `json:"coin_rate_per_day,omitempty"` // Daily rate in coins
}

// VehicleFilter carries the search form values for GET /vehicles
type VehicleFilter struct {
	TypeOfCar string // Exact type match
	Brand     string // Exact brand match
	Model     string // Exact model match
	FromDate  string // Rental window lower bound (YYYY-MM-DD)
	ToDate    string // Rental window upper bound (YYYY-MM-DD)
}

// APIError is a backend rejection with its human-readable detail
type APIError struct {
	StatusCode int    // HTTP status returned by the backend
	Detail     string // Backend "detail" message, surfaced verbatim
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("backend %d: %s", e.StatusCode, e.Detail)
}
