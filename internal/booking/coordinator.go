package booking

import (
	"context" // Request-scoped cancellation
	"fmt"     // User-facing message formatting
	"time"    // Date parsing and day math

	"rental_gateway/internal/domain" // Vehicle and booking shapes
	"rental_gateway/internal/rental" // Backend request/response shapes

	"github.com/google/uuid"     // Attempt reference ids
	"github.com/sirupsen/logrus" // Structured logging
)

// State of one booking attempt
type State string

// Attempt states. Validating can terminate directly to Failed with no
// network effect; a Debiting failure also goes straight to Failed since
// there is nothing to compensate.
const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateDebiting        State = "debiting"
	StateBookingInFlight State = "booking_in_flight"
	StateCompensating    State = "compensating"
	StateConfirmed       State = "confirmed"
	StateFailed          State = "failed"
)

// DateLayout is the wire format for all rental dates
const DateLayout = "2006-01-02"

// Ledger is the coin side of the backend
type Ledger interface {
	SpendCoins(ctx context.Context, change rental.CoinChange) (int, error)
	AddCoins(ctx context.Context, change rental.CoinChange) (int, error)
	GetBalance(ctx context.Context, username string) (int, error)
}

// Booker is the booking side of the backend
type Booker interface {
	CreateBooking(ctx context.Context, booking rental.BookingRequest) (*domain.Booking, error)
}

// ValidationError is a precondition violation caught before any network call
type ValidationError struct {
	Reason string // User-facing message
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Reason
}

// Request is one booking attempt
type Request struct {
	Vehicle   *domain.Vehicle // Vehicle being booked, including its rental window
	Username  string          // Booking owner
	StartDate string          // First rental day (YYYY-MM-DD)
	EndDate   string          // Last rental day, defaults to StartDate when empty
	Balance   int             // Last known coin balance
}

// Result is the outcome of one attempt. Balance is authoritative: on the
// happy path it is the post-debit balance the backend returned, on any
// failure after the debit it comes from a fresh balance fetch.
type Result struct {
	State       State           // Terminal state of the attempt
	Booking     *domain.Booking // Created booking, only set when Confirmed
	Balance     int             // Balance to display after the attempt
	Cost        int             // Coins charged (or attempted)
	ReferenceID string          // Ledger trace id shared by debit and refund
}

// Coordinator drives the debit, booking-create and compensation sequence.
// The two backend calls are not atomic; the compensation branch is the
// only recovery available when the booking step fails after the debit.
type Coordinator struct {
	ledger Ledger // Coin operations
	booker Booker // Booking creation
}

// NewCoordinator creates a coordinator over the backend interfaces
func NewCoordinator(ledger Ledger, booker Booker) *Coordinator {
	return &Coordinator{ledger: ledger, booker: booker}
}

// Cost computes the coin price for an inclusive date range
func Cost(start, end time.Time, dailyRate int) int {
	days := int(end.Sub(start).Hours()/24) + 1 // Inclusive day count
	if days < 1 {
		days = 1 // A same-day rental still costs one day
	}
	return days * dailyRate
}

// Execute runs one booking attempt end to end
func (c *Coordinator) Execute(ctx context.Context, req Request) (*Result, error) {
	result := &Result{State: StateValidating, Balance: req.Balance} // Attempt bookkeeping

	// Preconditions: any violation fails fast with no network call
	start, end, err := c.validateDates(req)
	if err != nil {
		result.State = StateFailed
		return result, err
	}
	cost := Cost(start, end, req.Vehicle.DailyRate()) // Coins needed for the range
	result.Cost = cost
	if cost > req.Balance {
		result.State = StateFailed
		return result, &ValidationError{Reason: fmt.Sprintf("You need %d coins but only have %d.", cost, req.Balance)}
	}

	// Debit step: a failure here aborts with nothing to compensate
	result.State = StateDebiting
	result.ReferenceID = "BOOK-" + uuid.NewString() // Trace id shared by debit, create and refund
	endDate := end.Format(DateLayout)               // Normalized end date
	startDate := start.Format(DateLayout)           // Normalized start date
	balance, err := c.ledger.SpendCoins(ctx, rental.CoinChange{
		Username:      req.Username,          // Ledger owner
		Amount:        cost,                  // Computed cost
		Reason:        rental.ReasonBooking,  // Debit reason
		ReferenceType: "booking",             // Links the ledger row to this attempt
		ReferenceID:   result.ReferenceID,    // Attempt trace id
		Metadata: map[string]any{
			"vehicle_id": req.Vehicle.ID, // Booked vehicle
			"start_date": startDate,      // Requested range start
			"end_date":   endDate,        // Requested range end
		},
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username":   req.Username,
			"vehicle_id": req.Vehicle.ID,
			"amount":     cost,
			"reference":  result.ReferenceID,
			"error":      err.Error(),
		}).Error("Coin debit failed") // Log debit failure
		result.State = StateFailed
		return result, err
	}
	result.Balance = balance // Post-debit balance from the backend

	// Booking step: success completes the attempt
	result.State = StateBookingInFlight
	booking, bookErr := c.booker.CreateBooking(ctx, rental.BookingRequest{
		VehicleID:      req.Vehicle.ID,          // Booked vehicle
		Username:       req.Username,            // Booking owner
		StartDate:      startDate,               // Requested range start
		EndDate:        endDate,                 // Requested range end
		CoinsUsed:      cost,                    // Coins already debited
		CoinRatePerDay: req.Vehicle.DailyRate(), // Rate used for the charge
	})
	if bookErr == nil {
		// Confirmed only ever follows a successful booking response
		result.State = StateConfirmed
		result.Booking = booking
		logrus.WithFields(logrus.Fields{
			"username":   req.Username,
			"vehicle_id": req.Vehicle.ID,
			"booking_id": booking.ID,
			"coins_used": cost,
			"reference":  result.ReferenceID,
		}).Info("Booking confirmed") // Log booking success
		return result, nil
	}

	// Compensation step: coins are already gone, so issue a best-effort
	// refund, then re-fetch the balance whatever the refund did. The
	// booking error is what the caller sees, never the refund error.
	result.State = StateCompensating
	if _, refundErr := c.ledger.AddCoins(ctx, rental.CoinChange{
		Username:      req.Username,        // Ledger owner
		Amount:        cost,                // Same amount as the debit
		Reason:        rental.ReasonRefund, // Compensating credit
		ReferenceType: "booking_attempt",   // Points back at the failed attempt
		ReferenceID:   result.ReferenceID,  // Attempt trace id
		Metadata: map[string]any{
			"vehicle_id":    req.Vehicle.ID,  // Booked vehicle
			"booking_error": bookErr.Error(), // Why the booking failed
		},
	}); refundErr != nil {
		// Known limitation: a failed refund leaves the debit standing with
		// no retry and no persisted record beyond this log line
		logrus.WithFields(logrus.Fields{
			"username":  req.Username,
			"amount":    cost,
			"reference": result.ReferenceID,
			"error":     refundErr.Error(),
		}).Error("Compensating refund failed")
	}
	// Local arithmetic is not trustworthy after a partial failure
	if fresh, balErr := c.ledger.GetBalance(ctx, req.Username); balErr == nil {
		result.Balance = fresh // Authoritative balance
	} else {
		logrus.WithFields(logrus.Fields{
			"username": req.Username,
			"error":    balErr.Error(),
		}).Error("Balance refresh failed") // Keep the post-debit balance
	}
	logrus.WithFields(logrus.Fields{
		"username":   req.Username,
		"vehicle_id": req.Vehicle.ID,
		"coins_used": cost,
		"reference":  result.ReferenceID,
		"error":      bookErr.Error(),
	}).Error("Booking failed after debit") // Log the surfaced error
	result.State = StateFailed
	return result, bookErr
}

// validateDates checks presence, ordering and the vehicle's rental window
func (c *Coordinator) validateDates(req Request) (time.Time, time.Time, error) {
	var zero time.Time // Returned on any violation
	if req.StartDate == "" {
		return zero, zero, &ValidationError{Reason: "Please choose a start date."}
	}
	start, err := time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return zero, zero, &ValidationError{Reason: "Start date must be YYYY-MM-DD."}
	}
	endDate := req.EndDate // A missing end date means a single-day rental
	if endDate == "" {
		endDate = req.StartDate
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return zero, zero, &ValidationError{Reason: "End date must be YYYY-MM-DD."}
	}
	if end.Before(start) {
		return zero, zero, &ValidationError{Reason: "End date must be on/after the start date."}
	}
	// The requested range must sit inside the vehicle's rental window
	if min := req.Vehicle.RentStartDate; min != "" && req.StartDate < min {
		return zero, zero, &ValidationError{Reason: fmt.Sprintf("Start date must be on/after %s", min)}
	}
	if max := req.Vehicle.RentEndDate; max != "" && endDate > max {
		return zero, zero, &ValidationError{Reason: fmt.Sprintf("End date must be on/before %s", max)}
	}
	return start, end, nil
}
