package booking_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental_gateway/internal/booking"
	"rental_gateway/internal/domain"
	"rental_gateway/internal/rental"
)

type mockLedger struct {
	SpendFunc   func(ctx context.Context, change rental.CoinChange) (int, error)
	AddFunc     func(ctx context.Context, change rental.CoinChange) (int, error)
	BalanceFunc func(ctx context.Context, username string) (int, error)

	spendCalls   int
	addCalls     int
	balanceCalls int
}

func (m *mockLedger) SpendCoins(ctx context.Context, change rental.CoinChange) (int, error) {
	m.spendCalls++
	return m.SpendFunc(ctx, change)
}

func (m *mockLedger) AddCoins(ctx context.Context, change rental.CoinChange) (int, error) {
	m.addCalls++
	return m.AddFunc(ctx, change)
}

func (m *mockLedger) GetBalance(ctx context.Context, username string) (int, error) {
	m.balanceCalls++
	return m.BalanceFunc(ctx, username)
}

type mockBooker struct {
	CreateFunc func(ctx context.Context, booking rental.BookingRequest) (*domain.Booking, error)

	createCalls int
}

func (m *mockBooker) CreateBooking(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
	m.createCalls++
	return m.CreateFunc(ctx, b)
}

func testVehicle() *domain.Vehicle {
	return &domain.Vehicle{
		ID:             7,
		TypeOfCar:      "Car",
		Brand:          "Toyota",
		Model:          "Yaris",
		RentStartDate:  "2025-06-01",
		RentEndDate:    "2025-06-30",
		CoinRatePerDay: 100,
	}
}

func TestCost(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse(booking.DateLayout, s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name  string
		start string
		end   string
		rate  int
		want  int
	}{
		{"same day counts as one", "2025-06-01", "2025-06-01", 100, 100},
		{"three inclusive days", "2025-06-01", "2025-06-03", 100, 300},
		{"two inclusive days", "2025-06-10", "2025-06-11", 150, 300},
		{"week at low rate", "2025-06-01", "2025-06-07", 60, 420},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Cost(day(tt.start), day(tt.end), tt.rate))
		})
	}
}

func TestExecuteValidationMakesNoNetworkCalls(t *testing.T) {
	tests := []struct {
		name    string
		req     booking.Request
		wantMsg string
	}{
		{
			name:    "missing start date",
			req:     booking.Request{Vehicle: testVehicle(), Username: "alice", Balance: 1000},
			wantMsg: "start date",
		},
		{
			name: "end before start",
			req: booking.Request{
				Vehicle: testVehicle(), Username: "alice",
				StartDate: "2025-06-05", EndDate: "2025-06-02", Balance: 1000,
			},
			wantMsg: "on/after",
		},
		{
			name: "start before vehicle window",
			req: booking.Request{
				Vehicle: testVehicle(), Username: "alice",
				StartDate: "2025-05-20", EndDate: "2025-06-02", Balance: 1000,
			},
			wantMsg: "on/after 2025-06-01",
		},
		{
			name: "end after vehicle window",
			req: booking.Request{
				Vehicle: testVehicle(), Username: "alice",
				StartDate: "2025-06-20", EndDate: "2025-07-02", Balance: 1000,
			},
			wantMsg: "on/before 2025-06-30",
		},
		{
			name: "insufficient coins",
			req: booking.Request{
				Vehicle: testVehicle(), Username: "alice",
				StartDate: "2025-06-01", EndDate: "2025-06-03", Balance: 250,
			},
			wantMsg: "You need 300 coins but only have 250.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &mockLedger{
				SpendFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
					t.Fatal("debit must not be called on a validation failure")
					return 0, nil
				},
				AddFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
					t.Fatal("refund must not be called on a validation failure")
					return 0, nil
				},
				BalanceFunc: func(ctx context.Context, username string) (int, error) {
					t.Fatal("balance must not be fetched on a validation failure")
					return 0, nil
				},
			}
			booker := &mockBooker{
				CreateFunc: func(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
					t.Fatal("booking must not be created on a validation failure")
					return nil, nil
				},
			}

			result, err := booking.NewCoordinator(ledger, booker).Execute(context.Background(), tt.req)

			var validationErr *booking.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Reason, tt.wantMsg)
			assert.Equal(t, booking.StateFailed, result.State)
			assert.Zero(t, ledger.spendCalls)
			assert.Zero(t, ledger.addCalls)
			assert.Zero(t, ledger.balanceCalls)
			assert.Zero(t, booker.createCalls)
		})
	}
}

func TestExecuteDebitFailureSkipsBookingAndRefund(t *testing.T) {
	debitErr := &rental.APIError{StatusCode: http.StatusBadRequest, Detail: "Insufficient coins"}
	ledger := &mockLedger{
		SpendFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			return 0, debitErr
		},
		AddFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			t.Fatal("there is nothing to refund when the debit fails")
			return 0, nil
		},
		BalanceFunc: func(ctx context.Context, username string) (int, error) {
			t.Fatal("no balance refresh on a failed debit")
			return 0, nil
		},
	}
	booker := &mockBooker{
		CreateFunc: func(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
			t.Fatal("booking must never be created after a failed debit")
			return nil, nil
		},
	}

	result, err := booking.NewCoordinator(ledger, booker).Execute(context.Background(), booking.Request{
		Vehicle: testVehicle(), Username: "alice",
		StartDate: "2025-06-01", EndDate: "2025-06-02", Balance: 500,
	})

	require.ErrorIs(t, err, debitErr)
	assert.Equal(t, booking.StateFailed, result.State)
	assert.Equal(t, 1, ledger.spendCalls)
	assert.Zero(t, booker.createCalls)
	assert.Zero(t, ledger.addCalls)
}

func TestExecuteBookingFailureIssuesOneRefundThenRefreshesBalance(t *testing.T) {
	bookErr := &rental.APIError{StatusCode: http.StatusInternalServerError, Detail: "create_booking error: boom"}
	var debit, refund rental.CoinChange
	refundedBeforeRefresh := false

	ledger := &mockLedger{
		SpendFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			debit = change
			return 300, nil
		},
		AddFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			refund = change
			refundedBeforeRefresh = true
			return 500, nil
		},
		BalanceFunc: func(ctx context.Context, username string) (int, error) {
			require.True(t, refundedBeforeRefresh, "balance refresh must follow the refund")
			return 500, nil
		},
	}
	booker := &mockBooker{
		CreateFunc: func(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
			return nil, bookErr
		},
	}

	result, err := booking.NewCoordinator(ledger, booker).Execute(context.Background(), booking.Request{
		Vehicle: testVehicle(), Username: "alice",
		StartDate: "2025-06-01", EndDate: "2025-06-02", Balance: 500,
	})

	// the surfaced error is the booking error, never the refund outcome
	require.ErrorIs(t, err, bookErr)
	assert.Equal(t, booking.StateFailed, result.State)
	assert.Nil(t, result.Booking)

	require.Equal(t, 1, ledger.addCalls)
	assert.Equal(t, debit.Amount, refund.Amount)
	assert.Equal(t, 200, refund.Amount)
	assert.Equal(t, rental.ReasonRefund, refund.Reason)
	assert.Equal(t, debit.ReferenceID, refund.ReferenceID)

	require.Equal(t, 1, ledger.balanceCalls)
	assert.Equal(t, 500, result.Balance)
}

func TestExecuteRefundFailureStillSurfacesBookingError(t *testing.T) {
	bookErr := &rental.APIError{StatusCode: http.StatusConflict, Detail: "Requested dates overlap an existing booking."}
	ledger := &mockLedger{
		SpendFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			return 100, nil
		},
		AddFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			return 0, &rental.APIError{StatusCode: http.StatusBadGateway, Detail: "refund lost"}
		},
		BalanceFunc: func(ctx context.Context, username string) (int, error) {
			return 100, nil
		},
	}
	booker := &mockBooker{
		CreateFunc: func(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
			return nil, bookErr
		},
	}

	result, err := booking.NewCoordinator(ledger, booker).Execute(context.Background(), booking.Request{
		Vehicle: testVehicle(), Username: "alice",
		StartDate: "2025-06-01", Balance: 400,
	})

	require.ErrorIs(t, err, bookErr)
	// the balance is still refreshed even though the refund call failed
	assert.Equal(t, 1, ledger.balanceCalls)
	assert.Equal(t, 100, result.Balance)
}

func TestExecuteSuccessIssuesNoRefund(t *testing.T) {
	ledger := &mockLedger{
		SpendFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			require.Equal(t, "alice", change.Username)
			require.Equal(t, rental.ReasonBooking, change.Reason)
			require.True(t, strings.HasPrefix(change.ReferenceID, "BOOK-"))
			return 300, nil
		},
		AddFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			t.Fatal("no refund on a successful booking")
			return 0, nil
		},
		BalanceFunc: func(ctx context.Context, username string) (int, error) {
			t.Fatal("the post-debit balance is adopted without a refresh")
			return 0, nil
		},
	}
	booker := &mockBooker{
		CreateFunc: func(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
			require.Equal(t, 7, b.VehicleID)
			require.Equal(t, "2025-06-01", b.StartDate)
			require.Equal(t, "2025-06-02", b.EndDate)
			require.Equal(t, 200, b.CoinsUsed)
			return &domain.Booking{ID: 42, VehicleID: b.VehicleID, Username: b.Username, StartDate: b.StartDate, EndDate: b.EndDate, CoinsUsed: b.CoinsUsed}, nil
		},
	}

	result, err := booking.NewCoordinator(ledger, booker).Execute(context.Background(), booking.Request{
		Vehicle: testVehicle(), Username: "alice",
		StartDate: "2025-06-01", EndDate: "2025-06-02", Balance: 500,
	})

	require.NoError(t, err)
	assert.Equal(t, booking.StateConfirmed, result.State)
	require.NotNil(t, result.Booking)
	assert.Equal(t, 42, result.Booking.ID)
	assert.Equal(t, 200, result.Cost)
	assert.Equal(t, 300, result.Balance)
	assert.Zero(t, ledger.addCalls)
	assert.Zero(t, ledger.balanceCalls)
}

func TestExecuteEmptyEndDateMeansSingleDay(t *testing.T) {
	ledger := &mockLedger{
		SpendFunc: func(ctx context.Context, change rental.CoinChange) (int, error) {
			require.Equal(t, 100, change.Amount)
			return 50, nil
		},
	}
	booker := &mockBooker{
		CreateFunc: func(ctx context.Context, b rental.BookingRequest) (*domain.Booking, error) {
			require.Equal(t, b.StartDate, b.EndDate)
			return &domain.Booking{ID: 1}, nil
		},
	}

	result, err := booking.NewCoordinator(ledger, booker).Execute(context.Background(), booking.Request{
		Vehicle: testVehicle(), Username: "alice",
		StartDate: "2025-06-10", Balance: 150,
	})

	require.NoError(t, err)
	assert.Equal(t, 100, result.Cost)
}
