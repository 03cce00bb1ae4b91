package rental

import (
	"bytes"         // Request body buffer
	"context"       // Request-scoped cancellation
	"encoding/json" // JSON encoding/decoding
	"net/http"      // HTTP transport
	"net/url"       // Query string building
	"strconv"       // Integer formatting
	"time"          // Client timeout and retry delay

	"rental_gateway/internal/domain" // Backend entity shapes
)

// Client talks to the external rental/coin REST API
type Client struct {
	baseURL    string        // Backend base URL without trailing slash
	retryDelay time.Duration // Delay before the single vehicle list retry
	httpClient *http.Client  // Transport with a bounded timeout
}

// NewClient creates a backend client
func NewClient(baseURL string, retryDelay time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		retryDelay: retryDelay,
		httpClient: &http.Client{Timeout: 10 * time.Second}, // Keep the browser from waiting forever
	}
}

// newRequest builds a JSON request against the backend
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path // Full request URL
	if len(query) > 0 {
		u += "?" + query.Encode() // Append encoded query string
	}
	var buf bytes.Buffer // Request body buffer
	if body != nil {
		// Encode the body as JSON
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return nil, err // Invalid request
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json") // JSON body marker
	}
	return req, nil
}

// do executes a request and decodes the response into out (when non-nil).
// Backend rejections come back as *APIError carrying the "detail" message.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req) // Execute the request
	if err != nil {
		return err // Transport error
	}
	defer resp.Body.Close() // Always release the body
	// Non-success statuses carry a {"detail": ...} body
	if resp.StatusCode >= http.StatusBadRequest {
		var payload struct {
			Detail string `json:"detail"` // Backend error message
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload) // Best-effort decode
		if payload.Detail == "" {
			payload.Detail = resp.Status // Fall back to the status line
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: payload.Detail}
	}
	if out == nil {
		return nil // Caller only cares about success
	}
	return json.NewDecoder(resp.Body).Decode(out) // Decode the success body
}

// --- Credential flows ---

// credentials is the body shared by login and register
type credentials struct {
	Username string `json:"username"` // Account name
	Password string `json:"password"` // Plain password, forwarded only
}

// Login checks a username/password pair against the backend
func (c *Client) Login(ctx context.Context, username, password string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/login/", nil, credentials{Username: username, Password: password})
	if err != nil {
		return err // Request build failed
	}
	return c.do(req, nil) // Success body is just a message
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, username, password string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/register/", nil, credentials{Username: username, Password: password})
	if err != nil {
		return err // Request build failed
	}
	return c.do(req, nil) // Success body is just the username
}

// ForgotPassword resets an account password
func (c *Client) ForgotPassword(ctx context.Context, username, newPassword string) error {
	body := struct {
		Username    string `json:"username"`    // Account name
		NewPassword string `json:"newPassword"` // Replacement password
	}{username, newPassword}
	req, err := c.newRequest(ctx, http.MethodPost, "/forgotpassword/", nil, body)
	if err != nil {
		return err // Request build failed
	}
	return c.do(req, nil) // Success body is just a message
}

// GetUser fetches a user record
func (c *Client) GetUser(ctx context.Context, username string) (*domain.User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return nil, err // Request build failed
	}
	var user domain.User // Response target
	if err := c.do(req, &user); err != nil {
		return nil, err // Backend or transport error
	}
	return &user, nil
}

// UpdateUserDescription saves the profile description
func (c *Client) UpdateUserDescription(ctx context.Context, username, description string) (*domain.User, error) {
	body := struct {
		Description string `json:"description"` // New profile description
	}{description}
	req, err := c.newRequest(ctx, http.MethodPatch, "/users/"+url.PathEscape(username), nil, body)
	if err != nil {
		return nil, err // Request build failed
	}
	var user domain.User // Response target
	if err := c.do(req, &user); err != nil {
		return nil, err // Backend or transport error
	}
	return &user, nil
}

// DeleteUser removes an account
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/users/"+url.PathEscape(username), nil, nil)
	if err != nil {
		return err // Request build failed
	}
	return c.do(req, nil) // Success body is just a message
}

// --- Coin ledger ---

// SpendCoins debits coins and returns the new balance
func (c *Client) SpendCoins(ctx context.Context, change CoinChange) (int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/coins/spend", nil, change)
	if err != nil {
		return 0, err // Request build failed
	}
	var out BalanceOut // Response target
	if err := c.do(req, &out); err != nil {
		return 0, err // Insufficient coins or transport error
	}
	return out.CoinBalance, nil
}

// AddCoins credits coins (top-ups and refunds) and returns the new balance
func (c *Client) AddCoins(ctx context.Context, change CoinChange) (int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/coins/add", nil, change)
	if err != nil {
		return 0, err // Request build failed
	}
	var out BalanceOut // Response target
	if err := c.do(req, &out); err != nil {
		return 0, err // Backend or transport error
	}
	return out.CoinBalance, nil
}

// GetBalance fetches the authoritative balance for a user
func (c *Client) GetBalance(ctx context.Context, username string) (int, error) {
	q := url.Values{"username": {username}} // Required query parameter
	req, err := c.newRequest(ctx, http.MethodGet, "/coins/balance", q, nil)
	if err != nil {
		return 0, err // Request build failed
	}
	var out BalanceOut // Response target
	if err := c.do(req, &out); err != nil {
		return 0, err // Backend or transport error
	}
	return out.CoinBalance, nil
}

// --- Bookings ---

// CreateBooking asks the backend to create a booking
func (c *Client) CreateBooking(ctx context.Context, booking BookingRequest) (*domain.Booking, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/bookings", nil, booking)
	if err != nil {
		return nil, err // Request build failed
	}
	var envelope bookingEnvelope // Response target
	if err := c.do(req, &envelope); err != nil {
		return nil, err // Conflict, availability or transport error
	}
	return &envelope.Booking, nil
}

// MyBookings lists all bookings for a user
func (c *Client) MyBookings(ctx context.Context, username string) ([]domain.Booking, error) {
	q := url.Values{"username": {username}} // Required query parameter
	req, err := c.newRequest(ctx, http.MethodGet, "/bookings/mine", q, nil)
	if err != nil {
		return nil, err // Request build failed
	}
	var bookings []domain.Booking // Response target
	if err := c.do(req, &bookings); err != nil {
		return nil, err // Backend or transport error
	}
	return bookings, nil
}

// --- Vehicles ---

// ListVehicles runs a filtered search. The first attempt may hit a
// cold-starting backend, so a failure is retried exactly once after a
// short delay; every other call in this client is single-shot.
func (c *Client) ListVehicles(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error) {
	q := url.Values{} // Query parameters built from the filter form
	if filter.TypeOfCar != "" {
		q.Set("type_of_car", filter.TypeOfCar) // Exact type match
	}
	if filter.Brand != "" {
		q.Set("brand", filter.Brand) // Exact brand match
	}
	if filter.Model != "" {
		q.Set("model", filter.Model) // Exact model match
	}
	if filter.FromDate != "" {
		q.Set("from_date", filter.FromDate) // Window lower bound
	}
	if filter.ToDate != "" {
		q.Set("to_date", filter.ToDate) // Window upper bound
	}
	vehicles, err := c.listVehiclesOnce(ctx, q) // First attempt
	if err == nil {
		return vehicles, nil // Served on the first try
	}
	// Wait out the retry delay unless the caller gave up
	select {
	case <-time.After(c.retryDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return c.listVehiclesOnce(ctx, q) // Second and final attempt
}

// listVehiclesOnce performs a single list request
func (c *Client) listVehiclesOnce(ctx context.Context, q url.Values) ([]domain.Vehicle, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/vehicles", q, nil)
	if err != nil {
		return nil, err // Request build failed
	}
	var vehicles []domain.Vehicle // Response target
	if err := c.do(req, &vehicles); err != nil {
		return nil, err // Backend or transport error
	}
	return vehicles, nil
}

// GetVehicle fetches one vehicle by id
func (c *Client) GetVehicle(ctx context.Context, id int) (*domain.Vehicle, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/vehicles/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return nil, err // Request build failed
	}
	var vehicle domain.Vehicle // Response target
	if err := c.do(req, &vehicle); err != nil {
		return nil, err // Not found or transport error
	}
	return &vehicle, nil
}

// CreateVehicle adds a vehicle to the inventory
func (c *Client) CreateVehicle(ctx context.Context, vehicle VehicleCreate) (*domain.Vehicle, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/vehicles", nil, vehicle)
	if err != nil {
		return nil, err // Request build failed
	}
	var created domain.Vehicle // Response target
	if err := c.do(req, &created); err != nil {
		return nil, err // Backend or transport error
	}
	return &created, nil
}

// DeleteVehicle removes one vehicle by id
func (c *Client) DeleteVehicle(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/vehicles/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return err // Request build failed
	}
	return c.do(req, nil) // Success body is just a message
}

// VehicleTypes lists the distinct vehicle types
func (c *Client) VehicleTypes(ctx context.Context) ([]string, error) {
	return c.lookup(ctx, "/vehicle-types", nil)
}

// VehicleBrands lists the distinct brands for a type
func (c *Client) VehicleBrands(ctx context.Context, typeOfCar string) ([]string, error) {
	return c.lookup(ctx, "/vehicle-brands", url.Values{"type_of_car": {typeOfCar}})
}

// VehicleModels lists the distinct models for a type and brand
func (c *Client) VehicleModels(ctx context.Context, typeOfCar, brand string) ([]string, error) {
	return c.lookup(ctx, "/vehicle-models", url.Values{"type_of_car": {typeOfCar}, "brand": {brand}})
}

// lookup fetches one of the string list endpoints
func (c *Client) lookup(ctx context.Context, path string, q url.Values) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err // Request build failed
	}
	var values []string // Response target
	if err := c.do(req, &values); err != nil {
		return nil, err // Backend or transport error
	}
	return values, nil
}

// --- Admin ---

// AdminMetrics fetches the dashboard totals
func (c *Client) AdminMetrics(ctx context.Context) (*domain.Metrics, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/admin/metrics", nil, nil)
	if err != nil {
		return nil, err // Request build failed
	}
	var metrics domain.Metrics // Response target
	if err := c.do(req, &metrics); err != nil {
		return nil, err // Backend or transport error
	}
	return &metrics, nil
}
