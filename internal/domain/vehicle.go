package domain

// Vehicle Model (as served by the backend)
type Vehicle struct {
	ID              int    `json:"id"`                         // Vehicle id
	TypeOfCar       string `json:"type_of_car"`                // Vehicle type: Car or Motorcycle
	Brand           string `json:"brand"`                      // Brand name
	Model           string `json:"model"`                      // Model name
	RentStartDate   string `json:"rent_start_date,omitempty"`   // Earliest rentable date (YYYY-MM-DD)
	RentEndDate     string `json:"rent_end_date,omitempty"`     // Latest rentable date (YYYY-MM-DD)
	CoinRatePerDay  int    `json:"coin_rate_per_day,omitempty"` // Daily rate in coins
	Year            int    `json:"year,omitempty"`              // Model year
	LicensePlate    string `json:"license_plate,omitempty"`     // Plate number
	FuelConsumption string `json:"fuel_consumption,omitempty"`  // Fuel consumption text
	MaxSpeed        string `json:"max_speed,omitempty"`         // Max speed text
	Capacity        string `json:"capacity,omitempty"`          // Seat/load capacity text
	Location        string `json:"location,omitempty"`          // Pickup location
	ImageURL        string `json:"image_url,omitempty"`         // Vehicle image
	Description     string `json:"description,omitempty"`       // Free-form description
}

// DefaultCoinRate is assumed when the backend omits a vehicle's daily rate
const DefaultCoinRate = 100

// DailyRate returns the vehicle's per-day coin rate
func (v *Vehicle) DailyRate() int {
	if v.CoinRatePerDay > 0 {
		return v.CoinRatePerDay // Backend-provided rate
	}
	return DefaultCoinRate // Fallback rate
}
