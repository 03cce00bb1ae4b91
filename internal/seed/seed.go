package seed

import (
	"context" // Request contexts for the backend calls

	"rental_gateway/internal/rental" // Backend client

	"github.com/sirupsen/logrus" // Logging library
)

// vehicles is the demo inventory created on a fresh backend
var vehicles = []rental.VehicleCreate{
	{TypeOfCar: "Car", Brand: "Toyota", Model: "Yaris", RentStartDate: "2025-01-01", RentEndDate: "2025-12-31", CoinRatePerDay: 100},
	{TypeOfCar: "Car", Brand: "Toyota", Model: "Vios", RentStartDate: "2025-01-01", RentEndDate: "2025-12-31", CoinRatePerDay: 100},
	{TypeOfCar: "Car", Brand: "Honda", Model: "City", RentStartDate: "2025-01-01", RentEndDate: "2025-12-31", CoinRatePerDay: 120},
	{TypeOfCar: "Car", Brand: "Honda", Model: "Civic", RentStartDate: "2025-03-01", RentEndDate: "2025-12-31", CoinRatePerDay: 150},
	{TypeOfCar: "Car", Brand: "Mazda", Model: "CX-3", RentStartDate: "2025-01-01", RentEndDate: "2025-10-31", CoinRatePerDay: 140},
	{TypeOfCar: "Motorcycle", Brand: "Yamaha", Model: "Aerox", RentStartDate: "2025-01-01", RentEndDate: "2025-12-31", CoinRatePerDay: 60},
	{TypeOfCar: "Motorcycle", Brand: "Honda", Model: "PCX", RentStartDate: "2025-01-01", RentEndDate: "2025-12-31", CoinRatePerDay: 70},
	{TypeOfCar: "Motorcycle", Brand: "Vespa", Model: "Primavera", RentStartDate: "2025-02-01", RentEndDate: "2025-11-30", CoinRatePerDay: 80},
}

// Seed creates the demo vehicle inventory through the backend API. The
// gateway owns no schema, so bootstrap is a sequence of create calls.
func Seed(client *rental.Client) {
	ctx := context.Background() // Bootstrap context
	created := 0                // Vehicles created so far
	for _, v := range vehicles {
		vehicle, err := client.CreateVehicle(ctx, v) // Create one vehicle
		if err != nil {
			logrus.Fatalf("seeding failed after %d vehicles: %v", created, err) // Log fatal error if a create fails
		}
		logrus.WithFields(logrus.Fields{
			"vehicle_id": vehicle.ID, // Backend-assigned id
			"brand":      v.Brand,    // Brand name
			"model":      v.Model,    // Model name
		}).Info("Seeded vehicle") // Log each created vehicle
		created++
	}
	logrus.Infof("Seeding completed, %d vehicles created.", created) // Log successful bootstrap
}
