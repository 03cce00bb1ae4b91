package main

import (
	"rental_gateway/internal/config" // Custom import path (Config)
	"rental_gateway/internal/rental" // Custom import path (Backend client)
	"rental_gateway/internal/seed"   // Custom import path (Inventory bootstrap)
)

// Main entry point for inventory seeding
func main() {
	cfg := config.LoadConfig() // Load configuration

	// The demo inventory is created through the backend API
	client := rental.NewClient(cfg.APIBaseURL, cfg.ListRetryDelay)
	seed.Seed(client)
}
