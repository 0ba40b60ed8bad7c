package main

import (
	"vehicle_registry/internal/config" // Custom import path (Config)
	"vehicle_registry/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	db.Migrate(cfg.DSN())
}
