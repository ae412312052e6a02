// Command cleanup collapses duplicate assignment records left behind by the
// weak in-request duplicate window. Run it by hand against the live database:
//
//	go run ./cmd/cleanup
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/uplifts-neel/lab-inventory-managment/config"
	"github.com/uplifts-neel/lab-inventory-managment/database"
	"github.com/uplifts-neel/lab-inventory-managment/maintenance"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting duplicate cleanup...")
	removed, err := maintenance.CleanupDuplicateAssignments(ctx, database.DB().Collection("assignments"))
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	log.Printf("Cleanup completed! Removed %d duplicate assignments.", removed)
}
