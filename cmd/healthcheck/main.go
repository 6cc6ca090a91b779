package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/therapick/therapick-api/internal/config"
	"github.com/therapick/therapick-api/internal/database"
	"github.com/therapick/therapick-api/internal/directory"
	"github.com/therapick/therapick-api/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Same directory selection as the server
	var dir directory.Client
	if cfg.TherapAPIKey != "" {
		dir = directory.NewHTTP(cfg.TherapAPIKey, cfg.TherapAPIBaseURL)
	} else {
		dir = directory.NewStatic()
	}

	// Perform health check
	result := services.HealthCheck(cfg, db, dir)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
