// Command main runs the database seeder for the comment board.
package main

import (
	"flag"
	"log"

	"commentboard/internal/config"
	"commentboard/internal/database"
	"commentboard/internal/seed"
)

func main() {
	// Parse command line flags
	numComments := flag.Int("comments", 100, "Number of comments to create")
	maxDays := flag.Int("days", 90, "Spread comment dates over this many past days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d comments over %d days, clean=%v\n", *numComments, *maxDays, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB, seed.Options{
		NumComments: *numComments,
		MaxDays:     *maxDays,
		ShouldClean: *shouldClean,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d comments", *numComments)
}
