// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"pinpoint/internal/config"
	"pinpoint/internal/database"
	"pinpoint/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPlaces := flag.Int("places", 100, "Number of places to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(*numUsers, *numPlaces, *numComments); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded users have the password: password123")
}
