// Command seed populates the development database with demo users and profiles.
package main

import (
	"context"
	"flag"
	"log"

	"devhub/internal/config"
	"devhub/internal/database"
	"devhub/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of demo users to create")
	deterministic := flag.Int64("seed", 0, "random seed (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.New(db, seed.Options{Users: *users, Seed: *deterministic})
	if err := s.Run(context.Background()); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users (password: %q)", *users, seed.DemoPassword)
}
