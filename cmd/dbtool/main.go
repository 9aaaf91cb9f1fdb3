package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"route-planner-service/internal/adapters/repositories"
	"route-planner-service/internal/config"
	"route-planner-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	seedPath := flag.String("seed", cfg.SeedPath, "YAML or JSON stop sequence to load")
	skipSeed := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := initAndSeed(db, *seedPath, *skipSeed); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(db *sql.DB, seedPath string, skipSeed bool) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(db); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if skipSeed {
		return nil
	}

	log.Println("Seeding database...")
	repo := repositories.NewPostgresStopRepository(db)
	n, err := repositories.SeedStops(context.Background(), repo, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. stops=%d", n)

	return nil
}
