package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cetprep/cetprep-backend/internal/config"
	"github.com/cetprep/cetprep-backend/internal/database"
	"github.com/cetprep/cetprep-backend/internal/logger"
	"github.com/cetprep/cetprep-backend/internal/repository"
)

// Seeds the PostgreSQL catalog with the same demo tests the memory store
// boots with. Only needed when running with TEST_STORE=postgres.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	repo := repository.NewPostgresTestRepository(pool)

	fmt.Println("=== Seeding demo tests ===")

	seed := repository.SeedTests(time.Now())
	successCount := 0
	for i := range seed {
		if err := repo.Add(ctx, &seed[i]); err != nil {
			fmt.Printf("Error creating test %q: %v\n", seed[i].Title, err)
			continue
		}
		successCount++
		fmt.Printf("Created %q (%d questions, window %s - %s)\n",
			seed[i].Title,
			len(seed[i].Questions),
			seed[i].StartTime.Format(time.RFC3339),
			seed[i].EndTime.Format(time.RFC3339),
		)
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d tests.\n", successCount, len(seed))
}
