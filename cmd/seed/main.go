package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/config"
	"github.com/bookdragons/storefront/internal/repository/postgres"
	"github.com/bookdragons/storefront/internal/seed"
)

func main() {
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	fmt.Println("🌱 Starting seed...")
	summary, err := seed.Load(context.Background(), repos, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error seeding database: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Seed completed successfully!")
	fmt.Printf("  - %d authors created\n", summary.Authors)
	fmt.Printf("  - %d genres created\n", summary.Genres)
	fmt.Printf("  - %d books created\n", summary.Books)
}
