package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/config"
	"github.com/bookdragons/storefront/internal/repository/postgres"
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

	// First, connect to postgres database to create the target database if needed
	admin := cfg.Database
	admin.DBName = "postgres"
	postgresDB, err := sql.Open("postgres", admin.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to postgres database: %v\n", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	// Check if database exists, create if not
	var exists bool
	err = postgresDB.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database.DBName,
	).Scan(&exists)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to check database existence: %v\n", err)
		os.Exit(1)
	}

	if !exists {
		fmt.Printf("Database '%s' does not exist. Creating...\n", cfg.Database.DBName)
		if _, err := postgresDB.Exec("CREATE DATABASE "+pq.QuoteIdentifier(cfg.Database.DBName)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Database '%s' created successfully.\n", cfg.Database.DBName)
	}

	// Now connect to the target database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	dir := cfg.MigrationsDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	applied, err := postgres.RunMigrations(context.Background(), db, dir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrations: %v\n", err)
		os.Exit(1)
	}

	if len(applied) == 0 {
		fmt.Println("No pending migrations.")
		return
	}
	fmt.Printf("Migration completed successfully! Applied: %v\n", applied)
}
