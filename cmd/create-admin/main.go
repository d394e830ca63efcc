package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/config"
	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/internal/repository/postgres"
)

func main() {
	emailFlag := flag.String("email", "", "Admin e-mail address")
	apiKeyFlag := flag.String("api-key", "", "API key for this admin (save it; it cannot be retrieved later)")
	flag.Parse()

	var email, apiKey string
	if *emailFlag != "" && *apiKeyFlag != "" {
		email = *emailFlag
		apiKey = *apiKeyFlag
	} else if flag.NArg() >= 2 {
		email = flag.Arg(0)
		apiKey = flag.Arg(1)
	} else {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/create-admin/main.go --email \"admin@bookdragons.no\" --api-key \"your-api-key\"")
		fmt.Println("  go run cmd/create-admin/main.go \"admin@bookdragons.no\" \"your-api-key\"")
		os.Exit(1)
	}
	// Trim so the stored hash matches what the server receives (AdminAuthMiddleware trims the Bearer token)
	apiKey = strings.TrimSpace(apiKey)
	email = strings.TrimSpace(email)
	if apiKey == "" {
		fmt.Fprintf(os.Stderr, "Error: API key cannot be empty after trimming.\n")
		os.Exit(1)
	}
	if len(apiKey) > 72 {
		fmt.Fprintf(os.Stderr, "Error: API key must be at most 72 bytes.\n")
		os.Exit(1)
	}

	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Hash the API key (bcrypt for verification; SHA256 hex for fast lookup)
	apiKeyHash, err := repository.HashAPIKey(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to hash API key: %v\n", err)
		os.Exit(1)
	}

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	admin := &domain.AdminUser{
		Email:        email,
		APIKeyHash:   apiKeyHash,
		APIKeyLookup: repository.APIKeyLookup(apiKey),
		IsActive:     true,
	}
	if err := repos.AdminUser.Create(context.Background(), admin); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Admin created successfully!\n\n")
	fmt.Printf("Admin ID: %s\n", admin.ID.String())
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("API Key: %s\n", apiKey)
	fmt.Printf("\n⚠️  IMPORTANT: Save this API key securely! You won't be able to see it again.\n")
	fmt.Printf("\nUse this API key in the Authorization header:\n")
	fmt.Printf("Authorization: Bearer %s\n", apiKey)
}
