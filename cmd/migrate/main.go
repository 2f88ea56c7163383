package main

import (
	"fmt"
	"os"

	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/repository/postgres"
	"github.com/trampo-app/trampo/migrations"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Connect to database
	db, err := postgres.New(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch command {
	case "up":
		applied, err := postgres.RunMigrations(db, migrations.Files)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed after %d applied: %v\n", applied, err)
			os.Exit(1)
		}
		if applied == 0 {
			fmt.Println("Database is up to date")
			return
		}
		fmt.Printf("Applied %d migrations\n", applied)

	case "status":
		versions, err := postgres.AppliedMigrations(db)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read migration status: %v\n", err)
			os.Exit(1)
		}
		if len(versions) == 0 {
			fmt.Println("No migrations applied")
			return
		}
		for _, v := range versions {
			fmt.Printf("✓ %s\n", v)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q, expected up or status\n", command)
		os.Exit(2)
	}
}
