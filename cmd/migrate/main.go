package main

import (
	"os"

	"coursehub-be/internal/config"
	"coursehub-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.LogLevel(cfg.Database.LogLevel))
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Running AutoMigrate...")

	if err := database.Migrate(db); err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}

	color.Green("Database migration completed")
}
