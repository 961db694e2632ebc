package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	ledgerconfig "golang-stock-ledger/internal/ledger/config"
	pkgconfig "golang-stock-ledger/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var configPath string

// migrationTarget returns the migrations directory and database URL for the configured driver.
func migrationTarget(dbConfig pkgconfig.Database) (string, string, error) {
	switch strings.ToLower(dbConfig.Driver) {
	case "", "postgres":
		sslMode := dbConfig.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			url.QueryEscape(dbConfig.User),
			url.QueryEscape(dbConfig.Password),
			dbConfig.Host,
			dbConfig.Port,
			dbConfig.DBName,
			sslMode)
		return "file://migrations/postgres", dsn, nil
	case "sqlite", "sqlite3":
		path := dbConfig.Path
		if path == "" {
			path = "ledger.db"
		}
		return "file://migrations/sqlite3", "sqlite3://" + path, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", dbConfig.Driver)
	}
}

func runMigrations(direction string) {
	cfg, err := ledgerconfig.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	migrationsPath, dsn, err := migrationTarget(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to resolve migration target: %v", err)
	}

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-1)
	}

	if migrationErr != nil && !errors.Is(migrationErr, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", migrationErr)
	}
	if direction == "up" {
		fmt.Println("Applied migrations successfully.")
	} else {
		fmt.Println("Reverted last migration successfully.")
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("Migration source error on close: %v\n", srcErr)
	}
	if dbErr != nil {
		log.Printf("Migration database error on close: %v\n", dbErr)
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("up")
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migration",
	Run: func(cmd *cobra.Command, args []string) {
		runMigrations("down")
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-ledger.yaml", "Path to the configuration file")

	rootCmd.AddCommand(upCmd, downCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
