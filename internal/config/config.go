// Package config provides configuration management for the nettools
// service.
//
// Config file locations (priority order):
//  1. $NETTOOLS_CONFIG
//  2. ./nettools.yaml
//  3. ~/.config/nettools/config.yaml
//  4. /etc/nettools/config.yaml
package config

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeyheath65/NetTools/internal/migrations"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// Config holds all configuration for the nettools service
type Config struct {
	ListenAddr string          `yaml:"listen_addr"`
	Database   DatabaseConfig  `yaml:"database"`
	Inventory  InventoryConfig `yaml:"inventory"`
}

// DatabaseConfig holds the storage settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// InventoryConfig tunes the provisioning defaults
type InventoryConfig struct {
	VLANs            []int    `yaml:"vlans"`
	DefaultServices  []string `yaml:"default_services"`
	WirelessPlatform string   `yaml:"wireless_platform"`
	BusinessUnit     string   `yaml:"business_unit"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "~/nettools/data/nettools.db"
	}
	if c.Inventory.WirelessPlatform == "" {
		c.Inventory.WirelessPlatform = "Mist"
	}
	if c.Inventory.BusinessUnit == "" {
		c.Inventory.BusinessUnit = "Store"
	}
}

// InitializeDatabase creates and configures the database connection
func (c *Config) InitializeDatabase() (*sql.DB, error) {
	dbPath := expandPath(c.Database.Path)

	// Ensure database directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	OptimizeDatabaseConnection(db)

	if err := ApplyPragmaOptimizations(db); err != nil {
		return nil, fmt.Errorf("failed to apply performance optimizations: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the full inventory schema to the database
func RunMigrations(db *sql.DB) error {
	migrator := migrations.NewMigrator(db)

	for _, migration := range migrations.GetInitialMigrations() {
		migrator.AddMigration(migration)
	}
	for _, migration := range migrations.GetPerformanceMigrations() {
		migrator.AddMigration(migration)
	}

	return migrator.RunMigrations()
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Return original path if we can't get home dir
		return path
	}

	return filepath.Join(homeDir, path[2:])
}
