// Code coverage for main is ignored for now.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joeyheath65/NetTools/internal/api"
	"github.com/joeyheath65/NetTools/internal/config"
	"github.com/joeyheath65/NetTools/internal/inventory"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "nettools",
		Short: "Network site inventory and address allocation service",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		cfg, _, err := config.LoadFromPath(configPath)
		return cfg, err
	}
	cfg, path, err := config.Load()
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("Loaded configuration from %s", path)
	}
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the inventory web service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := cfg.InitializeDatabase()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			svc := inventory.NewService(db, inventory.Options{
				VLANs:            cfg.Inventory.VLANs,
				DefaultServices:  cfg.Inventory.DefaultServices,
				WirelessPlatform: cfg.Inventory.WirelessPlatform,
				BusinessUnit:     cfg.Inventory.BusinessUnit,
			})
			defer svc.Close()

			r := chi.NewRouter()
			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)
			api.NewAPI(svc).RegisterRoutes(r)

			fmt.Printf("Starting nettools web service on %s...\n", cfg.ListenAddr)
			return http.ListenAndServe(cfg.ListenAddr, r)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := cfg.InitializeDatabase()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			fmt.Println("Database migrations applied")
			return nil
		},
	}
}
