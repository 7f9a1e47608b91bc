package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"grantdir/internal/config"
	"grantdir/internal/handlers"
	"grantdir/internal/ingest"
	"grantdir/internal/render"
	"grantdir/internal/storage"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "grantdir",
		Short: "Grant directory web server",
		Long: `grantdir serves a searchable directory of government and private
funding opportunities and related job listings, organized by
jurisdiction, category, and agency.`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (*storage.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	store, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			// First boot convenience: load the fixture when the
			// directory is empty.
			if cfg.SeedFile != "" {
				count, err := store.CountGrants()
				if err != nil {
					return err
				}
				if count == 0 {
					manager := ingest.NewManager(store)
					if _, err := manager.Import(cmd.Context(), "json", cfg.SeedFile); err != nil {
						log.Printf("Seed import failed: %v", err)
					}
				}
			}

			renderer, err := render.New(cfg.BaseURL)
			if err != nil {
				return fmt.Errorf("failed to initialize renderer: %w", err)
			}

			grantHandler := handlers.NewGrantHandler(store, renderer)
			jobHandler := handlers.NewJobHandler(store, renderer)
			siteHandler := handlers.NewSitemapHandler(store, cfg.BaseURL)
			mux := handlers.NewMux(grantHandler, jobHandler, siteHandler)

			log.Printf("Server starting on :%s...", cfg.Port)
			return http.ListenAndServe(":"+cfg.Port, mux)
		},
	}
}

func seedCmd() *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "seed <source>",
		Short: "Import a grant feed from a file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}

			manager := ingest.NewManager(store)
			count, err := manager.Import(cmd.Context(), method, args[0])
			if err != nil {
				return err
			}
			log.Printf("Seed complete: %d records imported", count)
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "json", "feed format (json or csv)")
	return cmd
}
