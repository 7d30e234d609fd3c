/*
main.go - Application entry point

PURPOSE:
  Starts the shift rate HTTP server. Handles configuration, dependency
  injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from the environment (config.Load)
  2. Apply command-line overrides
  3. Initialize logging and the SQLite calculation store
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS (serve):
  --port         HTTP server port (overrides SHIFTRATES_HTTP_PORT / PORT)
  --db           SQLite database path (overrides SHIFTRATES_DB_PATH)
                 Use ":memory:" for in-memory database
  --cache-size   Cached results, 0 disables (overrides SHIFTRATES_CACHE_SIZE)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  shiftrates serve --db=./data/shiftrates.db
  PORT=3000 shiftrates serve --db=":memory:"

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/shift-rates/api"
	"github.com/warp/shift-rates/config"
	"github.com/warp/shift-rates/logging"
	"github.com/warp/shift-rates/store/sqlite"
)

var (
	logger zerolog.Logger
	cfg    *config.Config

	flagPort      int
	flagDBPath    string
	flagCacheSize int
)

var rootCmd = &cobra.Command{
	Use:   "shiftrates",
	Short: "Shift rates - robot shift pricing service",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "HTTP server port")
	serveCmd.Flags().StringVar(&flagDBPath, "db", "", "SQLite database path")
	serveCmd.Flags().IntVar(&flagCacheSize, "cache-size", -1, "cached calculation results, 0 disables")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("port") {
		cfg.HTTPPort = flagPort
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if cmd.Flags().Changed("cache-size") {
		cfg.CacheSize = flagCacheSize
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, api.Options{
		CacheSize:    cfg.CacheSize,
		HistoryLimit: cfg.HistoryLimit,
		Logger:       logger,
	})
	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Str("db", cfg.DBPath).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
	return nil
}
