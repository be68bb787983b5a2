package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/openpockets/assistant"
	"github.com/danielhkuo/openpockets/cliparse"
	"github.com/danielhkuo/openpockets/congress"
	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/finance"
	"github.com/danielhkuo/openpockets/ingest"
	"github.com/danielhkuo/openpockets/middleware"
	"github.com/danielhkuo/openpockets/router"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Every startup failure is returned so
// the database is closed before the process exits.
func run(ctx context.Context, cfg cliparse.Config) error {
	// Connect to the database
	dbConn, dialect, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", dialect)

	// Load FEC bulk files
	if cfg.IngestManifest != "" {
		if err := ingestManifest(ctx, dbConn, dialect, cfg.IngestManifest); err != nil {
			return fmt.Errorf("ingestion of %s failed: %w", cfg.IngestManifest, err)
		}
	}

	rules := finance.DefaultRules()
	if cfg.IndustryRules != "" {
		if rules, err = finance.LoadRules(cfg.IndustryRules); err != nil {
			return err
		}
	}
	slog.Info("Industry rules ready", "rules", len(rules.Rules))

	resolver := finance.NewResolver(dbConn, dialect, finance.ResolverOptions{
		CacheSize:   cfg.ResolveCacheSize,
		CacheTTL:    cfg.ResolveCacheTTL,
		MatchRegion: cfg.MatchRegion,
	})
	services := router.Services{Finance: finance.NewService(dbConn, dialect, resolver, rules)}

	if cfg.GeminiAPIKey != "" {
		completer, err := assistant.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("chat assistant unavailable: %w", err)
		}
		services.Assistant = assistant.New(completer, services.Finance)
		slog.Info("Chat assistant enabled", "model", cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set; /api/chat disabled")
	}

	if cfg.CongressAPIKey != "" {
		services.Votes = congress.NewClient(congress.Config{
			BaseURL: cfg.VotesAPIURL,
			APIKey:  cfg.CongressAPIKey,
			Timeout: cfg.UpstreamTimeout,
		})
		slog.Info("Vote data enabled", "url", cfg.VotesAPIURL)
	} else {
		slog.Warn("CONGRESS_API_KEY not set; recent votes disabled")
	}

	// Create router
	mux := router.NewRouter(services, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.AllowedOrigin)(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Server closed")
	return nil
}

// ingestManifest loads the manifest's files. Unreadable files are logged by
// the loader; only database failures are returned.
func ingestManifest(ctx context.Context, conn *sql.DB, dialect db.Dialect, path string) error {
	manifest, err := ingest.LoadManifest(path)
	if err != nil {
		return err
	}
	_, err = ingest.NewLoader(conn, dialect).Run(ctx, manifest)
	return err
}
