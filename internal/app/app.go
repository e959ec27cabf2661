package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/guttosm/finny/config"
	"github.com/guttosm/finny/internal/api"
	"github.com/guttosm/finny/internal/logger"
	"github.com/guttosm/finny/internal/service"
	"github.com/guttosm/finny/internal/storage"
	"github.com/rs/cors"
)

// InitializeApp sets up all application dependencies and returns
// the HTTP handler, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL and applies migrations when the lookup log is enabled.
//   - Builds the Yahoo quote client and the SEC filings client.
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes.
//   - Wraps the router with CORS when origins are configured.
//
// Returns:
//   - http.Handler: the configured router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(cfg config.Config) (http.Handler, func(), error) {
	var (
		recorder service.LookupRecorder
		ready    func(ctx context.Context) error
		cleanup  = func() {}
	)

	if cfg.LookupLog.Enabled {
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		if err := migrator(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate lookup log: %w", err)
		}
		repo := storage.NewLookupRepository(db)
		async := service.NewAsyncRecorder(repo)
		recorder = async
		ready = repo.Ping
		cleanup = func() {
			async.Wait()
			_ = db.Close()
		}
		logger.L().Info().Str("db", cfg.Postgres.DBName).Msg("lookup log enabled")
	}

	quotes, err := NewQuoteService(cfg, recorder)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize quote provider: %w", err)
	}

	handler := api.NewHandler(quotes, NewFilingsService(cfg))

	router := api.NewRouter(handler, api.RouterOptions{
		PublicDir:          cfg.Server.PublicDir,
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
	})

	api.NewHealthHandler(ready).Register(router)

	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		return router, cleanup, nil
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
	return c.Handler(router), cleanup, nil
}
