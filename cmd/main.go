package main

//
//  @title           finny API
//  @version         1.0
//  @description     Stock quote proxy and SEC filings lookup.
//  @termsOfService  https://github.com/guttosm/finny
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/finny
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:3000
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        quotes
//  @tag.description Stock quote lookups
//
//  @tag.name        filings
//  @tag.description SEC filings lookups
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/finny/config"
	_ "github.com/guttosm/finny/docs" // swagger docs
	"github.com/guttosm/finny/internal/app"
	"github.com/guttosm/finny/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, drains in-flight requests and
// then runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// logOutput picks the log stream for mode. Fetch mode prints its results on stdout,
// so its logs go to stderr.
func logOutput(mode string) io.Writer {
	if mode == "fetch" {
		return os.Stderr
	}
	return os.Stdout
}

// main is the entry point of the finny application.
//
// Modes (selected via --mode flag):
//   - api:   Starts the HTTP server (quote proxy, filings lookup, static files).
//   - fetch: Looks up --tickers once and prints one JSON line per ticker.
func main() {
	ctx := context.Background()

	config.LoadConfig()

	mode := flag.String("mode", "api", "Mode: api or fetch")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	tickers := flag.String("tickers", "", "Comma separated tickers for fetch mode")
	parallel := flag.Int("parallel", 4, "Concurrent lookups in fetch mode")
	flag.Parse()

	logger.InitWithWriter(logOutput(*mode))

	switch *mode {
	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "fetch":
		svc, err := app.NewQuoteService(config.AppConfig, nil)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("quote provider init error")
		}

		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		err = runFetch(ctx, svc, parseTickers(*tickers), *parallel, os.Stdout)
		stop()
		if err != nil {
			logger.L().Error().Err(err).Msg("fetch finished with errors")
			os.Exit(1)
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
