package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/finny/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions carries the server settings the router needs.
type RouterOptions struct {
	PublicDir          string        // static assets for unmatched paths
	RequestTimeout     time.Duration // 0 disables the router-level timeout
	RateLimitPerMinute int           // 0 disables rate limiting
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the quote route (/api/data/:ticker) and the filings route (/fetch-sec-data).
//   - Serves everything else from the public directory.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	// Match on the escaped path so an encoded slash stays inside the ticker segment.
	// Path values are still unescaped before handlers see them.
	router.UseRawPath = true

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
		middleware.Timeout(opts.RequestTimeout),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	router.GET("/api/data/:ticker", handler.GetQuote)
	router.POST("/fetch-sec-data", handler.FetchSECData)

	// ─── Static ───────────────────────────────────
	registerPages(router, opts.PublicDir)
	router.NoRoute(staticFallback(opts.PublicDir))

	return router
}
