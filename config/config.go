package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, upstream data providers and the optional lookup log database.
//
// Example ENV equivalent:
//
//	SERVER_PORT=3000
//	PUBLIC_DIR=./public
//	YAHOO_BASE_URL=https://query2.finance.yahoo.com
//	YAHOO_TIMEOUT=10s
//	LOOKUP_LOG_ENABLED=false
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Yahoo     YahooConfig     // Yahoo Finance quote provider
	SEC       SECConfig       // SEC EDGAR filings source
	LookupLog LookupLogConfig // Optional lookup log
	Postgres  PostgresConfig  // PostgreSQL connection settings (lookup log only)
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "3000")
	PublicDir          string        // Directory served as static assets for unmatched paths
	RequestTimeout     time.Duration // Router-level request timeout; 0 disables it
	CORSAllowedOrigins []string      // Empty disables CORS handling
	RateLimitPerMinute int           // Requests per client IP per minute; 0 disables it
}

// YahooConfig configures the quoteSummary client.
type YahooConfig struct {
	BaseURL   string
	CookieURL string
	Timeout   time.Duration // 0 means no client-side timeout
	UserAgent string
}

// SECConfig configures the EDGAR filings scraper.
type SECConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// LookupLogConfig toggles persistence of quote lookups.
type LookupLogConfig struct {
	Enabled bool
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and handed to app.InitializeApp.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("PUBLIC_DIR", "./public")
	viper.SetDefault("REQUEST_TIMEOUT", "0s")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 0)

	viper.SetDefault("USER_AGENT", "Mozilla/5.0")
	viper.SetDefault("YAHOO_BASE_URL", "https://query2.finance.yahoo.com")
	viper.SetDefault("YAHOO_COOKIE_URL", "https://fc.yahoo.com")
	viper.SetDefault("YAHOO_TIMEOUT", "10s")
	viper.SetDefault("SEC_BASE_URL", "https://www.sec.gov")
	viper.SetDefault("SEC_TIMEOUT", "15s")

	viper.SetDefault("LOOKUP_LOG_ENABLED", false)
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "finny")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	userAgent := viper.GetString("USER_AGENT")

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			PublicDir:          viper.GetString("PUBLIC_DIR"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Yahoo: YahooConfig{
			BaseURL:   viper.GetString("YAHOO_BASE_URL"),
			CookieURL: viper.GetString("YAHOO_COOKIE_URL"),
			Timeout:   viper.GetDuration("YAHOO_TIMEOUT"),
			UserAgent: userAgent,
		},
		SEC: SECConfig{
			BaseURL:   viper.GetString("SEC_BASE_URL"),
			UserAgent: userAgent,
			Timeout:   viper.GetDuration("SEC_TIMEOUT"),
		},
		LookupLog: LookupLogConfig{
			Enabled: viper.GetBool("LOOKUP_LOG_ENABLED"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// missingFields returns the names of required variables that are empty.
// Postgres settings are only required when the lookup log is enabled.
func missingFields(cfg Config) []string {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if cfg.Server.PublicDir == "" {
		missing = append(missing, "PUBLIC_DIR")
	}
	if cfg.Yahoo.BaseURL == "" {
		missing = append(missing, "YAHOO_BASE_URL")
	}
	if cfg.SEC.BaseURL == "" {
		missing = append(missing, "SEC_BASE_URL")
	}

	if cfg.LookupLog.Enabled {
		if cfg.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if cfg.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	}
	return missing
}

// validateConfig terminates the application if required variables are missing.
func validateConfig() {
	if missing := missingFields(AppConfig); len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
