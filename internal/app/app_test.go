package app

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/finny/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>finny</h1>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	return config.Config{
		Server: config.ServerConfig{Port: "0", PublicDir: dir},
		Yahoo:  config.YahooConfig{BaseURL: "http://127.0.0.1:1", CookieURL: "http://127.0.0.1:1"},
		SEC:    config.SECConfig{BaseURL: "http://127.0.0.1:1"},
		Postgres: config.PostgresConfig{
			Host: "127.0.0.1", Port: 54329, User: "x", Password: "y", DBName: "z", SSLMode: "disable",
		},
	}
}

func serve(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(w, req)
	return w
}

func TestInitializeApp_WithoutLookupLog(t *testing.T) {
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) {
		t.Fatalf("database must not be opened when the lookup log is disabled")
		return nil, nil
	}
	t.Cleanup(func() { postgresOpener = old })

	h, cleanup, err := InitializeApp(testConfig(t))
	if err != nil || h == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err=%v", err)
	}
	defer cleanup()

	for _, path := range []string{"/healthz", "/readyz", "/"} {
		if w := serve(h, http.MethodGet, path, nil); w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
	}

	// Provider is unreachable: the quote route must collapse to the generic error.
	w := serve(h, http.MethodGet, "/api/data/AAPL", nil)
	if w.Code != http.StatusInternalServerError || w.Body.String() != `{"error":"Error fetching data"}` {
		t.Fatalf("unexpected quote response %d %s", w.Code, w.Body.String())
	}
}

func TestInitializeApp_DBFailure(t *testing.T) {
	old := postgresOpener
	postgresOpener = func(config.Config) (*sql.DB, error) { return nil, errors.New("connection refused") }
	t.Cleanup(func() { postgresOpener = old })

	cfg := testConfig(t)
	cfg.LookupLog.Enabled = true

	h, cleanup, err := InitializeApp(cfg)
	if err == nil || h != nil || cleanup != nil {
		t.Fatalf("expected error from InitializeApp with failing DB")
	}
}

func TestInitializeApp_MigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectClose()

	oldOpen, oldMigrate := postgresOpener, migrator
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { return errors.New("bad migration") }
	t.Cleanup(func() { postgresOpener, migrator = oldOpen, oldMigrate })

	cfg := testConfig(t)
	cfg.LookupLog.Enabled = true

	if _, _, err := InitializeApp(cfg); err == nil {
		t.Fatalf("expected migration error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("db should be closed on migration failure: %v", err)
	}
}

func TestInitializeApp_WithLookupLog(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("gone"))
	mock.ExpectExec(`INSERT INTO quote_lookups`).
		WithArgs("AAPL", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectClose()

	oldOpen, oldMigrate := postgresOpener, migrator
	postgresOpener = func(config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { return nil }
	t.Cleanup(func() { postgresOpener, migrator = oldOpen, oldMigrate })

	cfg := testConfig(t)
	cfg.LookupLog.Enabled = true

	h, cleanup, err := InitializeApp(cfg)
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}

	if w := serve(h, http.MethodGet, "/readyz", nil); w.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w.Code)
	}
	if w := serve(h, http.MethodGet, "/readyz", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz should degrade when ping fails, got %d", w.Code)
	}
	if w := serve(h, http.MethodGet, "/api/data/AAPL", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("quote status=%d", w.Code)
	}

	cleanup()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitializeApp_CORS(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.CORSAllowedOrigins = []string{"http://allowed.test"}

	h, cleanup, err := InitializeApp(cfg)
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	w := serve(h, http.MethodGet, "/healthz", map[string]string{"Origin": "http://allowed.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://allowed.test" {
		t.Fatalf("allow-origin=%q", got)
	}
	w = serve(h, http.MethodGet, "/healthz", map[string]string{"Origin": "http://evil.test"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow-origin for foreign origin: %q", got)
	}
}
