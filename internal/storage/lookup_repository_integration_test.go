//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/guttosm/finny/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "finny",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=finny sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/finny?sslmode=disable", host, port.Port())
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func TestLookupRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := NewLookupRepository(db)

	// Before migrations the table is missing.
	err = repo.RecordLookup(context.Background(), models.Lookup{Ticker: "AAPL", RequestedAt: time.Now()})
	if err == nil {
		t.Fatalf("expected error before migrations")
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Migrations are idempotent.
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate twice: %v", err)
	}

	at := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)
	for _, l := range []models.Lookup{
		{Ticker: "AAPL", Success: true, LatencyMs: 120, RequestedAt: at},
		{Ticker: "INVALIDTICKERXYZ", Success: false, LatencyMs: 80, RequestedAt: at.Add(time.Second)},
	} {
		if err := repo.RecordLookup(context.Background(), l); err != nil {
			t.Fatalf("record %s: %v", l.Ticker, err)
		}
	}

	var total, failed int
	if err := db.QueryRow(`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT success) FROM quote_lookups`).Scan(&total, &failed); err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 || failed != 1 {
		t.Fatalf("total=%d failed=%d", total, failed)
	}
}
