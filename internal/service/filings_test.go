package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/finny/internal/domain/models"
)

type stubSource struct {
	gotTicker string
	filings   []models.Filing
	err       error
}

func (s *stubSource) Filings(_ context.Context, ticker string) ([]models.Filing, error) {
	s.gotTicker = ticker
	return s.filings, s.err
}

func TestFilingsService_TableDriven(t *testing.T) {
	cases := []struct {
		name       string
		src        *stubSource
		in         string
		wantTicker string
		wantLen    int
		wantErr    bool
	}{
		{
			name:       "normalizes ticker",
			src:        &stubSource{filings: []models.Filing{{Date: "2024-01-02", Type: "10-K"}}},
			in:         " aapl ",
			wantTicker: "AAPL",
			wantLen:    1,
		},
		{
			name:       "nil becomes empty",
			src:        &stubSource{},
			in:         "msft",
			wantTicker: "MSFT",
			wantLen:    0,
		},
		{
			name:       "error",
			src:        &stubSource{err: errors.New("boom")},
			in:         "x",
			wantTicker: "X",
			wantErr:    true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NewFilingsService(tc.src).GetFilings(context.Background(), tc.in)
			if tc.src.gotTicker != tc.wantTicker {
				t.Fatalf("ticker=%q want %q", tc.src.gotTicker, tc.wantTicker)
			}
			if tc.wantErr {
				if err == nil || out != nil {
					t.Fatalf("expected error, got out=%+v err=%v", out, err)
				}
				return
			}
			if err != nil || out == nil || len(out) != tc.wantLen {
				t.Fatalf("unexpected: out=%+v err=%v", out, err)
			}
		})
	}
}
