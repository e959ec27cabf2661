package service

import (
	"context"
	"strings"

	"github.com/guttosm/finny/internal/domain/models"
)

// FilingsSource fetches SEC filings for a ticker.
type FilingsSource interface {
	Filings(ctx context.Context, ticker string) ([]models.Filing, error)
}

// FilingsService defines the SEC filings lookup use case.
type FilingsService interface {
	GetFilings(ctx context.Context, ticker string) ([]models.Filing, error)
}

type filingsService struct {
	source FilingsSource
}

func NewFilingsService(source FilingsSource) FilingsService {
	return &filingsService{source: source}
}

// GetFilings upper-cases the ticker before querying EDGAR and never returns a nil slice
// on success.
func (s *filingsService) GetFilings(ctx context.Context, ticker string) ([]models.Filing, error) {
	filings, err := s.source.Filings(ctx, strings.ToUpper(strings.TrimSpace(ticker)))
	if err != nil {
		return nil, err
	}
	if filings == nil {
		filings = []models.Filing{}
	}
	return filings, nil
}
