package places

import (
	"context"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
)

const defaultDisplay = 10

// Service finds candidate venues for a free-text query. It fails soft:
// a provider error yields an empty result, never an error to the caller.
type Service struct {
	provider LocalSearcher
	display  int
	logger   *zap.Logger
}

// New creates a place search service.
func New(provider LocalSearcher, logger *zap.Logger) *Service {
	return &Service{provider: provider, display: defaultDisplay, logger: logger}
}

// WithDisplay overrides how many venues are fetched per search.
func (s *Service) WithDisplay(n int) *Service {
	if n > 0 {
		s.display = n
	}
	return s
}

// Search returns candidate venues in provider rank order. Titles are
// HTML-stripped and the road address is preferred over the lot address.
func (s *Service) Search(ctx context.Context, query string) []domain.CandidateVenue {
	results, err := s.provider.SearchLocal(ctx, query, s.display)
	if err != nil {
		s.logger.Warn("place search failed, returning no candidates",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	venues := make([]domain.CandidateVenue, 0, len(results))
	for _, r := range results {
		address := r.RoadAddress
		if address == "" {
			address = r.Address
		}
		venues = append(venues, domain.CandidateVenue{
			Name:    domain.StripHTML(r.Title),
			Address: address,
			MapX:    r.MapX,
			MapY:    r.MapY,
		})
	}
	return venues
}
