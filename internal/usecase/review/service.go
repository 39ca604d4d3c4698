package review

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
	"github.com/cureat-cloud/matseek/internal/metrics"
)

const (
	defaultDisplay = 10

	// querySuffix narrows blog search to restaurant reviews. The search
	// always runs in the provider's native language.
	querySuffix = "맛집 후기"
)

// Service collects ad-filtered review text for one venue. It fails soft:
// a provider error yields an empty bundle, never an error to the caller.
type Service struct {
	provider BlogSearcher
	display  int
	keywords []string
	logger   *zap.Logger
}

// New creates a review collection service with the default ad-keyword set.
func New(provider BlogSearcher, logger *zap.Logger) *Service {
	return &Service{
		provider: provider,
		display:  defaultDisplay,
		keywords: DefaultAdKeywords,
		logger:   logger,
	}
}

// WithDisplay overrides how many snippets are fetched per venue.
func (s *Service) WithDisplay(n int) *Service {
	if n > 0 {
		s.display = n
	}
	return s
}

// WithExtraAdKeywords appends terms to the ad-keyword set.
func (s *Service) WithExtraAdKeywords(extra ...string) *Service {
	if len(extra) > 0 {
		merged := make([]string, 0, len(s.keywords)+len(extra))
		merged = append(merged, s.keywords...)
		merged = append(merged, extra...)
		s.keywords = merged
	}
	return s
}

// Collect fetches review snippets for a venue and drops sponsored ones.
// Survivors are joined with single spaces in provider order, and
// RemovedCount always equals fetched minus kept.
func (s *Service) Collect(ctx context.Context, name, address string) domain.ReviewBundle {
	query := strings.TrimSpace(strings.Join([]string{name, address, querySuffix}, " "))

	items, err := s.provider.SearchBlog(ctx, query, s.display)
	if err != nil {
		s.logger.Warn("review collection failed, returning empty bundle",
			zap.String("venue", name),
			zap.Error(err),
		)
		return domain.ReviewBundle{}
	}

	kept := make([]string, 0, len(items))
	for _, it := range items {
		text := domain.StripHTML(it.Description)
		if s.isSponsored(text) {
			continue
		}
		kept = append(kept, text)
	}

	removed := len(items) - len(kept)
	if removed > 0 {
		metrics.AdFilteredTotal.Add(float64(removed))
		s.logger.Info("filtered sponsored snippets",
			zap.String("venue", name),
			zap.Int("total", len(items)),
			zap.Int("removed", removed),
		)
	}

	return domain.ReviewBundle{
		Context:      strings.Join(kept, " "),
		TotalCount:   len(items),
		RemovedCount: removed,
	}
}

// isSponsored reports whether text contains any ad-keyword substring.
func (s *Service) isSponsored(text string) bool {
	for _, kw := range s.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
