package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
)

const defaultMaxPlaces = 3

// Service runs the full recommendation pipeline: optional keyword
// optimization, place search, then per-venue review collection,
// summarization and optional display translation. Each enrichment stage
// fails soft, so one degraded venue never affects the others.
type Service struct {
	places      PlaceSearcher
	reviews     ReviewCollector
	summaries   Summarizer
	translator  Translator
	maxPlaces   int
	keywords    bool
	translation bool
	logger      *zap.Logger
}

// New creates a recommendation service with both language stages enabled.
func New(
	places PlaceSearcher,
	reviews ReviewCollector,
	summaries Summarizer,
	translator Translator,
	logger *zap.Logger,
) *Service {
	return &Service{
		places:      places,
		reviews:     reviews,
		summaries:   summaries,
		translator:  translator,
		maxPlaces:   defaultMaxPlaces,
		keywords:    true,
		translation: true,
		logger:      logger,
	}
}

// WithMaxPlaces overrides how many venues are enriched per request.
func (s *Service) WithMaxPlaces(n int) *Service {
	if n > 0 {
		s.maxPlaces = n
	}
	return s
}

// WithKeywordOptimization toggles the query rewrite stage for
// non-native requests.
func (s *Service) WithKeywordOptimization(enabled bool) *Service {
	s.keywords = enabled
	return s
}

// WithDisplayTranslation toggles name/address translation for
// non-native requests.
func (s *Service) WithDisplayTranslation(enabled bool) *Service {
	s.translation = enabled
	return s
}

// Recommend answers a free-text restaurant request in the given display
// language. It always returns a result: no candidates yields an empty
// item list with a no-results answer.
func (s *Service) Recommend(
	ctx context.Context, prompt string, lang domain.Language,
) domain.RecommendationResult {
	query := prompt
	if s.keywords {
		query = s.translator.OptimizeKeywords(ctx, prompt, lang)
	}

	candidates := s.places.Search(ctx, query)
	if len(candidates) == 0 {
		s.logger.Info("no candidates found", zap.String("query", query))
		return domain.RecommendationResult{Answer: noResultsAnswer(lang)}
	}
	if len(candidates) > s.maxPlaces {
		candidates = candidates[:s.maxPlaces]
	}

	items := make([]domain.RecommendationItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, s.enrich(ctx, c, lang))
	}

	s.logger.Info("recommendation composed",
		zap.String("query", query),
		zap.Int("items", len(items)),
	)

	// The answer quotes the user's own words even when the keyword stage
	// rewrote the search query.
	return domain.RecommendationResult{
		Answer: resultsAnswer(prompt, lang),
		Items:  items,
	}
}

// enrich builds one recommendation item from a candidate venue.
func (s *Service) enrich(
	ctx context.Context, c domain.CandidateVenue, lang domain.Language,
) domain.RecommendationItem {
	bundle := s.reviews.Collect(ctx, c.Name, c.Address)
	sum := s.summaries.Summarize(ctx, c.Name, bundle.Context, lang)

	name, address := c.Name, c.Address
	if s.translation && !lang.Native() {
		displayName, displayAddr := s.translator.TranslateDisplay(ctx, c.Name, c.Address, lang)
		name = fmt.Sprintf("%s (%s)", c.Name, displayName)
		address = displayAddr
	}

	return domain.RecommendationItem{
		Name:            name,
		Address:         address,
		Summary:         sum,
		AdFiltered:      true,
		FilteredAdCount: bundle.RemovedCount,
		MapX:            c.MapX,
		MapY:            c.MapY,
		Keywords:        defaultKeywords(lang),
	}
}

func resultsAnswer(prompt string, lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return fmt.Sprintf("Here are the top picks for '%s'.", prompt)
	}
	return fmt.Sprintf("'%s' 지역의 추천 결과입니다.", prompt)
}

func noResultsAnswer(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return "No matching restaurants were found."
	}
	return "검색 결과가 없습니다."
}

func defaultKeywords(lang domain.Language) []string {
	if lang == domain.LanguageEnglish {
		return []string{"restaurant", "recommended"}
	}
	return []string{"맛집", "추천"}
}
