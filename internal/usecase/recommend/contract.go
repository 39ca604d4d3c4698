package recommend

import (
	"context"

	"github.com/cureat-cloud/matseek/internal/domain"
)

// PlaceSearcher finds candidate venues for a free-text query.
type PlaceSearcher interface {
	Search(ctx context.Context, query string) []domain.CandidateVenue
}

// ReviewCollector gathers ad-filtered review text for one venue.
type ReviewCollector interface {
	Collect(ctx context.Context, name, address string) domain.ReviewBundle
}

// Summarizer turns review text into a structured summary.
type Summarizer interface {
	Summarize(ctx context.Context, name, reviewContext string, lang domain.Language) domain.Summary
}

// Translator adapts queries and display fields between the caller's
// language and the search-native language.
type Translator interface {
	OptimizeKeywords(ctx context.Context, prompt string, lang domain.Language) string
	TranslateDisplay(ctx context.Context, name, address string, lang domain.Language) (string, string)
}
