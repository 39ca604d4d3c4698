package domain

// RecommendationItem is one enriched venue in the final answer.
// Name may be a bilingual composite ("native (translated)") when a
// display language other than the native one was requested.
type RecommendationItem struct {
	Name            string
	Address         string
	Summary         Summary
	AdFiltered      bool
	FilteredAdCount int
	MapX            string
	MapY            string
	Keywords        []string
}

// RecommendationResult is the composed answer for one request:
// a top-level answer sentence plus zero to three enriched items.
type RecommendationResult struct {
	Answer string
	Items  []RecommendationItem
}
