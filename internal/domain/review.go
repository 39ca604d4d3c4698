package domain

// ReviewBundle is the ad-filtered review text collected for one venue.
// Context holds the surviving snippets joined by single spaces, in
// provider order. RemovedCount is always TotalCount minus the number of
// snippets that made it into Context.
type ReviewBundle struct {
	Context      string
	TotalCount   int
	RemovedCount int
}

// KeptCount returns the number of snippets that survived ad filtering.
func (b ReviewBundle) KeptCount() int {
	return b.TotalCount - b.RemovedCount
}
