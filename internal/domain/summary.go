package domain

// Summary is the structured review digest for one venue.
// Pros and Cons are never nil; a fallback Summary keeps the same shape.
type Summary struct {
	Overview string
	Pros     []string
	Cons     []string
}
