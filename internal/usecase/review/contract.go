package review

import (
	"context"

	"github.com/cureat-cloud/matseek/internal/domain"
)

// BlogSearcher queries the blog-search provider for review snippets.
type BlogSearcher interface {
	SearchBlog(ctx context.Context, query string, display int) ([]domain.BlogResult, error)
}
