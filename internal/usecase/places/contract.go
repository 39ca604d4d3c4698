package places

import (
	"context"

	"github.com/cureat-cloud/matseek/internal/domain"
)

// LocalSearcher queries the local-search provider for venue rows.
type LocalSearcher interface {
	SearchLocal(ctx context.Context, query string, display int) ([]domain.LocalResult, error)
}
