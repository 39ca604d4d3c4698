package health

import "context"

// SearchChecker checks search provider availability.
type SearchChecker interface {
	HealthCheck(ctx context.Context) error
}

// ChatChecker checks chat model provider availability.
type ChatChecker interface {
	HealthCheck(ctx context.Context) error
}
