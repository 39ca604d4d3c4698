package translate

import "context"

// ChatModel issues chat completions in plain and JSON-object modes.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}
