package summary

import "context"

// ChatModel issues one structured chat completion.
type ChatModel interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}
