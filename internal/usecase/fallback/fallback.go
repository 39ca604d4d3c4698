// Package fallback implements the degrade-to-fallback contract shared by
// every model-touching stage: attempt a call, validate the parsed result,
// and on any failure return the stage's fixed fallback value instead of
// propagating an error.
package fallback

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Attempt runs op and validates its result. Any error from op or validate
// is logged and absorbed; the caller always receives a usable value.
func Attempt[T any](
	ctx context.Context,
	logger *zap.Logger,
	stage string,
	fb T,
	op func(ctx context.Context) (T, error),
	validate func(T) error,
) T {
	out, err := op(ctx)
	if err != nil {
		logger.Warn("stage degraded to fallback",
			zap.String("stage", stage),
			zap.Error(err),
		)
		return fb
	}
	if validate != nil {
		if err := validate(out); err != nil {
			logger.Warn("stage result rejected, using fallback",
				zap.String("stage", stage),
				zap.Error(err),
			)
			return fb
		}
	}
	return out
}

// CleanJSON trims whitespace and markdown code fences from model output.
// JSON-object response mode usually returns bare JSON, but some
// OpenAI-compatible providers still wrap it in ```json fences.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// TrimQuotes strips one layer of surrounding quote characters. Models asked
// for bare keywords tend to quote them anyway.
func TrimQuotes(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, `"'“”‘’`)
}
