package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
	"github.com/cureat-cloud/matseek/internal/usecase/fallback"
)

// Service adapts the pipeline between the caller's display language and
// the search-native language. Both operations are best-effort: any model
// failure degrades to the untranslated input and never blocks the
// pipeline.
type Service struct {
	chat   ChatModel
	logger *zap.Logger
}

// New creates a translation service. chat may be nil when no model
// credential is configured; both operations then pass inputs through.
func New(chat ChatModel, logger *zap.Logger) *Service {
	if chat == nil {
		logger.Warn("no chat model configured, language adaptation disabled")
	}
	return &Service{chat: chat, logger: logger}
}

// OptimizeKeywords rewrites a non-native prompt into concise native-language
// search keywords. The original prompt is returned unchanged when the
// display language is native, the model is unavailable, or the call fails.
func (s *Service) OptimizeKeywords(ctx context.Context, prompt string, lang domain.Language) string {
	if lang.Native() || s.chat == nil {
		return prompt
	}

	return fallback.Attempt(ctx, s.logger, "optimize_keywords", prompt,
		func(ctx context.Context) (string, error) {
			out, err := s.chat.Complete(ctx,
				"You rewrite restaurant requests into Korean search keywords. "+
					"Output 1-2 concise Korean keywords only, nothing else.",
				fmt.Sprintf("Rewrite this request as Korean local-search keywords: %s", prompt),
			)
			if err != nil {
				return "", err
			}
			return fallback.TrimQuotes(out), nil
		},
		func(out string) error {
			if out == "" {
				return errors.New("model returned empty keywords")
			}
			return nil
		},
	)
}

// displayText is the JSON shape requested for display translation.
type displayText struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// TranslateDisplay translates a venue's native name and address into the
// display language. Native values are returned when the language is
// native, the model is unavailable, the call fails, or a field is missing.
func (s *Service) TranslateDisplay(
	ctx context.Context, name, address string, lang domain.Language,
) (string, string) {
	if lang.Native() || s.chat == nil {
		return name, address
	}

	native := displayText{Name: name, Address: address}
	out := fallback.Attempt(ctx, s.logger, "translate_display", native,
		func(ctx context.Context) (displayText, error) {
			raw, err := s.chat.CompleteJSON(ctx,
				"You translate Korean venue names and addresses. "+
					"Respond with a single JSON object only.",
				fmt.Sprintf(
					`Translate to %s, keeping the JSON shape {"name": "...", "address": "..."}: `+
						`{"name": %q, "address": %q}`,
					languageName(lang), name, address,
				),
			)
			if err != nil {
				return displayText{}, err
			}

			var parsed displayText
			if err := json.Unmarshal([]byte(fallback.CleanJSON(raw)), &parsed); err != nil {
				return displayText{}, fmt.Errorf("parse translation response: %w", err)
			}
			return parsed, nil
		},
		func(out displayText) error {
			if out.Name == "" || out.Address == "" {
				return errors.New("translation response missing fields")
			}
			return nil
		},
	)

	return out.Name, out.Address
}

func languageName(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return "English"
	}
	return "Korean"
}
