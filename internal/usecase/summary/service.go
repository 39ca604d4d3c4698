package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
	"github.com/cureat-cloud/matseek/internal/usecase/fallback"
)

const (
	defaultMinContextChars = 10
	defaultMaxContextChars = 2000
)

// Service turns collected review text into a structured Summary. It never
// returns an error: a missing credential, thin context, provider failure,
// or unparseable response all degrade to a deterministic fallback.
type Service struct {
	chat       ChatModel
	minContext int
	maxContext int
	logger     *zap.Logger
}

// New creates a summarization service. chat may be nil when no model
// credential is configured; the service then runs permanently in
// fallback mode.
func New(chat ChatModel, logger *zap.Logger) *Service {
	if chat == nil {
		logger.Warn("no chat model configured, summaries run in fallback mode")
	}
	return &Service{
		chat:       chat,
		minContext: defaultMinContextChars,
		maxContext: defaultMaxContextChars,
		logger:     logger,
	}
}

// WithContextBounds overrides the minimum usable and maximum sent context
// lengths, both in runes.
func (s *Service) WithContextBounds(minChars, maxChars int) *Service {
	if minChars > 0 {
		s.minContext = minChars
	}
	if maxChars > 0 {
		s.maxContext = maxChars
	}
	return s
}

// modelSummary is the JSON shape requested from the model.
type modelSummary struct {
	Summary string   `json:"summary"`
	Pros    []string `json:"pros"`
	Cons    []string `json:"cons"`
}

// Summarize produces a Summary for a venue from its review context, in
// the requested display language.
func (s *Service) Summarize(
	ctx context.Context, name, reviewContext string, lang domain.Language,
) domain.Summary {
	text := domain.TruncateRunes(strings.TrimSpace(reviewContext), s.maxContext)

	if s.chat == nil || utf8.RuneCountInString(text) < s.minContext {
		return insufficientSummary(lang)
	}

	return fallback.Attempt(ctx, s.logger, "summarize", popularSpotSummary(name, lang),
		func(ctx context.Context) (domain.Summary, error) {
			raw, err := s.chat.CompleteJSON(ctx, systemPrompt(lang), userPrompt(name, text, lang))
			if err != nil {
				return domain.Summary{}, err
			}

			var parsed modelSummary
			if err := json.Unmarshal([]byte(fallback.CleanJSON(raw)), &parsed); err != nil {
				return domain.Summary{}, fmt.Errorf("parse summary response: %w", err)
			}

			return domain.Summary{
				Overview: strings.TrimSpace(parsed.Summary),
				Pros:     nonNil(parsed.Pros),
				Cons:     nonNil(parsed.Cons),
			}, nil
		},
		func(sum domain.Summary) error {
			if sum.Overview == "" {
				return errors.New("model returned empty summary")
			}
			return nil
		},
	)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func systemPrompt(lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return "You are a restaurant review analyst. Respond with a single JSON object only, no markdown."
	}
	return "당신은 맛집 리뷰 분석가입니다. 마크다운 없이 JSON 객체 하나만 출력하세요."
}

func userPrompt(name, text string, lang domain.Language) string {
	if lang == domain.LanguageEnglish {
		return fmt.Sprintf(
			"Here are blog reviews about the restaurant %q: %s\n\n"+
				"Analyze them and answer in English with exactly this JSON shape:\n"+
				`{"summary": "one sentence capturing the overall character", `+
				`"pros": ["up to 3 concrete strengths visitors mentioned"], `+
				`"cons": ["1-2 drawbacks or caveats"]}`,
			name, text,
		)
	}
	return fmt.Sprintf(
		"식당 '%s'에 대한 여러 블로그 후기 내용입니다: %s\n\n"+
			"위 내용을 분석해서 반드시 아래 JSON 형식으로만 답하세요:\n"+
			`{"summary": "전체적인 특징 요약 한 문장", `+
			`"pros": ["방문객들이 꼽은 구체적인 장점 최대 3가지"], `+
			`"cons": ["아쉬운 점이나 주의사항 1-2가지"]}`,
		name, text,
	)
}

// insufficientSummary is returned without a model call when the review
// context is missing or too thin to analyze.
func insufficientSummary(lang domain.Language) domain.Summary {
	if lang == domain.LanguageEnglish {
		return domain.Summary{
			Overview: "Not enough review data to analyze yet.",
			Pros:     []string{},
			Cons:     []string{},
		}
	}
	return domain.Summary{
		Overview: "정보가 부족합니다.",
		Pros:     []string{},
		Cons:     []string{},
	}
}

// popularSpotSummary is the fallback when a model call fails or returns
// an unusable response.
func popularSpotSummary(name string, lang domain.Language) domain.Summary {
	if lang == domain.LanguageEnglish {
		return domain.Summary{
			Overview: fmt.Sprintf("%s is a popular local favorite.", name),
			Pros:     []string{"taste", "atmosphere"},
			Cons:     []string{"waiting time"},
		}
	}
	return domain.Summary{
		Overview: fmt.Sprintf("%s은(는) 인기 맛집입니다.", name),
		Pros:     []string{"맛", "분위기"},
		Cons:     []string{"대기 시간"},
	}
}
