package fallback

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestAttempt_Success(t *testing.T) {
	got := Attempt(context.Background(), zap.NewNop(), "stage", "fb",
		func(_ context.Context) (string, error) { return "live", nil },
		nil,
	)
	if got != "live" {
		t.Errorf("expected live value, got %q", got)
	}
}

func TestAttempt_OpError(t *testing.T) {
	got := Attempt(context.Background(), zap.NewNop(), "stage", "fb",
		func(_ context.Context) (string, error) { return "", errors.New("provider down") },
		nil,
	)
	if got != "fb" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestAttempt_ValidationError(t *testing.T) {
	got := Attempt(context.Background(), zap.NewNop(), "stage", 42,
		func(_ context.Context) (int, error) { return -1, nil },
		func(v int) error {
			if v < 0 {
				return errors.New("negative")
			}
			return nil
		},
	)
	if got != 42 {
		t.Errorf("expected fallback 42, got %d", got)
	}
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no lang", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"padded", "  {\"a\": 1}\n", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJSON(tt.in); got != tt.want {
				t.Errorf("CleanJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTrimQuotes(t *testing.T) {
	if got := TrimQuotes(`"강남 맛집"`); got != "강남 맛집" {
		t.Errorf("unexpected %q", got)
	}
	if got := TrimQuotes("“홍대 술집”"); got != "홍대 술집" {
		t.Errorf("unexpected %q", got)
	}
	if got := TrimQuotes("plain"); got != "plain" {
		t.Errorf("unexpected %q", got)
	}
}
