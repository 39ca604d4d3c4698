package domain

import "fmt"

// Language is the display language requested for a recommendation.
// Korean is the native language of the search providers; any other
// language triggers keyword optimization and display translation.
type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
)

// ParseLanguage normalizes a request-level language code. An empty code
// defaults to Korean; anything else must be a supported code.
func ParseLanguage(code string) (Language, error) {
	switch code {
	case "", string(LanguageKorean):
		return LanguageKorean, nil
	case string(LanguageEnglish):
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
}

// Native reports whether the language matches the search providers'
// native language, making translation stages unnecessary.
func (l Language) Native() bool {
	return l == LanguageKorean
}
