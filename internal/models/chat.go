package models

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// ErrUnsupportedLanguage is returned for language tags the assistant cannot answer in
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language is the reply language of the assistant
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageIndonesian Language = "id"
)

// ParseLanguage resolves a BCP 47 tag such as "en-US" or "id-ID" to a supported language
// by its base language. An empty value selects English. Tags whose base is only guessed,
// like "und-ID", are rejected, and so are related languages such as Malay or Javanese.
func ParseLanguage(s string) (Language, error) {
	if s == "" {
		return LanguageEnglish, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, conf := tag.Base()
	if conf < language.High {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	switch base.String() {
	case "en":
		return LanguageEnglish, nil
	case "id", "in":
		return LanguageIndonesian, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// Toggle switches between English and Indonesian
func (l Language) Toggle() Language {
	if l == LanguageIndonesian {
		return LanguageEnglish
	}
	return LanguageIndonesian
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message  string `json:"message" validate:"required,max=2000"`
	Language string `json:"language,omitempty" validate:"omitempty,max=35"`
}

// ChatResponse is the reply of POST /chat
type ChatResponse struct {
	Reply string `json:"reply"`
}
