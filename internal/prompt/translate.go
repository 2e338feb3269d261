package prompt

import "strings"

const (
	translatedPrefix = "[Translated: "
	translatedSuffix = "]"
)

// Translator converts a prompt into the language the remote model expects.
// Implementations must be free of side effects and idempotent.
type Translator interface {
	Translate(text string) string
}

// TagTranslator marks text as translated without changing its content. It
// stands in for a real translation backend.
type TagTranslator struct{}

func NewTagTranslator() *TagTranslator {
	return &TagTranslator{}
}

func (TagTranslator) Translate(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if strings.HasPrefix(text, translatedPrefix) && strings.HasSuffix(text, translatedSuffix) {
		return text
	}
	return translatedPrefix + text + translatedSuffix
}

var _ Translator = (*TagTranslator)(nil)
