// Package locale resolves which language the site is shown in and looks up
// user-facing strings in the translation tree loaded for that language.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the two supported site locales.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// DefaultLanguage is used when no preference has been persisted.
const DefaultLanguage = English

// Supported lists every language that ships a translation tree.
var Supported = []Language{English, French}

// ParseLanguage maps a stored or user-provided code onto a supported
// language. Region and script subtags are ignored, so "fr-CA" resolves to
// French.
func ParseLanguage(raw string) (Language, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, lang := range Supported {
		if base.String() == string(lang) {
			return lang, true
		}
	}
	return "", false
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == French {
		return English
	}
	return French
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	if l == French {
		return language.French
	}
	return language.English
}

func (l Language) String() string {
	return string(l)
}
