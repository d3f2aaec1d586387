// Package i18n resolves supported languages for user-facing portal copy.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var (
	supported = []language.Tag{
		language.AmericanEnglish, // en-US, base locale
		language.BritishEnglish,  // en-GB
	}
	matcher = language.NewMatcher(supported)
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// SupportedTags returns the list of supported language tags.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the default language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses a BCP 47 tag and reports whether it maps to a supported language.
func ParseTag(value string) (language.Tag, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return language.Tag{}, false
	}
	parsed, err := language.Parse(trimmed)
	if err != nil {
		return language.Tag{}, false
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return language.Tag{}, false
	}
	return supported[index], true
}

// MatchAcceptLanguage resolves an Accept-Language header to a supported tag.
func MatchAcceptLanguage(header string) language.Tag {
	if strings.TrimSpace(header) == "" {
		return DefaultTag()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}
