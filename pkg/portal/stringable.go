package portal

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Stringable struct {
	value string
}

func MakeStringable(value string) *Stringable {
	return &Stringable{
		value: strings.TrimSpace(value),
	}
}

func (s Stringable) String() string {
	return s.value
}

func (s Stringable) ToLower() string {
	caser := cases.Lower(language.English)

	return strings.TrimSpace(caser.String(s.value))
}

// Slug reduces the value to a URL-safe identifier: lower-cased, stripped of
// anything other than ascii letters, digits, whitespace and hyphens, with
// whitespace and hyphen runs collapsed into single hyphens. Applying it to
// its own output returns the same slug.
func (s Stringable) Slug() string {
	lowered := cases.Lower(language.English).String(s.value)

	var kept strings.Builder
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(kept.String()), "-")

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return strings.Trim(slug, "-")
}

// Excerpt strips markup from the value and truncates it to the given number
// of runes. Word spacing is normalised along the way.
func (s Stringable) Excerpt(limit int) string {
	var plain strings.Builder

	inTag := false
	for _, r := range s.value {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			plain.WriteRune(' ')
		case !inTag:
			plain.WriteRune(r)
		}
	}

	text := strings.Join(strings.Fields(plain.String()), " ")

	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		text = strings.TrimSpace(string(runes[:limit]))
	}

	return text
}
