package utils

import "strings"

// Slugify lowercases the title, strips everything outside [a-z0-9 -],
// hyphenates whitespace runs, collapses repeated hyphens and trims leading
// and trailing hyphens. The result is deterministic for a given input.
func Slugify(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n':
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// WordCount counts whitespace-separated tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// PrimaryKeyword picks the first word of the topic longer than two
// characters, lowercased, falling back to "technology".
func PrimaryKeyword(topic string) string {
	for _, word := range strings.Fields(strings.ToLower(topic)) {
		if len(word) > 2 {
			return word
		}
	}
	return "technology"
}
