// Package slug derives URL-safe identifiers from human-readable names.
// The derivation is deterministic: the same name always produces the same
// slug, which is what lets renames regenerate the lookup key in place.
package slug

import (
	"regexp"
	"strings"
)

var nonAlphanum = regexp.MustCompile(`[^a-z0-9]+`)

// Latin characters with diacritics that commonly appear in brand and
// category names, mapped to their ASCII equivalents. Anything not covered
// here falls through to the non-alphanumeric replacement below.
var transliterations = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	"á", "a", "à", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o",
	"ú", "u", "ù", "u", "û", "u",
	"ñ", "n", "ß", "ss", "æ", "ae", "ø", "o",
)

// Generate creates a URL-friendly slug from the given name: lowercase,
// diacritics transliterated to ASCII, runs of non-alphanumeric characters
// collapsed to single hyphens, leading and trailing hyphens trimmed.
//
// Examples:
//   - "Hello   World!" → "hello-world"
//   - "Kadın Giyim" → "kadin-giyim"
//   - "Beauty & Personal Care" → "beauty-personal-care"
//
// Generate returns the empty string for names with no alphanumeric content
// ("", "   ", "!!!"). Callers treat an empty slug as invalid input.
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = transliterations.Replace(s)
	s = nonAlphanum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
