// Package genwords normalizes and synthesizes word lists for seeding and
// exercising the engine's text log.
package genwords

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// charMap maps non-ASCII characters to their closest ASCII equivalent, so
// generated or ingested words stay within the engine's raw-byte contract.
var charMap = map[rune]string{
	'ç': "c", 'Ç': "c",
	'ş': "s", 'Ş': "s",
	'ğ': "g", 'Ğ': "g",
	'ı': "i", 'İ': "i",
	'ä': "a", 'Ä': "a",
	'ö': "o", 'Ö': "o",
	'ü': "u", 'Ü': "u",
	'ß': "ss",
	'à': "a", 'â': "a", 'æ': "ae",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'î': "i", 'ï': "i",
	'ô': "o", 'œ': "oe",
	'ù': "u", 'û': "u",
	'ÿ': "y",
	'á': "a", 'í': "i", 'ó': "o", 'ú': "u",
	'ñ': "n", 'Ñ': "n",
	'ã': "a", 'õ': "o",
}

// NormalizeChar normalizes a single rune to its ASCII equivalent.
func NormalizeChar(r rune) string {
	if ascii, ok := charMap[r]; ok {
		return ascii
	}
	if ascii, ok := charMap[unicode.ToLower(r)]; ok {
		return ascii
	}

	decomposed := norm.NFD.String(string(r))
	var b strings.Builder
	for _, c := range decomposed {
		if unicode.Is(unicode.Mn, c) {
			continue
		}
		if c < 128 {
			b.WriteRune(unicode.ToLower(c))
		}
	}
	if b.Len() > 0 {
		return b.String()
	}
	return strings.ToLower(string(r))
}

// NormalizeWord normalizes every rune of word to lowercase ASCII.
func NormalizeWord(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		b.WriteString(NormalizeChar(r))
	}
	return b.String()
}
