package osint

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics removes diacritical marks from a string (e.g., "Jiří" -> "Jiri").
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// CandidateFromFilename derives a candidate identity string from a gallery
// filename: the part before the first dot, lower-cased, with diacritics
// stripped so it forms a plausible account name.
func CandidateFromFilename(filename string) string {
	name := strings.Split(filename, ".")[0]
	name = strings.ToLower(name)
	return removeDiacritics(name)
}
