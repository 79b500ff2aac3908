package data

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]+")
	slugHyphens = regexp.MustCompile("-{2,}")
)

func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldName strips diacritics and surrounding space so that "Müller" and
// "Muller" produce the same lookup code.
func FoldName(s string) string {
	return strings.TrimSpace(stripMarks(s))
}

func Slugify(s string) string {
	s = strings.ToLower(stripMarks(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	return slugHyphens.ReplaceAllString(s, "-")
}
