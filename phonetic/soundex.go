// Package phonetic encodes names into Soundex codes for fuzzy lookups.
package phonetic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	codeLen = 4
	noCode  = '0'
)

// codes maps ASCII letters to their Soundex digit. Anything not listed is noCode.
var codes = func() [utf8.RuneSelf]byte {
	var t [utf8.RuneSelf]byte
	for i := range t {
		t[i] = noCode
	}
	for digit, letters := range []string{"BFPV", "CGJKQSXZ", "DT", "L", "MN", "R"} {
		for _, l := range letters {
			t[l] = byte('1' + digit)
			t[unicode.ToLower(l)] = byte('1' + digit)
		}
	}
	return t
}()

func code(r rune) byte {
	if r < 0 || r >= utf8.RuneSelf {
		return noCode
	}
	return codes[r]
}

// Soundex returns the four character Soundex code of name, or "" for an empty name.
// The first character is kept as is (uppercased); a vowel, H, W, Y or any other
// uncoded character between two consonants lets the second one through even
// when both share a digit.
func Soundex(name string) string {
	if name == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(name)
	var b strings.Builder
	b.Grow(codeLen + utf8.UTFMax)
	if first == utf8.RuneError && size == 1 {
		// not UTF-8: keep the byte itself
		b.WriteByte(name[0])
	} else {
		b.WriteRune(unicode.ToUpper(first))
	}
	n := 1

	prev := code(first)
	for _, r := range name[size:] {
		if n >= codeLen {
			break
		}
		c := code(r)
		if c != noCode && c != prev {
			b.WriteByte(c)
			n++
		}
		prev = c
	}

	for ; n < codeLen; n++ {
		b.WriteByte(noCode)
	}
	return b.String()
}

// SoundexPtr is Soundex for optional names; nil yields "".
func SoundexPtr(name *string) string {
	if name == nil {
		return ""
	}
	return Soundex(*name)
}
