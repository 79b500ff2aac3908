package data

import "github.com/tschuyebuhl/soundex/phonetic"

// Code is the lookup key stored next to a name column.
func Code(name string) string {
	return phonetic.Soundex(FoldName(name))
}
