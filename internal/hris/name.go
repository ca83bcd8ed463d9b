package hris

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// minNameLength is the shortest name worth sending upstream.
const minNameLength = 4

// NormalizeName keeps letters and single spaces and upper-cases the result,
// the way names are typed on the attendance board.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return cases.Upper(language.Indonesian).String(strings.Join(strings.Fields(b.String()), " "))
}

func searchable(name string) bool {
	return len([]rune(name)) >= minNameLength
}
