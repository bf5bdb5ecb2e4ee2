// Package letters holds the alphabet the games are played with and the
// helpers that turn user or config input into comparable letters.
package letters

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"

	"github.com/kiliankoe/otiyot/internal/game"
)

// Default is the first five letters of the Hebrew alphabet, in order.
var Default = []string{"א", "ב", "ג", "ד", "ה"}

// Normalize trims s and puts it in NFC so composed and decomposed input
// compare equal.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Parse reads a comma or whitespace separated list of single letters.
func Parse(list string) ([]string, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", game.ErrConfiguration)
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		l := Normalize(f)
		if utf8.RuneCountInString(l) != 1 {
			return nil, fmt.Errorf("%w: %q is not a single letter", game.ErrConfiguration, f)
		}
		if lo.Contains(out, l) {
			return nil, fmt.Errorf("%w: letter %s listed twice", game.ErrConfiguration, l)
		}
		out = append(out, l)
	}
	return out, nil
}

func Contains(alphabet []string, s string) bool {
	return lo.Contains(alphabet, Normalize(s))
}

// Prefix returns the first n letters of alphabet.
func Prefix(alphabet []string, n int) ([]string, error) {
	if n <= 0 || n > len(alphabet) {
		return nil, fmt.Errorf("%w: need between 1 and %d letters, got %d", game.ErrConfiguration, len(alphabet), n)
	}
	return append([]string(nil), alphabet[:n]...), nil
}
