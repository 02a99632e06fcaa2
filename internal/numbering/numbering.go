// Package numbering provides the shared codecs that turn 1-based
// ordinals into arabic, Roman, or letter labels for headings, tables,
// figures, appendices, and equations.
package numbering

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrOutOfRange indicates an ordinal outside a codec's defined domain.
var ErrOutOfRange = errors.New("numbering: value out of range")

// Format tokens accepted by journal configurations.
const (
	FormatArabic = "arabic"
	FormatRoman  = "roman"
	FormatLetter = "letter"
)

var romanValues = []struct {
	value   int
	numeral string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Arabic returns the decimal representation of n.
func Arabic(n int) string {
	return strconv.Itoa(n)
}

// Roman returns the uppercase Roman numeral for n.
// Defined for 1 <= n <= 3999; anything else fails with ErrOutOfRange.
func Roman(n int) (string, error) {
	if n < 1 || n > 3999 {
		return "", fmt.Errorf("%w: %d (Roman numerals cover 1..3999)", ErrOutOfRange, n)
	}
	var out []byte
	for _, rv := range romanValues {
		for n >= rv.value {
			out = append(out, rv.numeral...)
			n -= rv.value
		}
	}
	return string(out), nil
}

// Letter returns the uppercase letter label for n: A..Z for 1..26, then
// bijective two-letter labels (27 = AA, 28 = AB, ...) so appendix and
// table labeling can continue past Z. n < 1 fails with ErrOutOfRange.
func Letter(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: %d (letter labels start at 1)", ErrOutOfRange, n)
	}
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out), nil
}

// Format renders n using one of the configuration tokens "arabic",
// "roman", or "letter". Unknown tokens fall back to arabic, which keeps
// label rendering total for configurations validated elsewhere.
func Format(n int, format string) (string, error) {
	switch format {
	case FormatRoman:
		return Roman(n)
	case FormatLetter:
		return Letter(n)
	default:
		return Arabic(n), nil
	}
}
