package numbering

import (
	"errors"
	"testing"
)

func TestRoman(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{1, "I"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{1987, "MCMLXXXVII"},
		{3999, "MMMCMXCIX"},
	}

	for _, tt := range tests {
		got, err := Roman(tt.n)
		if err != nil {
			t.Errorf("Roman(%d) unexpected error: %v", tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Roman(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRomanOutOfRange(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -1, 4000} {
		if _, err := Roman(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Roman(%d) error = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestLetter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{1, "A"},
		{2, "B"},
		{26, "Z"},
		{27, "AA"},
		{28, "AB"},
		{52, "AZ"},
		{53, "BA"},
		{702, "ZZ"},
		{703, "AAA"},
	}

	for _, tt := range tests {
		got, err := Letter(tt.n)
		if err != nil {
			t.Errorf("Letter(%d) unexpected error: %v", tt.n, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Letter(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}

	if _, err := Letter(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Letter(0) error = %v, want ErrOutOfRange", err)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n      int
		format string
		want   string
	}{
		{3, FormatArabic, "3"},
		{3, FormatRoman, "III"},
		{3, FormatLetter, "C"},
		{3, "unknown", "3"},
	}

	for _, tt := range tests {
		got, err := Format(tt.n, tt.format)
		if err != nil {
			t.Errorf("Format(%d, %q) unexpected error: %v", tt.n, tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Format(%d, %q) = %q, want %q", tt.n, tt.format, got, tt.want)
		}
	}
}
