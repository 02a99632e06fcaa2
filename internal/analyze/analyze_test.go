package analyze

import (
	"testing"

	"github.com/alnah/go-journalfmt/docmodel"
)

func textPara(style, text string) *docmodel.Paragraph {
	return &docmodel.Paragraph{
		Style: style,
		Runs:  []*docmodel.Run{{Text: text}},
	}
}

func buildDoc(paras ...*docmodel.Paragraph) *docmodel.Document {
	d := &docmodel.Document{}
	for _, p := range paras {
		d.Body = append(d.Body, p)
	}
	return d
}

func TestStripHeadingNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"arabic with dot", "12. Results", "Results"},
		{"multipart without trailing dot", "1.2.3 Analysis", "Analysis"},
		{"multipart with trailing dot", "1.2.3. Analysis", "Analysis"},
		{"roman", "IV. Discussion", "Discussion"},
		{"parenthesized letter", "(a) Setup", "Setup"},
		{"closing paren", "3) Methods", "Methods"},
		{"stacked prefixes", "1. 2. Intro", "Intro"},
		{"stacked arabic and roman", "12. IV. Discussion", "Discussion"},
		{"no prefix", "Introduction", "Introduction"},
		{"year is not a prefix", "2020 Results", "2020 Results"},
		{"bare roman without dot", "IV Conclusions", "IV Conclusions"},
		{"whitespace trimmed", "  Methods  ", "Methods"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripHeadingNumber(tt.input)
			if got != tt.want {
				t.Errorf("StripHeadingNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripHeadingNumberIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1. Introduction",
		"1.2.3 Analysis",
		"IV. Discussion",
		"(a) Setup",
		"Introduction",
		"2. 2020 in review",
		"1. 2. Intro",
		"12. IV. Discussion",
		"1.2 3) Methods",
		"",
	}
	for _, in := range inputs {
		once := StripHeadingNumber(in)
		twice := StripHeadingNumber(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		style string
		level int
		ok    bool
	}{
		{"Heading 1", 1, true},
		{"Heading 3", 3, true},
		{"Heading 9", 9, true},
		{"Normal", 0, false},
		{"Title", 0, false},
		{"Heading 10", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		level, ok := HeadingLevel(&docmodel.Paragraph{Style: tt.style})
		if level != tt.level || ok != tt.ok {
			t.Errorf("HeadingLevel(style=%q) = (%d, %v), want (%d, %v)",
				tt.style, level, ok, tt.level, tt.ok)
		}
	}
}

func TestSections(t *testing.T) {
	t.Parallel()

	doc := buildDoc(
		textPara("Title", "A Manuscript"),
		textPara("Heading 1", "Introduction"),
		textPara("Normal", "Body one."),
		textPara("Heading 2", "Background"),
		textPara("Normal", "Body two."),
		textPara("Heading 1", "Methods"),
		textPara("Normal", "Body three."),
	)

	sections := Sections(doc)
	if len(sections) != 3 {
		t.Fatalf("got %d sections, want 3", len(sections))
	}

	intro := sections[0]
	if intro.Heading != "Introduction" || intro.Level != 1 || intro.Start != 1 || intro.End != 5 {
		t.Errorf("introduction section = %+v", intro)
	}

	// Subsection range stays inside its parent's range.
	background := sections[1]
	if background.Level != 2 || background.Start != 3 || background.End != 5 {
		t.Errorf("background section = %+v", background)
	}

	methods := sections[2]
	if methods.Start != 5 || methods.End != 7 {
		t.Errorf("methods section = %+v", methods)
	}
}

func TestFindSection(t *testing.T) {
	t.Parallel()

	doc := buildDoc(
		textPara("Heading 1", "1. Introduction"),
		textPara("Normal", "Body."),
		textPara("Heading 1", "2. REFERENCES"),
		textPara("Normal", "Entry."),
	)

	s, ok := FindSection(doc, []string{"references"})
	if !ok {
		t.Fatal("FindSection missed a numbered, upper-cased heading")
	}
	if s.Start != 2 || s.End != 4 {
		t.Errorf("section range = [%d, %d), want [2, 4)", s.Start, s.End)
	}

	if _, ok := FindSection(doc, []string{"Acknowledgements"}); ok {
		t.Error("FindSection reported a match for an absent heading")
	}
}

func TestIsReferenceHeading(t *testing.T) {
	t.Parallel()

	yes := []string{"References", "BIBLIOGRAPHY", "works cited", "5. Literature Cited", "Reference List"}
	for _, h := range yes {
		if !IsReferenceHeading(h) {
			t.Errorf("IsReferenceHeading(%q) = false, want true", h)
		}
	}
	no := []string{"Introduction", "Reference implementation", ""}
	for _, h := range no {
		if IsReferenceHeading(h) {
			t.Errorf("IsReferenceHeading(%q) = true, want false", h)
		}
	}
}
