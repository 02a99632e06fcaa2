// Package analyze derives semantic structure from a document by
// inspection: headed sections, heading levels, number-stripped heading
// text, and reference-section detection. It is stateless and read-only;
// callers re-run it whenever they need current structure, because
// results are invalidated by any mutation that changes heading text.
package analyze

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
)

// Section is a non-owning view of one headed region: the heading
// paragraph index, its level, and the half-open paragraph range of its
// body. Nested subsections appear as their own entries with ranges
// inside their parent's range.
type Section struct {
	Heading string // raw heading text, numbering prefix included
	Level   int
	Start   int // paragraph index of the heading itself
	End     int // exclusive: next heading of level <= Level, or doc end
}

// Title returns the heading text with any numbering prefix stripped.
func (s Section) Title() string {
	return StripHeadingNumber(s.Heading)
}

var headingStyleRe = regexp.MustCompile(`^Heading ([1-9])$`)

// Leading numbering tokens: "12. ", "1.2.3 ", "1.2.3. ", "IV. ", "(a) ".
// A bare number without a trailing dot or parenthesis is only treated
// as a prefix when it is multipart ("1.2"), so years like "2020 Results"
// survive.
var headingNumberRe = regexp.MustCompile(`^\s*(?:\d+(?:\.\d+)+\.?|\d+[.)]|[IVXLCDM]+\.|\([a-z]\))\s+`)

// Reference-section heading variants, lowercase.
var referenceHeadings = map[string]bool{
	"references":            true,
	"bibliography":          true,
	"works cited":           true,
	"literature cited":      true,
	"citations":             true,
	"reference list":        true,
	"cited literature":      true,
	"literature references": true,
}

// HeadingLevel reports the heading level of p (1 = top-level) based on
// its style name, or false for body-style paragraphs.
func HeadingLevel(p *docmodel.Paragraph) (int, bool) {
	m := headingStyleRe.FindStringSubmatch(p.Style)
	if m == nil {
		return 0, false
	}
	return int(m[1][0] - '0'), true
}

// StripHeadingNumber removes leading numbering tokens from heading
// text, returning the input trimmed but otherwise unchanged when no
// token matches. Idempotent: stripping twice equals stripping once.
func StripHeadingNumber(text string) string {
	s := strings.TrimSpace(text)
	for {
		next := headingNumberRe.ReplaceAllString(s, "")
		if next == s {
			return s
		}
		s = next
	}
}

// IsReferenceHeading reports whether text names a reference section,
// tolerating a numbering prefix and ignoring case.
func IsReferenceHeading(text string) bool {
	return referenceHeadings[strings.ToLower(StripHeadingNumber(text))]
}

// Sections returns every headed section in document order. A section
// ends at the next paragraph whose heading level is less than or equal
// to its own, or at document end.
func Sections(doc *docmodel.Document) []Section {
	paras := doc.Paragraphs()
	var sections []Section
	for i, p := range paras {
		level, ok := HeadingLevel(p)
		if !ok {
			continue
		}
		sections = append(sections, Section{
			Heading: p.Text(),
			Level:   level,
			Start:   i,
			End:     len(paras),
		})
	}
	for i := range sections {
		for j := i + 1; j < len(sections); j++ {
			if sections[j].Level <= sections[i].Level {
				sections[i].End = sections[j].Start
				break
			}
		}
	}
	return sections
}

// FindSection returns the first section whose number-stripped heading
// matches any of names, case-insensitively. A miss is an expected
// outcome, reported through ok, not an error.
func FindSection(doc *docmodel.Document, names []string) (Section, bool) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(strings.TrimSpace(n))] = true
	}
	for _, s := range Sections(doc) {
		if wanted[strings.ToLower(s.Title())] {
			return s, true
		}
	}
	return Section{}, false
}

// ReferenceHeadingNames lists the heading spellings used to locate the
// reference section, in the casing journals commonly print them.
func ReferenceHeadingNames() []string {
	return []string{
		"References",
		"Bibliography",
		"Works Cited",
		"Literature Cited",
		"Citations",
		"Reference List",
		"Cited Literature",
		"Literature References",
	}
}

// FindReferenceSection locates the reference list, if any.
func FindReferenceSection(doc *docmodel.Document) (Section, bool) {
	return FindSection(doc, ReferenceHeadingNames())
}
