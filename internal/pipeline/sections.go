package pipeline

import (
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// applySections checks the detected section order against the journal's
// required order. Reordering sections automatically risks corrupting
// the document, so a mismatch is reported, never fixed.
func applySections(doc *docmodel.Document, j *spec.Journal, res *Result) {
	if len(j.SectionOrder) == 0 {
		return
	}

	sections := analyze.Sections(doc)
	res.Stats["sections_found"] = len(sections)
	if len(sections) == 0 {
		res.warnf(StepSections, "no headed sections found in the document; cannot verify section order")
		return
	}

	wanted := make(map[string]bool, len(j.SectionOrder))
	for _, name := range j.SectionOrder {
		wanted[strings.ToLower(name)] = true
	}

	var present []string
	for _, s := range sections {
		title := s.Title()
		if wanted[strings.ToLower(title)] {
			present = append(present, title)
		}
	}
	if len(present) == 0 {
		res.warnf(StepSections,
			"none of the expected section headings were found; expected: %s",
			strings.Join(j.SectionOrder, ", "))
		return
	}

	expected := make([]string, 0, len(present))
	presentLower := make(map[string]bool, len(present))
	for _, h := range present {
		presentLower[strings.ToLower(h)] = true
	}
	for _, name := range j.SectionOrder {
		if presentLower[strings.ToLower(name)] {
			expected = append(expected, name)
		}
	}

	for i := range present {
		if !strings.EqualFold(present[i], expected[i]) {
			res.Stats["sections_misordered"] = 1
			res.warnf(StepSections,
				"section order mismatch: expected [%s], found [%s]; automatic reordering is not supported",
				strings.Join(expected, ", "), strings.Join(present, ", "))
			return
		}
	}
}
