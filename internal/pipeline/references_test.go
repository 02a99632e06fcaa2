package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alnah/go-journalfmt/internal/spec"
)

func refStyle() *spec.ReferenceStyle {
	return &spec.ReferenceStyle{
		Numbering:     "numbered",
		Format:        "{authors} ({year}). {title}. {journal}, {volume}({issue}), {pages}. {doi}",
		HangingIndent: 0.5,
		FontSize:      10,
	}
}

func TestParseReferenceEntry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{
			name: "APA with volume issue pages",
			text: "Smith, J. (2020). A study of restyling. Journal of Documents, 12(3), 45-67.",
			want: map[string]string{
				"authors": "Smith, J", "year": "2020",
				"title": "A study of restyling", "journal": "Journal of Documents",
				"volume": "12", "issue": "3", "pages": "45-67",
			},
		},
		{
			name: "numbered Vancouver with DOI",
			text: "1. Jones P. Structural analysis of manuscripts. Ann Formatting. 2019. 8:1-20. doi:10.1000/xyz123",
			want: map[string]string{
				"year": "2019", "doi": "10.1000/xyz123",
				"volume": "8", "pages": "1-20",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var fields refFields
			for _, rule := range referenceRules() {
				if fields = rule.parse(tt.text); fields != nil {
					break
				}
			}
			if fields == nil {
				t.Fatal("no rule matched")
			}
			for k, want := range tt.want {
				if fields[k] != want {
					t.Errorf("fields[%q] = %q, want %q", k, fields[k], want)
				}
			}
		})
	}
}

func TestParseReferenceEntryLowConfidence(t *testing.T) {
	t.Parallel()
	for _, rule := range referenceRules() {
		if got := rule.parse("Just some words"); got != nil {
			t.Errorf("rule %q matched a non-reference string: %v", rule.name, got)
		}
	}
}

func TestRenderReferenceCleansEmptyFields(t *testing.T) {
	t.Parallel()
	fields := refFields{"authors": "Smith, J", "year": "2020", "title": "A study"}
	got := renderReference(fields, "{authors} ({year}). {title}. {journal}, {volume}({issue}), {pages}. {doi}", 1)
	if strings.Contains(got, "()") || strings.Contains(got, ", ,") || strings.Contains(got, "..") {
		t.Errorf("punctuation artifacts left behind: %q", got)
	}
	if !strings.HasPrefix(got, "Smith, J (2020). A study") {
		t.Errorf("rendered = %q", got)
	}
}

func TestApplyReferencesNumbersEntries(t *testing.T) {
	t.Parallel()
	doc := docOf(
		para("Heading 1", "References"),
		para("Normal", "Smith, J. (2020). A study of restyling. Journal of Documents, 12(3), 45-67."),
		para("Normal", ""),
		para("Normal", "Jones, P. (2019). Another study. Annals of Formatting, 8(1), 1-20."),
	)
	res := newResult()
	applyReferences(doc, &spec.Journal{ID: "t", ReferenceStyle: refStyle()}, res)

	if res.Stats["references_found"] != 2 || res.Stats["references_reformatted"] != 2 {
		t.Fatalf("found/reformatted = %d/%d, want 2/2",
			res.Stats["references_found"], res.Stats["references_reformatted"])
	}

	paras := doc.Paragraphs()
	if got := paras[1].Text(); !strings.HasPrefix(got, "1. ") {
		t.Errorf("entry 1 = %q, want prefix \"1. \"", got)
	}
	if got := paras[3].Text(); !strings.HasPrefix(got, "2. ") {
		t.Errorf("entry 2 = %q, want prefix \"2. \"", got)
	}
	if paras[1].Format.LeftIndent != 0.5 || paras[1].Format.FirstLineIndent != -0.5 {
		t.Errorf("hanging indent not applied: left=%v first=%v",
			paras[1].Format.LeftIndent, paras[1].Format.FirstLineIndent)
	}
}

// One unparseable entry warns and stays verbatim; the rest still
// reformat, and layout formatting applies to the failed entry too.
func TestApplyReferencesIsolatesParseFailures(t *testing.T) {
	t.Parallel()
	doc := docOf(
		para("Heading 1", "Bibliography"),
		para("Normal", "mystery entry without structure"),
		para("Normal", "Smith, J. (2020). A study of restyling. Journal of Documents, 12(3), 45-67."),
	)
	res := newResult()
	applyReferences(doc, &spec.Journal{ID: "t", ReferenceStyle: refStyle()}, res)

	if res.Stats["references_found"] != 2 {
		t.Errorf("references_found = %d, want 2", res.Stats["references_found"])
	}
	if res.Stats["references_reformatted"] != 1 {
		t.Errorf("references_reformatted = %d, want 1", res.Stats["references_reformatted"])
	}

	paras := doc.Paragraphs()
	if got := paras[1].Text(); got != "mystery entry without structure" {
		t.Errorf("unparseable entry mutated: %q", got)
	}
	if paras[1].Format.LeftIndent != 0.5 {
		t.Error("hanging indent must apply even when parsing fails")
	}
	if got := paras[2].Text(); !strings.HasPrefix(got, "2. ") {
		t.Errorf("entry after failure = %q, want prefix \"2. \": numbering keeps document order", got)
	}

	var warned bool
	for _, w := range res.Warnings {
		if w.Step == StepReferences && strings.Contains(w.Message, "entry #1") {
			warned = true
		}
	}
	if !warned {
		t.Error("no warning identifying the unparseable entry")
	}
}

// Warning excerpts truncate long entries at a rune boundary, so a
// multibyte author name straddling the cutoff stays valid UTF-8.
func TestApplyReferencesExcerptKeepsRunesIntact(t *testing.T) {
	t.Parallel()
	entry := strings.Repeat("x", 79) + "é mystery entry without any year marker"
	doc := docOf(
		para("Heading 1", "Bibliography"),
		para("Normal", entry),
	)
	res := newResult()
	applyReferences(doc, &spec.Journal{ID: "t", ReferenceStyle: refStyle()}, res)

	var excerpt string
	for _, w := range res.Warnings {
		if w.Step == StepReferences && strings.Contains(w.Message, "entry #1") {
			excerpt = w.Message
		}
	}
	if excerpt == "" {
		t.Fatal("no warning for the unparseable entry")
	}
	if !utf8.ValidString(excerpt) {
		t.Errorf("warning message is not valid UTF-8: %q", excerpt)
	}
	if !strings.Contains(excerpt, "é") {
		t.Errorf("truncation dropped the rune at the boundary: %q", excerpt)
	}
}

func TestApplyReferencesNoSection(t *testing.T) {
	t.Parallel()
	doc := docOf(
		para("Heading 1", "Introduction"),
		para("Normal", "No references here."),
	)
	res := newResult()
	applyReferences(doc, &spec.Journal{ID: "t", ReferenceStyle: refStyle()}, res)

	if res.Stats["references_found"] != 0 {
		t.Errorf("references_found = %d, want 0", res.Stats["references_found"])
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning when the reference section is missing")
	}
}
