package pipeline

import (
	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// applyFootnotes is detect-and-warn only: the document model cannot
// renumber or restyle real footnotes, so the transformer counts the
// footnote references it finds and reports the rules it cannot enforce.
func applyFootnotes(doc *docmodel.Document, j *spec.Journal, res *Result) {
	fn := j.Footnotes
	if fn == nil {
		return
	}

	found := 0
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs {
			if r.FootnoteID != "" {
				found++
			}
		}
	}
	res.Stats["footnotes_found"] = found
	if found == 0 {
		return
	}

	res.warnf(StepFootnotes,
		"found %d footnote(s); footnote content cannot be restyled automatically and may need manual formatting", found)

	if fn.NumberingFormat != "arabic" {
		res.warnf(StepFootnotes,
			"footnote numbering format %q requested, but automatic renumbering is not supported; verify footnote numbering manually",
			fn.NumberingFormat)
	}
	if fn.MaxPerPage > 0 && found > fn.MaxPerPage {
		res.warnf(StepFootnotes,
			"document contains %d footnotes, which may exceed the maximum of %d per page; verify footnote distribution manually",
			found, fn.MaxPerPage)
	}
}
