package pipeline

import (
	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// applyFonts sets the body font family and size on every non-heading
// run. Bold, italic, and underline flags live next to the font fields
// and are left untouched, so emphasis survives the restyle. Heading
// runs are skipped; the headings transformer owns their formatting.
func applyFonts(doc *docmodel.Document, j *spec.Journal, res *Result) {
	if j.Fonts == nil || j.Fonts.Body == nil {
		return
	}
	body := j.Fonts.Body

	paragraphs, runs := 0, 0
	for _, p := range doc.Paragraphs() {
		if _, ok := analyze.HeadingLevel(p); ok {
			continue
		}
		touched := false
		for _, r := range p.Runs {
			r.Format.Font = body.Family
			r.Format.Size = body.Size
			runs++
			touched = true
		}
		if touched {
			paragraphs++
		}
	}
	res.Stats["fonts_paragraphs"] = paragraphs
	res.Stats["fonts_runs"] = runs
}
