package pipeline

import (
	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// applyLayout sets page size, margins, and line spacing. Multi-column
// layout cannot be expressed by the document model, so a column count
// above one only produces an advisory warning.
func applyLayout(doc *docmodel.Document, j *spec.Journal, res *Result) {
	layout := j.PageLayout
	if layout == nil {
		return
	}

	switch layout.PageSize {
	case "a4":
		doc.Page.Width = docmodel.A4Width
		doc.Page.Height = docmodel.A4Height
	default:
		doc.Page.Width = docmodel.LetterWidth
		doc.Page.Height = docmodel.LetterHeight
	}

	m := layout.Margins
	doc.Page.MarginTop = m.Top
	doc.Page.MarginBottom = m.Bottom
	doc.Page.MarginLeft = m.Left
	doc.Page.MarginRight = m.Right

	touched := 0
	for _, p := range doc.Paragraphs() {
		p.Format.LineSpacing = layout.LineSpacing
		touched++
	}
	res.Stats["layout_paragraphs"] = touched

	if layout.Columns > 1 {
		res.warnf(StepLayout,
			"%d-column layout requested, but multi-column formatting cannot be applied automatically; set up columns manually after download",
			layout.Columns)
	}
}
