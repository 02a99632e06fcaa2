package pipeline

import (
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// findTitleParagraph prefers a paragraph with the Title style and falls
// back to the first paragraph carrying any text.
func findTitleParagraph(doc *docmodel.Document) *docmodel.Paragraph {
	var firstNonEmpty *docmodel.Paragraph
	for _, p := range doc.Paragraphs() {
		if strings.TrimSpace(p.Text()) == "" {
			continue
		}
		if p.Style == "Title" {
			return p
		}
		if firstNonEmpty == nil {
			firstNonEmpty = p
		}
	}
	return firstNonEmpty
}

// applyTitlePage restyles the manuscript title paragraph.
func applyTitlePage(doc *docmodel.Document, j *spec.Journal, res *Result) {
	if j.TitlePage == nil || j.TitlePage.Title == nil {
		return
	}
	style := j.TitlePage.Title

	title := findTitleParagraph(doc)
	if title == nil {
		res.warnf(StepTitlePage, "could not identify a title paragraph in the document")
		return
	}
	res.Stats["title_page_found"] = 1

	bold := spec.BoolOr(style.Bold, true)
	for _, r := range title.Runs {
		if style.AllCaps {
			r.Text = strings.ToUpper(r.Text)
		}
		r.Format.Size = style.FontSize
		r.Format.Bold = bold
	}
	title.Format.Alignment = style.Alignment
}
