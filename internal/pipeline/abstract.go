package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// Abstract heading with optional trailing colon or period, possibly
// followed by body text on the same line.
var abstractHeadingRe = regexp.MustCompile(`(?i)^abstract\s*[:.]?\s*`)

// findAbstractParagraph matches on heading text (tolerating a numbering
// prefix like "1. Abstract") or on a style name containing "abstract".
func findAbstractParagraph(doc *docmodel.Document) *docmodel.Paragraph {
	for _, p := range doc.Paragraphs() {
		text := strings.ToLower(analyze.StripHeadingNumber(p.Text()))
		if strings.HasPrefix(text, "abstract") ||
			strings.Contains(strings.ToLower(p.Style), "abstract") {
			return p
		}
	}
	return nil
}

// abstractBody returns the paragraphs between the abstract heading and
// the next heading or keywords line.
func abstractBody(doc *docmodel.Document, heading *docmodel.Paragraph) []*docmodel.Paragraph {
	var body []*docmodel.Paragraph
	collecting := false
	for _, p := range doc.Paragraphs() {
		if p == heading {
			collecting = true
			continue
		}
		if !collecting {
			continue
		}
		if _, ok := analyze.HeadingLevel(p); ok {
			break
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(p.Text())), "keyword") {
			break
		}
		body = append(body, p)
	}
	return body
}

func countWords(s string) int {
	return len(strings.Fields(s))
}

// applyAbstract normalizes the abstract heading text and restyles the
// heading and body paragraphs. When the heading and body share one
// paragraph (heading followed by a colon), the body portion of that
// paragraph is what gets word-counted.
func applyAbstract(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Abstract
	if cfg == nil {
		return
	}

	heading := findAbstractParagraph(doc)
	if heading == nil {
		res.warnf(StepAbstract, "could not identify an abstract section in the document")
		return
	}

	current := heading.Text()
	inline := strings.TrimSpace(abstractHeadingRe.ReplaceAllString(strings.TrimSpace(current), ""))
	newText := cfg.HeadingText
	if inline != "" {
		newText = cfg.HeadingText + " " + inline
	}
	heading.SetText(newText)

	bold := spec.BoolOr(cfg.BoldHeading, true)
	for _, r := range heading.Runs {
		r.Format.Size = cfg.FontSize
		r.Format.Bold = bold
	}
	heading.Format.Alignment = cfg.Alignment
	heading.Format.SpaceAfter = cfg.SpacingAfterHeading

	body := abstractBody(doc, heading)
	words := countWords(inline)
	for _, p := range body {
		for _, r := range p.Runs {
			r.Format.Size = cfg.FontSize
		}
		if cfg.IndentBody > 0 {
			p.Format.LeftIndent = cfg.IndentBody
		}
		words += countWords(p.Text())
	}
	res.Stats["abstract_words"] = words

	if cfg.MaxWords > 0 && words > cfg.MaxWords {
		res.warnf(StepAbstract,
			"abstract contains approximately %d words, which exceeds the maximum of %d",
			words, cfg.MaxWords)
	}
}
