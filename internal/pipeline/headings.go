package pipeline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// applyHeadings restyles heading paragraphs per level and injects
// hierarchical numbering prefixes when the journal numbers its
// headings. This is the one transformer that rewrites heading text, so
// it runs after every transformer that detects content by heading text.
func applyHeadings(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Headings
	if cfg == nil {
		return
	}

	var counters [3]int
	formatted, numbered := 0, 0

	for _, p := range doc.Paragraphs() {
		level, ok := analyze.HeadingLevel(p)
		if !ok || level > 3 {
			continue
		}

		if cfg.Numbered {
			var prefix string
			switch level {
			case 1:
				counters[0]++
				counters[1], counters[2] = 0, 0
				prefix = fmt.Sprintf("%d. ", counters[0])
			case 2:
				counters[1]++
				counters[2] = 0
				prefix = fmt.Sprintf("%d.%d ", counters[0], counters[1])
			case 3:
				counters[2]++
				prefix = fmt.Sprintf("%d.%d.%d ", counters[0], counters[1], counters[2])
			}
			p.PrependText(prefix)
			numbered++
		}

		style := cfg.Level(level)
		if style == nil {
			res.warnf(StepHeadings, "no configuration for heading level %d; style left unchanged", level)
			continue
		}

		bold := spec.BoolOr(style.Bold, true)
		color := strings.TrimPrefix(style.Color, "#")
		for _, r := range p.Runs {
			r.Format.Font = style.Family
			r.Format.Size = style.Size
			r.Format.Bold = bold
			r.Format.Italic = style.Italic
			r.Format.Color = color
		}
		p.Format.SpaceBefore = style.SpacingBefore
		p.Format.SpaceAfter = style.SpacingAfter
		p.Format.Alignment = style.Alignment
		formatted++
	}

	res.Stats["headings_formatted"] = formatted
	res.Stats["headings_numbered"] = numbered
}
