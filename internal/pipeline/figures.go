package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/numbering"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// "Figure 1", "Fig. 2", "fig 3" at the start of a paragraph.
var figureCaptionRe = regexp.MustCompile(`(?i)^(?:figure|fig\.?)\s+(\d+|[IVXLCDM]+)`)

// applyFigures renumbers figure captions sequentially and applies the
// configured prefix and caption font size. Figures themselves are
// opaque; only their caption paragraphs are touched.
func applyFigures(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Figures
	if cfg == nil {
		return
	}

	number := 0
	for _, p := range doc.Paragraphs() {
		if !figureCaptionRe.MatchString(strings.TrimSpace(p.Text())) {
			continue
		}
		number++

		label, err := numbering.Format(number, cfg.NumberingFormat)
		if err != nil {
			res.warnf(StepFigures, "could not number figure %d: %v", number, err)
			continue
		}
		text := strings.TrimSpace(p.Text())
		p.SetText(figureCaptionRe.ReplaceAllString(text, cfg.Prefix+" "+label))
		for _, r := range p.Runs {
			r.Format.Size = cfg.CaptionFontSize
		}
	}
	res.Stats["figures_found"] = number
}
