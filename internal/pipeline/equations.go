package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/numbering"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// Standalone equation numbers: "(1)", "(2.1)", "Eq. (3)".
var equationNumberRe = regexp.MustCompile(`(?i)^\s*(?:(?:Eq\.|Equation)\s*)?\((\d+(?:\.\d+)?)\)\s*$`)

// applyEquations restyles equation paragraphs. Embedded math objects
// are found by structural tag, not by text; equations have no reliable
// plain-text signature. A paragraph that is nothing but an equation
// number also counts, and its number text is rewritten sequentially.
func applyEquations(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Equations
	if cfg == nil {
		return
	}

	found, number := 0, 0
	for _, p := range doc.Paragraphs() {
		if _, ok := analyze.HeadingLevel(p); ok {
			continue
		}
		isMath := p.HasMath
		isNumberText := !isMath && equationNumberRe.MatchString(p.Text())
		if !isMath && !isNumberText {
			continue
		}
		found++

		p.Format.Alignment = cfg.Alignment
		p.Format.SpaceBefore = cfg.SpacingBefore
		p.Format.SpaceAfter = cfg.SpacingAfter
		if cfg.FontSize > 0 {
			for _, r := range p.Runs {
				r.Format.Size = cfg.FontSize
			}
		}

		if cfg.Numbering != "sequential" {
			continue
		}
		number++
		if isNumberText {
			label, err := numbering.Format(number, cfg.NumberingFormat)
			if err != nil {
				res.warnf(StepEquations, "could not number equation %d: %v", number, err)
				continue
			}
			rendered := strings.ReplaceAll(cfg.Template, "{num}", label)
			if cfg.Prefix != "" {
				rendered = cfg.Prefix + " " + rendered
			}
			p.SetText(rendered)
		}
	}

	res.Stats["equations_found"] = found
	if found == 0 {
		res.warnf(StepEquations, "no equations found in document")
	}
}
