package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/numbering"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// "Appendix A: Title", "APPENDIX 2. Title", or bare "Appendix". The
// label is a single letter or a number; a longer word is already the
// title.
var appendixTitleRe = regexp.MustCompile(`(?i)^appendix\s*(?:\b[A-Z]\b|\d+)?\s*[:.]?\s*(.*)$`)

// applyAppendix relabels appendix sections sequentially. Appendices
// conventionally follow the reference section, so heading paragraphs
// before it are never candidates.
func applyAppendix(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Appendix
	if cfg == nil {
		return
	}

	refStart := -1
	if sec, ok := analyze.FindReferenceSection(doc); ok {
		refStart = sec.Start
	}

	matches := func(stripped string) bool {
		if cfg.CaseSensitive {
			return strings.HasPrefix(stripped, cfg.HeadingPrefix)
		}
		return strings.HasPrefix(strings.ToLower(stripped), strings.ToLower(cfg.HeadingPrefix))
	}

	var appendices []*docmodel.Paragraph
	for i, p := range doc.Paragraphs() {
		if refStart >= 0 && i <= refStart {
			continue
		}
		if _, ok := analyze.HeadingLevel(p); !ok {
			continue
		}
		if matches(analyze.StripHeadingNumber(p.Text())) {
			appendices = append(appendices, p)
		}
	}

	res.Stats["appendices_found"] = len(appendices)

	for i, p := range appendices {
		label, err := numbering.Format(i+1, cfg.Format)
		if err != nil {
			res.warnf(StepAppendix, "could not label appendix %d: %v", i+1, err)
			continue
		}

		var title string
		if m := appendixTitleRe.FindStringSubmatch(strings.TrimSpace(p.Text())); m != nil {
			title = strings.TrimSpace(m[1])
		}

		var newText string
		if title != "" && strings.Contains(cfg.Template, "{title}") {
			newText = strings.NewReplacer(
				"{prefix}", cfg.HeadingPrefix, "{label}", label, "{title}", title,
			).Replace(cfg.Template)
		} else {
			tmpl := strings.ReplaceAll(cfg.Template, ": {title}", "")
			tmpl = strings.ReplaceAll(tmpl, " {title}", "")
			newText = strings.NewReplacer(
				"{prefix}", cfg.HeadingPrefix, "{label}", label,
			).Replace(tmpl)
			if title != "" {
				newText += ": " + title
			}
		}
		p.SetText(newText)
	}
}
