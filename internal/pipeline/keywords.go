package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/spec"
)

var keywordsLineRe = regexp.MustCompile(`(?i)^(keywords?\s*[:.]?\s*)(.*)$`)

func findKeywordsParagraph(doc *docmodel.Document) *docmodel.Paragraph {
	for _, p := range doc.Paragraphs() {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(p.Text())), "keyword") {
			return p
		}
	}
	return nil
}

// applyKeywords normalizes the keywords line: heading text, separator
// between keywords, and character formatting. Some journals carry no
// keywords rule at all; a missing keywords line is equally fine and
// produces no warning.
func applyKeywords(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Keywords
	if cfg == nil {
		return
	}

	para := findKeywordsParagraph(doc)
	if para == nil {
		return
	}

	m := keywordsLineRe.FindStringSubmatch(strings.TrimSpace(para.Text()))
	if m == nil {
		return
	}
	body := m[2]

	// Re-join on the configured separator. The current separator is
	// detected by trying the common variants, longest first.
	for _, candidate := range []string{"; ", ", ", ";", ","} {
		if !strings.Contains(body, candidate) {
			continue
		}
		if candidate != cfg.Separator {
			parts := strings.Split(body, candidate)
			for i, kw := range parts {
				parts[i] = strings.TrimSpace(kw)
			}
			body = strings.Join(parts, cfg.Separator)
		}
		break
	}

	para.SetText(cfg.HeadingText + " " + body)
	for _, r := range para.Runs {
		r.Format.Size = cfg.FontSize
		r.Format.Italic = cfg.Italic
	}
	para.Format.Alignment = cfg.Alignment

	count := 0
	for _, kw := range strings.Split(body, cfg.Separator) {
		if strings.TrimSpace(kw) != "" {
			count++
		}
	}
	res.Stats["keywords_count"] = count

	if cfg.MaxKeywords > 0 && count > cfg.MaxKeywords {
		res.warnf(StepKeywords,
			"document contains %d keywords, which exceeds the maximum of %d",
			count, cfg.MaxKeywords)
	}
}
