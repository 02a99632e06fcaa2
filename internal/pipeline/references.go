package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/spec"
)

var (
	refDOIRe       = regexp.MustCompile(`(?i)(?:doi:\s*|https?://doi\.org/)(\S+)`)
	refYearParenRe = regexp.MustCompile(`\((\d{4}[a-z]?)\)`)
	refYearPlainRe = regexp.MustCompile(`(\d{4}[a-z]?)\.`)
	refVolIssueRe  = regexp.MustCompile(`(\d+)\s*\((\d+)\)\s*[,:]\s*([\d\x{2013}-]+)`)
	refVolPagesRe  = regexp.MustCompile(`(\d+)\s*[,:]\s*([\d\x{2013}-]+)`)
	refNumPrefixRe = regexp.MustCompile(`^\s*\[?\d+[\].)]\s*`)

	// Sentence boundary after a lowercase letter or closing punctuation,
	// so author initials like "J." do not split the title.
	refTitleSplitRe = regexp.MustCompile(`([a-z?!])\.\s+`)

	// Cleanup of artifacts left by empty template fields.
	refEmptyParens   = regexp.MustCompile(`\(\)`)
	refDoubleComma   = regexp.MustCompile(`,\s*,`)
	refDoublePeriod  = regexp.MustCompile(`\.\s*\.`)
	refCommaPeriod   = regexp.MustCompile(`,\s*\.`)
	refMultiSpace    = regexp.MustCompile(`\s{2,}`)
)

// refFields is the structured form of one bibliography entry. Only the
// fields a grammar rule managed to extract are present.
type refFields map[string]string

// refRule is one reference grammar: a name for diagnostics and a parser
// returning nil on no-match. Rules are tried in priority order and the
// first match governs.
type refRule struct {
	name  string
	parse func(text string) refFields
}

func referenceRules() []refRule {
	return []refRule{
		{"author-parenthesized-year", func(text string) refFields {
			return parseReferenceEntry(text, refYearParenRe)
		}},
		{"author-plain-year", func(text string) refFields {
			return parseReferenceEntry(text, refYearPlainRe)
		}},
	}
}

// parseReferenceEntry extracts authors, year, title, venue, volume,
// issue, pages, and DOI from one entry using yearRe to anchor the
// author/title split. Entries with fewer than three identified fields
// are too ambiguous to rewrite and yield nil.
func parseReferenceEntry(text string, yearRe *regexp.Regexp) refFields {
	fields := refFields{}
	remaining := strings.TrimSpace(refNumPrefixRe.ReplaceAllString(strings.TrimSpace(text), ""))

	if m := refDOIRe.FindStringSubmatchIndex(remaining); m != nil {
		fields["doi"] = strings.TrimRight(remaining[m[2]:m[3]], ".")
		remaining = strings.TrimRight(strings.TrimSpace(remaining[:m[0]]+remaining[m[1]:]), ".")
	}

	var beforeYear, afterYear string
	if m := yearRe.FindStringSubmatchIndex(remaining); m != nil {
		fields["year"] = remaining[m[2]:m[3]]
		beforeYear = strings.TrimRight(strings.TrimSpace(remaining[:m[0]]), ".,")
		afterYear = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(remaining[m[1]:]), ".,"))
	} else {
		beforeYear = remaining
	}

	if beforeYear != "" {
		fields["authors"] = strings.TrimSpace(beforeYear)
	}

	preVol := afterYear
	if m := refVolIssueRe.FindStringSubmatchIndex(afterYear); m != nil {
		fields["volume"] = afterYear[m[2]:m[3]]
		fields["issue"] = afterYear[m[4]:m[5]]
		fields["pages"] = afterYear[m[6]:m[7]]
		preVol = strings.TrimRight(strings.TrimSpace(afterYear[:m[0]]), ",. ")
	} else if m := refVolPagesRe.FindStringSubmatchIndex(afterYear); m != nil {
		fields["volume"] = afterYear[m[2]:m[3]]
		fields["pages"] = afterYear[m[4]:m[5]]
		preVol = strings.TrimRight(strings.TrimSpace(afterYear[:m[0]]), ",. ")
	}

	if preVol != "" {
		if loc := refTitleSplitRe.FindStringIndex(preVol); loc != nil {
			fields["title"] = strings.TrimRight(strings.TrimSpace(preVol[:loc[0]+1]), ".")
			fields["journal"] = strings.TrimRight(strings.TrimSpace(preVol[loc[1]:]), ",. ")
		} else if i := strings.LastIndex(preVol, ","); i >= 0 && len(strings.TrimSpace(preVol[i+1:])) > 2 {
			fields["title"] = strings.TrimRight(strings.TrimSpace(preVol[:i]), ".")
			fields["journal"] = strings.TrimRight(strings.TrimSpace(preVol[i+1:]), ",. ")
		} else {
			fields["title"] = strings.TrimRight(strings.TrimSpace(preVol), ".")
		}
	}

	if len(fields) < 3 {
		return nil
	}
	return fields
}

// renderReference expands the journal's reference template with the
// parsed fields, then cleans up the punctuation artifacts empty fields
// leave behind. Unknown substitution points stay literal.
func renderReference(fields refFields, template string, number int) string {
	out := strings.NewReplacer(
		"{num}", strconv.Itoa(number),
		"{authors}", fields["authors"],
		"{year}", fields["year"],
		"{title}", fields["title"],
		"{journal}", fields["journal"],
		"{volume}", fields["volume"],
		"{issue}", fields["issue"],
		"{pages}", fields["pages"],
		"{doi}", fields["doi"],
	).Replace(template)

	out = refEmptyParens.ReplaceAllString(out, "")
	out = refDoubleComma.ReplaceAllString(out, ",")
	out = refDoublePeriod.ReplaceAllString(out, ".")
	out = refCommaPeriod.ReplaceAllString(out, ".")
	out = refMultiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(out), ","))
}

func applyReferenceLayout(p *docmodel.Paragraph, cfg *spec.ReferenceStyle) {
	p.Format.LeftIndent = cfg.HangingIndent
	p.Format.FirstLineIndent = -cfg.HangingIndent
	for _, r := range p.Runs {
		r.Format.Size = cfg.FontSize
	}
}

// applyReferences parses and re-renders the bibliography. A parse
// failure on one entry leaves that entry verbatim (hanging indent and
// font size still applied) and never stops the remaining entries.
func applyReferences(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.ReferenceStyle
	if cfg == nil {
		return
	}

	sec, ok := analyze.FindReferenceSection(doc)
	if !ok {
		res.warnf(StepReferences,
			"could not locate a references or bibliography section heading; no reference reformatting applied")
		return
	}

	rules := referenceRules()
	paragraphs := doc.Paragraphs()
	found, reformatted, number := 0, 0, 1

	for i := sec.Start + 1; i < sec.End; i++ {
		p := paragraphs[i]
		text := strings.TrimSpace(p.Text())
		if text == "" {
			continue
		}
		found++

		var fields refFields
		for _, rule := range rules {
			if fields = rule.parse(text); fields != nil {
				break
			}
		}
		if fields == nil {
			excerpt := text
			if r := []rune(excerpt); len(r) > 80 {
				excerpt = string(r[:80]) + "..."
			}
			res.warnf(StepReferences,
				"could not parse reference (entry #%d): %q; left unchanged", found, excerpt)
			applyReferenceLayout(p, cfg)
			number++
			continue
		}

		newText := renderReference(fields, cfg.Format, number)
		if cfg.Numbering == "numbered" && !strings.Contains(cfg.Format, "{num}") {
			newText = strconv.Itoa(number) + ". " + newText
		}
		p.SetText(newText)
		applyReferenceLayout(p, cfg)

		reformatted++
		number++
	}

	res.Stats["references_found"] = found
	res.Stats["references_reformatted"] = reformatted
}
