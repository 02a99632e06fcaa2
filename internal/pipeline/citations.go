package pipeline

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/analyze"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// Citation grammars. A marker is recognized only when it matches one of
// these shapes exactly; anything ambiguous is left alone and warned
// about, never guessed at.
var (
	// (Smith, 2024), (Smith & Jones, 2024), (Smith et al., 2024b)
	authorYearRe = regexp.MustCompile(
		`\(([A-Z][a-z]+(?:\s(?:&|and)\s[A-Z][a-z]+)*(?:\set\sal\.)?),?\s*(\d{4}[a-z]?)\)`)

	// Multi-citation in one parenthesized group: (Smith, 2020; Jones, 2019)
	multiAuthorYearRe = regexp.MustCompile(
		`\(([A-Z][a-z]+(?:\s(?:&|and)\s[A-Z][a-z]+)*(?:\set\sal\.)?),?\s*\d{4}[a-z]?` +
			`(?:\s*;\s*[A-Z][a-z]+(?:\s(?:&|and)\s[A-Z][a-z]+)*(?:\set\sal\.?)?,?\s*\d{4}[a-z]?)+\)`)

	// One author-year pair inside a multi-citation group.
	individualAuthorYearRe = regexp.MustCompile(
		`([A-Z][a-z]+(?:\s(?:&|and)\s[A-Z][a-z]+)*(?:\set\sal\.)?),?\s*(\d{4}[a-z]?)`)

	// [1], [1, 2], [1-3], [1; 2; 3]
	numericBracketRe = regexp.MustCompile(`\[(\d+(?:\s*[,;\-]\s*\d+)*)\]`)

	// Bare digit list carried by a superscript run.
	superscriptNumRe = regexp.MustCompile(`^\d+(?:\s*[,;\-]\s*\d+)*$`)

	numericPartRe  = regexp.MustCompile(`[,;]\s*`)
	numericRangeRe = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)
)

type citeKey struct {
	author string
	year   string
}

// marker is one recognized in-text citation occurrence.
type marker struct {
	para    *docmodel.Paragraph
	grammar string
	text    string          // the literal matched text
	run     *docmodel.Run   // set for superscript markers
	keys    []citeKey       // author-year pairs, one per citation in the group
	nums    []int           // numeric ids
}

// weight is the number of citations the marker stands for: a
// multi-citation group like (Smith, 2020; Jones, 2019) counts each pair.
func (m *marker) weight() int {
	if len(m.keys) > 0 {
		return len(m.keys)
	}
	return 1
}

func parseNumericList(s string) []int {
	var nums []int
	for _, part := range numericPartRe.Split(s, -1) {
		part = strings.TrimSpace(part)
		if rm := numericRangeRe.FindStringSubmatch(part); rm != nil {
			lo, _ := strconv.Atoi(rm[1])
			hi, _ := strconv.Atoi(rm[2])
			for n := lo; n <= hi; n++ {
				nums = append(nums, n)
			}
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			nums = append(nums, n)
		}
	}
	return nums
}

// citationScope returns the body paragraphs eligible for citation
// scanning: headings, the title paragraph, and the reference section
// are excluded.
func citationScope(doc *docmodel.Document) []*docmodel.Paragraph {
	refStart, refEnd := -1, -1
	if sec, ok := analyze.FindReferenceSection(doc); ok {
		refStart, refEnd = sec.Start, sec.End
	}
	var out []*docmodel.Paragraph
	for i, p := range doc.Paragraphs() {
		if refStart >= 0 && i >= refStart && i < refEnd {
			continue
		}
		if p.Style == "Title" {
			continue
		}
		if _, ok := analyze.HeadingLevel(p); ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

// detectCitationGrammar scans the first 20 body paragraphs and returns
// the dominant source grammar. Ties prefer the target grammar, so a
// document already in the journal's style is never misdetected.
func detectCitationGrammar(body []*docmodel.Paragraph, target string) string {
	counts := map[string]int{}
	limit := len(body)
	if limit > 20 {
		limit = 20
	}
	for _, p := range body[:limit] {
		text := p.Text()
		if authorYearRe.MatchString(text) || multiAuthorYearRe.MatchString(text) {
			counts[spec.CitationAuthorYear]++
		}
		if numericBracketRe.MatchString(text) {
			counts[spec.CitationNumericBracket]++
		}
		for _, r := range p.Runs {
			if r.Format.Superscript && superscriptNumRe.MatchString(strings.TrimSpace(r.Text)) {
				counts[spec.CitationSuperscript]++
				break
			}
		}
	}

	order := []string{target, spec.CitationAuthorYear, spec.CitationNumericBracket, spec.CitationSuperscript}
	best := target
	bestCount := -1
	for _, g := range order {
		if counts[g] > bestCount {
			best, bestCount = g, counts[g]
		}
	}
	return best
}

// extractMarkers finds every recognized citation marker of any grammar
// across the body paragraphs.
func extractMarkers(body []*docmodel.Paragraph) []*marker {
	var markers []*marker
	for _, p := range body {
		text := p.Text()

		type span struct{ start, end int }
		var multiSpans []span
		for _, loc := range multiAuthorYearRe.FindAllStringIndex(text, -1) {
			multiSpans = append(multiSpans, span{loc[0], loc[1]})
			full := text[loc[0]:loc[1]]
			inner := full[1 : len(full)-1]
			var keys []citeKey
			for _, im := range individualAuthorYearRe.FindAllStringSubmatch(inner, -1) {
				keys = append(keys, citeKey{author: im[1], year: im[2]})
			}
			markers = append(markers, &marker{
				para: p, grammar: spec.CitationAuthorYear, text: full, keys: keys,
			})
		}
		for _, loc := range authorYearRe.FindAllSubmatchIndex([]byte(text), -1) {
			inMulti := false
			for _, ms := range multiSpans {
				if ms.start <= loc[0] && loc[1] <= ms.end {
					inMulti = true
					break
				}
			}
			if inMulti {
				continue
			}
			markers = append(markers, &marker{
				para:    p,
				grammar: spec.CitationAuthorYear,
				text:    text[loc[0]:loc[1]],
				keys:    []citeKey{{author: text[loc[2]:loc[3]], year: text[loc[4]:loc[5]]}},
			})
		}
		for _, sm := range numericBracketRe.FindAllStringSubmatch(text, -1) {
			markers = append(markers, &marker{
				para: p, grammar: spec.CitationNumericBracket, text: sm[0],
				nums: parseNumericList(sm[1]),
			})
		}
		for _, r := range p.Runs {
			trimmed := strings.TrimSpace(r.Text)
			if r.Format.Superscript && superscriptNumRe.MatchString(trimmed) {
				markers = append(markers, &marker{
					para: p, grammar: spec.CitationSuperscript, text: r.Text, run: r,
					nums: parseNumericList(trimmed),
				})
			}
		}
	}
	return markers
}

// buildCitationNumbers assigns a sequential number to each distinct
// author-year pair, in order of first appearance or alphabetically.
func buildCitationNumbers(markers []*marker, source, sortMode string) map[citeKey]int {
	numbers := make(map[citeKey]int)
	next := 1
	for _, m := range markers {
		if m.grammar != source {
			continue
		}
		for _, k := range m.keys {
			if _, ok := numbers[k]; !ok {
				numbers[k] = next
				next++
			}
		}
	}
	if sortMode == "alphabetical" {
		keys := make([]citeKey, 0, len(numbers))
		for k := range numbers {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			ai, aj := strings.ToLower(keys[i].author), strings.ToLower(keys[j].author)
			if ai != aj {
				return ai < aj
			}
			return keys[i].year < keys[j].year
		})
		for i, k := range keys {
			numbers[k] = i + 1
		}
	}
	return numbers
}

// renderCitation expands a citation template. Unknown substitution
// points are left as literal text.
func renderCitation(template, num, author, year string) string {
	return strings.NewReplacer(
		"{num}", num,
		"{author}", author,
		"{year}", year,
	).Replace(template)
}

// applyCitations detects the document's in-text citation grammar and
// rewrites every recognized marker into the journal's configured
// template. Markers that do not match the dominant grammar are left
// verbatim with a warning, so citations_found never undercounts what
// citations_reformatted claims.
func applyCitations(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.CitationStyle
	if cfg == nil {
		return
	}

	body := citationScope(doc)
	source := detectCitationGrammar(body, cfg.Type)
	markers := extractMarkers(body)

	found := 0
	for _, m := range markers {
		found += m.weight()
	}
	res.Stats["citations_found"] = found
	if found == 0 {
		res.warnf(StepCitations, "no citations detected in the document")
		return
	}

	// Numeric ids carry no author metadata, so converting them to
	// author-year form is guesswork. Refuse rather than fabricate.
	if cfg.Type == spec.CitationAuthorYear && source != spec.CitationAuthorYear {
		res.warnf(StepCitations,
			"cannot reliably convert %s citations to author-year format without reference metadata; citations left unchanged",
			source)
		return
	}

	numbers := buildCitationNumbers(markers, source, cfg.Sort)
	superscript := cfg.Type == spec.CitationSuperscript

	numSep := ", "
	if superscript {
		numSep = ","
	}

	reformatted := 0
	// Per paragraph, rewrite markers right to left so earlier
	// replacements cannot shift the text later ones still match on.
	byPara := make(map[*docmodel.Paragraph][]*marker)
	var paraOrder []*docmodel.Paragraph
	for _, m := range markers {
		if _, ok := byPara[m.para]; !ok {
			paraOrder = append(paraOrder, m.para)
		}
		byPara[m.para] = append(byPara[m.para], m)
	}

	for _, p := range paraOrder {
		ms := byPara[p]
		text := p.Text()
		sort.SliceStable(ms, func(i, k int) bool {
			return strings.LastIndex(text, ms[i].text) > strings.LastIndex(text, ms[k].text)
		})

		for _, m := range ms {
			if m.grammar != source {
				res.warnf(StepCitations,
					"citation %q does not match the document's %s citation style; left unchanged",
					m.text, source)
				continue
			}

			var rendered string
			switch {
			case cfg.Type == spec.CitationAuthorYear:
				if len(m.keys) != 1 {
					// A multi-citation group already in author-year form
					// needs no rewrite to stay in author-year form.
					continue
				}
				rendered = renderCitation(cfg.Format, "", m.keys[0].author, m.keys[0].year)
			default:
				var parts []string
				if len(m.keys) > 0 {
					for _, k := range m.keys {
						parts = append(parts, strconv.Itoa(numbers[k]))
					}
				} else {
					for _, n := range m.nums {
						parts = append(parts, strconv.Itoa(n))
					}
				}
				rendered = renderCitation(cfg.Format, strings.Join(parts, numSep), "", "")
			}

			if m.run != nil {
				// Superscript markers live in their own run already.
				m.run.Text = rendered
				m.run.Format.Superscript = superscript
				reformatted += m.weight()
				continue
			}
			if m.para.ReplaceSpan(m.text, rendered, superscript) {
				reformatted += m.weight()
			} else {
				res.warnf(StepCitations, "could not replace citation %q at run level; left unchanged", m.text)
			}
		}
	}
	res.Stats["citations_reformatted"] = reformatted
}
