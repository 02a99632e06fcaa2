package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/numbering"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// "Table 1", "TABLE IV", "table 12".
var tableCaptionRe = regexp.MustCompile(`(?i)^table\s+(\d+|[IVXLCDM]+)`)

// captionFor locates the caption paragraph adjacent to the table at
// body index ti. Returns the caption's body index and its side, or
// (-1, "") when neither neighbor is a caption.
func captionFor(doc *docmodel.Document, ti int, captionRe *regexp.Regexp) (int, string) {
	if ti > 0 {
		if p, ok := doc.Body[ti-1].(*docmodel.Paragraph); ok &&
			captionRe.MatchString(strings.TrimSpace(p.Text())) {
			return ti - 1, "above"
		}
	}
	if ti+1 < len(doc.Body) {
		if p, ok := doc.Body[ti+1].(*docmodel.Paragraph); ok &&
			captionRe.MatchString(strings.TrimSpace(p.Text())) {
			return ti + 1, "below"
		}
	}
	return -1, ""
}

// applyTables sets border styles, renumbers captions, and moves a
// caption to the journal's side of the table when it sits on the wrong
// one. The move is a best-effort single-block relocation.
func applyTables(doc *docmodel.Document, j *spec.Journal, res *Result) {
	cfg := j.Tables
	if cfg == nil {
		return
	}

	tables := doc.Tables()
	res.Stats["tables_found"] = len(tables)

	captions := 0
	for n, t := range tables {
		number := n + 1
		t.Borders = cfg.BorderStyle

		ti := doc.BlockIndex(t)
		ci, side := captionFor(doc, ti, tableCaptionRe)
		if ci < 0 {
			res.warnf(StepTables, "no caption found for table %d", number)
			continue
		}
		captions++

		caption := doc.Body[ci].(*docmodel.Paragraph)
		label, err := numbering.Format(number, cfg.NumberingFormat)
		if err != nil {
			res.warnf(StepTables, "could not number table %d: %v", number, err)
			continue
		}
		// Match the trimmed form used for detection so padded captions
		// still renumber.
		text := strings.TrimSpace(caption.Text())
		caption.SetText(tableCaptionRe.ReplaceAllString(text, cfg.Prefix+" "+label))

		if side != cfg.CaptionPosition {
			// Sliding the caption across the table lands it at the
			// table's own index whichever direction it moves.
			if !doc.MoveBlock(ci, ti) {
				res.warnf(StepTables,
					"table %d caption is %s the table but should be %s; could not reposition it",
					number, side, cfg.CaptionPosition)
			}
		}
	}
	res.Stats["tables_captions"] = captions
}
