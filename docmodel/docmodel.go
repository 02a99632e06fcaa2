// Package docmodel holds the mutable in-memory representation of a
// manuscript: an ordered body of paragraphs and tables, where each
// paragraph is an ordered sequence of formatted runs.
//
// Every pipeline transformer mutates this tree in place through the
// accessors below; the tree is never replaced wholesale during a run.
// Measurements use the units the underlying format uses natively at its
// API surface: points for font sizes and spacing, inches for page
// dimensions, margins, and indents.
package docmodel

import "strings"

// Alignment values for paragraphs.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Page size dimensions in inches.
const (
	LetterWidth  = 8.5
	LetterHeight = 11.0
	A4Width      = 8.27
	A4Height     = 11.69
)

// PageSetup holds page dimensions and margins in inches.
type PageSetup struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// Block is one top-level body element: a *Paragraph or a *Table.
type Block interface {
	isBlock()
}

// Document is an ordered sequence of body blocks plus page setup.
type Document struct {
	Body []Block
	Page PageSetup
}

// RunFormat is character-level formatting for one run.
// Zero values mean "inherit from the paragraph style".
type RunFormat struct {
	Font        string
	Size        float64 // points, 0 = inherit
	Bold        bool
	Italic      bool
	Underline   bool
	Superscript bool
	Color       string // hex RRGGBB without '#', "" = inherit
}

// Run is a span of text sharing one character format. A run carrying a
// footnote reference has FootnoteID set and usually no text.
type Run struct {
	Text       string
	FootnoteID string
	Format     RunFormat
}

// ParagraphFormat is paragraph-level formatting.
type ParagraphFormat struct {
	Alignment       string  // "", "left", "center", "right"
	SpaceBefore     float64 // points, <0 = unset
	SpaceAfter      float64 // points, <0 = unset
	LineSpacing     float64 // multiple of single spacing, 0 = unset
	LeftIndent      float64 // inches
	FirstLineIndent float64 // inches, negative = hanging indent
}

// Paragraph is an ordered sequence of runs with a style name.
// Style follows the "Heading 1".."Heading 9" / "Title" / "Normal"
// naming convention; heading levels are inferred from it.
type Paragraph struct {
	Style   string
	Runs    []*Run
	Format  ParagraphFormat
	HasMath bool   // paragraph contains an embedded math object
	MathXML string // raw math markup preserved for round-tripping
}

func (p *Paragraph) isBlock() {}

// Text returns the concatenated text of every run.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// SetText replaces the paragraph's text with s. The first run keeps its
// character formatting and receives all of s; the remaining runs are
// emptied but kept, so footnote references survive.
func (p *Paragraph) SetText(s string) {
	if len(p.Runs) == 0 {
		p.Runs = append(p.Runs, &Run{Text: s})
		return
	}
	p.Runs[0].Text = s
	for _, r := range p.Runs[1:] {
		r.Text = ""
	}
}

// PrependText inserts s before the paragraph's existing text, inside
// the first run so the prefix shares its formatting.
func (p *Paragraph) PrependText(s string) {
	if len(p.Runs) == 0 {
		p.Runs = append(p.Runs, &Run{Text: s})
		return
	}
	p.Runs[0].Text = s + p.Runs[0].Text
}

// ReplaceSpan replaces the first occurrence of old in the paragraph's
// concatenated text with new, splitting runs as needed so that the
// replacement occupies its own run. The replacement run inherits the
// character formatting of the first run the span overlaps; superscript
// forces the replacement run's superscript flag.
//
// Returns false when old is empty or not present; the paragraph is then
// left untouched.
func (p *Paragraph) ReplaceSpan(old, new string, superscript bool) bool {
	if old == "" {
		return false
	}
	full := p.Text()
	start := strings.Index(full, old)
	if start < 0 {
		return false
	}
	end := start + len(old)

	var out []*Run
	pos := 0
	inserted := false
	for _, r := range p.Runs {
		rs, re := pos, pos+len(r.Text)
		pos = re
		if re <= start || rs >= end {
			out = append(out, r)
			continue
		}
		if !inserted {
			if rs < start {
				before := &Run{Text: r.Text[:start-rs], Format: r.Format, FootnoteID: r.FootnoteID}
				out = append(out, before)
			}
			repl := &Run{Text: new, Format: r.Format}
			repl.Format.Superscript = superscript
			out = append(out, repl)
			inserted = true
		}
		if re > end {
			after := &Run{Text: r.Text[end-rs:], Format: r.Format}
			out = append(out, after)
		} else if r.FootnoteID != "" && rs >= start {
			// The span swallowed a run carrying a footnote reference;
			// keep the reference in an empty run.
			out = append(out, &Run{FootnoteID: r.FootnoteID, Format: r.Format})
		}
	}
	if !inserted {
		return false
	}
	p.Runs = out
	return true
}

// Border styles for tables.
const (
	BordersAll       = "all"
	BordersTopBottom = "top_bottom"
	BordersNone      = "none"
)

// Cell is one table cell holding its own paragraphs.
type Cell struct {
	Paragraphs []*Paragraph
}

// Table is a grid of cells with a border style.
type Table struct {
	Rows    [][]*Cell
	Borders string // "", "all", "top_bottom", "none"
}

func (t *Table) isBlock() {}

// Paragraphs returns the document's top-level paragraphs in body order.
// Table cell paragraphs are not included, matching how the structural
// analyzer and transformers inspect the document.
func (d *Document) Paragraphs() []*Paragraph {
	out := make([]*Paragraph, 0, len(d.Body))
	for _, b := range d.Body {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the document's tables in body order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.Body {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// BlockIndex returns the body position of b, or -1.
func (d *Document) BlockIndex(b Block) int {
	for i, x := range d.Body {
		if x == b {
			return i
		}
	}
	return -1
}

// MoveBlock relocates the block at from so that it ends up at index to
// in the resulting body. Out-of-range indices leave the body untouched
// and return false.
func (d *Document) MoveBlock(from, to int) bool {
	if from < 0 || from >= len(d.Body) || to < 0 || to >= len(d.Body) {
		return false
	}
	if from == to {
		return true
	}
	b := d.Body[from]
	d.Body = append(d.Body[:from], d.Body[from+1:]...)
	d.Body = append(d.Body[:to], append([]Block{b}, d.Body[to:]...)...)
	return true
}
