// Package spec defines the per-journal rule record consumed by the
// pipeline transformers, and the registry that loads those records from
// YAML files.
//
// Every sub-record is a pointer: nil means "this journal has no rule
// here" and the owning transformer must branch on that explicitly
// rather than formatting with zero values. Missing fields inside a
// present sub-record receive documented defaults at load time, so
// transformers read resolved values only.
package spec

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for specification records.
var (
	ErrJournalNotFound = errors.New("journal not found")
	ErrInvalidSpec     = errors.New("invalid journal specification")
)

// Citation grammar tokens.
const (
	CitationNumericBracket = "numeric_bracket"
	CitationAuthorYear     = "author_year"
	CitationSuperscript    = "superscript"
)

// Journal is one publisher's immutable rule record. Read-only after
// load; safe to share across concurrent pipeline runs.
type Journal struct {
	ID          string `yaml:"-"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	PageLayout     *PageLayout     `yaml:"page_layout"`
	Fonts          *Fonts          `yaml:"fonts"`
	Footnotes      *Footnotes      `yaml:"footnotes"`
	TitlePage      *TitlePage      `yaml:"title_page"`
	Abstract       *Abstract       `yaml:"abstract"`
	Keywords       *Keywords       `yaml:"keywords"`
	SectionOrder   []string        `yaml:"section_order"`
	CitationStyle  *CitationStyle  `yaml:"citation_style"`
	ReferenceStyle *ReferenceStyle `yaml:"reference_style"`
	Headings       *Headings       `yaml:"headings"`
	Appendix       *Appendix       `yaml:"appendix"`
	Tables         *Tables         `yaml:"tables"`
	Figures        *Figures        `yaml:"figures"`
	Equations      *Equations      `yaml:"equations"`
}

// Margins in inches.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// PageLayout rules: page size, margins, line spacing, column count.
type PageLayout struct {
	PageSize    string   `yaml:"page_size"`    // "letter" | "a4"
	Margins     *Margins `yaml:"margins"`      // nil = 1.0in all sides
	LineSpacing float64  `yaml:"line_spacing"` // 1.0, 1.5, 2.0, ...
	Columns     int      `yaml:"columns"`      // advisory only; >1 warns
}

// FontSpec is one font family/size pair.
type FontSpec struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"` // points
}

// Fonts rules for body text.
type Fonts struct {
	Body *FontSpec `yaml:"body"`
}

// Footnotes rules. All advisory: the document model cannot renumber or
// restyle real footnotes, so the transformer detects and warns only.
type Footnotes struct {
	NumberingFormat    string  `yaml:"numbering_format"` // "arabic" | "roman" | "symbols"
	RestartEachSection bool    `yaml:"restart_each_section"`
	FontSize           float64 `yaml:"font_size"`
	MaxPerPage         int     `yaml:"max_per_page"` // 0 = no limit
	Position           string  `yaml:"position"`
	SeparatorLine      bool    `yaml:"separator_line"`
}

// TitleStyle rules for the manuscript title paragraph.
type TitleStyle struct {
	FontSize  float64 `yaml:"font_size"`
	Bold      *bool   `yaml:"bold"` // nil = true
	Alignment string  `yaml:"alignment"`
	AllCaps   bool    `yaml:"all_caps"`
}

// TitlePage rules.
type TitlePage struct {
	Title *TitleStyle `yaml:"title"`
}

// Abstract rules.
type Abstract struct {
	HeadingText         string  `yaml:"heading_text"` // e.g. "Abstract" or "ABSTRACT"
	FontSize            float64 `yaml:"font_size"`
	MaxWords            int     `yaml:"max_words"` // 0 = unlimited
	Alignment           string  `yaml:"alignment"`
	BoldHeading         *bool   `yaml:"bold_heading"` // nil = true
	IndentBody          float64 `yaml:"indent_body"`  // inches
	SpacingAfterHeading float64 `yaml:"spacing_after_heading"`
}

// Keywords rules.
type Keywords struct {
	HeadingText string  `yaml:"heading_text"` // e.g. "Keywords:"
	Separator   string  `yaml:"separator"`    // e.g. ", " or "; "
	Italic      bool    `yaml:"italic"`
	FontSize    float64 `yaml:"font_size"`
	Alignment   string  `yaml:"alignment"`
	MaxKeywords int     `yaml:"max_keywords"` // 0 = unlimited
}

// CitationStyle rules for in-text citation markers.
type CitationStyle struct {
	Type   string `yaml:"type"`   // "numeric_bracket" | "author_year" | "superscript"
	Format string `yaml:"format"` // template, e.g. "[{num}]"
	Sort   string `yaml:"sort"`   // "order_of_appearance" | "alphabetical"
}

// ReferenceStyle rules for the bibliography.
type ReferenceStyle struct {
	Numbering     string  `yaml:"numbering"` // "numbered" | "unnumbered"
	Format        string  `yaml:"format"`    // entry template
	HangingIndent float64 `yaml:"hanging_indent"`
	FontSize      float64 `yaml:"font_size"`
}

// HeadingStyle rules for one heading level.
type HeadingStyle struct {
	Family        string  `yaml:"family"`
	Size          float64 `yaml:"size"`
	Bold          *bool   `yaml:"bold"` // nil = true
	Italic        bool    `yaml:"italic"`
	Color         string  `yaml:"color"` // "#RRGGBB"
	SpacingBefore float64 `yaml:"spacing_before"`
	SpacingAfter  float64 `yaml:"spacing_after"`
	Alignment     string  `yaml:"alignment"`
}

// Headings rules: numbering plus one style per level.
type Headings struct {
	Numbered bool          `yaml:"numbered"`
	Level1   *HeadingStyle `yaml:"level_1"`
	Level2   *HeadingStyle `yaml:"level_2"`
	Level3   *HeadingStyle `yaml:"level_3"`
}

// Level returns the style for heading level n, or nil.
func (h *Headings) Level(n int) *HeadingStyle {
	switch n {
	case 1:
		return h.Level1
	case 2:
		return h.Level2
	case 3:
		return h.Level3
	}
	return nil
}

// Appendix rules.
type Appendix struct {
	Format        string `yaml:"format"`         // "letter" | "roman" | "arabic"
	HeadingPrefix string `yaml:"heading_prefix"` // e.g. "Appendix" or "APPENDIX"
	Template      string `yaml:"template"`       // e.g. "{prefix} {label}"
	CaseSensitive bool   `yaml:"case_sensitive"` // prefix match case sensitivity
}

// Tables rules.
type Tables struct {
	CaptionPosition string `yaml:"caption_position"` // "above" | "below"
	Prefix          string `yaml:"prefix"`           // e.g. "Table" or "TABLE"
	NumberingFormat string `yaml:"numbering_format"` // "arabic" | "roman" | "letter"
	BorderStyle     string `yaml:"border_style"`     // "all" | "top_bottom" | "none"
}

// Figures rules.
type Figures struct {
	CaptionPosition string  `yaml:"caption_position"`
	Prefix          string  `yaml:"prefix"`
	NumberingFormat string  `yaml:"numbering_format"`
	CaptionFontSize float64 `yaml:"caption_font_size"`
}

// Equations rules.
type Equations struct {
	Numbering       string  `yaml:"numbering"`        // "sequential" | "none"
	NumberingFormat string  `yaml:"numbering_format"` // "arabic" | "roman"
	Prefix          string  `yaml:"prefix"`           // "", "Eq.", "Equation"
	Template        string  `yaml:"template"`         // e.g. "({num})"
	Alignment       string  `yaml:"alignment"`
	SpacingBefore   float64 `yaml:"spacing_before"`
	SpacingAfter    float64 `yaml:"spacing_after"`
	FontSize        float64 `yaml:"font_size"` // 0 = leave as-is
}

// applyDefaults fills unset fields of present sub-records with their
// documented defaults. Absent sub-records stay nil.
func (j *Journal) applyDefaults() {
	if l := j.PageLayout; l != nil {
		if l.PageSize == "" {
			l.PageSize = "letter"
		}
		if l.Margins == nil {
			l.Margins = &Margins{Top: 1.0, Bottom: 1.0, Left: 1.0, Right: 1.0}
		}
		if l.LineSpacing == 0 {
			l.LineSpacing = 1.0
		}
		if l.Columns == 0 {
			l.Columns = 1
		}
	}
	if f := j.Fonts; f != nil && f.Body != nil {
		if f.Body.Family == "" {
			f.Body.Family = "Times New Roman"
		}
		if f.Body.Size == 0 {
			f.Body.Size = 12.0
		}
	}
	if fn := j.Footnotes; fn != nil {
		if fn.NumberingFormat == "" {
			fn.NumberingFormat = "arabic"
		}
	}
	if tp := j.TitlePage; tp != nil && tp.Title != nil {
		t := tp.Title
		if t.FontSize == 0 {
			t.FontSize = 14.0
		}
		if t.Alignment == "" {
			t.Alignment = "center"
		}
	}
	if a := j.Abstract; a != nil {
		if a.HeadingText == "" {
			a.HeadingText = "Abstract"
		}
		if a.FontSize == 0 {
			a.FontSize = 12.0
		}
		if a.Alignment == "" {
			a.Alignment = "left"
		}
		if a.SpacingAfterHeading == 0 {
			a.SpacingAfterHeading = 6.0
		}
	}
	if k := j.Keywords; k != nil {
		if k.HeadingText == "" {
			k.HeadingText = "Keywords:"
		}
		if k.Separator == "" {
			k.Separator = ", "
		}
		if k.FontSize == 0 {
			k.FontSize = 12.0
		}
		if k.Alignment == "" {
			k.Alignment = "left"
		}
	}
	if c := j.CitationStyle; c != nil {
		if c.Type == "" {
			c.Type = CitationNumericBracket
		}
		if c.Format == "" {
			c.Format = "[{num}]"
		}
		if c.Sort == "" {
			c.Sort = "order_of_appearance"
		}
	}
	if r := j.ReferenceStyle; r != nil {
		if r.Numbering == "" {
			r.Numbering = "unnumbered"
		}
		if r.Format == "" {
			r.Format = "{authors} ({year}). {title}. {journal}, {volume}({issue}), {pages}. {doi}"
		}
		if r.HangingIndent == 0 {
			r.HangingIndent = 0.5
		}
		if r.FontSize == 0 {
			r.FontSize = 10.0
		}
	}
	if h := j.Headings; h != nil {
		for _, hs := range []*HeadingStyle{h.Level1, h.Level2, h.Level3} {
			if hs == nil {
				continue
			}
			if hs.Family == "" {
				hs.Family = "Times New Roman"
			}
			if hs.Size == 0 {
				hs.Size = 14.0
			}
			if hs.Color == "" {
				hs.Color = "#000000"
			}
			if hs.SpacingBefore == 0 {
				hs.SpacingBefore = 12.0
			}
			if hs.SpacingAfter == 0 {
				hs.SpacingAfter = 6.0
			}
			if hs.Alignment == "" {
				hs.Alignment = "left"
			}
		}
	}
	if a := j.Appendix; a != nil {
		if a.Format == "" {
			a.Format = "letter"
		}
		if a.HeadingPrefix == "" {
			a.HeadingPrefix = "Appendix"
		}
		if a.Template == "" {
			a.Template = "{prefix} {label}"
		}
	}
	if t := j.Tables; t != nil {
		if t.CaptionPosition == "" {
			t.CaptionPosition = "above"
		}
		if t.Prefix == "" {
			t.Prefix = "Table"
		}
		if t.NumberingFormat == "" {
			t.NumberingFormat = "arabic"
		}
		if t.BorderStyle == "" {
			t.BorderStyle = "all"
		}
	}
	if f := j.Figures; f != nil {
		if f.CaptionPosition == "" {
			f.CaptionPosition = "below"
		}
		if f.Prefix == "" {
			f.Prefix = "Figure"
		}
		if f.NumberingFormat == "" {
			f.NumberingFormat = "arabic"
		}
		if f.CaptionFontSize == 0 {
			f.CaptionFontSize = 10.0
		}
	}
	if e := j.Equations; e != nil {
		if e.Numbering == "" {
			e.Numbering = "sequential"
		}
		if e.NumberingFormat == "" {
			e.NumberingFormat = "arabic"
		}
		if e.Template == "" {
			e.Template = "({num})"
		}
		if e.Alignment == "" {
			e.Alignment = "center"
		}
		if e.SpacingBefore == 0 {
			e.SpacingBefore = 6.0
		}
		if e.SpacingAfter == 0 {
			e.SpacingAfter = 6.0
		}
	}
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// validate rejects enum tokens outside the configuration vocabulary.
// Runs after applyDefaults, so empty strings never reach it.
func (j *Journal) validate() error {
	fail := func(field, got string, allowed ...string) error {
		return fmt.Errorf("%w: %s: %s = %q (allowed: %s)",
			ErrInvalidSpec, j.ID, field, got, strings.Join(allowed, ", "))
	}

	if l := j.PageLayout; l != nil {
		if !oneOf(l.PageSize, "letter", "a4") {
			return fail("page_layout.page_size", l.PageSize, "letter", "a4")
		}
	}
	if fn := j.Footnotes; fn != nil {
		if !oneOf(fn.NumberingFormat, "arabic", "roman", "symbols") {
			return fail("footnotes.numbering_format", fn.NumberingFormat, "arabic", "roman", "symbols")
		}
	}
	if tp := j.TitlePage; tp != nil && tp.Title != nil {
		if !oneOf(tp.Title.Alignment, "left", "center", "right") {
			return fail("title_page.title.alignment", tp.Title.Alignment, "left", "center", "right")
		}
	}
	if a := j.Abstract; a != nil {
		if !oneOf(a.Alignment, "left", "center", "right") {
			return fail("abstract.alignment", a.Alignment, "left", "center", "right")
		}
	}
	if k := j.Keywords; k != nil {
		if !oneOf(k.Alignment, "left", "center", "right") {
			return fail("keywords.alignment", k.Alignment, "left", "center", "right")
		}
	}
	if c := j.CitationStyle; c != nil {
		if !oneOf(c.Type, CitationNumericBracket, CitationAuthorYear, CitationSuperscript) {
			return fail("citation_style.type", c.Type,
				CitationNumericBracket, CitationAuthorYear, CitationSuperscript)
		}
		if !oneOf(c.Sort, "order_of_appearance", "alphabetical") {
			return fail("citation_style.sort", c.Sort, "order_of_appearance", "alphabetical")
		}
	}
	if r := j.ReferenceStyle; r != nil {
		if !oneOf(r.Numbering, "numbered", "unnumbered") {
			return fail("reference_style.numbering", r.Numbering, "numbered", "unnumbered")
		}
	}
	if h := j.Headings; h != nil {
		for i := 1; i <= 3; i++ {
			hs := h.Level(i)
			if hs == nil {
				continue
			}
			if !oneOf(hs.Alignment, "left", "center", "right") {
				return fail(fmt.Sprintf("headings.level_%d.alignment", i), hs.Alignment,
					"left", "center", "right")
			}
		}
	}
	if a := j.Appendix; a != nil {
		if !oneOf(a.Format, "letter", "roman", "arabic") {
			return fail("appendix.format", a.Format, "letter", "roman", "arabic")
		}
	}
	if t := j.Tables; t != nil {
		if !oneOf(t.CaptionPosition, "above", "below") {
			return fail("tables.caption_position", t.CaptionPosition, "above", "below")
		}
		if !oneOf(t.NumberingFormat, "arabic", "roman", "letter") {
			return fail("tables.numbering_format", t.NumberingFormat, "arabic", "roman", "letter")
		}
		if !oneOf(t.BorderStyle, "all", "top_bottom", "none") {
			return fail("tables.border_style", t.BorderStyle, "all", "top_bottom", "none")
		}
	}
	if f := j.Figures; f != nil {
		if !oneOf(f.CaptionPosition, "above", "below") {
			return fail("figures.caption_position", f.CaptionPosition, "above", "below")
		}
		if !oneOf(f.NumberingFormat, "arabic", "roman", "letter") {
			return fail("figures.numbering_format", f.NumberingFormat, "arabic", "roman", "letter")
		}
	}
	if e := j.Equations; e != nil {
		if !oneOf(e.Numbering, "sequential", "none") {
			return fail("equations.numbering", e.Numbering, "sequential", "none")
		}
		if !oneOf(e.NumberingFormat, "arabic", "roman") {
			return fail("equations.numbering_format", e.NumberingFormat, "arabic", "roman")
		}
		if !oneOf(e.Alignment, "left", "center", "right") {
			return fail("equations.alignment", e.Alignment, "left", "center", "right")
		}
	}
	return nil
}

// BoolOr resolves a tri-state bool field against its default.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
