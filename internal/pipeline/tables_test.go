package pipeline

import (
	"strings"
	"testing"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/spec"
)

func emptyTable() *docmodel.Table {
	return &docmodel.Table{Rows: [][]*docmodel.Cell{{{}}}}
}

func tableCfg(position, format string) *spec.Tables {
	return &spec.Tables{
		CaptionPosition: position,
		Prefix:          "Table",
		NumberingFormat: format,
		BorderStyle:     "top_bottom",
	}
}

func TestTablesRenumberAndBorders(t *testing.T) {
	t.Parallel()
	t1, t2 := emptyTable(), emptyTable()
	doc := docOf(
		para("Normal", "Table 4: first results"),
		t1,
		para("Normal", "Table 1: second results"),
		t2,
	)
	res := newResult()
	applyTables(doc, &spec.Journal{ID: "t", Tables: tableCfg("above", "arabic")}, res)

	if res.Stats["tables_found"] != 2 || res.Stats["tables_captions"] != 2 {
		t.Fatalf("tables found/captions = %d/%d, want 2/2",
			res.Stats["tables_found"], res.Stats["tables_captions"])
	}
	if t1.Borders != "top_bottom" || t2.Borders != "top_bottom" {
		t.Errorf("borders = %q/%q, want top_bottom", t1.Borders, t2.Borders)
	}
	paras := doc.Paragraphs()
	if got := paras[0].Text(); got != "Table 1: first results" {
		t.Errorf("caption 1 = %q", got)
	}
	if got := paras[1].Text(); got != "Table 2: second results" {
		t.Errorf("caption 2 = %q", got)
	}
}

func TestTablesRomanNumbering(t *testing.T) {
	t.Parallel()
	doc := docOf(para("Normal", "Table 1. Comparison"), emptyTable())
	res := newResult()
	applyTables(doc, &spec.Journal{ID: "t", Tables: tableCfg("above", "roman")}, res)

	if got := doc.Paragraphs()[0].Text(); got != "Table I. Comparison" {
		t.Errorf("caption = %q, want roman numbering", got)
	}
}

func TestTablesPaddedCaptionRenumbers(t *testing.T) {
	t.Parallel()
	doc := docOf(para("Normal", "  Table 1: results  "), emptyTable())
	res := newResult()
	applyTables(doc, &spec.Journal{ID: "t", Tables: tableCfg("above", "roman")}, res)

	if res.Stats["tables_captions"] != 1 {
		t.Fatalf("tables_captions = %d, want 1", res.Stats["tables_captions"])
	}
	if got := doc.Paragraphs()[0].Text(); got != "Table I: results" {
		t.Errorf("caption = %q, want renumbered despite padding", got)
	}
}

func TestTablesRepositionCaption(t *testing.T) {
	t.Parallel()
	tbl := emptyTable()
	doc := docOf(
		para("Normal", "intro text"),
		tbl,
		para("Normal", "Table 1: below the table"),
	)
	res := newResult()
	applyTables(doc, &spec.Journal{ID: "t", Tables: tableCfg("above", "arabic")}, res)

	if doc.BlockIndex(tbl) != 2 {
		t.Fatalf("table index = %d, want 2 after caption moved above", doc.BlockIndex(tbl))
	}
	p, ok := doc.Body[1].(*docmodel.Paragraph)
	if !ok || !strings.HasPrefix(p.Text(), "Table 1") {
		t.Errorf("body[1] = %#v, want the caption paragraph", doc.Body[1])
	}
}

func TestTablesMissingCaptionWarns(t *testing.T) {
	t.Parallel()
	doc := docOf(para("Normal", "unrelated"), para("Normal", "also unrelated"), emptyTable())
	res := newResult()
	applyTables(doc, &spec.Journal{ID: "t", Tables: tableCfg("above", "arabic")}, res)

	if res.Stats["tables_captions"] != 0 {
		t.Errorf("tables_captions = %d, want 0", res.Stats["tables_captions"])
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the caption-less table")
	}
}

func TestFiguresRenumberAndResize(t *testing.T) {
	t.Parallel()
	doc := docOf(
		para("Normal", "Fig. 3 - Overview"),
		para("Normal", "Body text."),
		para("Normal", "figure 1: detail view"),
	)
	j := &spec.Journal{ID: "t", Figures: &spec.Figures{
		CaptionPosition: "below", Prefix: "Figure",
		NumberingFormat: "arabic", CaptionFontSize: 9,
	}}
	res := newResult()
	applyFigures(doc, j, res)

	if res.Stats["figures_found"] != 2 {
		t.Fatalf("figures_found = %d, want 2", res.Stats["figures_found"])
	}
	paras := doc.Paragraphs()
	if got := paras[0].Text(); got != "Figure 1 - Overview" {
		t.Errorf("caption 1 = %q", got)
	}
	if got := paras[2].Text(); got != "Figure 2: detail view" {
		t.Errorf("caption 2 = %q", got)
	}
	if paras[0].Runs[0].Format.Size != 9 {
		t.Errorf("caption font size = %v, want 9", paras[0].Runs[0].Format.Size)
	}
}

func TestFiguresPaddedCaptionRenumbers(t *testing.T) {
	t.Parallel()
	doc := docOf(para("Normal", "  Fig. 9: padded caption"))
	j := &spec.Journal{ID: "t", Figures: &spec.Figures{
		CaptionPosition: "below", Prefix: "Figure",
		NumberingFormat: "arabic", CaptionFontSize: 9,
	}}
	res := newResult()
	applyFigures(doc, j, res)

	if got := doc.Paragraphs()[0].Text(); got != "Figure 1: padded caption" {
		t.Errorf("caption = %q, want renumbered despite padding", got)
	}
}

func TestEquationsMathParagraphs(t *testing.T) {
	t.Parallel()
	math := &docmodel.Paragraph{
		Style: "Normal", HasMath: true,
		Runs: []*docmodel.Run{{Text: ""}},
	}
	doc := docOf(
		math,
		para("Normal", "(7)"),
		para("Normal", "Plain prose with (parenthetical) text."),
	)
	j := &spec.Journal{ID: "t", Equations: &spec.Equations{
		Numbering: "sequential", NumberingFormat: "arabic",
		Template: "({num})", Alignment: "center",
		SpacingBefore: 6, SpacingAfter: 6,
	}}
	res := newResult()
	applyEquations(doc, j, res)

	if res.Stats["equations_found"] != 2 {
		t.Fatalf("equations_found = %d, want 2", res.Stats["equations_found"])
	}
	if math.Format.Alignment != "center" || math.Format.SpaceBefore != 6 {
		t.Errorf("math paragraph format = %+v", math.Format)
	}
	// The math paragraph consumes number 1; the text marker becomes (2).
	if got := doc.Paragraphs()[1].Text(); got != "(2)" {
		t.Errorf("equation number = %q, want (2)", got)
	}
	if got := doc.Paragraphs()[2].Text(); got != "Plain prose with (parenthetical) text." {
		t.Errorf("prose paragraph mutated: %q", got)
	}
}

func TestEquationsPrefixTemplate(t *testing.T) {
	t.Parallel()
	doc := docOf(para("Normal", "Eq. (3)"))
	j := &spec.Journal{ID: "t", Equations: &spec.Equations{
		Numbering: "sequential", NumberingFormat: "roman",
		Prefix: "Eq.", Template: "({num})", Alignment: "right",
		SpacingBefore: 6, SpacingAfter: 6,
	}}
	res := newResult()
	applyEquations(doc, j, res)

	if got := doc.Paragraphs()[0].Text(); got != "Eq. (I)" {
		t.Errorf("equation = %q, want Eq. (I)", got)
	}
}
