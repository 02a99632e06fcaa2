package docx

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-journalfmt/docmodel"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"
            xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/><w:jc w:val="center"/></w:pPr>
      <w:r><w:rPr><w:b/><w:sz w:val="28"/></w:rPr><w:t>Introduction</w:t></w:r>
    </w:p>
    <w:p>
      <w:pPr>
        <w:spacing w:before="120" w:after="240" w:line="480" w:lineRule="auto"/>
        <w:ind w:left="720" w:hanging="720"/>
      </w:pPr>
      <w:r><w:rPr><w:rFonts w:ascii="Georgia"/><w:i/><w:color w:val="FF0000"/></w:rPr><w:t>Body text</w:t></w:r>
      <w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr><w:t>1</w:t></w:r>
      <w:r><w:footnoteReference w:id="2"/></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Before eq</w:t></w:r>
      <m:oMath><m:r><m:t>x=1</m:t></m:r></m:oMath>
    </w:p>
    <w:tbl>
      <w:tblPr>
        <w:tblBorders>
          <w:top w:val="single"/><w:bottom w:val="single"/><w:insideH w:val="single"/>
          <w:left w:val="none"/><w:right w:val="none"/><w:insideV w:val="none"/>
        </w:tblBorders>
      </w:tblPr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:sectPr>
      <w:pgSz w:w="11906" w:h="16838"/>
      <w:pgMar w:top="1440" w:bottom="1440" w:left="2160" w:right="1440"/>
    </w:sectPr>
  </w:body>
</w:document>`

func TestParseParagraphsAndStyles(t *testing.T) {
	t.Parallel()
	doc, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	paras := doc.Paragraphs()
	if len(paras) != 3 {
		t.Fatalf("got %d paragraphs, want 3", len(paras))
	}

	h := paras[0]
	if h.Style != "Heading 1" {
		t.Errorf("heading style = %q, want %q", h.Style, "Heading 1")
	}
	if h.Format.Alignment != docmodel.AlignCenter {
		t.Errorf("heading alignment = %q, want center", h.Format.Alignment)
	}
	if !h.Runs[0].Format.Bold {
		t.Error("heading run should be bold")
	}
	if got := h.Runs[0].Format.Size; got != 14 {
		t.Errorf("heading size = %v, want 14", got)
	}

	body := paras[1]
	if got := body.Format.SpaceBefore; got != 6 {
		t.Errorf("SpaceBefore = %v, want 6", got)
	}
	if got := body.Format.SpaceAfter; got != 12 {
		t.Errorf("SpaceAfter = %v, want 12", got)
	}
	if got := body.Format.LineSpacing; got != 2 {
		t.Errorf("LineSpacing = %v, want 2", got)
	}
	if got := body.Format.LeftIndent; got != 0.5 {
		t.Errorf("LeftIndent = %v, want 0.5", got)
	}
	if got := body.Format.FirstLineIndent; got != -0.5 {
		t.Errorf("FirstLineIndent = %v, want -0.5", got)
	}
	if got := body.Runs[0].Format.Font; got != "Georgia" {
		t.Errorf("font = %q, want Georgia", got)
	}
	if !body.Runs[0].Format.Italic {
		t.Error("first run should be italic")
	}
	if got := body.Runs[0].Format.Color; got != "FF0000" {
		t.Errorf("color = %q, want FF0000", got)
	}
	if !body.Runs[1].Format.Superscript {
		t.Error("second run should be superscript")
	}
	if got := body.Runs[2].FootnoteID; got != "2" {
		t.Errorf("footnote id = %q, want 2", got)
	}
}

func TestParseMathAndTables(t *testing.T) {
	t.Parallel()
	doc, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	math := doc.Paragraphs()[2]
	if !math.HasMath {
		t.Error("third paragraph should carry math")
	}
	if !strings.Contains(math.MathXML, "x=1") {
		t.Errorf("MathXML = %q, want it to contain x=1", math.MathXML)
	}

	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	tbl := tables[0]
	if tbl.Borders != docmodel.BordersTopBottom {
		t.Errorf("borders = %q, want %q", tbl.Borders, docmodel.BordersTopBottom)
	}
	if len(tbl.Rows) != 1 || len(tbl.Rows[0]) != 2 {
		t.Fatalf("table shape = %dx%d, want 1x2", len(tbl.Rows), len(tbl.Rows[0]))
	}
	if got := tbl.Rows[0][1].Paragraphs[0].Text(); got != "B1" {
		t.Errorf("cell text = %q, want B1", got)
	}
}

func TestParsePageSetup(t *testing.T) {
	t.Parallel()
	doc, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	page := doc.Page
	if got := page.Width; got < 8.26 || got > 8.28 {
		t.Errorf("page width = %v, want ~8.27", got)
	}
	if got := page.Height; got < 11.69 || got > 11.70 {
		t.Errorf("page height = %v, want ~11.69", got)
	}
	if got := page.MarginLeft; got != 1.5 {
		t.Errorf("left margin = %v, want 1.5", got)
	}
	if got := page.MarginTop; got != 1 {
		t.Errorf("top margin = %v, want 1", got)
	}
}

func TestParseToggleOffValues(t *testing.T) {
	t.Parallel()
	const xml = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
		<w:p><w:r><w:rPr><w:b w:val="false"/><w:i w:val="0"/></w:rPr><w:t>plain</w:t></w:r></w:p>
	</w:body></w:document>`
	doc, err := Parse(xml)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := doc.Paragraphs()[0].Runs[0]
	if r.Format.Bold || r.Format.Italic {
		t.Errorf("explicit off toggles should decode as false, got bold=%v italic=%v",
			r.Format.Bold, r.Format.Italic)
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	t.Parallel()
	if _, err := Parse("<w:document><w:body><w:p>"); err == nil {
		t.Fatal("expected an error for truncated markup")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	doc, err := Parse(sampleDocument)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Serialize(doc)
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse(Serialize): %v", err)
	}

	if got, want := len(again.Body), len(doc.Body); got != want {
		t.Fatalf("round trip body length = %d, want %d", got, want)
	}
	h := again.Paragraphs()[0]
	if h.Style != "Heading 1" {
		t.Errorf("round trip style = %q, want %q", h.Style, "Heading 1")
	}
	if got := h.Runs[0].Text; got != "Introduction" {
		t.Errorf("round trip text = %q, want Introduction", got)
	}
	body := again.Paragraphs()[1]
	if got := body.Format.FirstLineIndent; got != -0.5 {
		t.Errorf("round trip hanging indent = %v, want -0.5", got)
	}
	if !again.Paragraphs()[2].HasMath {
		t.Error("round trip should preserve math")
	}
	if got := again.Tables()[0].Borders; got != docmodel.BordersTopBottom {
		t.Errorf("round trip borders = %q, want %q", got, docmodel.BordersTopBottom)
	}
	if got := again.Page.MarginLeft; got != 1.5 {
		t.Errorf("round trip left margin = %v, want 1.5", got)
	}
}

func TestSerializeEscapesText(t *testing.T) {
	t.Parallel()
	doc := &docmodel.Document{
		Page: docmodel.PageSetup{Width: docmodel.LetterWidth, Height: docmodel.LetterHeight},
	}
	p := &docmodel.Paragraph{Style: "Normal"}
	p.Runs = append(p.Runs, &docmodel.Run{Text: `a < b & "c"`})
	doc.Body = append(doc.Body, p)

	out := Serialize(doc)
	if strings.Contains(out, "a < b") {
		t.Error("text should be XML-escaped")
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := again.Paragraphs()[0].Text(); got != `a < b & "c"` {
		t.Errorf("unescaped text = %q", got)
	}
}

func TestStyleNameMapping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		id, name string
	}{
		{"Heading1", "Heading 1"},
		{"Heading3", "Heading 3"},
		{"Title", "Title"},
		{"Normal", "Normal"},
		{"Heading10", "Heading10"},
	}
	for _, tt := range tests {
		if got := styleName(tt.id); got != tt.name {
			t.Errorf("styleName(%q) = %q, want %q", tt.id, got, tt.name)
		}
	}
	if got := styleID("Heading 2"); got != "Heading2" {
		t.Errorf("styleID(Heading 2) = %q, want Heading2", got)
	}
}

func TestReadFileRejectsWrongExtension(t *testing.T) {
	t.Parallel()
	_, err := ReadFile("manuscript.doc")
	if !errors.Is(err, ErrNotDocx) {
		t.Fatalf("error = %v, want ErrNotDocx", err)
	}
}
