package docx

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
)

const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n" +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` +
	` xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"` +
	` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">`

// Serialize renders the document model back to a document.xml payload.
// The output is regenerated from scratch rather than patched, so any
// markup the parser did not model is not round-tripped.
func Serialize(doc *docmodel.Document) string {
	var b strings.Builder
	b.WriteString(documentHeader)
	b.WriteString("<w:body>")
	for _, blk := range doc.Body {
		switch v := blk.(type) {
		case *docmodel.Paragraph:
			writeParagraph(&b, v)
		case *docmodel.Table:
			writeTable(&b, v)
		}
	}
	writeSectPr(&b, doc.Page)
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s)) //nolint:errcheck // strings.Builder never errors
	return b.String()
}

func inchesToTwips(v float64) string {
	return strconv.Itoa(int(v*twipsPerInch + 0.5))
}

func writeRunProps(b *strings.Builder, f docmodel.RunFormat) {
	var p strings.Builder
	if f.Font != "" {
		p.WriteString(`<w:rFonts w:ascii="` + escape(f.Font) + `" w:hAnsi="` + escape(f.Font) + `"/>`)
	}
	if f.Bold {
		p.WriteString("<w:b/>")
	}
	if f.Italic {
		p.WriteString("<w:i/>")
	}
	if f.Underline {
		p.WriteString(`<w:u w:val="single"/>`)
	}
	if f.Color != "" {
		p.WriteString(`<w:color w:val="` + escape(f.Color) + `"/>`)
	}
	if f.Size > 0 {
		p.WriteString(`<w:sz w:val="` + strconv.Itoa(int(f.Size*halfPoints+0.5)) + `"/>`)
	}
	if f.Superscript {
		p.WriteString(`<w:vertAlign w:val="superscript"/>`)
	}
	if p.Len() > 0 {
		b.WriteString("<w:rPr>")
		b.WriteString(p.String())
		b.WriteString("</w:rPr>")
	}
}

func writeRun(b *strings.Builder, r *docmodel.Run) {
	b.WriteString("<w:r>")
	writeRunProps(b, r.Format)
	if r.FootnoteID != "" {
		b.WriteString(`<w:footnoteReference w:id="` + escape(r.FootnoteID) + `"/>`)
	}
	if r.Text != "" {
		b.WriteString(`<w:t xml:space="preserve">` + escape(r.Text) + `</w:t>`)
	}
	b.WriteString("</w:r>")
}

func writeParaProps(b *strings.Builder, p *docmodel.Paragraph) {
	var pr strings.Builder
	if p.Style != "" && p.Style != "Normal" {
		pr.WriteString(`<w:pStyle w:val="` + escape(styleID(p.Style)) + `"/>`)
	}
	f := p.Format
	if f.SpaceBefore > 0 || f.SpaceAfter > 0 || f.LineSpacing > 0 {
		pr.WriteString("<w:spacing")
		if f.SpaceBefore > 0 {
			pr.WriteString(` w:before="` + strconv.Itoa(int(f.SpaceBefore*twentiethsOfPt+0.5)) + `"`)
		}
		if f.SpaceAfter > 0 {
			pr.WriteString(` w:after="` + strconv.Itoa(int(f.SpaceAfter*twentiethsOfPt+0.5)) + `"`)
		}
		if f.LineSpacing > 0 {
			pr.WriteString(` w:line="` + strconv.Itoa(int(f.LineSpacing*lineUnits+0.5)) + `" w:lineRule="auto"`)
		}
		pr.WriteString("/>")
	}
	if f.LeftIndent != 0 || f.FirstLineIndent != 0 {
		pr.WriteString("<w:ind")
		if f.LeftIndent != 0 {
			pr.WriteString(` w:left="` + inchesToTwips(f.LeftIndent) + `"`)
		}
		if f.FirstLineIndent < 0 {
			pr.WriteString(` w:hanging="` + inchesToTwips(-f.FirstLineIndent) + `"`)
		} else if f.FirstLineIndent > 0 {
			pr.WriteString(` w:firstLine="` + inchesToTwips(f.FirstLineIndent) + `"`)
		}
		pr.WriteString("/>")
	}
	switch f.Alignment {
	case docmodel.AlignCenter:
		pr.WriteString(`<w:jc w:val="center"/>`)
	case docmodel.AlignRight:
		pr.WriteString(`<w:jc w:val="right"/>`)
	case docmodel.AlignLeft:
		pr.WriteString(`<w:jc w:val="left"/>`)
	}
	if pr.Len() > 0 {
		b.WriteString("<w:pPr>")
		b.WriteString(pr.String())
		b.WriteString("</w:pPr>")
	}
}

func writeParagraph(b *strings.Builder, p *docmodel.Paragraph) {
	b.WriteString("<w:p>")
	writeParaProps(b, p)
	for _, r := range p.Runs {
		writeRun(b, r)
	}
	if p.HasMath && p.MathXML != "" {
		b.WriteString("<m:oMath>")
		b.WriteString(p.MathXML) // raw markup captured at parse time
		b.WriteString("</m:oMath>")
	}
	b.WriteString("</w:p>")
}

func writeBorder(b *strings.Builder, side, val string) {
	b.WriteString(`<w:` + side + ` w:val="` + val + `" w:sz="4" w:space="0" w:color="000000"/>`)
}

func writeTable(b *strings.Builder, t *docmodel.Table) {
	b.WriteString("<w:tbl><w:tblPr>")
	if t.Borders != "" {
		b.WriteString("<w:tblBorders>")
		switch t.Borders {
		case docmodel.BordersAll:
			for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
				writeBorder(b, side, "single")
			}
		case docmodel.BordersTopBottom:
			writeBorder(b, "top", "single")
			writeBorder(b, "bottom", "single")
			writeBorder(b, "insideH", "single")
			writeBorder(b, "left", "none")
			writeBorder(b, "right", "none")
			writeBorder(b, "insideV", "none")
		case docmodel.BordersNone:
			for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
				writeBorder(b, side, "none")
			}
		}
		b.WriteString("</w:tblBorders>")
	}
	b.WriteString("</w:tblPr>")
	for _, row := range t.Rows {
		b.WriteString("<w:tr>")
		for _, cell := range row {
			b.WriteString("<w:tc>")
			if len(cell.Paragraphs) == 0 {
				b.WriteString("<w:p/>")
			}
			for _, p := range cell.Paragraphs {
				writeParagraph(b, p)
			}
			b.WriteString("</w:tc>")
		}
		b.WriteString("</w:tr>")
	}
	b.WriteString("</w:tbl>")
}

func writeSectPr(b *strings.Builder, page docmodel.PageSetup) {
	b.WriteString("<w:sectPr>")
	b.WriteString(`<w:pgSz w:w="` + inchesToTwips(page.Width) + `" w:h="` + inchesToTwips(page.Height) + `"/>`)
	b.WriteString(`<w:pgMar w:top="` + inchesToTwips(page.MarginTop) +
		`" w:bottom="` + inchesToTwips(page.MarginBottom) +
		`" w:left="` + inchesToTwips(page.MarginLeft) +
		`" w:right="` + inchesToTwips(page.MarginRight) + `"/>`)
	b.WriteString("</w:sectPr>")
}
