// Package docx converts between WordprocessingML (the document.xml
// payload of a .docx container) and the in-memory document model.
//
// The codec covers what the pipeline needs: paragraph styles, run text
// and character formatting, footnote references, tables with border
// styles, page setup, and embedded math (preserved as raw markup).
// Everything else in the source markup is dropped on the floor; the
// serializer regenerates a clean document.xml.
package docx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
)

// ErrNotDocx indicates an input file that is not a .docx document.
var ErrNotDocx = errors.New("not a .docx document")

// WordprocessingML measurement bases.
const (
	twipsPerInch   = 1440 // page dimensions, margins, indents
	twentiethsOfPt = 20   // paragraph spacing
	halfPoints     = 2    // font sizes
	lineUnits      = 240  // line spacing multiples
)

var headingStyleIDRe = regexp.MustCompile(`^Heading([1-9])$`)

// styleName maps a style ID like "Heading1" to the display-style name
// convention the document model uses.
func styleName(id string) string {
	if m := headingStyleIDRe.FindStringSubmatch(id); m != nil {
		return "Heading " + m[1]
	}
	return id
}

// styleID is the inverse of styleName.
func styleID(name string) string {
	if lvl, ok := strings.CutPrefix(name, "Heading "); ok {
		return "Heading" + lvl
	}
	return name
}

// --- decoding ---------------------------------------------------------

type valXML struct {
	Val string `xml:"val,attr"`
}

// on reports whether a toggle property element turns its flag on.
// Presence with no value means on; explicit "0"/"false"/"none" is off.
func (v *valXML) on() bool {
	if v == nil {
		return false
	}
	switch v.Val {
	case "0", "false", "none":
		return false
	}
	return true
}

type fontsXML struct {
	ASCII string `xml:"ascii,attr"`
}

type runPropsXML struct {
	Fonts     *fontsXML `xml:"rFonts"`
	Size      *valXML   `xml:"sz"`
	Bold      *valXML   `xml:"b"`
	Italic    *valXML   `xml:"i"`
	Underline *valXML   `xml:"u"`
	VertAlign *valXML   `xml:"vertAlign"`
	Color     *valXML   `xml:"color"`
}

type textXML struct {
	Value string `xml:",chardata"`
}

type footnoteRefXML struct {
	ID string `xml:"id,attr"`
}

type runXML struct {
	Props    *runPropsXML    `xml:"rPr"`
	Texts    []textXML       `xml:"t"`
	Footnote *footnoteRefXML `xml:"footnoteReference"`
}

type spacingXML struct {
	Before   string `xml:"before,attr"`
	After    string `xml:"after,attr"`
	Line     string `xml:"line,attr"`
	LineRule string `xml:"lineRule,attr"`
}

type indentXML struct {
	Left      string `xml:"left,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

type paraPropsXML struct {
	Style   *valXML     `xml:"pStyle"`
	Justify *valXML     `xml:"jc"`
	Spacing *spacingXML `xml:"spacing"`
	Indent  *indentXML  `xml:"ind"`
}

type mathXML struct {
	Inner string `xml:",innerxml"`
}

type paragraphXML struct {
	Props     *paraPropsXML `xml:"pPr"`
	Runs      []runXML      `xml:"r"`
	Math      []mathXML     `xml:"oMath"`
	MathParas []mathXML     `xml:"oMathPara"`
}

type borderSidesXML struct {
	Top     *valXML `xml:"top"`
	Bottom  *valXML `xml:"bottom"`
	Left    *valXML `xml:"left"`
	Right   *valXML `xml:"right"`
	InsideH *valXML `xml:"insideH"`
	InsideV *valXML `xml:"insideV"`
}

type tablePropsXML struct {
	Borders *borderSidesXML `xml:"tblBorders"`
}

type cellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

type tableXML struct {
	Props *tablePropsXML `xml:"tblPr"`
	Rows  []rowXML       `xml:"tr"`
}

type pageSizeXML struct {
	W string `xml:"w,attr"`
	H string `xml:"h,attr"`
}

type pageMarginXML struct {
	Top    string `xml:"top,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Right  string `xml:"right,attr"`
}

type sectPrXML struct {
	Size   *pageSizeXML   `xml:"pgSz"`
	Margin *pageMarginXML `xml:"pgMar"`
}

// bodyBlock keeps paragraphs, tables, and the section properties in
// document order while decoding.
type bodyBlock struct {
	para *paragraphXML
	tbl  *tableXML
	sect *sectPrXML
}

func (b *bodyBlock) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Local {
	case "p":
		var p paragraphXML
		if err := d.DecodeElement(&p, &start); err != nil {
			return err
		}
		b.para = &p
	case "tbl":
		var t tableXML
		if err := d.DecodeElement(&t, &start); err != nil {
			return err
		}
		b.tbl = &t
	case "sectPr":
		var s sectPrXML
		if err := d.DecodeElement(&s, &start); err != nil {
			return err
		}
		b.sect = &s
	default:
		return d.Skip()
	}
	return nil
}

type bodyXML struct {
	Blocks []bodyBlock `xml:",any"`
}

type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

func twipsToInches(s string) float64 {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return float64(n) / twipsPerInch
}

func decodeRun(rx runXML) *docmodel.Run {
	r := &docmodel.Run{}
	var text strings.Builder
	for _, t := range rx.Texts {
		text.WriteString(t.Value)
	}
	r.Text = text.String()
	if rx.Footnote != nil {
		r.FootnoteID = rx.Footnote.ID
	}
	if p := rx.Props; p != nil {
		if p.Fonts != nil {
			r.Format.Font = p.Fonts.ASCII
		}
		if p.Size != nil {
			if n, err := strconv.Atoi(p.Size.Val); err == nil {
				r.Format.Size = float64(n) / halfPoints
			}
		}
		r.Format.Bold = p.Bold.on()
		r.Format.Italic = p.Italic.on()
		r.Format.Underline = p.Underline.on()
		r.Format.Superscript = p.VertAlign != nil && p.VertAlign.Val == "superscript"
		if p.Color != nil && p.Color.Val != "auto" {
			r.Format.Color = p.Color.Val
		}
	}
	return r
}

func decodeParagraph(px *paragraphXML) *docmodel.Paragraph {
	p := &docmodel.Paragraph{Style: "Normal"}
	if pr := px.Props; pr != nil {
		if pr.Style != nil {
			p.Style = styleName(pr.Style.Val)
		}
		if pr.Justify != nil {
			switch pr.Justify.Val {
			case "center":
				p.Format.Alignment = docmodel.AlignCenter
			case "right", "end":
				p.Format.Alignment = docmodel.AlignRight
			case "left", "start":
				p.Format.Alignment = docmodel.AlignLeft
			}
		}
		if sp := pr.Spacing; sp != nil {
			if n, err := strconv.Atoi(sp.Before); err == nil {
				p.Format.SpaceBefore = float64(n) / twentiethsOfPt
			}
			if n, err := strconv.Atoi(sp.After); err == nil {
				p.Format.SpaceAfter = float64(n) / twentiethsOfPt
			}
			if sp.LineRule == "auto" || sp.LineRule == "" {
				if n, err := strconv.Atoi(sp.Line); err == nil && n > 0 {
					p.Format.LineSpacing = float64(n) / lineUnits
				}
			}
		}
		if in := pr.Indent; in != nil {
			p.Format.LeftIndent = twipsToInches(in.Left)
			if in.Hanging != "" {
				p.Format.FirstLineIndent = -twipsToInches(in.Hanging)
			} else {
				p.Format.FirstLineIndent = twipsToInches(in.FirstLine)
			}
		}
	}
	for _, rx := range px.Runs {
		p.Runs = append(p.Runs, decodeRun(rx))
	}
	if len(px.Math) > 0 || len(px.MathParas) > 0 {
		p.HasMath = true
		var math strings.Builder
		for _, m := range px.MathParas {
			math.WriteString(m.Inner)
		}
		for _, m := range px.Math {
			math.WriteString(m.Inner)
		}
		p.MathXML = math.String()
	}
	return p
}

// borderStyle classifies a tblBorders element into the three border
// vocabulary tokens, or "" when the combination matches none of them.
func borderStyle(b *borderSidesXML) string {
	if b == nil {
		return ""
	}
	horizontal := b.Top.on() && b.Bottom.on() && b.InsideH.on()
	vertical := b.Left.on() && b.Right.on() && b.InsideV.on()
	switch {
	case horizontal && vertical:
		return docmodel.BordersAll
	case horizontal && !vertical:
		return docmodel.BordersTopBottom
	case !b.Top.on() && !b.Bottom.on() && !b.Left.on() && !b.Right.on():
		return docmodel.BordersNone
	}
	return ""
}

func decodeTable(tx *tableXML) *docmodel.Table {
	t := &docmodel.Table{}
	if tx.Props != nil {
		t.Borders = borderStyle(tx.Props.Borders)
	}
	for _, row := range tx.Rows {
		var cells []*docmodel.Cell
		for _, cx := range row.Cells {
			cell := &docmodel.Cell{}
			for i := range cx.Paragraphs {
				cell.Paragraphs = append(cell.Paragraphs, decodeParagraph(&cx.Paragraphs[i]))
			}
			cells = append(cells, cell)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Parse decodes a document.xml payload into the document model.
func Parse(content string) (*docmodel.Document, error) {
	var dx documentXML
	if err := xml.Unmarshal([]byte(content), &dx); err != nil {
		return nil, fmt.Errorf("parsing document.xml: %w", err)
	}

	doc := &docmodel.Document{
		Page: docmodel.PageSetup{
			Width: docmodel.LetterWidth, Height: docmodel.LetterHeight,
			MarginTop: 1, MarginBottom: 1, MarginLeft: 1, MarginRight: 1,
		},
	}
	for i := range dx.Body.Blocks {
		b := &dx.Body.Blocks[i]
		switch {
		case b.para != nil:
			doc.Body = append(doc.Body, decodeParagraph(b.para))
		case b.tbl != nil:
			doc.Body = append(doc.Body, decodeTable(b.tbl))
		case b.sect != nil:
			if s := b.sect.Size; s != nil {
				doc.Page.Width = twipsToInches(s.W)
				doc.Page.Height = twipsToInches(s.H)
			}
			if m := b.sect.Margin; m != nil {
				doc.Page.MarginTop = twipsToInches(m.Top)
				doc.Page.MarginBottom = twipsToInches(m.Bottom)
				doc.Page.MarginLeft = twipsToInches(m.Left)
				doc.Page.MarginRight = twipsToInches(m.Right)
			}
		}
	}
	return doc, nil
}
