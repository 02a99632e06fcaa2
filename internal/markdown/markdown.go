// Package markdown ingests Markdown manuscripts into the document
// model so that drafts written outside a word processor can go through
// the same restyling pipeline.
package markdown

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-journalfmt/docmodel"
)

// Parse converts Markdown source into a document. ATX headings become
// styled heading paragraphs, emphasis becomes run formatting, and GFM
// tables become body tables. Layout-only constructs that have no
// manuscript equivalent (thematic breaks, raw HTML) are dropped.
func Parse(source []byte) (*docmodel.Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(source))

	doc := &docmodel.Document{
		Page: docmodel.PageSetup{
			Width: docmodel.LetterWidth, Height: docmodel.LetterHeight,
			MarginTop: 1, MarginBottom: 1, MarginLeft: 1, MarginRight: 1,
		},
	}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		appendBlock(doc, n, source)
	}
	return doc, nil
}

func appendBlock(doc *docmodel.Document, n ast.Node, source []byte) {
	switch v := n.(type) {
	case *ast.Heading:
		p := &docmodel.Paragraph{Style: fmt.Sprintf("Heading %d", v.Level)}
		p.Runs = inlineRuns(v, source, docmodel.RunFormat{})
		doc.Body = append(doc.Body, p)
	case *ast.Paragraph, *ast.TextBlock:
		p := &docmodel.Paragraph{Style: "Normal"}
		p.Runs = inlineRuns(n, source, docmodel.RunFormat{})
		if len(p.Runs) > 0 {
			doc.Body = append(doc.Body, p)
		}
	case *ast.Blockquote:
		for c := v.FirstChild(); c != nil; c = c.NextSibling() {
			appendBlock(doc, c, source)
		}
	case *ast.List:
		for item := v.FirstChild(); item != nil; item = item.NextSibling() {
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				appendBlock(doc, c, source)
			}
		}
	case *ast.FencedCodeBlock:
		doc.Body = append(doc.Body, codeParagraph(v.Lines(), source))
	case *ast.CodeBlock:
		doc.Body = append(doc.Body, codeParagraph(v.Lines(), source))
	case *east.Table:
		doc.Body = append(doc.Body, tableBlock(v, source))
	}
}

func codeParagraph(lines *text.Segments, source []byte) *docmodel.Paragraph {
	var buf []byte
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf = append(buf, seg.Value(source)...)
	}
	p := &docmodel.Paragraph{Style: "Normal"}
	p.Runs = append(p.Runs, &docmodel.Run{
		Text:   string(buf),
		Format: docmodel.RunFormat{Font: "Courier New"},
	})
	return p
}

func tableBlock(t *east.Table, source []byte) *docmodel.Table {
	tbl := &docmodel.Table{Borders: docmodel.BordersAll}
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []*docmodel.Cell
		for c := row.FirstChild(); c != nil; c = c.NextSibling() {
			p := &docmodel.Paragraph{Style: "Normal"}
			format := docmodel.RunFormat{}
			if _, ok := row.(*east.TableHeader); ok {
				format.Bold = true
			}
			p.Runs = inlineRuns(c, source, format)
			cells = append(cells, &docmodel.Cell{Paragraphs: []*docmodel.Paragraph{p}})
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	return tbl
}

// inlineRuns flattens the inline children of n into formatted runs.
func inlineRuns(n ast.Node, source []byte, format docmodel.RunFormat) []*docmodel.Run {
	var runs []*docmodel.Run
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			text := string(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				text += " "
			}
			runs = append(runs, &docmodel.Run{Text: text, Format: format})
		case *ast.Emphasis:
			f := format
			if v.Level >= 2 {
				f.Bold = true
			} else {
				f.Italic = true
			}
			runs = append(runs, inlineRuns(v, source, f)...)
		case *ast.CodeSpan:
			f := format
			f.Font = "Courier New"
			runs = append(runs, &docmodel.Run{Text: string(v.Text(source)), Format: f})
		case *ast.Link:
			runs = append(runs, inlineRuns(v, source, format)...)
		case *ast.AutoLink:
			runs = append(runs, &docmodel.Run{Text: string(v.URL(source)), Format: format})
		default:
			runs = append(runs, inlineRuns(c, source, format)...)
		}
	}
	return runs
}
