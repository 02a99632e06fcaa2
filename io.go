package journalfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/docx"
	"github.com/alnah/go-journalfmt/internal/markdown"
)

// ReadDocument loads a manuscript from path. Supported formats are
// .docx containers and .md markdown sources; anything else (including
// legacy .doc) returns ErrNotDocx.
func ReadDocument(path string) (*docmodel.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx":
		return docx.ReadFile(path)
	case ".md", ".markdown":
		data, err := os.ReadFile(path) // #nosec G304 -- input path is operator-provided
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return markdown.Parse(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotDocx, path)
}

// WriteDocument writes doc to dstPath as a .docx container. When
// srcPath names the .docx the document was read from, its package
// parts (styles, footnotes, media) carry over; otherwise a minimal
// container is built from scratch.
func WriteDocument(doc *docmodel.Document, srcPath, dstPath string) error {
	if strings.EqualFold(filepath.Ext(srcPath), ".docx") {
		return docx.WriteFile(doc, srcPath, dstPath)
	}
	return docx.Create(doc, dstPath)
}

// FromMarkdown converts Markdown source into a document, ready for
// Format.
func FromMarkdown(source []byte) (*docmodel.Document, error) {
	return markdown.Parse(source)
}
