package docx

import (
	"fmt"
	"path/filepath"
	"strings"

	container "github.com/nguyenthenguyen/docx"

	"github.com/alnah/go-journalfmt/docmodel"
)

// ReadFile opens a .docx container and decodes its main document part.
func ReadFile(path string) (*docmodel.Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		return nil, fmt.Errorf("%w: %s", ErrNotDocx, path)
	}
	reader, err := container.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer reader.Close()

	doc, err := Parse(reader.Editable().GetContent())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return doc, nil
}

// WriteFile serializes doc into the container read from srcPath and
// writes the result to dstPath. The source container supplies the
// package parts (styles, footnotes, media) that the document model
// does not carry.
func WriteFile(doc *docmodel.Document, srcPath, dstPath string) error {
	reader, err := container.ReadDocxFile(srcPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", srcPath, err)
	}
	defer reader.Close()

	editable := reader.Editable()
	editable.SetContent(Serialize(doc))
	if err := editable.WriteToFile(dstPath); err != nil {
		return fmt.Errorf("writing %s: %w", dstPath, err)
	}
	return nil
}
