package journalfmt

import (
	"github.com/alnah/go-journalfmt/internal/docx"
	"github.com/alnah/go-journalfmt/internal/numbering"
	"github.com/alnah/go-journalfmt/internal/pipeline"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// Sentinel errors for library operations. Check with errors.Is; the
// wrapped message carries the offending value.
var (
	// ErrNilDocument: Format received a nil document.
	ErrNilDocument = pipeline.ErrNilDocument

	// ErrJournalNotFound: the requested journal id is not in the
	// registry.
	ErrJournalNotFound = spec.ErrJournalNotFound

	// ErrInvalidSpec: a journal record carries an enum token outside the
	// configuration vocabulary.
	ErrInvalidSpec = spec.ErrInvalidSpec

	// ErrNotDocx: the input file is not a supported manuscript format.
	ErrNotDocx = docx.ErrNotDocx

	// ErrOutOfRange: a numbering codec was asked for a value outside its
	// domain (e.g. roman numerals above 3999).
	ErrOutOfRange = numbering.ErrOutOfRange
)
