package journalfmt

import (
	"embed"
	"io/fs"

	"github.com/alnah/go-journalfmt/internal/spec"
)

// Built-in journal records. WithJournalDir replaces the whole set.
//
//go:embed journals/*.yaml
var builtinJournals embed.FS

func builtinRegistry() (*spec.Registry, error) {
	sub, err := fs.Sub(builtinJournals, "journals")
	if err != nil {
		return nil, err
	}
	return spec.LoadFS(sub)
}
