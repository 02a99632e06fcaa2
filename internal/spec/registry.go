package spec

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alnah/go-journalfmt/internal/yamlutil"
)

// Registry holds the journal records loaded from a directory of
// <id>.yaml files. Read-only after Load.
type Registry struct {
	journals map[string]*Journal
}

// Load reads every *.yaml / *.yml file in dir into a Registry. The
// journal id is the file name without extension. Records with unknown
// fields or invalid enum tokens fail the whole load.
func Load(dir string) (*Registry, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("reading journal directory: %w", err)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS is Load over an fs.FS root, which lets built-in journal
// records ship as an embedded filesystem.
func LoadFS(fsys fs.FS) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading journal directory: %w", err)
	}

	r := &Registry{journals: make(map[string]*Journal)}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)

		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("loading journal %q: %w", id, err)
		}
		var j Journal
		if err := yamlutil.UnmarshalStrict(data, &j); err != nil {
			return nil, fmt.Errorf("loading journal %q: %w", id, err)
		}
		j.ID = id
		if j.Name == "" {
			j.Name = id
		}
		j.applyDefaults()
		if err := j.validate(); err != nil {
			return nil, err
		}
		r.journals[id] = &j
	}
	return r, nil
}

// Resolve returns the record for id, or ErrJournalNotFound.
func (r *Registry) Resolve(id string) (*Journal, error) {
	j, ok := r.journals[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)",
			ErrJournalNotFound, id, strings.Join(r.ids(), ", "))
	}
	return j, nil
}

// List returns all loaded journals sorted by id.
func (r *Registry) List() []*Journal {
	out := make([]*Journal, 0, len(r.journals))
	for _, j := range r.journals {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

func (r *Registry) ids() []string {
	ids := make([]string, 0, len(r.journals))
	for id := range r.journals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
