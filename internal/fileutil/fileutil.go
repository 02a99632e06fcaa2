// Package fileutil provides file and path utilities for manuscript
// discovery.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoManuscripts indicates a directory input with no manuscript files.
var ErrNoManuscripts = errors.New("no manuscript files found")

// manuscriptExts are the input extensions the pipeline accepts.
var manuscriptExts = map[string]bool{
	".docx":     true,
	".md":       true,
	".markdown": true,
}

// IsManuscript reports whether path has a supported manuscript
// extension.
func IsManuscript(path string) bool {
	return manuscriptExts[strings.ToLower(filepath.Ext(path))]
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DiscoverManuscripts expands each input into manuscript file paths.
// A file input is returned as-is; a directory input contributes every
// manuscript file directly inside it (no recursion), sorted by name.
func DiscoverManuscripts(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("reading input %s: %w", in, err)
		}
		if !info.IsDir() {
			files = append(files, in)
			continue
		}

		entries, err := os.ReadDir(in)
		if err != nil {
			return nil, fmt.Errorf("reading input directory %s: %w", in, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !IsManuscript(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(in, e.Name()))
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoManuscripts, in)
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// OutputPath derives the formatted output path for input: the journal
// id is inserted before a .docx extension, e.g. paper.md formatted for
// ieee becomes paper.ieee.docx. An explicit output wins for single
// inputs.
func OutputPath(input, journalID, explicit string) string {
	if explicit != "" {
		return explicit
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + journalID + ".docx"
}
