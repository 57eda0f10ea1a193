package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"

	"github.com/aretw0/campaignguide/pkg/ports"
)

var _ ports.ContentSource = (*Loader)(nil)

// Loader implements ports.ContentSource over the top level of a directory.
// Only YAML and JSON files are listed.
type Loader struct {
	fsys fs.FS
}

// NewLoader reads campaign documents from dir.
func NewLoader(dir string) *Loader {
	return NewLoaderFS(os.DirFS(dir))
}

// NewLoaderFS reads campaign documents from the root of fsys.
func NewLoaderFS(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// ReadDocument returns the raw bytes of a document.
func (l *Loader) ReadDocument(name string) ([]byte, error) {
	if !fs.ValidPath(name) || path.Dir(name) != "." {
		return nil, fmt.Errorf("invalid document name %q", name)
	}
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrDocumentNotFound, name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// ListDocuments returns the YAML and JSON file names in lexical order.
func (l *Loader) ListDocuments() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch path.Ext(entry.Name()) {
		case ".yaml", ".yml", ".json":
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}
