package compiler

import (
	"path/filepath"

	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

// DefaultOutput is the bundle file name used when no output path is given.
const DefaultOutput = "resources.bin"

// Layout locates the eight source documents.
type Layout struct {
	Dir string
	// Files overrides the file name of a kind. Kinds without an entry use
	// DefaultFileName.
	Files map[resource.Kind]string
}

// DefaultFileName returns "<kind>.json", e.g. "actions.json".
func DefaultFileName(kind resource.Kind) string {
	return kind.String() + ".json"
}

// Path returns the document path of kind.
func (l Layout) Path(kind resource.Kind) string {
	name := DefaultFileName(kind)
	if override, ok := l.Files[kind]; ok && override != "" {
		name = override
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.Dir, name)
}
