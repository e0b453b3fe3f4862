package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

// Manifest describes a compile in YAML:
//
//	dir: resources
//	out: build/resources.bin
//	files:
//	  scenes: maps.json
//
// Relative paths resolve against the manifest's directory.
type Manifest struct {
	Dir   string            `yaml:"dir"`
	Out   string            `yaml:"out"`
	Files map[string]string `yaml:"files"`

	base string
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	m.base = filepath.Dir(path)
	return m, nil
}

// ParseManifest decodes manifest YAML. Unknown keys and unknown document
// kinds are rejected.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := resource.ParseKind(name); !ok {
			return Manifest{}, fmt.Errorf("manifest: unknown document %q", name)
		}
		if strings.TrimSpace(m.Files[name]) == "" {
			return Manifest{}, fmt.Errorf("manifest: empty file name for %q", name)
		}
	}
	return m, nil
}

// Layout returns the document layout described by m.
func (m Manifest) Layout() Layout {
	layout := Layout{Dir: m.resolve(m.Dir), Files: map[resource.Kind]string{}}
	for name, file := range m.Files {
		kind, _ := resource.ParseKind(name)
		layout.Files[kind] = file
	}
	return layout
}

// Output returns the bundle path, or "" when the manifest does not name one.
func (m Manifest) Output() string {
	if m.Out == "" {
		return ""
	}
	return m.resolve(m.Out)
}

func (m Manifest) resolve(path string) string {
	if path == "" {
		path = "."
	}
	if filepath.IsAbs(path) || m.base == "" {
		return path
	}
	return filepath.Join(m.base, path)
}
