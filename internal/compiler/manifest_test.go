package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

func TestLoadManifestResolvesPaths(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "resources.yaml")
	content := "dir: docs\nout: build/resources.bin\nfiles:\n  scenes: maps.json\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	layout := m.Layout()
	if layout.Dir != filepath.Join(root, "docs") {
		t.Fatalf("unexpected dir %q", layout.Dir)
	}
	if got := layout.Path(resource.KindScene); got != filepath.Join(root, "docs", "maps.json") {
		t.Fatalf("unexpected scene path %q", got)
	}
	if got := layout.Path(resource.KindCard); got != filepath.Join(root, "docs", "cards.json") {
		t.Fatalf("unexpected card path %q", got)
	}
	if m.Output() != filepath.Join(root, "build", "resources.bin") {
		t.Fatalf("unexpected output %q", m.Output())
	}
}

func TestParseManifestDefaults(t *testing.T) {
	m, err := ParseManifest(nil)
	if err != nil {
		t.Fatalf("parse empty manifest: %v", err)
	}
	if m.Output() != "" {
		t.Fatalf("expected no output, got %q", m.Output())
	}
	if m.Layout().Dir != "." {
		t.Fatalf("expected current dir, got %q", m.Layout().Dir)
	}
}

func TestParseManifestRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown kind", content: "files:\n  effects: effects.json\n", want: "effects"},
		{name: "unknown key", content: "dir: a\noutput: b\n", want: "output"},
		{name: "empty file", content: "files:\n  cards: \"\"\n", want: "cards"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}
