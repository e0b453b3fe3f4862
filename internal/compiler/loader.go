package compiler

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"

	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

// Loader reads source documents from a Layout.
type Loader struct {
	layout Layout
}

// NewLoader returns a loader over layout.
func NewLoader(layout Layout) *Loader {
	return &Loader{layout: layout}
}

// Read returns the raw document of kind.
func (l *Loader) Read(kind resource.Kind) ([]byte, error) {
	path := l.layout.Path(kind)
	data, err := os.ReadFile(path)
	if err != nil {
		code := perrors.CodeUnknown
		if errors.Is(err, fs.ErrNotExist) {
			code = perrors.CodeDocumentNotFound
		}
		return nil, perrors.WrapWithMetadata(code, "read "+path, documentMetadata(kind), err)
	}
	return data, nil
}

// Load reads the document of kind and decodes it into b.
func (l *Loader) Load(b *resource.Bundle, kind resource.Kind) error {
	text, err := l.Read(kind)
	if err != nil {
		return err
	}
	return LoadFromText(b, kind, text)
}

// LoadAll reads and decodes every document. Documents are independent, so
// they are loaded concurrently. When several fail, the error of the earliest
// kind in bundle order is returned.
func (l *Loader) LoadAll(ctx context.Context) (resource.Bundle, error) {
	var b resource.Bundle
	var errs [resource.KindCount]error
	g, _ := errgroup.WithContext(ctx)
	for _, kind := range resource.Kinds() {
		g.Go(func() error {
			errs[kind] = l.Load(&b, kind)
			return nil
		})
	}
	_ = g.Wait()
	if err := firstByKind(errs); err != nil {
		return resource.Bundle{}, err
	}
	return b, nil
}

// firstByKind returns the first non-nil error in bundle order.
func firstByKind(errs [resource.KindCount]error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// LoadFromText decodes text as the document of kind into b.
func LoadFromText(b *resource.Bundle, kind resource.Kind, text []byte) error {
	if err := b.DecodePool(kind, text); err != nil {
		return perrors.WrapWithMetadata(perrors.CodeDocumentShapeMismatch, "decode "+kind.String(), documentMetadata(kind), err)
	}
	return nil
}

func documentMetadata(kind resource.Kind) map[string]string {
	return map[string]string{"Document": kind.String()}
}
