// Package storage defines persistence contracts for compiled bundles.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

// ErrNotFound indicates a requested build is missing.
var ErrNotFound = errors.New("record not found")

// Build is one compiled bundle, keyed by its content digest.
type Build struct {
	Digest    string
	Bundle    []byte
	Counts    [resource.KindCount]int
	Source    string
	CreatedAt time.Time
}

// BuildSummary describes a build without its bytes.
type BuildSummary struct {
	Digest    string
	Size      int
	Counts    [resource.KindCount]int
	Source    string
	CreatedAt time.Time
}

// BuildStore persists compiled bundles. Putting a digest that already exists
// is a no-op.
type BuildStore interface {
	PutBuild(ctx context.Context, build Build) error
	GetBuild(ctx context.Context, digest string) (Build, error)
	ListBuilds(ctx context.Context, limit int) ([]BuildSummary, error)
}
