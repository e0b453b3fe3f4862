// Package compiler turns the eight resource documents into one bundle.
//
// Three entry points share the same projection: CompilePools for callers that
// already hold typed pools, CompileTexts for raw document text and
// CompileFiles for a directory layout written to disk.
package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	"github.com/louisbranch/spore-warriors-resources/internal/platform/otel"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

// Texts maps each kind to its raw document.
type Texts map[resource.Kind][]byte

// Result is a compiled bundle.
type Result struct {
	Bytes  []byte
	Digest string // hex SHA-256 of Bytes
	Counts [resource.KindCount]int
}

// Records returns the total record count across pools.
func (r Result) Records() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// CompilePools projects every pool of b and assembles the bundle. Pools are
// projected concurrently and assembled in bundle order.
func CompilePools(ctx context.Context, b resource.Bundle) (Result, error) {
	ctx, span := otel.Tracer().Start(ctx, "compiler.CompilePools")
	defer span.End()

	var vectors [resource.KindCount][]byte
	var errs [resource.KindCount]error
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range resource.Kinds() {
		g.Go(func() error {
			_, poolSpan := otel.Tracer().Start(ctx, "compiler.ProjectPool")
			defer poolSpan.End()
			poolSpan.SetAttributes(
				attribute.String("pool", kind.String()),
				attribute.Int("records", b.Len(kind)),
			)

			vector, err := b.ProjectPool(kind)
			if err != nil {
				poolSpan.SetStatus(codes.Error, err.Error())
				errs[kind] = perrors.WrapWithMetadata(perrors.CodeEncodingInvariant, "project "+kind.String(), documentMetadata(kind), err)
				return nil
			}
			vectors[kind] = vector
			return nil
		})
	}
	_ = g.Wait()
	if err := firstByKind(errs); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	data, err := resource.AssembleBundle(vectors)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, perrors.Wrap(perrors.CodeEncodingInvariant, "assemble bundle", err)
	}

	result := NewResult(data, b)
	span.SetAttributes(
		attribute.String("digest", result.Digest),
		attribute.Int("bytes", len(data)),
	)
	return result, nil
}

// CompileTexts decodes every document of texts and compiles them. A kind
// without a document is DocumentNotFound.
func CompileTexts(ctx context.Context, texts Texts) (Result, error) {
	var b resource.Bundle
	for _, kind := range resource.Kinds() {
		text, ok := texts[kind]
		if !ok {
			return Result{}, perrors.WithMetadata(perrors.CodeDocumentNotFound, fmt.Sprintf("no %s document", kind), documentMetadata(kind))
		}
		if err := LoadFromText(&b, kind, text); err != nil {
			return Result{}, err
		}
	}
	return CompilePools(ctx, b)
}

// CompileFiles loads every document of layout, compiles them and writes the
// bundle to dest. Nothing is written when any step fails.
func CompileFiles(ctx context.Context, layout Layout, dest string) (Result, error) {
	b, err := NewLoader(layout).LoadAll(ctx)
	if err != nil {
		return Result{}, err
	}
	result, err := CompilePools(ctx, b)
	if err != nil {
		return Result{}, err
	}
	if err := WriteBundle(dest, result.Bytes); err != nil {
		return Result{}, err
	}
	return result, nil
}

// NewResult describes data, the bundle projected from b.
func NewResult(data []byte, b resource.Bundle) Result {
	sum := sha256.Sum256(data)
	result := Result{Bytes: data, Digest: hex.EncodeToString(sum[:])}
	for _, kind := range resource.Kinds() {
		result.Counts[kind] = b.Len(kind)
	}
	return result
}
