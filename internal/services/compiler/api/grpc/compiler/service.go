// Package compiler exposes the resource compiler over gRPC.
package compiler

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/louisbranch/spore-warriors-resources/internal/compiler"
	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
	"github.com/louisbranch/spore-warriors-resources/internal/services/compiler/storage"
)

const (
	// DigestHeader carries the hex SHA-256 of a compiled bundle.
	DigestHeader = "x-bundle-digest"
	// LocaleHeader selects the locale of user-facing error messages.
	LocaleHeader = "x-locale"

	buildSource = "grpc"
)

// emptyPool is the document used for kinds a Compile request leaves out.
var emptyPool = []byte("[]")

// Service exposes compiler operations.
type Service struct {
	store storage.BuildStore
	clock func() time.Time
}

// NewService creates a compiler service. A nil store disables GetBundle and
// build recording.
func NewService(store storage.BuildStore) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// NewCompileRequest builds a Compile request carrying texts. Each document is
// sent as its raw JSON text so the service decodes exactly what a local
// compile would.
func NewCompileRequest(texts compiler.Texts) *structpb.Struct {
	in := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(texts))}
	for kind, text := range texts {
		in.Fields[kind.String()] = structpb.NewStringValue(string(text))
	}
	return in
}

// Compile compiles the documents carried by in. Each field name is a document
// kind ("actions", "cards", ...) and its value the document's JSON text. Kinds
// that are absent compile as empty pools. The digest is returned in the
// DigestHeader response header.
func (s *Service) Compile(ctx context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "compile request is required")
	}

	texts := compiler.Texts{}
	names := make([]string, 0, len(in.GetFields()))
	for name := range in.GetFields() {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		kind, ok := resource.ParseKind(name)
		if !ok {
			return nil, handleDomainError(ctx, perrors.WithMetadata(perrors.CodeDocumentUnknownKind,
				"unknown document "+name, map[string]string{"Document": name}))
		}
		text, ok := in.GetFields()[name].GetKind().(*structpb.Value_StringValue)
		if !ok {
			reason := name + " must carry the document text"
			return nil, handleDomainError(ctx, perrors.WithMetadata(perrors.CodeRequestInvalid,
				reason, map[string]string{"Reason": reason}))
		}
		texts[kind] = []byte(text.StringValue)
	}
	for _, kind := range resource.Kinds() {
		if _, ok := texts[kind]; !ok {
			texts[kind] = emptyPool
		}
	}

	result, err := compiler.CompileTexts(ctx, texts)
	if err != nil {
		return nil, handleDomainError(ctx, err)
	}

	if s != nil && s.store != nil {
		build := storage.Build{
			Digest:    result.Digest,
			Bundle:    result.Bytes,
			Counts:    result.Counts,
			Source:    buildSource,
			CreatedAt: s.clock().UTC(),
		}
		if err := s.store.PutBuild(ctx, build); err != nil {
			log.Printf("record build %s: %v", result.Digest, err)
		}
	}
	if err := grpc.SetHeader(ctx, metadata.Pairs(DigestHeader, result.Digest)); err != nil {
		log.Printf("set digest header: %v", err)
	}
	return wrapperspb.Bytes(result.Bytes), nil
}

// GetBundle returns a previously compiled bundle by digest.
func (s *Service) GetBundle(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if in == nil {
		return nil, status.Error(codes.InvalidArgument, "get bundle request is required")
	}
	if s == nil || s.store == nil {
		return nil, status.Error(codes.Internal, "build store is not configured")
	}
	digest := strings.ToLower(strings.TrimSpace(in.GetValue()))
	if digest == "" {
		return nil, handleDomainError(ctx, perrors.WithMetadata(perrors.CodeRequestInvalid,
			"digest is required", map[string]string{"Reason": "digest is required"}))
	}

	build, err := s.store.GetBuild(ctx, digest)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, handleDomainError(ctx, perrors.WrapWithMetadata(perrors.CodeNotFound,
				"get build "+digest, map[string]string{"Digest": digest}, err))
		}
		return nil, status.Errorf(codes.Internal, "get build: %v", err)
	}
	return wrapperspb.Bytes(build.Bundle), nil
}

func handleDomainError(ctx context.Context, err error) error {
	return perrors.HandleError(err, localeFromContext(ctx))
}

func localeFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(LocaleHeader); len(values) > 0 {
		return strings.TrimSpace(values[0])
	}
	return ""
}

var _ CompilerServiceServer = (*Service)(nil)
