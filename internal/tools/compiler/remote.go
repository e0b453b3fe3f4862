package resourcecompiler

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/louisbranch/spore-warriors-resources/internal/compiler"
	"github.com/louisbranch/spore-warriors-resources/internal/platform/discovery"
	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	platformgrpc "github.com/louisbranch/spore-warriors-resources/internal/platform/grpc"
	"github.com/louisbranch/spore-warriors-resources/internal/platform/timeouts"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
	compilerservice "github.com/louisbranch/spore-warriors-resources/internal/services/compiler/api/grpc/compiler"
)

// compileRemote sends the documents of layout to the compiler service and
// returns the bundle it compiled.
func compileRemote(ctx context.Context, cfg Config, layout compiler.Layout) (compiler.Result, error) {
	loader := compiler.NewLoader(layout)
	texts := compiler.Texts{}
	for _, kind := range resource.Kinds() {
		text, err := loader.Read(kind)
		if err != nil {
			return compiler.Result{}, err
		}
		texts[kind] = text
	}
	req := compilerservice.NewCompileRequest(texts)

	addr := discovery.OrDefaultGRPCAddr(cfg.Addr, discovery.ServiceCompiler)
	conn, err := platformgrpc.DialWithHealth(ctx, addr, compilerservice.ServiceName, timeouts.GRPCDial, log.Printf)
	if err != nil {
		return compiler.Result{}, err
	}
	defer conn.Close()

	callCtx, cancel := context.WithTimeout(ctx, timeouts.GRPCRequest)
	defer cancel()
	var header metadata.MD
	resp, err := compilerservice.NewCompilerServiceClient(conn).Compile(callCtx, req, grpc.Header(&header))
	if err != nil {
		return compiler.Result{}, fmt.Errorf("remote compile: %w", perrors.FromGRPCStatus(err))
	}

	data := resp.GetValue()
	decoded, err := resource.DecodeBundle(data)
	if err != nil {
		return compiler.Result{}, fmt.Errorf("decode remote bundle: %w", err)
	}
	result := compiler.NewResult(data, decoded)
	if digests := header.Get(compilerservice.DigestHeader); len(digests) > 0 && digests[0] != result.Digest {
		return compiler.Result{}, fmt.Errorf("remote digest %s does not match bundle digest %s", digests[0], result.Digest)
	}

	if cfg.Verify {
		local, err := loader.LoadAll(ctx)
		if err != nil {
			return compiler.Result{}, err
		}
		if err := compiler.Verify(data, local); err != nil {
			return compiler.Result{}, err
		}
	}
	return result, nil
}
