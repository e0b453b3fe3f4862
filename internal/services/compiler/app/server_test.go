package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/louisbranch/spore-warriors-resources/internal/compiler"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
	compilerservice "github.com/louisbranch/spore-warriors-resources/internal/services/compiler/api/grpc/compiler"
)

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	t.Setenv("SPORE_WARRIORS_COMPILER_DB_PATH", filepath.Join(t.TempDir(), "compiler.db"))

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})

	conn, err := grpc.NewClient(srv.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial compiler server: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := conn.Close(); closeErr != nil {
			t.Fatalf("close gRPC connection: %v", closeErr)
		}
	})
	return conn
}

func TestServer_CompileAndGetBundleRoundTrip(t *testing.T) {
	conn := startServer(t)
	client := compilerservice.NewCompilerServiceClient(conn)

	req := compilerservice.NewCompileRequest(compiler.Texts{
		resource.KindCard: []byte(`[{"id": 2, "class": 1, "power_cost": 1, "price": {"min": 5, "max": 9}, "system_pool": []}]`),
	})

	var header metadata.MD
	compiled, err := client.Compile(context.Background(), req, grpc.Header(&header))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	digests := header.Get(compilerservice.DigestHeader)
	if len(digests) != 1 || len(digests[0]) != 64 {
		t.Fatalf("digest header = %v", digests)
	}

	stored, err := client.GetBundle(context.Background(), wrapperspb.String(digests[0]))
	if err != nil {
		t.Fatalf("get bundle: %v", err)
	}
	if string(stored.GetValue()) != string(compiled.GetValue()) {
		t.Fatal("stored bundle differs from compiled bundle")
	}
}

func TestServer_GetBundleNotFound(t *testing.T) {
	conn := startServer(t)
	client := compilerservice.NewCompilerServiceClient(conn)

	_, err := client.GetBundle(context.Background(), wrapperspb.String("deadbeef"))
	if got := status.Code(err); got != codes.NotFound {
		t.Fatalf("code = %v, want %v", got, codes.NotFound)
	}
}

func TestServer_HealthServing(t *testing.T) {
	conn := startServer(t)
	health := grpc_health_v1.NewHealthClient(conn)

	resp, err := health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: compilerservice.ServiceName})
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", resp.GetStatus())
	}
}
