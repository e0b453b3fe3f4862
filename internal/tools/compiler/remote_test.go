package resourcecompiler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/spore-warriors-resources/internal/platform/config"
	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	server "github.com/louisbranch/spore-warriors-resources/internal/services/compiler/app"
)

func startCompilerServer(t *testing.T) string {
	t.Helper()
	t.Setenv("SPORE_WARRIORS_COMPILER_DB_PATH", filepath.Join(t.TempDir(), "compiler.db"))

	srv, err := server.NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("serve: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})
	return srv.Addr()
}

func TestRunRemoteMatchesLocal(t *testing.T) {
	addr := startCompilerServer(t)
	root := t.TempDir()
	writeResources(t, root, nil)
	localOut := filepath.Join(root, "local.bin")
	remoteOut := filepath.Join(root, "remote.bin")

	if err := Run(context.Background(), Config{Dir: root, Out: localOut}, nil); err != nil {
		t.Fatalf("local run: %v", err)
	}
	var out bytes.Buffer
	if err := Run(context.Background(), Config{Dir: root, Out: remoteOut, Remote: true, Addr: addr, Verify: true}, &out); err != nil {
		t.Fatalf("remote run: %v", err)
	}

	local, err := os.ReadFile(localOut)
	if err != nil {
		t.Fatalf("read local bundle: %v", err)
	}
	remote, err := os.ReadFile(remoteOut)
	if err != nil {
		t.Fatalf("read remote bundle: %v", err)
	}
	if !bytes.Equal(local, remote) {
		t.Fatal("remote bundle differs from local bundle")
	}
}

func TestRunRemoteShapeMismatch(t *testing.T) {
	addr := startCompilerServer(t)
	root := t.TempDir()
	writeResources(t, root, map[string]string{"cards.json": `[{"id":1}]`})

	err := Run(context.Background(), Config{Dir: root, Out: filepath.Join(root, "resources.bin"), Remote: true, Addr: addr}, nil)
	if got := status.Code(err); got != codes.InvalidArgument {
		t.Fatalf("code = %v, want %v (%v)", got, codes.InvalidArgument, err)
	}
	if !perrors.IsCode(err, perrors.CodeDocumentShapeMismatch) {
		t.Fatalf("expected shape mismatch code, got %s", perrors.GetCode(err))
	}
}

func TestRunRemoteRejectsWhatLocalRejects(t *testing.T) {
	addr := startCompilerServer(t)
	docs := map[string]string{
		"invalid json":    `{not json`,
		"fractional id":   `[{"id":1.0,"random":true,"effect_pool":[1e1]}]`,
		"case folded key": `[{"ID":1,"random":true,"effect_pool":[]}]`,
		"duplicate key":   `[{"id":1,"id":2,"random":true,"effect_pool":[]}]`,
	}
	for name, text := range docs {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeResources(t, root, map[string]string{"actions.json": text})
			dest := filepath.Join(root, "resources.bin")

			localErr := Run(context.Background(), Config{Dir: root, Out: dest}, nil)
			remoteErr := Run(context.Background(), Config{Dir: root, Out: dest, Remote: true, Addr: addr}, nil)
			if !perrors.IsCode(localErr, perrors.CodeDocumentShapeMismatch) {
				t.Fatalf("local: expected shape mismatch, got %v", localErr)
			}
			if !perrors.IsCode(remoteErr, perrors.CodeDocumentShapeMismatch) {
				t.Fatalf("remote: expected shape mismatch, got %v", remoteErr)
			}
			if local, remote := config.ExitCodeFor(localErr), config.ExitCodeFor(remoteErr); local != remote {
				t.Fatalf("exit codes differ: local %d, remote %d", local, remote)
			}
			if _, err := os.Stat(dest); !os.IsNotExist(err) {
				t.Fatalf("expected no bundle, stat err = %v", err)
			}
		})
	}
}
