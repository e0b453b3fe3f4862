package config_test

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/spore-warriors-resources/internal/platform/config"
	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
)

// TestExitf_ExitsWithCode1 verifies that Exitf writes to stderr and exits
// with code 1. It uses the subprocess test pattern because os.Exit cannot be
// intercepted in-process.
func TestExitf_ExitsWithCode1(t *testing.T) {
	if os.Getenv("TEST_EXITF_SUBPROCESS") == "1" {
		config.Exitf("fatal: %s", "something broke")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitf_ExitsWithCode1$")
	cmd.Env = append(os.Environ(), "TEST_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "fatal: something broke") {
		t.Fatalf("expected stderr to contain %q, got %q", "fatal: something broke", string(out))
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "shape mismatch", err: perrors.New(perrors.CodeDocumentShapeMismatch, "bad"), want: config.ExitDocument},
		{name: "not found", err: fmt.Errorf("load: %w", perrors.New(perrors.CodeDocumentNotFound, "gone")), want: config.ExitDocument},
		{name: "unknown kind", err: perrors.New(perrors.CodeDocumentUnknownKind, "spells"), want: config.ExitDocument},
		{name: "encoding", err: perrors.New(perrors.CodeEncodingInvariant, "overflow"), want: config.ExitFailure},
		{name: "plain", err: errors.New("disk full"), want: config.ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := config.ExitCodeFor(tt.err); got != tt.want {
				t.Fatalf("ExitCodeFor = %d, want %d", got, tt.want)
			}
		})
	}
}
