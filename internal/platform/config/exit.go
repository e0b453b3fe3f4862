package config

import (
	"fmt"
	"os"

	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
)

// Process exit statuses of the command-line tools.
const (
	ExitFailure  = 1
	ExitDocument = 2
)

// Exitf writes a formatted error message to stderr and exits with
// ExitFailure.
func Exitf(format string, args ...any) {
	ExitCodef(ExitFailure, format, args...)
}

// ExitCodef writes a formatted error message to stderr and exits with code.
func ExitCodef(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

// ExitCodeFor returns ExitDocument when err is caused by a missing or
// malformed resource document and ExitFailure otherwise.
func ExitCodeFor(err error) int {
	switch perrors.GetCode(err) {
	case perrors.CodeDocumentNotFound, perrors.CodeDocumentShapeMismatch, perrors.CodeDocumentUnknownKind:
		return ExitDocument
	default:
		return ExitFailure
	}
}
