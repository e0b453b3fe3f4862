// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Document errors
	CodeDocumentNotFound      Code = "DOCUMENT_NOT_FOUND"
	CodeDocumentShapeMismatch Code = "DOCUMENT_SHAPE_MISMATCH"
	CodeDocumentUnknownKind   Code = "DOCUMENT_UNKNOWN_KIND"

	// Encoding errors
	CodeEncodingInvariant Code = "ENCODING_INVARIANT_VIOLATION"

	// Request errors
	CodeRequestInvalid Code = "REQUEST_INVALID"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed documents or requests
	case CodeDocumentShapeMismatch,
		CodeDocumentUnknownKind,
		CodeRequestInvalid:
		return codes.InvalidArgument

	// NotFound - resource doesn't exist
	case CodeDocumentNotFound,
		CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
