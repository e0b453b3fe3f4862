package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeUnknown               = "UNKNOWN"
	CodeDocumentNotFound      = "DOCUMENT_NOT_FOUND"
	CodeDocumentShapeMismatch = "DOCUMENT_SHAPE_MISMATCH"
	CodeDocumentUnknownKind   = "DOCUMENT_UNKNOWN_KIND"
	CodeEncodingInvariant     = "ENCODING_INVARIANT_VIOLATION"
	CodeRequestInvalid        = "REQUEST_INVALID"
	CodeNotFound              = "NOT_FOUND"
)

var enUSCatalog = &Catalog{
	locale: BaseLocale,
	messages: map[Code]string{
		CodeUnknown:               "An unexpected error occurred",
		CodeDocumentNotFound:      "Document {{.Document}} was not found",
		CodeDocumentShapeMismatch: "Document {{.Document}} does not match the {{.Document}} schema",
		CodeDocumentUnknownKind:   "Unknown document {{.Document}}",
		CodeEncodingInvariant:     "Resources could not be encoded",
		CodeRequestInvalid:        "Invalid request: {{.Reason}}",
		CodeNotFound:              "Bundle {{.Digest}} was not found",
	},
}
