package compiler

import (
	"bytes"
	"fmt"

	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

// Verify decodes data back into typed pools and checks that it describes b:
// every pool holds the same records as b, and re-projecting the decoded pools
// reproduces data byte for byte.
func Verify(data []byte, b resource.Bundle) error {
	decoded, err := resource.DecodeBundle(data)
	if err != nil {
		return perrors.Wrap(perrors.CodeEncodingInvariant, "decode bundle", err)
	}
	for _, kind := range resource.Kinds() {
		if got, want := decoded.Len(kind), b.Len(kind); got != want {
			return perrors.WithMetadata(perrors.CodeEncodingInvariant,
				fmt.Sprintf("%s: bundle holds %d records, want %d", kind, got, want), documentMetadata(kind))
		}
		got, err := decoded.ProjectPool(kind)
		if err != nil {
			return perrors.Wrap(perrors.CodeEncodingInvariant, fmt.Sprintf("re-project %s", kind), err)
		}
		want, err := b.ProjectPool(kind)
		if err != nil {
			return perrors.Wrap(perrors.CodeEncodingInvariant, fmt.Sprintf("project %s", kind), err)
		}
		if !bytes.Equal(got, want) {
			return perrors.WithMetadata(perrors.CodeEncodingInvariant,
				fmt.Sprintf("%s: bundle records differ from the source documents", kind), documentMetadata(kind))
		}
	}
	again, err := decoded.Molecule()
	if err != nil {
		return perrors.Wrap(perrors.CodeEncodingInvariant, "re-project bundle", err)
	}
	if !bytes.Equal(again, data) {
		return perrors.New(perrors.CodeEncodingInvariant, "bundle does not round-trip")
	}
	return nil
}
