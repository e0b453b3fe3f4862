package compiler

import (
	"context"
	"strings"
	"testing"

	perrors "github.com/louisbranch/spore-warriors-resources/internal/platform/errors"
	"github.com/louisbranch/spore-warriors-resources/internal/resource"
)

func TestVerify(t *testing.T) {
	var b resource.Bundle
	for kind, text := range sampleTexts {
		if err := LoadFromText(&b, kind, text); err != nil {
			t.Fatalf("load %s: %v", kind, err)
		}
	}
	result, err := CompilePools(context.Background(), b)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := Verify(result.Bytes, b); err != nil {
		t.Fatalf("verify: %v", err)
	}

	other := b
	other.Items = resource.NewPool[resource.Item]()
	if err := Verify(result.Bytes, other); perrors.GetCode(err) != perrors.CodeEncodingInvariant {
		t.Fatalf("expected count mismatch, got %v", err)
	}

	changed := b
	changed.Actions = resource.NewPool(resource.Action{ID: 999, EffectPool: []resource.ResourceID{10, 11}})
	changedResult, err := CompilePools(context.Background(), changed)
	if err != nil {
		t.Fatalf("compile changed bundle: %v", err)
	}
	err = Verify(changedResult.Bytes, b)
	if perrors.GetCode(err) != perrors.CodeEncodingInvariant {
		t.Fatalf("expected content mismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), resource.KindAction.String()) {
		t.Fatalf("expected error to name the action pool, got %v", err)
	}

	corrupt := append([]byte(nil), result.Bytes...)
	corrupt[0]++
	if err := Verify(corrupt, b); err == nil {
		t.Fatal("expected corrupt bundle to fail")
	}
}
