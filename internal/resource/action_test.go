package resource

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestActionMoleculeLayout(t *testing.T) {
	pool, err := Decode[ActionPool]([]byte(`[{"id":1,"random":true,"effect_pool":[10,11]}]`))
	if err != nil {
		t.Fatalf("decode actions: %v", err)
	}
	if pool.Len() != 1 {
		t.Fatalf("expected 1 action, got %d", pool.Len())
	}

	got, err := pool.Records[0].Molecule()
	if err != nil {
		t.Fatalf("project action: %v", err)
	}
	want := []byte{
		0x1b, 0, 0, 0, // total size 27
		0x10, 0, 0, 0, // id
		0x12, 0, 0, 0, // random
		0x13, 0, 0, 0, // effect_pool
		1, 0,
		1,
		2, 0, 0, 0, 10, 0, 11, 0,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected\n% x\ngot\n% x", want, got)
	}

	action, err := readAction(got)
	if err != nil {
		t.Fatalf("read action: %v", err)
	}
	if action.ID != 1 || !action.Random {
		t.Fatalf("unexpected action %+v", action)
	}
	if !reflect.DeepEqual(action.EffectPool, []ResourceID{10, 11}) {
		t.Fatalf("expected effect pool [10 11], got %v", action.EffectPool)
	}
}

func TestPoolDocumentShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bare array", doc: `[{"id":3,"random":false,"effect_pool":[1]}]`},
		{name: "type key", doc: `{"actions":[{"id":3,"random":false,"effect_pool":[1]}]}`},
		{name: "field key", doc: `{"action_pool":[{"id":3,"random":false,"effect_pool":[1]}]}`},
	}
	var first []byte
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := Decode[ActionPool]([]byte(tt.doc))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			got, err := pool.Molecule()
			if err != nil {
				t.Fatalf("project: %v", err)
			}
			if first == nil {
				first = got
				return
			}
			if !bytes.Equal(first, got) {
				t.Fatalf("expected identical projection for all shapes")
			}
		})
	}
}

func TestPoolDocumentRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "both keys", doc: `{"actions":[],"action_pool":[]}`},
		{name: "other key", doc: `{"cards":[]}`},
		{name: "no key", doc: `{}`},
		{name: "scalar", doc: `7`},
		{name: "missing field", doc: `[{"id":1,"effect_pool":[]}]`},
		{name: "unknown field", doc: `[{"id":1,"random":true,"effect_pool":[],"weight":2}]`},
		{name: "id overflow", doc: `[{"id":65536,"random":true,"effect_pool":[]}]`},
		{name: "negative id", doc: `[{"id":-1,"random":true,"effect_pool":[]}]`},
		{name: "fractional id", doc: `[{"id":1.5,"random":true,"effect_pool":[]}]`},
		{name: "case folded keys", doc: `[{"ID":1,"Random":true,"EFFECT_POOL":[10]}]`},
		{name: "duplicate field", doc: `[{"id":1,"id":2,"random":true,"effect_pool":[]}]`},
		{name: "duplicate pool key", doc: `{"actions":[],"actions":[]}`},
		{name: "trailing data", doc: `[] []`},
		{name: "syntax", doc: `[{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[ActionPool]([]byte(tt.doc))
			if !errors.Is(err, ErrShapeMismatch) {
				t.Fatalf("expected shape mismatch, got %v", err)
			}
		})
	}
}

func TestEmptyPoolProjectsEmptyVector(t *testing.T) {
	pool, err := Decode[ActionPool]([]byte(`{"actions":[]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, err := pool.Molecule()
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if !bytes.Equal(got, []byte{4, 0, 0, 0}) {
		t.Fatalf("expected empty dynvec, got % x", got)
	}
}

func TestPoolPreservesOrderAndDuplicates(t *testing.T) {
	pool, err := Decode[ActionPool]([]byte(`[
		{"id":9,"random":false,"effect_pool":[3,1,2]},
		{"id":2,"random":false,"effect_pool":[]},
		{"id":9,"random":true,"effect_pool":[1,1]}
	]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	data, err := pool.Molecule()
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	back, err := readPool(data, readAction)
	if err != nil {
		t.Fatalf("read pool: %v", err)
	}
	if !reflect.DeepEqual(back, pool) {
		t.Fatalf("expected %+v, got %+v", pool, back)
	}
}
