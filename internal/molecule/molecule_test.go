package molecule

import (
	"bytes"
	"errors"
	"testing"
)

func TestUint16LittleEndian(t *testing.T) {
	got := Uint16(0x1234)
	if !bytes.Equal(got, []byte{0x34, 0x12}) {
		t.Fatalf("expected 34 12, got % x", got)
	}
	v, err := ReadUint16("Number", got)
	if err != nil {
		t.Fatalf("read uint16: %v", err)
	}
	if v != 0x1234 {
		t.Fatalf("expected 0x1234, got %#x", v)
	}
}

func TestBool(t *testing.T) {
	if !bytes.Equal(Bool(true), []byte{1}) || !bytes.Equal(Bool(false), []byte{0}) {
		t.Fatal("expected booleans to encode as 1 and 0")
	}
	if _, err := ReadBool("random", []byte{2}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error for byte 2, got %v", err)
	}
}

func TestFixVec(t *testing.T) {
	got, err := NewFixVec("ResourceIdVec", 2).Add(Uint16(10)).Add(Uint16(11)).Build()
	if err != nil {
		t.Fatalf("build fixvec: %v", err)
	}
	want := []byte{2, 0, 0, 0, 10, 0, 11, 0}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected % x, got % x", want, got)
	}

	items, err := ReadFixVec("ResourceIdVec", got, 2)
	if err != nil {
		t.Fatalf("read fixvec: %v", err)
	}
	if len(items) != 2 || items[1][0] != 11 {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestFixVecEmpty(t *testing.T) {
	got, err := FixVecOf("ResourceIdVec", 2, []uint16(nil), Uint16)
	if err != nil {
		t.Fatalf("build fixvec: %v", err)
	}
	if !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Fatalf("expected zero count header, got % x", got)
	}
}

func TestFixVecWrongItemSize(t *testing.T) {
	_, err := NewFixVec("ResourceIdVec", 2).Add([]byte{1}).Build()
	var invariant *InvariantError
	if !errors.As(err, &invariant) {
		t.Fatalf("expected invariant error, got %v", err)
	}
	if invariant.Schema != "ResourceIdVec" {
		t.Fatalf("expected schema ResourceIdVec, got %q", invariant.Schema)
	}
}

func TestTableLayout(t *testing.T) {
	got, err := NewTable("Package").Add(Byte(1)).Add([]byte{1, 0, 0, 0, 7, 0}).Build()
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	want := []byte{
		19, 0, 0, 0, // total size
		12, 0, 0, 0, // offset of size
		13, 0, 0, 0, // offset of item_pool
		1,
		1, 0, 0, 0, 7, 0,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected % x, got % x", want, got)
	}

	fields, err := ReadTable("Package", got, 2)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if !bytes.Equal(fields[0], []byte{1}) || len(fields[1]) != 6 {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if _, err := ReadTable("Package", got, 3); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected field count mismatch, got %v", err)
	}
}

func TestEmptyTableAndDynVec(t *testing.T) {
	table, err := NewTable("NodeBarrier").Build()
	if err != nil {
		t.Fatalf("build table: %v", err)
	}
	vec, err := DynVecOf("ActionVec", []int(nil), func(int) ([]byte, error) { return nil, nil })
	if err != nil {
		t.Fatalf("build dynvec: %v", err)
	}
	for _, got := range [][]byte{table, vec} {
		if !bytes.Equal(got, []byte{4, 0, 0, 0}) {
			t.Fatalf("expected bare header, got % x", got)
		}
	}
	items, err := ReadDynVec("ActionVec", vec)
	if err != nil {
		t.Fatalf("read dynvec: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestTableStickyError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewTable("Action").Add(Byte(1)).AddErr(nil, boom).Add(Byte(2)).Build()
	if !errors.Is(err, boom) {
		t.Fatalf("expected sticky error, got %v", err)
	}
}

func TestOption(t *testing.T) {
	absent, err := OptionOf[uint16](nil, func(v uint16) ([]byte, error) { return Uint16(v), nil })
	if err != nil {
		t.Fatalf("option: %v", err)
	}
	if len(absent) != 0 {
		t.Fatalf("expected empty option, got % x", absent)
	}
	value := uint16(7)
	present, err := OptionOf(&value, func(v uint16) ([]byte, error) { return Uint16(v), nil })
	if err != nil {
		t.Fatalf("option: %v", err)
	}
	if !bytes.Equal(present, []byte{7, 0}) {
		t.Fatalf("expected 07 00, got % x", present)
	}
}

func TestUnion(t *testing.T) {
	u := Union{Name: "Duration", Items: []string{"Number", "LifePoint"}}
	got, err := u.Encode(1, []byte{9})
	if err != nil {
		t.Fatalf("encode union: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 0, 0, 0, 9}) {
		t.Fatalf("unexpected union bytes % x", got)
	}
	id, item, err := ReadUnion(u, got)
	if err != nil {
		t.Fatalf("read union: %v", err)
	}
	if id != 1 || !bytes.Equal(item, []byte{9}) {
		t.Fatalf("unexpected union id %d item % x", id, item)
	}

	if _, err := u.Encode(2, nil); err == nil {
		t.Fatal("expected invariant error for undeclared id")
	}
	if _, _, err := ReadUnion(u, []byte{5, 0, 0, 0}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error for undeclared id, got %v", err)
	}
}

func TestReadOffsetsRejectsCorruption(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "truncated", data: []byte{1, 0}},
		{name: "size mismatch", data: []byte{9, 0, 0, 0, 8, 0, 0, 0}},
		{name: "misaligned offset", data: []byte{9, 0, 0, 0, 7, 0, 0, 0, 1}},
		{name: "offset past end", data: []byte{12, 0, 0, 0, 12, 0, 0, 0, 16, 0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadDynVec("Vec", tt.data); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected malformed error, got %v", err)
			}
		})
	}
}

func TestReadStruct(t *testing.T) {
	fields, err := ReadStruct("LifePoint", []byte{3, 0, 50, 1}, 2, 1, 1)
	if err != nil {
		t.Fatalf("read struct: %v", err)
	}
	if len(fields) != 3 || fields[1][0] != 50 {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if _, err := ReadStruct("LifePoint", []byte{3, 0}, 2, 1, 1); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}
