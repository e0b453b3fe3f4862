package molecule

import "encoding/binary"

// HeaderSize is the width of every count, size, offset and union id.
const HeaderSize = 4

// Byte encodes a single byte cell.
func Byte(v uint8) []byte {
	return []byte{v}
}

// Bool encodes a boolean as a byte cell: false is 0, true is 1.
func Bool(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

// Uint16 encodes v as a [byte; 2] array in little-endian order.
func Uint16(v uint16) []byte {
	return binary.LittleEndian.AppendUint16(make([]byte, 0, 2), v)
}

// Struct concatenates fixed-size fields.
func Struct(fields ...[]byte) []byte {
	size := 0
	for _, field := range fields {
		size += len(field)
	}
	out := make([]byte, 0, size)
	for _, field := range fields {
		out = append(out, field...)
	}
	return out
}

// Option encodes an optional item: absent is zero bytes, present is the item.
func Option(item []byte, present bool) []byte {
	if !present {
		return []byte{}
	}
	return item
}

// OptionOf projects an optional value through enc.
func OptionOf[T any](value *T, enc func(T) ([]byte, error)) ([]byte, error) {
	if value == nil {
		return Option(nil, false), nil
	}
	item, err := enc(*value)
	if err != nil {
		return nil, err
	}
	return Option(item, true), nil
}

// Union describes one schema union: its name and the ordered item types whose
// positions are the wire ids.
type Union struct {
	Name  string
	Items []string
}

// Encode prefixes item with the union id.
func (u Union) Encode(id uint32, item []byte) ([]byte, error) {
	if int(id) >= len(u.Items) {
		return nil, invariantf(u.Name, "union id %d outside %d declared items", id, len(u.Items))
	}
	out := make([]byte, 0, HeaderSize+len(item))
	out = binary.LittleEndian.AppendUint32(out, id)
	return append(out, item...), nil
}

// ItemName returns the declared item type for id.
func (u Union) ItemName(id uint32) (string, bool) {
	if int(id) >= len(u.Items) {
		return "", false
	}
	return u.Items[id], true
}

// FixVec builds a vector of fixed-size items.
type FixVec struct {
	name     string
	itemSize int
	items    [][]byte
	err      error
}

// NewFixVec starts a fixvec whose items are all itemSize bytes wide.
func NewFixVec(name string, itemSize int) *FixVec {
	return &FixVec{name: name, itemSize: itemSize}
}

// Add appends one item.
func (v *FixVec) Add(item []byte) *FixVec {
	if v.err != nil {
		return v
	}
	if len(item) != v.itemSize {
		v.err = invariantf(v.name, "item %d is %d bytes, want %d", len(v.items), len(item), v.itemSize)
		return v
	}
	v.items = append(v.items, item)
	return v
}

// Build returns the count-prefixed vector.
func (v *FixVec) Build() ([]byte, error) {
	if v.err != nil {
		return nil, v.err
	}
	out := make([]byte, 0, HeaderSize+len(v.items)*v.itemSize)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(v.items)))
	for _, item := range v.items {
		out = append(out, item...)
	}
	return out, nil
}

// FixVecOf projects items in order into a fixvec.
func FixVecOf[T any](name string, itemSize int, items []T, enc func(T) []byte) ([]byte, error) {
	vec := NewFixVec(name, itemSize)
	for _, item := range items {
		vec.Add(enc(item))
	}
	return vec.Build()
}

// Table builds an offset-indexed record. A DynVec shares the same layout, so
// the builder serves both.
type Table struct {
	name   string
	fields [][]byte
	err    error
}

// NewTable starts a table named after its schema type.
func NewTable(name string) *Table {
	return &Table{name: name}
}

// NewDynVec starts a vector of dynamic-size items.
func NewDynVec(name string) *Table {
	return &Table{name: name}
}

// Add appends one field.
func (t *Table) Add(field []byte) *Table {
	if t.err != nil {
		return t
	}
	if field == nil {
		field = []byte{}
	}
	t.fields = append(t.fields, field)
	return t
}

// AddErr appends a field produced by a fallible projection; the first error
// sticks and is returned by Build.
func (t *Table) AddErr(field []byte, err error) *Table {
	if t.err != nil {
		return t
	}
	if err != nil {
		t.err = err
		return t
	}
	return t.Add(field)
}

// Len reports the number of fields added so far.
func (t *Table) Len() int {
	return len(t.fields)
}

// Build returns the total-size header, the offsets, and the fields.
func (t *Table) Build() ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	headerSize := HeaderSize * (1 + len(t.fields))
	total := headerSize
	for _, field := range t.fields {
		total += len(field)
	}
	if uint64(total) > uint64(^uint32(0)) {
		return nil, invariantf(t.name, "total size %d exceeds u32", total)
	}

	out := make([]byte, 0, total)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	offset := headerSize
	for _, field := range t.fields {
		out = binary.LittleEndian.AppendUint32(out, uint32(offset))
		offset += len(field)
	}
	for _, field := range t.fields {
		out = append(out, field...)
	}
	return out, nil
}

// DynVecOf projects items in order into a dynvec.
func DynVecOf[T any](name string, items []T, enc func(T) ([]byte, error)) ([]byte, error) {
	vec := NewDynVec(name)
	for _, item := range items {
		vec.AddErr(enc(item))
	}
	return vec.Build()
}
