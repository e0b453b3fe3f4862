package resource

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// ResourceID addresses a resource in any pool.
type ResourceID uint16

// SystemID addresses a runtime system.
type SystemID uint16

const (
	schemaNumber     = "Number"
	schemaResourceID = "ResourceId"
	schemaSystemID   = "SystemId"
	schemaByte       = "byte"
	uint16Size       = 2
)

func (id ResourceID) molecule() []byte { return molecule.Uint16(uint16(id)) }

func (id SystemID) molecule() []byte { return molecule.Uint16(uint16(id)) }

func number(v uint16) []byte { return molecule.Uint16(v) }

func resourceIDVec(ids []ResourceID) ([]byte, error) {
	return molecule.FixVecOf("ResourceIdVec", uint16Size, ids, ResourceID.molecule)
}

func readResourceID(data []byte) (ResourceID, error) {
	v, err := molecule.ReadUint16(schemaResourceID, data)
	return ResourceID(v), err
}

func readSystemID(data []byte) (SystemID, error) {
	v, err := molecule.ReadUint16(schemaSystemID, data)
	return SystemID(v), err
}

func readNumber(data []byte) (uint16, error) {
	return molecule.ReadUint16(schemaNumber, data)
}

func readByte(data []byte) (uint8, error) {
	return molecule.ReadByte(schemaByte, data)
}

func readResourceIDVec(data []byte) ([]ResourceID, error) {
	items, err := molecule.ReadFixVec("ResourceIdVec", data, uint16Size)
	if err != nil {
		return nil, err
	}
	ids := make([]ResourceID, 0, len(items))
	for _, item := range items {
		id, err := readResourceID(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fieldReader decodes table fields in order and keeps the first error.
type fieldReader struct {
	fields [][]byte
	next   int
	err    error
}

func readFields(schema string, data []byte, count int) (*fieldReader, error) {
	fields, err := molecule.ReadTable(schema, data, count)
	if err != nil {
		return nil, err
	}
	return &fieldReader{fields: fields}, nil
}

func (r *fieldReader) take() []byte {
	field := r.fields[r.next]
	r.next++
	return field
}

func fieldOf[T any](r *fieldReader, read func([]byte) (T, error)) T {
	data := r.take()
	if r.err != nil {
		var zero T
		return zero
	}
	v, err := read(data)
	if err != nil {
		r.err = err
	}
	return v
}

func optionalFieldOf[T any](r *fieldReader, read func([]byte) (T, error)) *T {
	data := r.take()
	if r.err != nil || len(data) == 0 {
		return nil
	}
	v, err := read(data)
	if err != nil {
		r.err = err
		return nil
	}
	return &v
}

func readDynVec[T any](schema string, data []byte, read func([]byte) (T, error)) ([]T, error) {
	items, err := molecule.ReadDynVec(schema, data)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := read(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", schema, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeStrict decodes one JSON value into target, rejecting unknown keys and
// trailing data. Object keys must match a field tag exactly and appear once.
func decodeStrict(data []byte, target any) error {
	if err := checkObjectKeys(data, target); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return shapef("unexpected data after document")
	}
	return nil
}

// objectKeys returns the keys of the JSON object in data in document order.
// ok is false when data is not an object. A repeated key is a shape mismatch.
func objectKeys(data []byte) (keys []string, ok bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, false, nil
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return nil, false, nil
	}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, true, err
		}
		key, _ := tok.(string)
		if seen[key] {
			return nil, true, shapef("duplicate field %q", key)
		}
		seen[key] = true
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, true, err
		}
	}
	return keys, true, nil
}

// checkObjectKeys rejects repeated keys, and for plain struct targets any key
// that is not an exact json tag. encoding/json alone folds case and keeps the
// last duplicate.
func checkObjectKeys(data []byte, target any) error {
	keys, ok, err := objectKeys(data)
	if err != nil || !ok {
		return err
	}
	names := jsonFieldNames(reflect.TypeOf(target))
	if names == nil {
		return nil
	}
	for _, key := range keys {
		if !names[key] {
			return shapef("unknown field %q", key)
		}
	}
	return nil
}

var (
	unmarshalerType = reflect.TypeFor[json.Unmarshaler]()
	fieldNameCache  sync.Map // reflect.Type -> map[string]bool
)

// jsonFieldNames returns the exact json keys of a struct type, following
// pointers and promoted fields of embedded structs. It returns nil for
// non-struct types and for types that decode themselves.
func jsonFieldNames(t reflect.Type) map[string]bool {
	if t == nil {
		return nil
	}
	if t.Implements(unmarshalerType) {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
			return nil
		}
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := fieldNameCache.Load(t); ok {
		return cached.(map[string]bool)
	}
	names := make(map[string]bool)
	collectFieldNames(t, names)
	fieldNameCache.Store(t, names)
	return names
}

func collectFieldNames(t reflect.Type, names map[string]bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if field.Anonymous && name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectFieldNames(embedded, names)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		names[name] = true
	}
}

// Decode parses one document into a typed value. Every failure wraps
// ErrShapeMismatch.
func Decode[T any](data []byte) (T, error) {
	var value T
	if err := decodeStrict(data, &value); err != nil {
		var zero T
		if errors.Is(err, ErrShapeMismatch) {
			return zero, err
		}
		return zero, fmt.Errorf("%w: %w", ErrShapeMismatch, err)
	}
	return value, nil
}

// isNull reports whether raw is the JSON literal null.
func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeVariant splits an externally tagged variant. A bare string is a
// payload-free variant; an object must carry exactly one key.
func decodeVariant(record string, data []byte) (string, json.RawMessage, error) {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		return tag, nil, nil
	}
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return "", nil, shapef("%s: expected a tag string or a single-key object", record)
	}
	if _, _, err := objectKeys(data); err != nil {
		return "", nil, fmt.Errorf("%s: %w", record, err)
	}
	if len(object) != 1 {
		return "", nil, shapef("%s: expected exactly one variant key, got %d", record, len(object))
	}
	for key, payload := range object {
		if isNull(payload) {
			return key, nil, nil
		}
		return key, payload, nil
	}
	return "", nil, shapef("%s: empty variant", record)
}

func readBool(data []byte) (bool, error) {
	return molecule.ReadBool(schemaByte, data)
}
