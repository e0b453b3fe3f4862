package resource

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// Record is a typed resource that can sit in a pool.
type Record interface {
	Molecule() ([]byte, error)
	poolSchema() poolSchema
}

// poolSchema names the vector type and the two accepted document keys of one
// pool kind.
type poolSchema struct {
	vector   string
	typeKey  string
	fieldKey string
}

// Pool is an ordered collection of one resource kind. Order is preserved from
// the source document through the projection; nothing is sorted or deduplicated.
type Pool[T Record] struct {
	Records []T
}

// NewPool returns a pool over records.
func NewPool[T Record](records ...T) Pool[T] {
	return Pool[T]{Records: records}
}

// Len reports the number of records.
func (p Pool[T]) Len() int {
	return len(p.Records)
}

// UnmarshalJSON accepts a bare array of records, or an object holding the
// array under either the type-specific key ("actions") or the field key
// ("action_pool").
func (p *Pool[T]) UnmarshalJSON(data []byte) error {
	var zero T
	schema := zero.poolSchema()

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []T
		if err := decodeStrict(trimmed, &records); err != nil {
			return err
		}
		p.Records = records
		return nil
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return shapef("%s: expected an array or an object", schema.fieldKey)
	}
	if _, _, err := objectKeys(trimmed); err != nil {
		return fmt.Errorf("%s: %w", schema.fieldKey, err)
	}
	var raw json.RawMessage
	var found string
	for key, value := range object {
		if key != schema.typeKey && key != schema.fieldKey {
			return shapef("%s: unknown field %q", schema.fieldKey, key)
		}
		if found != "" {
			return shapef("%s: both %q and %q are set", schema.fieldKey, schema.typeKey, schema.fieldKey)
		}
		found = key
		raw = value
	}
	if found == "" || isNull(raw) {
		return shapef("%s: missing required field %q", schema.fieldKey, schema.fieldKey)
	}

	var records []T
	if err := decodeStrict(raw, &records); err != nil {
		return err
	}
	p.Records = records
	return nil
}

// Molecule projects the pool into its dynvec, preserving order.
func (p Pool[T]) Molecule() ([]byte, error) {
	var zero T
	return molecule.DynVecOf(zero.poolSchema().vector, p.Records, func(record T) ([]byte, error) {
		return record.Molecule()
	})
}

func readPool[T Record](data []byte, read func([]byte) (T, error)) (Pool[T], error) {
	var zero T
	records, err := readDynVec(zero.poolSchema().vector, data, read)
	if err != nil {
		return Pool[T]{}, err
	}
	return Pool[T]{Records: records}, nil
}
