package resource

import (
	"encoding/json"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// System invokes a runtime system with arguments, optionally for a limited
// Duration. It replaces the three-phase trigger/execution/discard effect
// record, which is rejected rather than converted.
type System struct {
	ID         ResourceID
	SystemID   SystemID
	TargetType uint8
	Args       []Value
	Duration   *Duration
}

// SystemPool holds every system.
type SystemPool = Pool[System]

type systemDocument struct {
	ID         *ResourceID `json:"id"`
	SystemID   *SystemID   `json:"system_id"`
	System     *SystemID   `json:"system"`
	TargetType *uint8      `json:"target_type"`
	Args       *[]Value    `json:"args"`
	Duration   *Duration   `json:"duration"`
}

var legacyEffectKeys = []string{"trigger", "execution", "discard"}

// UnmarshalJSON decodes one system record. "system" is accepted as an alias
// of "system_id"; target_type defaults to 0.
func (s *System) UnmarshalJSON(data []byte) error {
	if key, ok := legacyEffectKey(data); ok {
		return shapef("system: %q belongs to the three-phase effect record, which is not supported; use system_id, args and duration", key)
	}

	var doc systemDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	if doc.SystemID != nil && doc.System != nil {
		return shapef("system: both %q and %q are set", "system_id", "system")
	}
	if doc.SystemID == nil {
		doc.SystemID = doc.System
	}

	var missing missingFields
	s.ID = need(&missing, "id", doc.ID)
	s.SystemID = need(&missing, "system_id", doc.SystemID)
	s.TargetType = orDefault(doc.TargetType)
	s.Args = need(&missing, "args", doc.Args)
	s.Duration = doc.Duration
	return missing.err("system")
}

func legacyEffectKey(data []byte) (string, bool) {
	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return "", false
	}
	for _, key := range legacyEffectKeys {
		if _, ok := object[key]; ok {
			return key, true
		}
	}
	return "", false
}

func (System) poolSchema() poolSchema {
	return poolSchema{vector: "SystemVec", typeKey: "systems", fieldKey: "system_pool"}
}

// Molecule projects the system as table System.
func (s System) Molecule() ([]byte, error) {
	return molecule.NewTable("System").
		Add(s.ID.molecule()).
		Add(s.SystemID.molecule()).
		Add(molecule.Byte(s.TargetType)).
		AddErr(valueVec(s.Args)).
		AddErr(molecule.OptionOf(s.Duration, Duration.molecule)).
		Build()
}

func readSystem(data []byte) (System, error) {
	r, err := readFields("System", data, 5)
	if err != nil {
		return System{}, err
	}
	s := System{
		ID:         fieldOf(r, readResourceID),
		SystemID:   fieldOf(r, readSystemID),
		TargetType: fieldOf(r, readByte),
		Args:       fieldOf(r, readValueVec),
		Duration:   optionalFieldOf(r, readDuration),
	}
	return s, r.err
}
