package resource

import (
	"encoding/json"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// Range is a [Min, Max] interval sampled uniformly by the runtime. Min <= Max
// is not checked here.
type Range[T uint8 | uint16] struct {
	Min T
	Max T
}

type rangeDocument[T uint8 | uint16] struct {
	Min *T `json:"min"`
	Max *T `json:"max"`
}

// UnmarshalJSON decodes {"min": .., "max": ..}.
func (r *Range[T]) UnmarshalJSON(data []byte) error {
	var doc rangeDocument[T]
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	r.Min = need(&missing, "min", doc.Min)
	r.Max = need(&missing, "max", doc.Max)
	return missing.err("range")
}

// randomNumber projects a Range[uint16] as struct RandomNumber.
func randomNumber(r Range[uint16]) []byte {
	return molecule.Struct(number(r.Min), number(r.Max))
}

// randomByte projects a Range[uint8] as struct RandomByte.
func randomByte(r Range[uint8]) []byte {
	return molecule.Struct(molecule.Byte(r.Min), molecule.Byte(r.Max))
}

func readRandomNumber(data []byte) (Range[uint16], error) {
	fields, err := molecule.ReadStruct("RandomNumber", data, uint16Size, uint16Size)
	if err != nil {
		return Range[uint16]{}, err
	}
	minimum, _ := readNumber(fields[0])
	maximum, _ := readNumber(fields[1])
	return Range[uint16]{Min: minimum, Max: maximum}, nil
}

func readRandomByte(data []byte) (Range[uint8], error) {
	fields, err := molecule.ReadStruct("RandomByte", data, 1, 1)
	if err != nil {
		return Range[uint8]{}, err
	}
	return Range[uint8]{Min: fields[0][0], Max: fields[1][0]}, nil
}

// GridSize is the footprint of a level node.
type GridSize struct {
	X uint8
	Y uint8
}

// Coordinate is a grid cell.
type Coordinate struct {
	X uint8
	Y uint8
}

type pointDocument struct {
	X *uint8 `json:"x"`
	Y *uint8 `json:"y"`
}

func decodePoint(record string, data []byte) (uint8, uint8, error) {
	var doc pointDocument
	if err := decodeStrict(data, &doc); err != nil {
		return 0, 0, err
	}
	var missing missingFields
	x := need(&missing, "x", doc.X)
	y := need(&missing, "y", doc.Y)
	return x, y, missing.err(record)
}

// UnmarshalJSON decodes {"x": .., "y": ..}.
func (s *GridSize) UnmarshalJSON(data []byte) error {
	x, y, err := decodePoint("size", data)
	if err != nil {
		return err
	}
	*s = GridSize{X: x, Y: y}
	return nil
}

// UnmarshalJSON decodes {"x": .., "y": ..}.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	x, y, err := decodePoint("coordinate", data)
	if err != nil {
		return err
	}
	*c = Coordinate{X: x, Y: y}
	return nil
}

func (s GridSize) molecule() []byte {
	return molecule.Struct(molecule.Byte(s.X), molecule.Byte(s.Y))
}

func (c Coordinate) molecule() []byte {
	return molecule.Struct(molecule.Byte(c.X), molecule.Byte(c.Y))
}

func readGridSize(data []byte) (GridSize, error) {
	fields, err := molecule.ReadStruct("Size", data, 1, 1)
	if err != nil {
		return GridSize{}, err
	}
	return GridSize{X: fields[0][0], Y: fields[1][0]}, nil
}

func readCoordinate(data []byte) (Coordinate, error) {
	fields, err := molecule.ReadStruct("Coordinate", data, 1, 1)
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{X: fields[0][0], Y: fields[1][0]}, nil
}

// ValueKind is the Value union id. The order is part of the wire format.
type ValueKind uint32

const (
	ValueNumber ValueKind = iota
	ValueRandom
	ValueResource
	ValueSystem
)

var valueUnion = molecule.Union{
	Name:  "Value",
	Items: []string{"Number", "RandomNumber", "ResourceId", "SystemId"},
}

// Value is one typed system argument. Only the field selected by Kind is
// meaningful.
type Value struct {
	Kind     ValueKind
	Number   uint16
	Random   Range[uint16]
	Resource ResourceID
	System   SystemID
}

// NumberValue returns a literal number argument.
func NumberValue(n uint16) Value { return Value{Kind: ValueNumber, Number: n} }

// RandomValue returns a sampled range argument.
func RandomValue(minimum, maximum uint16) Value {
	return Value{Kind: ValueRandom, Random: Range[uint16]{Min: minimum, Max: maximum}}
}

// ResourceValue returns a resource reference argument.
func ResourceValue(id ResourceID) Value { return Value{Kind: ValueResource, Resource: id} }

// SystemValue returns a system reference argument.
func SystemValue(id SystemID) Value { return Value{Kind: ValueSystem, System: id} }

// UnmarshalJSON decodes {"number": n}, {"random": {..}}, {"resource": id} or
// {"system": id}.
func (v *Value) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeVariant("value", data)
	if err != nil {
		return err
	}
	if payload == nil {
		return shapef("value: variant %q needs a payload", tag)
	}
	switch tag {
	case "number", "Number":
		var n uint16
		err = decodeStrict(payload, &n)
		*v = NumberValue(n)
	case "random", "Random":
		var r Range[uint16]
		err = decodeStrict(payload, &r)
		*v = Value{Kind: ValueRandom, Random: r}
	case "resource", "Resource":
		var id ResourceID
		err = decodeStrict(payload, &id)
		*v = ResourceValue(id)
	case "system", "System":
		var id SystemID
		err = decodeStrict(payload, &id)
		*v = SystemValue(id)
	default:
		return shapef("value: unknown variant %q", tag)
	}
	return err
}

func (v Value) molecule() ([]byte, error) {
	var item []byte
	switch v.Kind {
	case ValueNumber:
		item = number(v.Number)
	case ValueRandom:
		item = randomNumber(v.Random)
	case ValueResource:
		item = v.Resource.molecule()
	case ValueSystem:
		item = v.System.molecule()
	}
	return valueUnion.Encode(uint32(v.Kind), item)
}

func readValue(data []byte) (Value, error) {
	id, item, err := molecule.ReadUnion(valueUnion, data)
	if err != nil {
		return Value{}, err
	}
	switch ValueKind(id) {
	case ValueNumber:
		n, err := readNumber(item)
		return NumberValue(n), err
	case ValueRandom:
		r, err := readRandomNumber(item)
		return Value{Kind: ValueRandom, Random: r}, err
	case ValueResource:
		resource, err := readResourceID(item)
		return ResourceValue(resource), err
	default:
		system, err := readSystemID(item)
		return SystemValue(system), err
	}
}

func valueVec(values []Value) ([]byte, error) {
	return molecule.DynVecOf("ValueVec", values, Value.molecule)
}

func readValueVec(data []byte) ([]Value, error) {
	return readDynVec("ValueVec", data, readValue)
}

// Context invokes a system with arguments.
type Context struct {
	SystemID SystemID
	Args     []Value
}

type contextDocument struct {
	System *SystemID `json:"system"`
	Args   *[]Value  `json:"args"`
}

// UnmarshalJSON decodes {"system": id, "args": [..]}.
func (c *Context) UnmarshalJSON(data []byte) error {
	var doc contextDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	c.SystemID = need(&missing, "system", doc.System)
	c.Args = need(&missing, "args", doc.Args)
	return missing.err("context")
}

func (c Context) molecule() ([]byte, error) {
	return molecule.NewTable("Context").
		Add(c.SystemID.molecule()).
		AddErr(valueVec(c.Args)).
		Build()
}

func readContext(data []byte) (Context, error) {
	r, err := readFields("Context", data, 2)
	if err != nil {
		return Context{}, err
	}
	c := Context{
		SystemID: fieldOf(r, readSystemID),
		Args:     fieldOf(r, readValueVec),
	}
	return c, r.err
}

func contextVec(contexts []Context) ([]byte, error) {
	return molecule.DynVecOf("ContextVec", contexts, Context.molecule)
}

func readContextVec(data []byte) ([]Context, error) {
	return readDynVec("ContextVec", data, readContext)
}

// LifePoint expires an effect when the listening system's point is reached.
type LifePoint struct {
	SystemID     SystemID
	Point        uint8
	RoundRecover bool
}

type lifePointDocument struct {
	System       *SystemID `json:"system"`
	Point        *uint8    `json:"point"`
	RoundRecover *bool     `json:"round_recover"`
}

// UnmarshalJSON decodes {"system": id, "point": n, "round_recover": bool}.
func (l *LifePoint) UnmarshalJSON(data []byte) error {
	var doc lifePointDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	l.SystemID = need(&missing, "system", doc.System)
	l.Point = need(&missing, "point", doc.Point)
	l.RoundRecover = need(&missing, "round_recover", doc.RoundRecover)
	return missing.err("life_point")
}

func (l LifePoint) molecule() []byte {
	return molecule.Struct(l.SystemID.molecule(), molecule.Byte(l.Point), molecule.Bool(l.RoundRecover))
}

func readLifePoint(data []byte) (LifePoint, error) {
	fields, err := molecule.ReadStruct("LifePoint", data, uint16Size, 1, 1)
	if err != nil {
		return LifePoint{}, err
	}
	system, _ := readSystemID(fields[0])
	roundRecover, err := molecule.ReadBool("round_recover", fields[2])
	if err != nil {
		return LifePoint{}, err
	}
	return LifePoint{SystemID: system, Point: fields[1][0], RoundRecover: roundRecover}, nil
}

// DurationKind is the Duration union id. The order is part of the wire format.
type DurationKind uint32

const (
	DurationRound DurationKind = iota
	DurationLifePoint
)

var durationUnion = molecule.Union{
	Name:  "Duration",
	Items: []string{"Number", "LifePoint"},
}

// Duration describes when an effect expires: after Rounds rounds, or on a
// LifePoint trigger.
type Duration struct {
	Kind      DurationKind
	Rounds    uint16
	LifePoint LifePoint
}

// UnmarshalJSON decodes {"round": n} or {"life_point": {..}}.
func (d *Duration) UnmarshalJSON(data []byte) error {
	tag, payload, err := decodeVariant("duration", data)
	if err != nil {
		return err
	}
	if payload == nil {
		return shapef("duration: variant %q needs a payload", tag)
	}
	switch tag {
	case "round", "Round":
		var rounds uint16
		err = decodeStrict(payload, &rounds)
		*d = Duration{Kind: DurationRound, Rounds: rounds}
	case "life_point", "LifePoint":
		var lp LifePoint
		err = decodeStrict(payload, &lp)
		*d = Duration{Kind: DurationLifePoint, LifePoint: lp}
	default:
		return shapef("duration: unknown variant %q", tag)
	}
	return err
}

func (d Duration) molecule() ([]byte, error) {
	var item []byte
	switch d.Kind {
	case DurationRound:
		item = number(d.Rounds)
	case DurationLifePoint:
		item = d.LifePoint.molecule()
	}
	return durationUnion.Encode(uint32(d.Kind), item)
}

func readDuration(data []byte) (Duration, error) {
	id, item, err := molecule.ReadUnion(durationUnion, data)
	if err != nil {
		return Duration{}, err
	}
	if DurationKind(id) == DurationRound {
		rounds, err := readNumber(item)
		return Duration{Kind: DurationRound, Rounds: rounds}, err
	}
	lp, err := readLifePoint(item)
	return Duration{Kind: DurationLifePoint, LifePoint: lp}, err
}

var _ json.Unmarshaler = (*Value)(nil)
