package resource

import (
	"fmt"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// Kind identifies one pool of the bundle. The numeric order is the field order
// of the bundle table.
type Kind int

const (
	KindAction Kind = iota
	KindCard
	KindSystem
	KindEnemy
	KindLoot
	KindScene
	KindWarrior
	KindItem
)

// KindCount is the number of pools in a bundle.
const KindCount = 8

var kindNames = [KindCount]string{
	KindAction:  "actions",
	KindCard:    "cards",
	KindSystem:  "systems",
	KindEnemy:   "enemies",
	KindLoot:    "loots",
	KindScene:   "scenes",
	KindWarrior: "warriors",
	KindItem:    "items",
}

// Kinds returns every kind in bundle order.
func Kinds() []Kind {
	return []Kind{KindAction, KindCard, KindSystem, KindEnemy, KindLoot, KindScene, KindWarrior, KindItem}
}

// String returns the document name of the kind ("actions", "cards", ...).
func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a document name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Bundle aggregates the eight pools in bundle order.
type Bundle struct {
	Actions  ActionPool
	Cards    CardPool
	Systems  SystemPool
	Enemies  EnemyPool
	Loots    LootPool
	Scenes   ScenePool
	Warriors WarriorPool
	Items    ItemPool
}

// Len reports the record count of one pool.
func (b Bundle) Len(kind Kind) int {
	switch kind {
	case KindAction:
		return b.Actions.Len()
	case KindCard:
		return b.Cards.Len()
	case KindSystem:
		return b.Systems.Len()
	case KindEnemy:
		return b.Enemies.Len()
	case KindLoot:
		return b.Loots.Len()
	case KindScene:
		return b.Scenes.Len()
	case KindWarrior:
		return b.Warriors.Len()
	case KindItem:
		return b.Items.Len()
	}
	return 0
}

// ProjectPool projects one pool into its vector. Pools are independent, so
// callers may project them concurrently.
func (b Bundle) ProjectPool(kind Kind) ([]byte, error) {
	switch kind {
	case KindAction:
		return b.Actions.Molecule()
	case KindCard:
		return b.Cards.Molecule()
	case KindSystem:
		return b.Systems.Molecule()
	case KindEnemy:
		return b.Enemies.Molecule()
	case KindLoot:
		return b.Loots.Molecule()
	case KindScene:
		return b.Scenes.Molecule()
	case KindWarrior:
		return b.Warriors.Molecule()
	case KindItem:
		return b.Items.Molecule()
	}
	return nil, &molecule.InvariantError{Schema: "ResourcePool", Reason: fmt.Sprintf("unknown pool %s", kind)}
}

// Molecule projects every pool and assembles the bundle.
func (b Bundle) Molecule() ([]byte, error) {
	var vectors [KindCount][]byte
	for _, kind := range Kinds() {
		vector, err := b.ProjectPool(kind)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", kind, err)
		}
		vectors[kind] = vector
	}
	return AssembleBundle(vectors)
}

// AssembleBundle lays projected pool vectors out as table ResourcePool in
// bundle order.
func AssembleBundle(vectors [KindCount][]byte) ([]byte, error) {
	table := molecule.NewTable("ResourcePool")
	for _, kind := range Kinds() {
		if vectors[kind] == nil {
			return nil, &molecule.InvariantError{Schema: "ResourcePool", Reason: fmt.Sprintf("pool %s was not projected", kind)}
		}
		table.Add(vectors[kind])
	}
	return table.Build()
}

// DecodeBundle reads a compiled bundle back into typed records.
func DecodeBundle(data []byte) (Bundle, error) {
	fields, err := molecule.ReadTable("ResourcePool", data, KindCount)
	if err != nil {
		return Bundle{}, err
	}
	var b Bundle
	if b.Actions, err = readPool(fields[KindAction], readAction); err != nil {
		return Bundle{}, decodeErr(KindAction, err)
	}
	if b.Cards, err = readPool(fields[KindCard], readCard); err != nil {
		return Bundle{}, decodeErr(KindCard, err)
	}
	if b.Systems, err = readPool(fields[KindSystem], readSystem); err != nil {
		return Bundle{}, decodeErr(KindSystem, err)
	}
	if b.Enemies, err = readPool(fields[KindEnemy], readEnemy); err != nil {
		return Bundle{}, decodeErr(KindEnemy, err)
	}
	if b.Loots, err = readPool(fields[KindLoot], readLoot); err != nil {
		return Bundle{}, decodeErr(KindLoot, err)
	}
	if b.Scenes, err = readPool(fields[KindScene], readScene); err != nil {
		return Bundle{}, decodeErr(KindScene, err)
	}
	if b.Warriors, err = readPool(fields[KindWarrior], readWarrior); err != nil {
		return Bundle{}, decodeErr(KindWarrior, err)
	}
	if b.Items, err = readPool(fields[KindItem], readItem); err != nil {
		return Bundle{}, decodeErr(KindItem, err)
	}
	return b, nil
}

func decodeErr(kind Kind, err error) error {
	return fmt.Errorf("decode %s: %w", kind, err)
}

// DecodePool decodes one pool document into the matching field of b. Every
// failure wraps ErrShapeMismatch.
func (b *Bundle) DecodePool(kind Kind, data []byte) error {
	var err error
	switch kind {
	case KindAction:
		b.Actions, err = Decode[ActionPool](data)
	case KindCard:
		b.Cards, err = Decode[CardPool](data)
	case KindSystem:
		b.Systems, err = Decode[SystemPool](data)
	case KindEnemy:
		b.Enemies, err = Decode[EnemyPool](data)
	case KindLoot:
		b.Loots, err = Decode[LootPool](data)
	case KindScene:
		b.Scenes, err = Decode[ScenePool](data)
	case KindWarrior:
		b.Warriors, err = Decode[WarriorPool](data)
	case KindItem:
		b.Items, err = Decode[ItemPool](data)
	default:
		return shapef("unknown pool %s", kind)
	}
	return err
}
