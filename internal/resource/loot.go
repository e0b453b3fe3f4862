package resource

import "github.com/louisbranch/spore-warriors-resources/internal/molecule"

// Package is a drop-table slice: Size picks drawn from ItemPool.
type Package struct {
	Size     uint8
	ItemPool []ResourceID
}

type packageDocument struct {
	Size     *uint8        `json:"size"`
	ItemPool *[]ResourceID `json:"item_pool"`
}

// UnmarshalJSON decodes {"size": n, "item_pool": [..]}.
func (p *Package) UnmarshalJSON(data []byte) error {
	var doc packageDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	p.Size = need(&missing, "size", doc.Size)
	p.ItemPool = need(&missing, "item_pool", doc.ItemPool)
	return missing.err("package")
}

func (p Package) molecule() ([]byte, error) {
	return molecule.NewTable("Package").
		Add(molecule.Byte(p.Size)).
		AddErr(resourceIDVec(p.ItemPool)).
		Build()
}

func readPackage(data []byte) (Package, error) {
	r, err := readFields("Package", data, 2)
	if err != nil {
		return Package{}, err
	}
	p := Package{
		Size:     fieldOf(r, readByte),
		ItemPool: fieldOf(r, readResourceIDVec),
	}
	return p, r.err
}

// Loot is the reward rolled after an encounter.
type Loot struct {
	ID            ResourceID
	Gold          Range[uint16]
	Score         Range[uint16]
	CardPool      Package
	PropsPool     *Package
	EquipmentPool *Package
}

// LootPool holds every loot table.
type LootPool = Pool[Loot]

type lootDocument struct {
	ID            *ResourceID    `json:"id"`
	Gold          *Range[uint16] `json:"gold"`
	Score         *Range[uint16] `json:"score"`
	CardPool      *Package       `json:"card_pool"`
	PropsPool     *Package       `json:"props_pool"`
	EquipmentPool *Package       `json:"equipment_pool"`
}

// UnmarshalJSON decodes one loot record. props_pool and equipment_pool may be
// absent or null.
func (l *Loot) UnmarshalJSON(data []byte) error {
	var doc lootDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	l.ID = need(&missing, "id", doc.ID)
	l.Gold = need(&missing, "gold", doc.Gold)
	l.Score = need(&missing, "score", doc.Score)
	l.CardPool = need(&missing, "card_pool", doc.CardPool)
	l.PropsPool = doc.PropsPool
	l.EquipmentPool = doc.EquipmentPool
	return missing.err("loot")
}

func (Loot) poolSchema() poolSchema {
	return poolSchema{vector: "LootVec", typeKey: "loots", fieldKey: "loot_pool"}
}

// Molecule projects the loot as table Loot.
func (l Loot) Molecule() ([]byte, error) {
	return molecule.NewTable("Loot").
		Add(l.ID.molecule()).
		Add(randomNumber(l.Gold)).
		Add(randomNumber(l.Score)).
		AddErr(l.CardPool.molecule()).
		AddErr(molecule.OptionOf(l.PropsPool, Package.molecule)).
		AddErr(molecule.OptionOf(l.EquipmentPool, Package.molecule)).
		Build()
}

func readLoot(data []byte) (Loot, error) {
	r, err := readFields("Loot", data, 6)
	if err != nil {
		return Loot{}, err
	}
	l := Loot{
		ID:            fieldOf(r, readResourceID),
		Gold:          fieldOf(r, readRandomNumber),
		Score:         fieldOf(r, readRandomNumber),
		CardPool:      fieldOf(r, readPackage),
		PropsPool:     optionalFieldOf(r, readPackage),
		EquipmentPool: optionalFieldOf(r, readPackage),
	}
	return l, r.err
}
