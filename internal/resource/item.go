package resource

import "github.com/louisbranch/spore-warriors-resources/internal/molecule"

// Item is a prop or piece of equipment.
type Item struct {
	ID           ResourceID
	Class        uint8
	Quality      uint8
	RandomWeight Range[uint8]
	Price        Range[uint16]
	SystemPool   []ResourceID
}

// ItemPool holds every item.
type ItemPool = Pool[Item]

type itemDocument struct {
	ID           *ResourceID    `json:"id"`
	Class        *uint8         `json:"class"`
	Quality      *uint8         `json:"quality"`
	RandomWeight *Range[uint8]  `json:"random_weight"`
	Price        *Range[uint16] `json:"price"`
	SystemPool   *[]ResourceID  `json:"system_pool"`
}

// UnmarshalJSON decodes one item record.
func (i *Item) UnmarshalJSON(data []byte) error {
	var doc itemDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	i.ID = need(&missing, "id", doc.ID)
	i.Class = need(&missing, "class", doc.Class)
	i.Quality = need(&missing, "quality", doc.Quality)
	i.RandomWeight = need(&missing, "random_weight", doc.RandomWeight)
	i.Price = need(&missing, "price", doc.Price)
	i.SystemPool = need(&missing, "system_pool", doc.SystemPool)
	return missing.err("item")
}

func (Item) poolSchema() poolSchema {
	return poolSchema{vector: "ItemVec", typeKey: "items", fieldKey: "item_pool"}
}

// Molecule projects the item as table Item.
func (i Item) Molecule() ([]byte, error) {
	return molecule.NewTable("Item").
		Add(i.ID.molecule()).
		Add(molecule.Byte(i.Class)).
		Add(molecule.Byte(i.Quality)).
		Add(randomByte(i.RandomWeight)).
		Add(randomNumber(i.Price)).
		AddErr(resourceIDVec(i.SystemPool)).
		Build()
}

func readItem(data []byte) (Item, error) {
	r, err := readFields("Item", data, 6)
	if err != nil {
		return Item{}, err
	}
	i := Item{
		ID:           fieldOf(r, readResourceID),
		Class:        fieldOf(r, readByte),
		Quality:      fieldOf(r, readByte),
		RandomWeight: fieldOf(r, readRandomByte),
		Price:        fieldOf(r, readRandomNumber),
		SystemPool:   fieldOf(r, readResourceIDVec),
	}
	return i, r.err
}
