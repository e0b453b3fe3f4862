package resource

import "github.com/louisbranch/spore-warriors-resources/internal/molecule"

// Card is a playable card.
type Card struct {
	ID         ResourceID
	Class      uint8
	PowerCost  uint8
	Price      Range[uint16]
	SystemPool []ResourceID
}

// CardPool holds every card.
type CardPool = Pool[Card]

type cardDocument struct {
	ID         *ResourceID    `json:"id"`
	Class      *uint8         `json:"class"`
	PowerCost  *uint8         `json:"power_cost"`
	Price      *Range[uint16] `json:"price"`
	SystemPool *[]ResourceID  `json:"system_pool"`
}

// UnmarshalJSON decodes one card record.
func (c *Card) UnmarshalJSON(data []byte) error {
	var doc cardDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	c.ID = need(&missing, "id", doc.ID)
	c.Class = need(&missing, "class", doc.Class)
	c.PowerCost = need(&missing, "power_cost", doc.PowerCost)
	c.Price = need(&missing, "price", doc.Price)
	c.SystemPool = need(&missing, "system_pool", doc.SystemPool)
	return missing.err("card")
}

func (Card) poolSchema() poolSchema {
	return poolSchema{vector: "CardVec", typeKey: "cards", fieldKey: "card_pool"}
}

// Molecule projects the card as table Card.
func (c Card) Molecule() ([]byte, error) {
	return molecule.NewTable("Card").
		Add(c.ID.molecule()).
		Add(molecule.Byte(c.Class)).
		Add(molecule.Byte(c.PowerCost)).
		Add(randomNumber(c.Price)).
		AddErr(resourceIDVec(c.SystemPool)).
		Build()
}

func readCard(data []byte) (Card, error) {
	r, err := readFields("Card", data, 5)
	if err != nil {
		return Card{}, err
	}
	c := Card{
		ID:         fieldOf(r, readResourceID),
		Class:      fieldOf(r, readByte),
		PowerCost:  fieldOf(r, readByte),
		Price:      fieldOf(r, readRandomNumber),
		SystemPool: fieldOf(r, readResourceIDVec),
	}
	return c, r.err
}
