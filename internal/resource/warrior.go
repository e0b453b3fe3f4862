package resource

import "github.com/louisbranch/spore-warriors-resources/internal/molecule"

// Warrior is a playable character and its starting state.
type Warrior struct {
	ID            ResourceID
	SpecialCards  []ResourceID
	HP            uint16
	Gold          uint16
	Power         uint8
	Motion        uint8
	ViewRange     uint8
	Stats         Stats
	Physique      uint8
	DrawCount     uint8
	DeckStatus    []ResourceID
	PackageStatus []ResourceID
}

// WarriorPool holds every warrior.
type WarriorPool = Pool[Warrior]

type warriorDocument struct {
	ID            *ResourceID   `json:"id"`
	SpecialCards  *[]ResourceID `json:"special_cards"`
	HP            *uint16       `json:"hp"`
	Gold          *uint16       `json:"gold"`
	Power         *uint8        `json:"power"`
	Motion        *uint8        `json:"motion"`
	ViewRange     *uint8        `json:"view_range"`
	Physique      *uint8        `json:"physique"`
	DrawCount     *uint8        `json:"draw_count"`
	DeckStatus    *[]ResourceID `json:"deck_status"`
	PackageStatus *[]ResourceID `json:"package_status"`
	statsDocument
}

// UnmarshalJSON decodes one warrior record.
func (w *Warrior) UnmarshalJSON(data []byte) error {
	var doc warriorDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	w.ID = need(&missing, "id", doc.ID)
	w.SpecialCards = need(&missing, "special_cards", doc.SpecialCards)
	w.HP = need(&missing, "hp", doc.HP)
	w.Gold = need(&missing, "gold", doc.Gold)
	w.Power = need(&missing, "power", doc.Power)
	w.Motion = need(&missing, "motion", doc.Motion)
	w.ViewRange = need(&missing, "view_range", doc.ViewRange)
	w.Stats = doc.stats()
	w.Physique = need(&missing, "physique", doc.Physique)
	w.DrawCount = need(&missing, "draw_count", doc.DrawCount)
	w.DeckStatus = need(&missing, "deck_status", doc.DeckStatus)
	w.PackageStatus = need(&missing, "package_status", doc.PackageStatus)
	return missing.err("warrior")
}

func (Warrior) poolSchema() poolSchema {
	return poolSchema{vector: "WarriorVec", typeKey: "warriors", fieldKey: "warrior_pool"}
}

// Molecule projects the warrior as table Warrior.
func (w Warrior) Molecule() ([]byte, error) {
	t := molecule.NewTable("Warrior").
		Add(w.ID.molecule()).
		AddErr(resourceIDVec(w.SpecialCards)).
		Add(number(w.HP)).
		Add(number(w.Gold)).
		Add(molecule.Byte(w.Power)).
		Add(molecule.Byte(w.Motion)).
		Add(molecule.Byte(w.ViewRange))
	w.Stats.addTo(t)
	return t.Add(molecule.Byte(w.Physique)).
		Add(molecule.Byte(w.DrawCount)).
		AddErr(resourceIDVec(w.DeckStatus)).
		AddErr(resourceIDVec(w.PackageStatus)).
		Build()
}

func readWarrior(data []byte) (Warrior, error) {
	r, err := readFields("Warrior", data, 17)
	if err != nil {
		return Warrior{}, err
	}
	w := Warrior{
		ID:            fieldOf(r, readResourceID),
		SpecialCards:  fieldOf(r, readResourceIDVec),
		HP:            fieldOf(r, readNumber),
		Gold:          fieldOf(r, readNumber),
		Power:         fieldOf(r, readByte),
		Motion:        fieldOf(r, readByte),
		ViewRange:     fieldOf(r, readByte),
		Stats:         readStats(r),
		Physique:      fieldOf(r, readByte),
		DrawCount:     fieldOf(r, readByte),
		DeckStatus:    fieldOf(r, readResourceIDVec),
		PackageStatus: fieldOf(r, readResourceIDVec),
	}
	return w, r.err
}
