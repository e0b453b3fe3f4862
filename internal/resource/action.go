package resource

import "github.com/louisbranch/spore-warriors-resources/internal/molecule"

// Action is a selectable action over a set of effects. Random selects one of
// EffectPool at runtime instead of applying them in order.
type Action struct {
	ID         ResourceID
	Random     bool
	EffectPool []ResourceID
}

// ActionPool holds every action.
type ActionPool = Pool[Action]

type actionDocument struct {
	ID         *ResourceID   `json:"id"`
	Random     *bool         `json:"random"`
	EffectPool *[]ResourceID `json:"effect_pool"`
}

// UnmarshalJSON decodes one action record.
func (a *Action) UnmarshalJSON(data []byte) error {
	var doc actionDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	a.ID = need(&missing, "id", doc.ID)
	a.Random = need(&missing, "random", doc.Random)
	a.EffectPool = need(&missing, "effect_pool", doc.EffectPool)
	return missing.err("action")
}

func (Action) poolSchema() poolSchema {
	return poolSchema{vector: "ActionVec", typeKey: "actions", fieldKey: "action_pool"}
}

// Molecule projects the action as table Action.
func (a Action) Molecule() ([]byte, error) {
	return molecule.NewTable("Action").
		Add(a.ID.molecule()).
		Add(molecule.Bool(a.Random)).
		AddErr(resourceIDVec(a.EffectPool)).
		Build()
}

func readAction(data []byte) (Action, error) {
	r, err := readFields("Action", data, 3)
	if err != nil {
		return Action{}, err
	}
	a := Action{
		ID:         fieldOf(r, readResourceID),
		Random:     fieldOf(r, readBool),
		EffectPool: fieldOf(r, readResourceIDVec),
	}
	return a, r.err
}
