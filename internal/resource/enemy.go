package resource

import "github.com/louisbranch/spore-warriors-resources/internal/molecule"

// Stats are the combat modifiers shared by enemies and warriors. Every field
// defaults to 0 when the document omits it.
type Stats struct {
	Armor       uint8
	Shield      uint8
	Attack      uint8
	AttackWeak  uint8
	Defense     uint8
	DefenseWeak uint8
}

type statsDocument struct {
	Armor       *uint8 `json:"armor"`
	Shield      *uint8 `json:"shield"`
	Attack      *uint8 `json:"attack"`
	AttackWeak  *uint8 `json:"attack_weak"`
	Defense     *uint8 `json:"defense"`
	DefenseWeak *uint8 `json:"defense_weak"`
}

func (d statsDocument) stats() Stats {
	return Stats{
		Armor:       orDefault(d.Armor),
		Shield:      orDefault(d.Shield),
		Attack:      orDefault(d.Attack),
		AttackWeak:  orDefault(d.AttackWeak),
		Defense:     orDefault(d.Defense),
		DefenseWeak: orDefault(d.DefenseWeak),
	}
}

func (s Stats) addTo(t *molecule.Table) {
	t.Add(molecule.Byte(s.Armor)).
		Add(molecule.Byte(s.Shield)).
		Add(molecule.Byte(s.Attack)).
		Add(molecule.Byte(s.AttackWeak)).
		Add(molecule.Byte(s.Defense)).
		Add(molecule.Byte(s.DefenseWeak))
}

func readStats(r *fieldReader) Stats {
	return Stats{
		Armor:       fieldOf(r, readByte),
		Shield:      fieldOf(r, readByte),
		Attack:      fieldOf(r, readByte),
		AttackWeak:  fieldOf(r, readByte),
		Defense:     fieldOf(r, readByte),
		DefenseWeak: fieldOf(r, readByte),
	}
}

// ActionStrategy picks the enemy's next action from ActionPool.
type ActionStrategy struct {
	Random     bool
	ActionPool []ResourceID
}

type actionStrategyDocument struct {
	Random     *bool         `json:"random"`
	ActionPool *[]ResourceID `json:"action_pool"`
}

// UnmarshalJSON decodes {"random": bool, "action_pool": [..]}.
func (a *ActionStrategy) UnmarshalJSON(data []byte) error {
	var doc actionStrategyDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	a.Random = need(&missing, "random", doc.Random)
	a.ActionPool = need(&missing, "action_pool", doc.ActionPool)
	return missing.err("action_strategy")
}

func (a ActionStrategy) molecule() ([]byte, error) {
	return molecule.NewTable("ActionContext").
		Add(molecule.Bool(a.Random)).
		AddErr(resourceIDVec(a.ActionPool)).
		Build()
}

func readActionStrategy(data []byte) (ActionStrategy, error) {
	r, err := readFields("ActionContext", data, 2)
	if err != nil {
		return ActionStrategy{}, err
	}
	a := ActionStrategy{
		Random:     fieldOf(r, readBool),
		ActionPool: fieldOf(r, readResourceIDVec),
	}
	return a, r.err
}

// Enemy is an opponent placed by scene nodes.
type Enemy struct {
	ID             ResourceID
	Rank           uint8
	HP             uint16
	Stats          Stats
	LootPool       []ResourceID
	ActionStrategy ActionStrategy
}

// EnemyPool holds every enemy.
type EnemyPool = Pool[Enemy]

type enemyDocument struct {
	ID             *ResourceID     `json:"id"`
	Rank           *uint8          `json:"rank"`
	HP             *uint16         `json:"hp"`
	LootPool       *[]ResourceID   `json:"loot_pool"`
	ActionStrategy *ActionStrategy `json:"action_strategy"`
	statsDocument
}

// UnmarshalJSON decodes one enemy record.
func (e *Enemy) UnmarshalJSON(data []byte) error {
	var doc enemyDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	e.ID = need(&missing, "id", doc.ID)
	e.Rank = need(&missing, "rank", doc.Rank)
	e.HP = need(&missing, "hp", doc.HP)
	e.Stats = doc.stats()
	e.LootPool = need(&missing, "loot_pool", doc.LootPool)
	e.ActionStrategy = need(&missing, "action_strategy", doc.ActionStrategy)
	return missing.err("enemy")
}

func (Enemy) poolSchema() poolSchema {
	return poolSchema{vector: "EnemyVec", typeKey: "enemies", fieldKey: "enemy_pool"}
}

// Molecule projects the enemy as table Enemy.
func (e Enemy) Molecule() ([]byte, error) {
	t := molecule.NewTable("Enemy").
		Add(e.ID.molecule()).
		Add(molecule.Byte(e.Rank)).
		Add(number(e.HP))
	e.Stats.addTo(t)
	return t.AddErr(resourceIDVec(e.LootPool)).
		AddErr(e.ActionStrategy.molecule()).
		Build()
}

func readEnemy(data []byte) (Enemy, error) {
	r, err := readFields("Enemy", data, 11)
	if err != nil {
		return Enemy{}, err
	}
	e := Enemy{
		ID:             fieldOf(r, readResourceID),
		Rank:           fieldOf(r, readByte),
		HP:             fieldOf(r, readNumber),
		Stats:          readStats(r),
		LootPool:       fieldOf(r, readResourceIDVec),
		ActionStrategy: fieldOf(r, readActionStrategy),
	}
	return e, r.err
}
