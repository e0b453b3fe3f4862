package resource

import (
	"encoding/json"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// NodeKind is the NodeInstance union id. The order is part of the wire
// format.
type NodeKind uint32

const (
	NodeKindEnemy NodeKind = iota
	NodeKindTreasureChest
	NodeKindRecoverPoint
	NodeKindItemMerchant
	NodeKindCardMerchant
	NodeKindUnknown
	NodeKindCampsite
	NodeKindBarrier
	NodeKindStartingPoint
	NodeKindTargetingPoint
)

var nodeInstanceUnion = molecule.Union{
	Name: "NodeInstance",
	Items: []string{
		"NodeEnemy",
		"NodeTreasureChest",
		"NodeRecoverPoint",
		"NodeItemMerchant",
		"NodeCardMerchant",
		"NodeUnknown",
		"NodeCampsite",
		"NodeBarrier",
		"NodeStartingPoint",
		"NodeTargetingPoint",
	},
}

// nodeTags maps document tags to node kinds. Variant names are also accepted
// in CamelCase, as Value and Duration accept them.
var nodeTags = map[string]NodeKind{
	"enemy":           NodeKindEnemy,
	"treasure_chest":  NodeKindTreasureChest,
	"recover_point":   NodeKindRecoverPoint,
	"item_merchant":   NodeKindItemMerchant,
	"card_merchant":   NodeKindCardMerchant,
	"unknown":         NodeKindUnknown,
	"campsite":        NodeKindCampsite,
	"barrier":         NodeKindBarrier,
	"starting_point":  NodeKindStartingPoint,
	"targeting_point": NodeKindTargetingPoint,

	"Enemy":          NodeKindEnemy,
	"TreasureChest":  NodeKindTreasureChest,
	"RecoverPoint":   NodeKindRecoverPoint,
	"ItemMerchant":   NodeKindItemMerchant,
	"CardMerchant":   NodeKindCardMerchant,
	"Unknown":        NodeKindUnknown,
	"Campsite":       NodeKindCampsite,
	"Barrier":        NodeKindBarrier,
	"StartingPoint":  NodeKindStartingPoint,
	"TargetingPoint": NodeKindTargetingPoint,
}

// NodeInstance is the content of a level node. The set of implementations is
// closed to this package.
type NodeInstance interface {
	Kind() NodeKind
	payload() ([]byte, error)
}

// NodeEnemy spawns Count enemies drawn from EnemyPool.
type NodeEnemy struct {
	Count     uint8
	EnemyPool []ResourceID
}

// NodeTreasureChest offers Pick of Count items drawn from ItemPool.
type NodeTreasureChest struct {
	Pick     uint8
	Count    uint8
	ItemPool []ResourceID
}

// NodeRecoverPoint restores HPPercent of the warrior's hit points.
type NodeRecoverPoint struct {
	HPPercent uint8
}

// NodeItemMerchant sells Count items drawn from ItemPool.
type NodeItemMerchant struct {
	Count    uint8
	ItemPool []ResourceID
}

// NodeCardMerchant sells Count cards drawn from CardPool.
type NodeCardMerchant struct {
	Count    uint8
	CardPool []ResourceID
}

// NodeUnknown runs Count system contexts drawn from SystemPool.
type NodeUnknown struct {
	Count      uint8
	SystemPool []Context
}

// NodeCampsite runs one card context.
type NodeCampsite struct {
	CardContext Context
}

// NodeBarrier blocks the cell.
type NodeBarrier struct{}

// NodeStartingPoint is where the warrior enters the scene.
type NodeStartingPoint struct{}

// NodeTargetingPoint is the scene's exit.
type NodeTargetingPoint struct{}

func (NodeEnemy) Kind() NodeKind { return NodeKindEnemy }
func (NodeTreasureChest) Kind() NodeKind { return NodeKindTreasureChest }
func (NodeRecoverPoint) Kind() NodeKind { return NodeKindRecoverPoint }
func (NodeItemMerchant) Kind() NodeKind { return NodeKindItemMerchant }
func (NodeCardMerchant) Kind() NodeKind { return NodeKindCardMerchant }
func (NodeUnknown) Kind() NodeKind { return NodeKindUnknown }
func (NodeCampsite) Kind() NodeKind { return NodeKindCampsite }
func (NodeBarrier) Kind() NodeKind { return NodeKindBarrier }
func (NodeStartingPoint) Kind() NodeKind { return NodeKindStartingPoint }
func (NodeTargetingPoint) Kind() NodeKind { return NodeKindTargetingPoint }

func (n NodeEnemy) payload() ([]byte, error) {
	return molecule.NewTable("NodeEnemy").
		Add(molecule.Byte(n.Count)).
		AddErr(resourceIDVec(n.EnemyPool)).
		Build()
}

func (n NodeTreasureChest) payload() ([]byte, error) {
	return molecule.NewTable("NodeTreasureChest").
		Add(molecule.Byte(n.Pick)).
		Add(molecule.Byte(n.Count)).
		AddErr(resourceIDVec(n.ItemPool)).
		Build()
}

func (n NodeRecoverPoint) payload() ([]byte, error) {
	return molecule.NewTable("NodeRecoverPoint").Add(molecule.Byte(n.HPPercent)).Build()
}

func (n NodeItemMerchant) payload() ([]byte, error) {
	return molecule.NewTable("NodeItemMerchant").
		Add(molecule.Byte(n.Count)).
		AddErr(resourceIDVec(n.ItemPool)).
		Build()
}

func (n NodeCardMerchant) payload() ([]byte, error) {
	return molecule.NewTable("NodeCardMerchant").
		Add(molecule.Byte(n.Count)).
		AddErr(resourceIDVec(n.CardPool)).
		Build()
}

func (n NodeUnknown) payload() ([]byte, error) {
	return molecule.NewTable("NodeUnknown").
		Add(molecule.Byte(n.Count)).
		AddErr(contextVec(n.SystemPool)).
		Build()
}

func (n NodeCampsite) payload() ([]byte, error) {
	return molecule.NewTable("NodeCampsite").AddErr(n.CardContext.molecule()).Build()
}

func (NodeBarrier) payload() ([]byte, error) {
	return molecule.NewTable("NodeBarrier").Build()
}

func (NodeStartingPoint) payload() ([]byte, error) {
	return molecule.NewTable("NodeStartingPoint").Build()
}

func (NodeTargetingPoint) payload() ([]byte, error) {
	return molecule.NewTable("NodeTargetingPoint").Build()
}

func nodeInstanceMolecule(n NodeInstance) ([]byte, error) {
	if n == nil {
		return nil, &molecule.InvariantError{Schema: nodeInstanceUnion.Name, Reason: "level node has no instance"}
	}
	item, err := n.payload()
	if err != nil {
		return nil, err
	}
	return nodeInstanceUnion.Encode(uint32(n.Kind()), item)
}

type countPoolDocument struct {
	Count      *uint8        `json:"count"`
	EnemyPool  *[]ResourceID `json:"enemy_pool"`
	ItemPool   *[]ResourceID `json:"item_pool"`
	CardPool   *[]ResourceID `json:"card_pool"`
	SystemPool *[]Context    `json:"system_pool"`
	Pick       *uint8        `json:"pick"`
}

// decodeNodeInstance decodes an externally tagged node instance: a bare tag
// string or {"barrier": null} for payload-free variants, {"recover_point": n},
// {"campsite": {context}}, or {"enemy": {..}} and friends.
func decodeNodeInstance(data []byte) (NodeInstance, error) {
	tag, payload, err := decodeVariant("instance", data)
	if err != nil {
		return nil, err
	}
	kind, ok := nodeTags[tag]
	if !ok {
		return nil, shapef("instance: unknown node type %q", tag)
	}

	switch kind {
	case NodeKindBarrier, NodeKindStartingPoint, NodeKindTargetingPoint:
		if payload != nil {
			return nil, shapef("instance: %q carries no payload", tag)
		}
		switch kind {
		case NodeKindBarrier:
			return NodeBarrier{}, nil
		case NodeKindStartingPoint:
			return NodeStartingPoint{}, nil
		default:
			return NodeTargetingPoint{}, nil
		}
	}
	if payload == nil {
		return nil, shapef("instance: %q needs a payload", tag)
	}

	switch kind {
	case NodeKindRecoverPoint:
		var percent uint8
		if err := decodeStrict(payload, &percent); err != nil {
			return nil, err
		}
		return NodeRecoverPoint{HPPercent: percent}, nil
	case NodeKindCampsite:
		var c Context
		if err := decodeStrict(payload, &c); err != nil {
			return nil, err
		}
		return NodeCampsite{CardContext: c}, nil
	}

	return decodeCountPoolNode(tag, kind, payload)
}

func decodeCountPoolNode(tag string, kind NodeKind, payload json.RawMessage) (NodeInstance, error) {
	var doc countPoolDocument
	if err := decodeStrict(payload, &doc); err != nil {
		return nil, err
	}

	var missing missingFields
	count := need(&missing, "count", doc.Count)
	var node NodeInstance
	var extra []string
	switch kind {
	case NodeKindEnemy:
		node = NodeEnemy{Count: count, EnemyPool: need(&missing, "enemy_pool", doc.EnemyPool)}
		extra = unexpectedKeys(doc, "enemy_pool")
	case NodeKindTreasureChest:
		node = NodeTreasureChest{
			Pick:     need(&missing, "pick", doc.Pick),
			Count:    count,
			ItemPool: need(&missing, "item_pool", doc.ItemPool),
		}
		extra = unexpectedKeys(doc, "item_pool", "pick")
	case NodeKindItemMerchant:
		node = NodeItemMerchant{Count: count, ItemPool: need(&missing, "item_pool", doc.ItemPool)}
		extra = unexpectedKeys(doc, "item_pool")
	case NodeKindCardMerchant:
		node = NodeCardMerchant{Count: count, CardPool: need(&missing, "card_pool", doc.CardPool)}
		extra = unexpectedKeys(doc, "card_pool")
	default:
		node = NodeUnknown{Count: count, SystemPool: need(&missing, "system_pool", doc.SystemPool)}
		extra = unexpectedKeys(doc, "system_pool")
	}
	if len(extra) > 0 {
		return nil, shapef("%s: unknown field %q", tag, extra[0])
	}
	if err := missing.err(tag); err != nil {
		return nil, err
	}
	return node, nil
}

// unexpectedKeys lists the optional keys of countPoolDocument that are set
// but not part of the variant.
func unexpectedKeys(doc countPoolDocument, allowed ...string) []string {
	set := map[string]bool{
		"enemy_pool":  doc.EnemyPool != nil,
		"item_pool":   doc.ItemPool != nil,
		"card_pool":   doc.CardPool != nil,
		"system_pool": doc.SystemPool != nil,
		"pick":        doc.Pick != nil,
	}
	for _, key := range allowed {
		delete(set, key)
	}
	var extra []string
	for _, key := range []string{"enemy_pool", "item_pool", "card_pool", "system_pool", "pick"} {
		if set[key] {
			extra = append(extra, key)
		}
	}
	return extra
}

func readNodeInstance(data []byte) (NodeInstance, error) {
	id, item, err := molecule.ReadUnion(nodeInstanceUnion, data)
	if err != nil {
		return nil, err
	}
	name, _ := nodeInstanceUnion.ItemName(id)
	switch NodeKind(id) {
	case NodeKindEnemy:
		r, err := readFields(name, item, 2)
		if err != nil {
			return nil, err
		}
		n := NodeEnemy{Count: fieldOf(r, readByte), EnemyPool: fieldOf(r, readResourceIDVec)}
		return n, r.err
	case NodeKindTreasureChest:
		r, err := readFields(name, item, 3)
		if err != nil {
			return nil, err
		}
		n := NodeTreasureChest{
			Pick:     fieldOf(r, readByte),
			Count:    fieldOf(r, readByte),
			ItemPool: fieldOf(r, readResourceIDVec),
		}
		return n, r.err
	case NodeKindRecoverPoint:
		r, err := readFields(name, item, 1)
		if err != nil {
			return nil, err
		}
		n := NodeRecoverPoint{HPPercent: fieldOf(r, readByte)}
		return n, r.err
	case NodeKindItemMerchant:
		r, err := readFields(name, item, 2)
		if err != nil {
			return nil, err
		}
		n := NodeItemMerchant{Count: fieldOf(r, readByte), ItemPool: fieldOf(r, readResourceIDVec)}
		return n, r.err
	case NodeKindCardMerchant:
		r, err := readFields(name, item, 2)
		if err != nil {
			return nil, err
		}
		n := NodeCardMerchant{Count: fieldOf(r, readByte), CardPool: fieldOf(r, readResourceIDVec)}
		return n, r.err
	case NodeKindUnknown:
		r, err := readFields(name, item, 2)
		if err != nil {
			return nil, err
		}
		n := NodeUnknown{Count: fieldOf(r, readByte), SystemPool: fieldOf(r, readContextVec)}
		return n, r.err
	case NodeKindCampsite:
		r, err := readFields(name, item, 1)
		if err != nil {
			return nil, err
		}
		n := NodeCampsite{CardContext: fieldOf(r, readContext)}
		return n, r.err
	}

	if _, err := readFields(name, item, 0); err != nil {
		return nil, err
	}
	switch NodeKind(id) {
	case NodeKindBarrier:
		return NodeBarrier{}, nil
	case NodeKindStartingPoint:
		return NodeStartingPoint{}, nil
	default:
		return NodeTargetingPoint{}, nil
	}
}
