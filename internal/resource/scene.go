package resource

import (
	"encoding/json"

	"github.com/louisbranch/spore-warriors-resources/internal/molecule"
)

// LevelNode is one node of a scene. Size defaults to {0, 0}.
type LevelNode struct {
	Visible  bool
	Size     GridSize
	Instance NodeInstance
}

type levelNodeDocument struct {
	Visible  *bool           `json:"visible"`
	Size     *GridSize       `json:"size"`
	Instance json.RawMessage `json:"instance"`
}

// UnmarshalJSON decodes one level node.
func (n *LevelNode) UnmarshalJSON(data []byte) error {
	var doc levelNodeDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	n.Visible = need(&missing, "visible", doc.Visible)
	n.Size = orDefault(doc.Size)
	if isNull(doc.Instance) {
		missing = append(missing, "instance")
	}
	if err := missing.err("level node"); err != nil {
		return err
	}
	instance, err := decodeNodeInstance(doc.Instance)
	if err != nil {
		return err
	}
	n.Instance = instance
	return nil
}

func (n LevelNode) molecule() ([]byte, error) {
	return molecule.NewTable("LevelNode").
		Add(molecule.Bool(n.Visible)).
		Add(n.Size.molecule()).
		AddErr(nodeInstanceMolecule(n.Instance)).
		Build()
}

func readLevelNode(data []byte) (LevelNode, error) {
	r, err := readFields("LevelNode", data, 3)
	if err != nil {
		return LevelNode{}, err
	}
	n := LevelNode{
		Visible:  fieldOf(r, readBool),
		Size:     fieldOf(r, readGridSize),
		Instance: fieldOf(r, readNodeInstance),
	}
	return n, r.err
}

// FixedLevelNode pins a node to Point.
type FixedLevelNode struct {
	Point Coordinate
	Node  LevelNode
}

type fixedLevelNodeDocument struct {
	Point *Coordinate `json:"point"`
	Node  *LevelNode  `json:"node"`
}

// UnmarshalJSON decodes {"point": {..}, "node": {..}}.
func (f *FixedLevelNode) UnmarshalJSON(data []byte) error {
	var doc fixedLevelNodeDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	f.Point = need(&missing, "point", doc.Point)
	f.Node = need(&missing, "node", doc.Node)
	return missing.err("fixed node")
}

func (f FixedLevelNode) molecule() ([]byte, error) {
	return molecule.NewTable("FixedLevelNode").
		Add(f.Point.molecule()).
		AddErr(f.Node.molecule()).
		Build()
}

func readFixedLevelNode(data []byte) (FixedLevelNode, error) {
	r, err := readFields("FixedLevelNode", data, 2)
	if err != nil {
		return FixedLevelNode{}, err
	}
	f := FixedLevelNode{
		Point: fieldOf(r, readCoordinate),
		Node:  fieldOf(r, readLevelNode),
	}
	return f, r.err
}

// ScenePartition is a region from which Count nodes of NodePool are placed
// at runtime.
type ScenePartition struct {
	StartPoint Coordinate
	EndPoint   Coordinate
	Count      Range[uint8]
	NodePool   []LevelNode
}

type scenePartitionDocument struct {
	StartPoint *Coordinate   `json:"start_point"`
	EndPoint   *Coordinate   `json:"end_point"`
	Count      *Range[uint8] `json:"count"`
	NodePool   *[]LevelNode  `json:"node_pool"`
}

// UnmarshalJSON decodes one partition.
func (p *ScenePartition) UnmarshalJSON(data []byte) error {
	var doc scenePartitionDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	p.StartPoint = need(&missing, "start_point", doc.StartPoint)
	p.EndPoint = need(&missing, "end_point", doc.EndPoint)
	p.Count = need(&missing, "count", doc.Count)
	p.NodePool = need(&missing, "node_pool", doc.NodePool)
	return missing.err("partition")
}

func (p ScenePartition) molecule() ([]byte, error) {
	return molecule.NewTable("ScenePartition").
		Add(p.StartPoint.molecule()).
		Add(p.EndPoint.molecule()).
		Add(randomByte(p.Count)).
		AddErr(molecule.DynVecOf("LevelNodeVec", p.NodePool, LevelNode.molecule)).
		Build()
}

func readScenePartition(data []byte) (ScenePartition, error) {
	r, err := readFields("ScenePartition", data, 4)
	if err != nil {
		return ScenePartition{}, err
	}
	p := ScenePartition{
		StartPoint: fieldOf(r, readCoordinate),
		EndPoint:   fieldOf(r, readCoordinate),
		Count:      fieldOf(r, readRandomByte),
		NodePool: fieldOf(r, func(data []byte) ([]LevelNode, error) {
			return readDynVec("LevelNodeVec", data, readLevelNode)
		}),
	}
	return p, r.err
}

// Scene is a map of Width by Height cells.
type Scene struct {
	ID            ResourceID
	Width         uint8
	Height        uint8
	FixedNodes    []FixedLevelNode
	PartitionList []ScenePartition
}

// ScenePool holds every scene.
type ScenePool = Pool[Scene]

type sceneDocument struct {
	ID            *ResourceID       `json:"id"`
	Width         *uint8            `json:"width"`
	Height        *uint8            `json:"height"`
	FixedNodes    *[]FixedLevelNode `json:"fixed_nodes"`
	PartitionList *[]ScenePartition `json:"partition_list"`
}

// UnmarshalJSON decodes one scene record.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var doc sceneDocument
	if err := decodeStrict(data, &doc); err != nil {
		return err
	}
	var missing missingFields
	s.ID = need(&missing, "id", doc.ID)
	s.Width = need(&missing, "width", doc.Width)
	s.Height = need(&missing, "height", doc.Height)
	s.FixedNodes = need(&missing, "fixed_nodes", doc.FixedNodes)
	s.PartitionList = need(&missing, "partition_list", doc.PartitionList)
	return missing.err("scene")
}

func (Scene) poolSchema() poolSchema {
	return poolSchema{vector: "MapSceneVec", typeKey: "scenes", fieldKey: "scene_pool"}
}

// Molecule projects the scene as table MapScene.
func (s Scene) Molecule() ([]byte, error) {
	return molecule.NewTable("MapScene").
		Add(s.ID.molecule()).
		Add(molecule.Byte(s.Width)).
		Add(molecule.Byte(s.Height)).
		AddErr(molecule.DynVecOf("FixedLevelNodeVec", s.FixedNodes, FixedLevelNode.molecule)).
		AddErr(molecule.DynVecOf("ScenePartitionVec", s.PartitionList, ScenePartition.molecule)).
		Build()
}

func readScene(data []byte) (Scene, error) {
	r, err := readFields("MapScene", data, 5)
	if err != nil {
		return Scene{}, err
	}
	s := Scene{
		ID:     fieldOf(r, readResourceID),
		Width:  fieldOf(r, readByte),
		Height: fieldOf(r, readByte),
		FixedNodes: fieldOf(r, func(data []byte) ([]FixedLevelNode, error) {
			return readDynVec("FixedLevelNodeVec", data, readFixedLevelNode)
		}),
		PartitionList: fieldOf(r, func(data []byte) ([]ScenePartition, error) {
			return readDynVec("ScenePartitionVec", data, readScenePartition)
		}),
	}
	return s, r.err
}
