// Package assemble turns scene-independent mesh primitives into sub-meshes
// made of index tables.
package assemble

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/Faultbox/meshtable/pkg/formats"
	"github.com/Faultbox/meshtable/pkg/geom"
)

// Assembly errors.
var (
	ErrTooManyVertices = errors.New("sub-mesh exceeds 16-bit vertex indices")
	ErrFaceOutOfRange  = errors.New("face references a missing vertex")
)

// maxVertices keeps every vertex index below the strip restart value.
const maxVertices = formats.StripRestart

// Primitive is one source mesh: its own vertices, triangle faces indexing
// them, the material it is drawn with and the bones that influence it.
// Bones are listed in local palette order.
type Primitive struct {
	Name      string       `yaml:"name"`
	Positions []mgl32.Vec3 `yaml:"positions"`
	Faces     [][3]uint32  `yaml:"faces"`
	Material  string       `yaml:"material"`
	Bones     []string     `yaml:"bones"`
}

// SubMesh is a merged vertex array drawn by one index table per primitive.
type SubMesh struct {
	Name           string
	Positions      []mgl32.Vec3
	IndexTables    []*formats.IndexTable
	BoundingSphere geom.BoundingSphere
}

// Builder collects sub-meshes for one mesh and owns its bone and material
// lists. Names are matched case-insensitively.
type Builder struct {
	// Stripifier, when set, converts each index table to a strip where
	// that is shorter.
	Stripifier formats.Stripifier

	Bones     []string
	Materials []string

	boneMap     map[string]int
	materialMap map[string]int
}

// NewBuilder returns a Builder using s to strip index tables (nil disables stripping).
func NewBuilder(s formats.Stripifier) *Builder {
	return &Builder{
		Stripifier:  s,
		boneMap:     make(map[string]int),
		materialMap: make(map[string]int),
	}
}

func lookup(m map[string]int, list *[]string, name string) int {
	key := strings.ToLower(name)
	if idx, ok := m[key]; ok {
		return idx
	}
	idx := len(*list)
	m[key] = idx
	*list = append(*list, name)
	return idx
}

// BoneIndex returns the mesh-level index of bone name, adding it if needed.
func (b *Builder) BoneIndex(name string) int {
	return lookup(b.boneMap, &b.Bones, name)
}

// MaterialIndex returns the mesh-level index of material name, adding it if needed.
func (b *Builder) MaterialIndex(name string) int {
	return lookup(b.materialMap, &b.Materials, name)
}

// AddSubMesh merges prims into one sub-mesh with an index table each.
// Returns nil without error when prims is empty.
func (b *Builder) AddSubMesh(name string, prims []Primitive) (*SubMesh, error) {
	if len(prims) == 0 {
		return nil, nil
	}

	vertexCount := 0
	for _, p := range prims {
		vertexCount += len(p.Positions)
	}
	if vertexCount > maxVertices {
		return nil, errors.Wrapf(ErrTooManyVertices, "sub-mesh %q has %d vertices", name, vertexCount)
	}

	sm := &SubMesh{
		Name:        name,
		Positions:   make([]mgl32.Vec3, 0, vertexCount),
		IndexTables: make([]*formats.IndexTable, 0, len(prims)),
	}

	for i, p := range prims {
		it, err := b.indexTable(p, len(sm.Positions))
		if err != nil {
			return nil, errors.Wrapf(err, "sub-mesh %q primitive %d (%s)", name, i, p.Name)
		}
		sm.IndexTables = append(sm.IndexTables, it)
		sm.Positions = append(sm.Positions, p.Positions...)
	}

	sm.BoundingSphere = geom.SphereFromPoints(sm.Positions)
	return sm, nil
}

func (b *Builder) indexTable(p Primitive, vertexOffset int) (*formats.IndexTable, error) {
	it := formats.NewIndexTable()

	if len(p.Bones) > 0 {
		it.BoneIndices = make([]uint16, len(p.Bones))
		for i, bone := range p.Bones {
			it.BoneIndices[i] = uint16(b.BoneIndex(bone))
		}
	}

	it.Indices = make([]uint16, 0, len(p.Faces)*3)
	for i, face := range p.Faces {
		for _, v := range face {
			if int(v) >= len(p.Positions) {
				return nil, errors.Wrapf(ErrFaceOutOfRange, "face %d vertex %d of %d", i, v, len(p.Positions))
			}
			it.Indices = append(it.Indices, uint16(vertexOffset+int(v)))
		}
	}
	it.Strip(b.Stripifier)

	it.MaterialIndex = int32(b.MaterialIndex(p.Material))

	box := geom.NewBoundingBox(p.Positions)
	it.BoundingBox = box
	it.BoundingSphere = box.Sphere()
	return it, nil
}
