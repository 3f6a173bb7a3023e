// Package export writes assembled sub-meshes as glTF documents.
package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/meshtable/pkg/assemble"
	"github.com/Faultbox/meshtable/pkg/formats"
)

// Document builds a glTF document with one mesh and node per sub-mesh and
// one primitive per index table. Strips are expanded to triangle lists
// since glTF has no strip restart. materials names the document materials
// in material-index order.
func Document(subMeshes []*assemble.SubMesh, materials []string) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	for _, name := range materials {
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:        name,
			DoubleSided: true,
		})
	}

	for _, sm := range subMeshes {
		if sm == nil || len(sm.Positions) == 0 {
			continue
		}

		positions := make([][3]float32, len(sm.Positions))
		for i, p := range sm.Positions {
			positions[i] = p
		}
		positionAccessor := modeler.WritePosition(doc, positions)

		mesh := &gltf.Mesh{Name: sm.Name}
		for i, it := range sm.IndexTables {
			triangles := it.Triangles()
			if len(triangles) == 0 {
				continue
			}

			indices := make([]uint32, 0, len(triangles)*3)
			for _, index := range formats.FlattenTriangles(triangles) {
				if int(index) >= len(sm.Positions) {
					return nil, errors.Errorf("sub-mesh %q index table %d references vertex %d of %d",
						sm.Name, i, index, len(sm.Positions))
				}
				indices = append(indices, uint32(index))
			}
			indicesAccessor := modeler.WriteIndices(doc, indices)

			primitive := &gltf.Primitive{
				Indices:    &indicesAccessor,
				Attributes: map[string]uint32{"POSITION": positionAccessor},
			}
			if it.MaterialIndex >= 0 && int(it.MaterialIndex) < len(doc.Materials) {
				primitive.Material = gltf.Index(uint32(it.MaterialIndex))
			}
			mesh.Primitives = append(mesh.Primitives, primitive)
		}
		if len(mesh.Primitives) == 0 {
			continue
		}

		doc.Meshes = append(doc.Meshes, mesh)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name: sm.Name,
			Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
		})
	}

	return doc, nil
}

// Write encodes doc to w, as GLB when binary is set.
func Write(w io.Writer, doc *gltf.Document, binary bool) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encode gltf")
	}
	return nil
}
