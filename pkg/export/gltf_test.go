package export

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/meshtable/pkg/assemble"
	"github.com/Faultbox/meshtable/pkg/stripify"
)

func buildSubMesh(t *testing.T) (*assemble.SubMesh, []string) {
	t.Helper()
	b := assemble.NewBuilder(stripify.Stripifier())
	sm, err := b.AddSubMesh("plane", []assemble.Primitive{
		{
			Name:      "quad",
			Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
			Faces:     [][3]uint32{{0, 1, 2}, {2, 1, 3}},
			Material:  "stone",
		},
	})
	if err != nil {
		t.Fatalf("AddSubMesh: %v", err)
	}
	return sm, b.Materials
}

func TestDocument(t *testing.T) {
	sm, materials := buildSubMesh(t)

	doc, err := Document([]*assemble.SubMesh{sm, nil}, materials)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	if len(doc.Meshes) != 1 || len(doc.Nodes) != 1 {
		t.Fatalf("meshes=%d nodes=%d, want 1 1", len(doc.Meshes), len(doc.Nodes))
	}
	if len(doc.Scenes[0].Nodes) != 1 {
		t.Errorf("scene nodes = %v", doc.Scenes[0].Nodes)
	}
	if doc.Nodes[0].Name != "plane" {
		t.Errorf("node name = %q", doc.Nodes[0].Name)
	}

	prim := doc.Meshes[0].Primitives[0]
	if prim.Material == nil || *prim.Material != 0 {
		t.Errorf("material = %v, want 0", prim.Material)
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		t.Fatalf("ReadIndices: %v", err)
	}
	if len(indices) != 6 {
		t.Errorf("expanded indices = %v, want 6 entries", indices)
	}
	if count := doc.Accessors[prim.Attributes["POSITION"]].Count; count != 4 {
		t.Errorf("position count = %d, want 4", count)
	}
}

func TestWrite_Binary(t *testing.T) {
	sm, materials := buildSubMesh(t)
	doc, err := Document([]*assemble.SubMesh{sm}, materials)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, doc, true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatalf("missing GLB magic in %d bytes", buf.Len())
	}

	decoded := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(buf.Bytes())).Decode(decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Meshes) != 1 || len(decoded.Materials) != 1 {
		t.Errorf("decoded meshes=%d materials=%d", len(decoded.Meshes), len(decoded.Materials))
	}
}
