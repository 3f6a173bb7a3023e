package main

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshtable/internal/logger"
	"github.com/Faultbox/meshtable/pkg/assemble"
	"github.com/Faultbox/meshtable/pkg/formats"
	"github.com/Faultbox/meshtable/pkg/stripify"
)

// Scene is the YAML input of build and gltf: a list of sub-meshes, each
// made of primitives.
type Scene struct {
	SubMeshes []SceneSubMesh `yaml:"sub_meshes"`
}

// SceneSubMesh names a group of primitives sharing one vertex array.
type SceneSubMesh struct {
	Name       string               `yaml:"name"`
	Primitives []assemble.Primitive `yaml:"primitives"`
}

// loadScene reads a scene file.
func loadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scene := new(Scene)
	if err := yaml.Unmarshal(data, scene); err != nil {
		return nil, errors.Wrapf(err, "parse scene %s", path)
	}
	return scene, nil
}

// assembleScene builds every sub-mesh of scene.
func assembleScene(scene *Scene, strip bool) (*assemble.Builder, []*assemble.SubMesh, error) {
	var s formats.Stripifier
	if strip {
		s = stripify.Stripifier()
	}
	b := assemble.NewBuilder(s)

	subMeshes := make([]*assemble.SubMesh, 0, len(scene.SubMeshes))
	for _, ssm := range scene.SubMeshes {
		sm, err := b.AddSubMesh(ssm.Name, ssm.Primitives)
		if err != nil {
			return nil, nil, err
		}
		if sm == nil {
			logger.Warn("skipping sub-mesh without primitives", zap.String("subMesh", ssm.Name))
			continue
		}
		subMeshes = append(subMeshes, sm)
	}
	return b, subMeshes, nil
}

// indexTables flattens the index tables of all sub-meshes in order.
func indexTables(subMeshes []*assemble.SubMesh) []*formats.IndexTable {
	var tables []*formats.IndexTable
	for _, sm := range subMeshes {
		tables = append(tables, sm.IndexTables...)
	}
	return tables
}
