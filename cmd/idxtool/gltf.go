package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshtable/internal/logger"
	"github.com/Faultbox/meshtable/pkg/export"
)

func cmdGLTF(args []string) error {
	fs := flag.NewFlagSet("gltf", flag.ExitOnError)
	output := fs.String("o", "", "Output glTF file")
	cfg, paths, err := setup(fs, args)
	if err != nil {
		return err
	}
	if len(paths) < 1 || *output == "" {
		return errors.New("usage: idxtool gltf <scene.yaml> -o <out.glb>")
	}

	scene, err := loadScene(paths[0])
	if err != nil {
		return err
	}
	b, subMeshes, err := assembleScene(scene, cfg.Codec.Strip)
	if err != nil {
		return err
	}

	doc, err := export.Document(subMeshes, b.Materials)
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.Write(f, doc, cfg.Export.Binary); err != nil {
		return err
	}
	logger.Info("gltf written",
		zap.String("path", *output),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Bool("binary", cfg.Export.Binary))
	return nil
}
