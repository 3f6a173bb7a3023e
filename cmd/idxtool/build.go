package main

import (
	"flag"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshtable/internal/logger"
)

func cmdBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	output := fs.String("o", "", "Output record file")
	cfg, paths, err := setup(fs, args)
	if err != nil {
		return err
	}
	if len(paths) < 1 || *output == "" {
		return errors.New("usage: idxtool build <scene.yaml> -o <out.bin>")
	}

	format, _ := cfg.Codec.BinaryFormat()
	endianness, _ := cfg.Codec.ByteOrder()

	scene, err := loadScene(paths[0])
	if err != nil {
		return err
	}
	b, subMeshes, err := assembleScene(scene, cfg.Codec.Strip)
	if err != nil {
		return err
	}

	logger.Info("scene assembled",
		zap.Int("subMeshes", len(subMeshes)),
		zap.Strings("bones", b.Bones),
		zap.Strings("materials", b.Materials))

	return writeRecords(*output, indexTables(subMeshes), format, endianness)
}
