package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/Faultbox/meshtable/pkg/formats"
)

var spewConfig = &spew.ConfigState{Indent: " ", DisableCapacities: true, DisablePointerAddresses: true}

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	count := fs.Int("count", 0, "Number of records")
	offset := fs.Int64("offset", 0, "Position of the first record")
	indexData := fs.String("index-data", "", "Index data file (default <file>.idx)")
	raw := fs.Bool("raw", false, "Dump decoded records verbatim")
	cfg, paths, err := setup(fs, args)
	if err != nil {
		return err
	}
	if len(paths) < 1 {
		return errors.New("usage: idxtool dump <records.bin> -count N")
	}

	format, _ := cfg.Codec.BinaryFormat()
	endianness, _ := cfg.Codec.ByteOrder()

	tables, err := readRecords(paths[0], *indexData, *offset, *count, format, endianness)
	if err != nil {
		return err
	}

	if *raw {
		spewConfig.Fdump(os.Stdout, tables)
		return nil
	}
	printTables(os.Stdout, format, tables)
	return nil
}

func printTables(w io.Writer, format formats.BinaryFormat, tables []*formats.IndexTable) {
	fmt.Fprintf(w, "Format:  %s\n", format)
	fmt.Fprintf(w, "Records: %d\n", len(tables))

	for i, it := range tables {
		triangles, dropped := formats.DecodeTriangles(it.Indices, it.PrimitiveType)

		fmt.Fprintln(w)
		fmt.Fprintf(w, "[%d] %s\n", i, it.PrimitiveType)
		fmt.Fprintf(w, "  Indices:   %d (%d triangles", len(it.Indices), len(triangles))
		if dropped > 0 {
			fmt.Fprintf(w, ", %d dropped", dropped)
		}
		fmt.Fprintln(w, ")")
		fmt.Fprintf(w, "  Material:  %d\n", it.MaterialIndex)
		if it.BoneIndices != nil {
			fmt.Fprintf(w, "  Bones:     %v\n", it.BoneIndices)
		}
		fmt.Fprintf(w, "  Sphere:    center %v radius %g\n", it.BoundingSphere.Center, it.BoundingSphere.Radius)
		if format.IsModern() {
			fmt.Fprintf(w, "  Box:       %v - %v\n", it.BoundingBox.Min, it.BoundingBox.Max)
		}
	}
}
