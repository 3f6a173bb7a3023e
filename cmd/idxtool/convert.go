package main

import (
	"flag"

	"github.com/pkg/errors"

	"github.com/Faultbox/meshtable/pkg/formats"
)

func cmdConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	from := fs.String("from", "", "Source format (default: -format)")
	to := fs.String("to", "", "Target format")
	count := fs.Int("count", 0, "Number of records")
	offset := fs.Int64("offset", 0, "Position of the first record")
	indexData := fs.String("index-data", "", "Source index data file (default <file>.idx)")
	output := fs.String("o", "", "Output record file")
	cfg, paths, err := setup(fs, args)
	if err != nil {
		return err
	}
	if len(paths) < 1 || *to == "" || *output == "" {
		return errors.New("usage: idxtool convert <in.bin> -from F -to F -count N -o <out.bin>")
	}

	source, _ := cfg.Codec.BinaryFormat()
	if *from != "" {
		if source, err = formats.ParseBinaryFormat(*from); err != nil {
			return err
		}
	}
	target, err := formats.ParseBinaryFormat(*to)
	if err != nil {
		return err
	}
	endianness, _ := cfg.Codec.ByteOrder()

	tables, err := readRecords(paths[0], *indexData, *offset, *count, source, endianness)
	if err != nil {
		return err
	}
	return writeRecords(*output, tables, target, endianness)
}
