// idxtool builds, inspects and converts mesh index-table records.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/meshtable/internal/config"
	"github.com/Faultbox/meshtable/internal/logger"
	"github.com/Faultbox/meshtable/pkg/formats"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build":
		err = cmdBuild(args)
	case "dump", "d":
		err = cmdDump(args)
	case "convert", "c":
		err = cmdConvert(args)
	case "gltf":
		err = cmdGLTF(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fail(command, err)
	}
	logger.Close()
}

// fail reports err through the logger once it is configured, or plainly
// when the command stopped before logging was set up.
func fail(command string, err error) {
	if logger.Enabled(zapcore.ErrorLevel) {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logger.Close()
	os.Exit(1)
}

func printUsage() {
	fmt.Println(`idxtool - mesh index-table record utility

Usage:
  idxtool <command> [options]

Commands:
  build <scene.yaml> -o <out.bin>       Assemble a scene and write its index tables
  dump <records.bin> -count N           Decode and print index tables
  convert <in.bin> -to F -count N -o out Re-encode index tables between formats
  gltf <scene.yaml> -o <out.glb>        Assemble a scene and export it as glTF

Shared options:
  -config <file>   Config file (default ./meshtable.yaml or the user config dir)
  -format <name>   Binary format: DT, F, FT, F2nd or X
  -endian <order>  little or big
  -no-strip        Keep triangle lists
  -debug           Debug logging
  -log-file <file> Also log to a rotated file

Modern formats (F2nd, X) keep indices in a separate index data stream,
written to and read from <file>.idx.

Examples:
  idxtool build scene.yaml -o body.bin -format F2nd
  idxtool dump body.bin -format F2nd -count 3
  idxtool convert body.bin -from F2nd -to FT -count 3 -o body_ft.bin
  idxtool gltf scene.yaml -o body.glb`)
}

// setup parses args with the shared flags plus the command's own and
// initialises logging from the resulting config. Flags may appear before or
// after positional arguments, which are returned in order.
func setup(fs *flag.FlagSet, args []string) (*config.Config, []string, error) {
	flags := config.RegisterFlags(fs)

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, nil, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, os.Stderr); err != nil {
		return nil, nil, err
	}
	formats.SetLogger(logger.Named("formats"))
	logger.Debug("config loaded",
		zap.String("command", fs.Name()),
		zap.String("format", cfg.Codec.Format),
		zap.String("endianness", cfg.Codec.Endianness),
		zap.Bool("strip", cfg.Codec.Strip))

	return cfg, positional, nil
}
