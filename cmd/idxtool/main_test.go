package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Faultbox/meshtable/pkg/binio"
	"github.com/Faultbox/meshtable/pkg/formats"
)

const testScene = `
sub_meshes:
  - name: body
    primitives:
      - name: torso
        material: Skin
        bones: [Hip, Spine]
        positions:
          - [0, 0, 0]
          - [1, 0, 0]
          - [0, 1, 0]
          - [1, 1, 0]
        faces:
          - [0, 1, 2]
          - [2, 1, 3]
      - name: belt
        material: Leather
        positions:
          - [0, 0, 1]
          - [1, 0, 1]
          - [0, 1, 1]
        faces:
          - [0, 1, 2]
  - name: empty
`

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testScene), 0644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}

func TestAssembleScene(t *testing.T) {
	scene, err := loadScene(writeScene(t))
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}

	b, subMeshes, err := assembleScene(scene, true)
	if err != nil {
		t.Fatalf("assembleScene: %v", err)
	}
	if len(subMeshes) != 1 {
		t.Fatalf("sub-meshes = %d, want 1", len(subMeshes))
	}

	tables := indexTables(subMeshes)
	if len(tables) != 2 {
		t.Fatalf("index tables = %d, want 2", len(tables))
	}
	if tables[0].PrimitiveType != formats.PrimitiveTriangleStrip {
		t.Errorf("torso primitive = %v, want strip", tables[0].PrimitiveType)
	}
	if tables[1].PrimitiveType != formats.PrimitiveTriangles {
		t.Errorf("belt primitive = %v, want list", tables[1].PrimitiveType)
	}
	if len(b.Bones) != 2 || len(b.Materials) != 2 {
		t.Errorf("bones=%v materials=%v", b.Bones, b.Materials)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	scene, err := loadScene(writeScene(t))
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	_, subMeshes, err := assembleScene(scene, false)
	if err != nil {
		t.Fatalf("assembleScene: %v", err)
	}
	tables := indexTables(subMeshes)

	for _, format := range []formats.BinaryFormat{formats.FormatDT, formats.FormatFT, formats.FormatF2nd, formats.FormatX} {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "records.bin")
			if err := writeRecords(path, tables, format, binio.BigEndian); err != nil {
				t.Fatalf("writeRecords: %v", err)
			}

			_, statErr := os.Stat(indexDataPath(path))
			if format.IsModern() != (statErr == nil) {
				t.Errorf("index data file present = %v for %s", statErr == nil, format)
			}

			got, err := readRecords(path, "", 0, len(tables), format, binio.BigEndian)
			if err != nil {
				t.Fatalf("readRecords: %v", err)
			}
			if len(got) != len(tables) {
				t.Fatalf("read %d records, want %d", len(got), len(tables))
			}
			for i := range tables {
				if len(got[i].Indices) != len(tables[i].Indices) {
					t.Errorf("record %d indices = %v, want %v", i, got[i].Indices, tables[i].Indices)
				}
				if len(got[i].BoneIndices) != len(tables[i].BoneIndices) {
					t.Errorf("record %d bones = %v, want %v", i, got[i].BoneIndices, tables[i].BoneIndices)
				}
			}
		})
	}
}

func TestReadRecords_NeedsCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	if err := os.WriteFile(path, make([]byte, 0x5C), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := readRecords(path, "", 0, 0, formats.FormatF, binio.LittleEndian); err == nil {
		t.Error("expected error without a record count")
	}
}

func TestPrintTables(t *testing.T) {
	it := formats.NewIndexTable()
	it.Indices = []uint16{0, 1, 2, 3}
	it.BoneIndices = []uint16{4}

	var buf bytes.Buffer
	printTables(&buf, formats.FormatX, []*formats.IndexTable{it})

	out := buf.String()
	for _, want := range []string{"Records: 1", "4 (1 triangles, 1 dropped)", "Bones:     [4]", "Box:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// writeConfig returns a config file that keeps tests independent of the
// user's config directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: error\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSetup_FlagsAfterPositionals(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	output := fs.String("o", "", "")

	cfg, paths, err := setup(fs, []string{"a.yaml", "-o", "out.bin", "b.yaml", "-format", "ft", "-config", writeConfig(t)})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if len(paths) != 2 || paths[0] != "a.yaml" || paths[1] != "b.yaml" {
		t.Errorf("paths = %v, want [a.yaml b.yaml]", paths)
	}
	if *output != "out.bin" {
		t.Errorf("-o = %q, want out.bin", *output)
	}
	if cfg.Codec.Format != "ft" {
		t.Errorf("format = %q, want ft", cfg.Codec.Format)
	}
}

func TestCommands_DocumentedUsage(t *testing.T) {
	cfgPath := writeConfig(t)
	scene := writeScene(t)
	dir := t.TempDir()
	records := filepath.Join(dir, "body.bin")
	converted := filepath.Join(dir, "body_ft.bin")
	glb := filepath.Join(dir, "body.glb")

	if err := cmdBuild([]string{scene, "-o", records, "-format", "F2nd", "-config", cfgPath}); err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, path := range []string{records, indexDataPath(records)} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("build output missing: %v", err)
		}
	}

	if err := cmdDump([]string{records, "-format", "F2nd", "-count", "2", "-config", cfgPath}); err != nil {
		t.Errorf("dump: %v", err)
	}

	if err := cmdConvert([]string{records, "-from", "F2nd", "-to", "FT", "-count", "2", "-o", converted, "-config", cfgPath}); err != nil {
		t.Fatalf("convert: %v", err)
	}
	tables, err := readRecords(converted, "", 0, 2, formats.FormatFT, binio.LittleEndian)
	if err != nil {
		t.Fatalf("read converted: %v", err)
	}
	if len(tables[0].BoneIndices) != 2 || len(tables[1].Indices) != 3 {
		t.Errorf("converted records = %+v, %+v", tables[0], tables[1])
	}

	if err := cmdGLTF([]string{scene, "-o", glb, "-config", cfgPath}); err != nil {
		t.Fatalf("gltf: %v", err)
	}
	data, err := os.ReadFile(glb)
	if err != nil {
		t.Fatalf("read glb: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("glTF")) {
		t.Errorf("gltf output is not GLB")
	}
}

func TestCommands_MissingArguments(t *testing.T) {
	cfgPath := writeConfig(t)
	if err := cmdBuild([]string{writeScene(t), "-config", cfgPath}); err == nil {
		t.Error("build without -o succeeded")
	}
	if err := cmdDump([]string{"-count", "1", "-config", cfgPath}); err == nil {
		t.Error("dump without a file succeeded")
	}
}

func TestReadRecords_BlockAtOffset(t *testing.T) {
	scene, err := loadScene(writeScene(t))
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	_, subMeshes, err := assembleScene(scene, false)
	if err != nil {
		t.Fatalf("assembleScene: %v", err)
	}
	tables := indexTables(subMeshes)

	dir := t.TempDir()
	block := filepath.Join(dir, "block.bin")
	if err := writeRecords(block, tables, formats.FormatF, binio.LittleEndian); err != nil {
		t.Fatalf("writeRecords: %v", err)
	}
	data, err := os.ReadFile(block)
	if err != nil {
		t.Fatal(err)
	}

	// Embed the block behind a 16-byte header; its payload offsets stay
	// relative to the block.
	embedded := filepath.Join(dir, "embedded.bin")
	if err := os.WriteFile(embedded, append(make([]byte, 16), data...), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readRecords(embedded, "", 16, len(tables), formats.FormatF, binio.LittleEndian)
	if err != nil {
		t.Fatalf("readRecords: %v", err)
	}
	for i := range tables {
		if !reflect.DeepEqual(got[i].Indices, tables[i].Indices) {
			t.Errorf("record %d indices = %v, want %v", i, got[i].Indices, tables[i].Indices)
		}
		if !reflect.DeepEqual(got[i].BoneIndices, tables[i].BoneIndices) {
			t.Errorf("record %d bones = %v, want %v", i, got[i].BoneIndices, tables[i].BoneIndices)
		}
	}
}
