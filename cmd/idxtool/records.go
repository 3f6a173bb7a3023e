package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshtable/internal/logger"
	"github.com/Faultbox/meshtable/pkg/binio"
	"github.com/Faultbox/meshtable/pkg/formats"
)

// indexDataPath is where the index data stream of a modern record file lives.
func indexDataPath(path string) string {
	return path + ".idx"
}

// readRecords decodes count index tables from the block starting at offset.
// Payloads may follow the records, so the count cannot be derived from the
// file size.
func readRecords(path, indexData string, offset int64, count int, format formats.BinaryFormat, endianness binio.Endianness) ([]*formats.IndexTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		return nil, errors.Errorf("record count must be positive, got %d", count)
	}

	var section *formats.MeshSection
	if format.IsModern() {
		if indexData == "" {
			indexData = indexDataPath(path)
		}
		idx, err := os.ReadFile(indexData)
		if err != nil {
			return nil, errors.Wrap(err, "read index data")
		}
		section = formats.OpenMeshSection(format, endianness, idx)
	}

	r, err := binio.NewReader(bytes.NewReader(data), endianness)
	if err != nil {
		return nil, err
	}
	if err := r.Seek(offset); err != nil {
		return nil, err
	}
	// Offsets inside a block are relative to its first record.
	r.PushBaseOffset()
	defer r.PopBaseOffset()

	tables, err := formats.ReadIndexTables(r, count, format, section)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	logger.Debug("records read",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("count", len(tables)))
	return tables, nil
}

// writeRecords encodes tables to path, plus the index data stream for
// modern formats.
func writeRecords(path string, tables []*formats.IndexTable, format formats.BinaryFormat, endianness binio.Endianness) error {
	var section *formats.MeshSection
	if format.IsModern() {
		section = formats.NewMeshSection(format, endianness)
	}

	buf := binio.NewBuffer(nil)
	w := binio.NewWriter(buf, endianness)
	w.PushBaseOffset()
	defer w.PopBaseOffset()
	if err := formats.WriteIndexTables(w, tables, format, section); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	if section != nil {
		if err := os.WriteFile(indexDataPath(path), section.IndexData.Bytes(), 0644); err != nil {
			return err
		}
	}

	logger.Info("records written",
		zap.String("path", path),
		zap.Stringer("format", format),
		zap.Int("count", len(tables)),
		zap.Int("bytes", buf.Len()))
	return nil
}
