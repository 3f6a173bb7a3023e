package formats

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/meshtable/pkg/binio"
	"github.com/Faultbox/meshtable/pkg/geom"
)

const (
	boneIndicesPresent = 4 // palette indicator when a local bone palette follows
	indexTableField01  = 1
	payloadAlignment   = 4
)

// IndexTable is one drawable triangle batch.
type IndexTable struct {
	BoundingSphere geom.BoundingSphere
	Indices        []uint16
	BoneIndices    []uint16 // nil when the batch has no local bone palette
	MaterialIndex  int32
	PrimitiveType  PrimitiveType

	// Modern formats only.
	BoundingBox geom.BoundingBox
	Field00     int32
}

// NewIndexTable returns an empty triangle-list batch.
func NewIndexTable() *IndexTable {
	return &IndexTable{
		Indices:       []uint16{},
		PrimitiveType: PrimitiveTriangles,
	}
}

func readSphere(r *binio.Reader) (geom.BoundingSphere, error) {
	var s geom.BoundingSphere
	var err error
	if s.Center, err = r.ReadVec3(); err != nil {
		return s, err
	}
	s.Radius, err = r.ReadFloat32()
	return s, err
}

func readBox(r *binio.Reader) (geom.BoundingBox, error) {
	var b geom.BoundingBox
	var err error
	if b.Min, err = r.ReadVec3(); err != nil {
		return b, err
	}
	b.Max, err = r.ReadVec3()
	return b, err
}

// ReadIndexTable decodes one record at the reader's position. Modern formats
// require section, whose index data holds the indices. On success the reader
// is left at the end of the fixed record.
func ReadIndexTable(r *binio.Reader, format BinaryFormat, section *MeshSection) (*IndexTable, error) {
	size, err := IndexTableByteSize(format)
	if err != nil {
		return nil, err
	}
	if format.IsModern() && section == nil {
		return nil, errors.Wrapf(ErrMissingIndexData, "format %s", format)
	}

	start := r.Position()
	it := &IndexTable{}
	if err := it.read(r, format, section); err != nil {
		return nil, errors.Wrapf(err, "index table at 0x%x", start)
	}
	if err := r.Seek(start + int64(size)); err != nil {
		return nil, errors.Wrapf(err, "index table at 0x%x", start)
	}
	return it, nil
}

func (it *IndexTable) read(r *binio.Reader, format BinaryFormat, section *MeshSection) error {
	var err error

	if err = r.Skip(4); err != nil {
		return err
	}
	if it.BoundingSphere, err = readSphere(r); err != nil {
		return err
	}
	if it.MaterialIndex, err = r.ReadInt32(); err != nil {
		return err
	}
	if err = r.Skip(8); err != nil {
		return err
	}

	boneIndexCount, err := r.ReadInt32()
	if err != nil {
		return err
	}
	boneIndicesOffset, err := r.ReadOffset()
	if err != nil {
		return err
	}
	paletteIndicator, err := r.ReadUint32()
	if err != nil {
		return err
	}
	primitiveCode, err := r.ReadUint32()
	if err != nil {
		return err
	}
	if it.PrimitiveType, err = parsePrimitiveType(primitiveCode); err != nil {
		return err
	}
	if _, err = r.ReadInt32(); err != nil {
		return err
	}
	indexCount, err := r.ReadInt32()
	if err != nil {
		return err
	}
	indicesOffset, err := r.ReadUint32()
	if err != nil {
		return err
	}

	modern := format.IsModern()
	if modern {
		if err = r.Skip(int64(format.reservedSpan())); err != nil {
			return err
		}
		if it.BoundingBox, err = readBox(r); err != nil {
			return err
		}
		if it.Field00, err = r.ReadInt32(); err != nil {
			return err
		}
	}

	hasBones := paletteIndicator == boneIndicesPresent
	if hasBones {
		if boneIndicesOffset == 0 && boneIndexCount != 0 {
			return errors.Wrapf(ErrUnexpectedEndOfData, "%d bone indices with no offset", boneIndexCount)
		}
		it.BoneIndices = []uint16{}
	}
	err = r.ReadAtOffsetIf(hasBones, boneIndicesOffset, func() error {
		var err error
		it.BoneIndices, err = r.ReadUint16s(int(boneIndexCount))
		return err
	})
	if err != nil {
		return errors.Wrap(err, "bone indices")
	}

	if !modern {
		if indicesOffset == 0 && indexCount != 0 {
			return errors.Wrapf(ErrUnexpectedEndOfData, "%d indices with no offset", indexCount)
		}
		it.Indices = []uint16{}
		var offset int64
		if indicesOffset != 0 {
			offset = r.BaseOffset() + int64(indicesOffset)
		}
		err = r.ReadAtOffset(offset, func() error {
			var err error
			it.Indices, err = r.ReadUint16s(int(indexCount))
			return err
		})
		return errors.Wrap(err, "indices")
	}

	data := section.IndexData.Reader
	if err = data.Seek(int64(indicesOffset)); err != nil {
		return errors.Wrap(err, "index data")
	}
	if it.Indices, err = data.ReadUint16s(int(indexCount)); err != nil {
		return errors.Wrap(err, "index data")
	}
	return nil
}

// Write encodes the fixed record. Bone indices, and indices for legacy
// formats, are queued on w and land when the caller flushes it. Modern
// formats append the indices to section's index data immediately.
func (it *IndexTable) Write(w *binio.Writer, format BinaryFormat, section *MeshSection) error {
	size, err := IndexTableByteSize(format)
	if err != nil {
		return err
	}
	if format.IsModern() && section == nil {
		return errors.Wrapf(ErrMissingIndexData, "format %s", format)
	}
	if !it.PrimitiveType.IsValid() {
		return errors.Wrapf(ErrUnsupportedPrimitiveType, "code %d", uint32(it.PrimitiveType))
	}

	start := w.Position()
	hasBones := it.BoneIndices != nil
	boneIndices := it.BoneIndices
	indices := it.Indices

	w.WriteUint32(0)
	w.WriteVec3(it.BoundingSphere.Center)
	w.WriteFloat32(it.BoundingSphere.Radius)
	w.WriteInt32(it.MaterialIndex)
	w.WriteNulls(8)
	w.WriteInt32(int32(len(boneIndices)))
	w.EnqueueOffsetWriteIf(hasBones, payloadAlignment, func() error {
		return w.WriteUint16s(boneIndices)
	})
	if hasBones {
		w.WriteUint32(boneIndicesPresent)
	} else {
		w.WriteUint32(0)
	}
	w.WriteUint32(uint32(it.PrimitiveType))
	w.WriteInt32(indexTableField01)
	w.WriteInt32(int32(len(indices)))

	if format.IsModern() {
		data := section.IndexData.Writer
		if err := data.WriteAlignmentPadding(payloadAlignment); err != nil {
			return errors.Wrap(err, "index data")
		}
		w.WriteUint32(uint32(section.IndexData.Position()))
		if err := data.WriteUint16s(indices); err != nil {
			return errors.Wrap(err, "index data")
		}

		w.WriteNulls(format.reservedSpan())
		w.WriteVec3(it.BoundingBox.Min)
		w.WriteVec3(it.BoundingBox.Max)
		w.WriteInt32(it.Field00)
	} else {
		w.EnqueueOffsetWrite(payloadAlignment, func() error {
			return w.WriteUint16s(indices)
		})
	}

	w.WriteNulls(size - int(w.Position()-start))
	return w.Err()
}

// WriteIndexTable writes a single record and flushes its payloads.
func WriteIndexTable(w *binio.Writer, it *IndexTable, format BinaryFormat, section *MeshSection) error {
	if err := it.Write(w, format, section); err != nil {
		return err
	}
	return w.Flush()
}

// ReadIndexTables reads count consecutive records.
func ReadIndexTables(r *binio.Reader, count int, format BinaryFormat, section *MeshSection) ([]*IndexTable, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrUnexpectedEndOfData, "negative index table count %d", count)
	}
	tables := make([]*IndexTable, 0, count)
	for i := 0; i < count; i++ {
		it, err := ReadIndexTable(r, format, section)
		if err != nil {
			return nil, errors.Wrapf(err, "index table %d", i)
		}
		tables = append(tables, it)
	}
	return tables, nil
}

// WriteIndexTables writes all fixed records back to back and then flushes
// the queued payloads, which follow the last record in record order.
func WriteIndexTables(w *binio.Writer, tables []*IndexTable, format BinaryFormat, section *MeshSection) error {
	for i, it := range tables {
		if err := it.Write(w, format, section); err != nil {
			return errors.Wrapf(err, "index table %d", i)
		}
	}
	return w.Flush()
}
