package binio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Reader reads fixed-width values from a seekable stream.
// Offsets read from the stream are resolved against the current base offset.
type Reader struct {
	rs    io.ReadSeeker
	order binary.ByteOrder
	size  int64
	bases []int64
	buf   [8]byte
}

// NewReader wraps rs. The stream size is probed once so that array reads
// can be rejected before allocating.
func NewReader(rs io.ReadSeeker, endianness Endianness) (*Reader, error) {
	cur, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, errors.Wrap(err, "probe stream position")
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, errors.Wrap(err, "probe stream size")
	}
	if _, err := rs.Seek(cur, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "restore stream position")
	}
	return &Reader{rs: rs, order: endianness.ByteOrder(), size: size}, nil
}

// Size returns the total stream length. An index data stream can grow
// while being read and reports its current length.
func (r *Reader) Size() int64 {
	if c, ok := r.rs.(*cursor); ok {
		return int64(c.Len())
	}
	return r.size
}

// Position returns the absolute stream position.
func (r *Reader) Position() int64 {
	pos, _ := r.rs.Seek(0, io.SeekCurrent)
	return pos
}

// Seek moves to an absolute position.
func (r *Reader) Seek(pos int64) error {
	if pos < 0 || pos > r.Size() {
		return errors.Wrapf(ErrUnexpectedEndOfData, "seek to 0x%x beyond 0x%x", pos, r.Size())
	}
	_, err := r.rs.Seek(pos, io.SeekStart)
	return err
}

// Skip advances n bytes.
func (r *Reader) Skip(n int64) error {
	return r.Seek(r.Position() + n)
}

// BaseOffset returns the base that offsets are currently resolved against.
func (r *Reader) BaseOffset() int64 {
	if len(r.bases) == 0 {
		return 0
	}
	return r.bases[len(r.bases)-1]
}

// PushBaseOffset makes the current position the base for subsequent offsets.
func (r *Reader) PushBaseOffset() {
	r.bases = append(r.bases, r.Position())
}

// PopBaseOffset restores the previous base.
func (r *Reader) PopBaseOffset() {
	if len(r.bases) > 0 {
		r.bases = r.bases[:len(r.bases)-1]
	}
}

func (r *Reader) read(n int) ([]byte, error) {
	if _, err := io.ReadFull(r.rs, r.buf[:n]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, errors.Wrapf(ErrUnexpectedEndOfData, "reading %d bytes at 0x%x", n, r.Position())
		}
		return nil, err
	}
	return r.buf[:n], nil
}

// ReadUint32 reads an unsigned 32-bit value.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(b), nil
}

// ReadInt32 reads a signed 32-bit value.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadFloat32 reads an IEEE-754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadVec3 reads three float32 values.
func (r *Reader) ReadVec3() (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := range v {
		f, err := r.ReadFloat32()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// ReadOffset reads a 32-bit offset and resolves it against the base offset.
// A zero offset stays zero, meaning "no payload".
func (r *Reader) ReadOffset() (int64, error) {
	v, err := r.ReadUint32()
	if err != nil || v == 0 {
		return 0, err
	}
	return r.BaseOffset() + int64(v), nil
}

// ReadUint16s reads count unsigned 16-bit values.
func (r *Reader) ReadUint16s(count int) ([]uint16, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrUnexpectedEndOfData, "negative element count %d", count)
	}
	if remaining := r.Size() - r.Position(); int64(count)*2 > remaining {
		return nil, errors.Wrapf(ErrUnexpectedEndOfData, "%d uint16 values at 0x%x exceed stream", count, r.Position())
	}
	raw := make([]byte, count*2)
	if _, err := io.ReadFull(r.rs, raw); err != nil {
		return nil, errors.Wrap(ErrUnexpectedEndOfData, err.Error())
	}
	values := make([]uint16, count)
	for i := range values {
		values[i] = r.order.Uint16(raw[i*2:])
	}
	return values, nil
}

// ReadAtOffset runs fn with the stream positioned at offset and restores the
// position afterwards. A zero offset skips fn.
func (r *Reader) ReadAtOffset(offset int64, fn func() error) error {
	if offset == 0 {
		return nil
	}
	back := r.Position()
	if err := r.Seek(offset); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return r.Seek(back)
}

// ReadAtOffsetIf is ReadAtOffset guarded by cond.
func (r *Reader) ReadAtOffsetIf(cond bool, offset int64, fn func() error) error {
	if !cond {
		return nil
	}
	return r.ReadAtOffset(offset, fn)
}
