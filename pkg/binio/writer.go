package binio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// offsetWrite is a payload queued behind a reserved 4-byte offset field.
type offsetWrite struct {
	field     int64 // position of the reserved field
	base      int64 // base offset in effect at enqueue time
	alignment int
	write     func() error
}

// Writer emits fixed-width values to a seekable sink. Variable-length
// payloads can be deferred with EnqueueOffsetWrite and are emitted by Flush,
// which back-patches their offset fields.
//
// The first failure is sticky: every later call returns it and nothing else
// is written.
type Writer struct {
	ws    io.WriteSeeker
	order binary.ByteOrder
	bases []int64
	queue []offsetWrite
	err   error
	buf   [8]byte
}

// NewWriter wraps ws.
func NewWriter(ws io.WriteSeeker, endianness Endianness) *Writer {
	return &Writer{ws: ws, order: endianness.ByteOrder()}
}

// Err returns the sticky error, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) fail(err error, what string) error {
	if w.err == nil {
		w.err = errors.Wrapf(ErrWrite, "%s: %v", what, err)
	}
	return w.err
}

// Position returns the absolute sink position.
func (w *Writer) Position() int64 {
	pos, _ := w.ws.Seek(0, io.SeekCurrent)
	return pos
}

// BaseOffset returns the base that enqueued offsets are made relative to.
func (w *Writer) BaseOffset() int64 {
	if len(w.bases) == 0 {
		return 0
	}
	return w.bases[len(w.bases)-1]
}

// PushBaseOffset makes the current position the base for offsets enqueued
// from now on.
func (w *Writer) PushBaseOffset() {
	w.bases = append(w.bases, w.Position())
}

// PopBaseOffset restores the previous base.
func (w *Writer) PopBaseOffset() {
	if len(w.bases) > 0 {
		w.bases = w.bases[:len(w.bases)-1]
	}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.ws.Write(p)
	if err != nil {
		return n, w.fail(err, "write")
	}
	return n, nil
}

func (w *Writer) put(n int) error {
	_, err := w.Write(w.buf[:n])
	return err
}

// WriteUint32 writes an unsigned 32-bit value.
func (w *Writer) WriteUint32(v uint32) error {
	w.order.PutUint32(w.buf[:4], v)
	return w.put(4)
}

// WriteInt32 writes a signed 32-bit value.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteFloat32 writes an IEEE-754 single.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteUint32(math.Float32bits(v))
}

// WriteVec3 writes three float32 values.
func (w *Writer) WriteVec3(v mgl32.Vec3) error {
	for _, f := range v {
		if err := w.WriteFloat32(f); err != nil {
			return err
		}
	}
	return nil
}

// WriteUint16s writes values as consecutive unsigned 16-bit integers.
func (w *Writer) WriteUint16s(values []uint16) error {
	raw := make([]byte, len(values)*2)
	for i, v := range values {
		w.order.PutUint16(raw[i*2:], v)
	}
	_, err := w.Write(raw)
	return err
}

// WriteNulls writes n zero bytes.
func (w *Writer) WriteNulls(n int) error {
	if n <= 0 {
		return w.err
	}
	_, err := w.Write(make([]byte, n))
	return err
}

// WriteAlignmentPadding pads with zero bytes up to the next multiple of alignment.
func (w *Writer) WriteAlignmentPadding(alignment int) error {
	pos := w.Position()
	return w.WriteNulls(int(alignUp(pos, alignment) - pos))
}

// EnqueueOffsetWrite reserves a 4-byte offset field at the current position
// and queues fn to write the payload it points to. Flush aligns the payload,
// runs fn and patches the field with the payload position relative to the
// base offset in effect now.
func (w *Writer) EnqueueOffsetWrite(alignment int, fn func() error) error {
	field := w.Position()
	if err := w.WriteUint32(0); err != nil {
		return err
	}
	w.queue = append(w.queue, offsetWrite{
		field:     field,
		base:      w.BaseOffset(),
		alignment: alignment,
		write:     fn,
	})
	return nil
}

// EnqueueOffsetWriteIf is EnqueueOffsetWrite when cond holds; otherwise it
// writes a zero offset and queues nothing.
func (w *Writer) EnqueueOffsetWriteIf(cond bool, alignment int, fn func() error) error {
	if !cond {
		return w.WriteUint32(0)
	}
	return w.EnqueueOffsetWrite(alignment, fn)
}

// Pending returns the number of queued payloads.
func (w *Writer) Pending() int { return len(w.queue) }

// Flush emits queued payloads in enqueue order. Payloads queued while
// flushing are emitted in the same pass, after the ones already queued.
func (w *Writer) Flush() error {
	for len(w.queue) > 0 {
		if w.err != nil {
			w.queue = nil
			return w.err
		}
		ow := w.queue[0]
		w.queue = w.queue[1:]

		if err := w.WriteAlignmentPadding(ow.alignment); err != nil {
			w.queue = nil
			return err
		}
		payload := w.Position()
		if err := ow.write(); err != nil {
			w.queue = nil
			return w.fail(err, "deferred payload")
		}
		if err := w.patch(ow.field, uint32(payload-ow.base)); err != nil {
			w.queue = nil
			return err
		}
	}
	return w.err
}

// patch overwrites the 4-byte field at pos and returns to the end of the
// data written so far.
func (w *Writer) patch(pos int64, v uint32) error {
	end := w.Position()
	if _, err := w.ws.Seek(pos, io.SeekStart); err != nil {
		return w.fail(err, "seek to offset field")
	}
	if err := w.WriteUint32(v); err != nil {
		return err
	}
	if _, err := w.ws.Seek(end, io.SeekStart); err != nil {
		return w.fail(err, "seek back after patch")
	}
	return nil
}
