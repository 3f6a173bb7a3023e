package binio

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer is an in-memory byte stream that supports reading, writing and
// seeking past the end. Writes beyond the end grow the buffer with zeros.
type Buffer struct {
	data []byte
	pos  int64
}

// NewBuffer returns a Buffer over b positioned at the start.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer length.
func (b *Buffer) Len() int { return len(b.data) }

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	end := b.pos + int64(len(p))
	if n := int64(len(b.data)); end > n {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, 2*end)
			copy(grown, b.data)
			b.data = grown
		} else {
			b.data = b.data[:end]
			// Spare capacity may hold stale bytes.
			clear(b.data[n:end])
		}
	}
	copy(b.data[b.pos:], p)
	b.pos = end
	return len(p), nil
}

// Seek implements io.Seeker.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = b.pos + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, errors.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.Errorf("negative position %d", abs)
	}
	b.pos = abs
	return abs, nil
}

// cursor reads a Buffer through an independent position so that reading
// never disturbs the write position.
type cursor struct {
	b   *Buffer
	pos int64
}

func (c *cursor) Len() int { return len(c.b.data) }

func (c *cursor) Read(p []byte) (int, error) {
	if c.pos >= int64(len(c.b.data)) {
		return 0, io.EOF
	}
	n := copy(p, c.b.data[c.pos:])
	c.pos += int64(n)
	return n, nil
}

func (c *cursor) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = c.pos + offset
	case io.SeekEnd:
		abs = int64(len(c.b.data)) + offset
	default:
		return 0, errors.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, errors.Errorf("negative position %d", abs)
	}
	c.pos = abs
	return abs, nil
}

// IndexData is a shared append-only sub-stream carrying bulk index arrays
// for all records of a container.
type IndexData struct {
	buf    *Buffer
	Reader *Reader
	Writer *Writer
}

// NewIndexData starts a sub-stream from a copy of b (nil for an empty
// stream). New data is appended after the existing bytes.
func NewIndexData(b []byte, endianness Endianness) *IndexData {
	buf := NewBuffer(append([]byte(nil), b...))
	buf.pos = int64(len(b))
	// Probing a cursor cannot fail.
	r, _ := NewReader(&cursor{b: buf}, endianness)
	return &IndexData{buf: buf, Reader: r, Writer: NewWriter(buf, endianness)}
}

// Position returns the current sub-stream write position.
func (d *IndexData) Position() int64 { return d.Writer.Position() }

// Bytes returns the sub-stream contents.
func (d *IndexData) Bytes() []byte { return d.buf.Bytes() }

// Len returns the sub-stream length.
func (d *IndexData) Len() int { return d.buf.Len() }
