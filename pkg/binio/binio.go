// Package binio provides endian-aware binary readers and writers with
// offset resolution and deferred offset patching.
package binio

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Stream errors.
var (
	ErrUnexpectedEndOfData = errors.New("unexpected end of data")
	ErrWrite               = errors.New("write failed")
)

// Endianness selects the byte order of a stream.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

// String returns "little" or "big".
func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// ByteOrder returns the encoding/binary order for e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ParseEndianness accepts "little", "le", "big" or "be".
func ParseEndianness(s string) (Endianness, error) {
	switch s {
	case "", "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	}
	return LittleEndian, errors.Errorf("unknown endianness %q", s)
}

// alignUp rounds pos up to a multiple of alignment.
func alignUp(pos int64, alignment int) int64 {
	if alignment <= 1 {
		return pos
	}
	a := int64(alignment)
	return (pos + a - 1) / a * a
}
