package binio

import (
	"bytes"
	"io"
	"testing"
)

func TestBuffer_WriteAfterGapZeroes(t *testing.T) {
	backing := bytes.Repeat([]byte{0xFF}, 16)
	buf := NewBuffer(backing[:2])

	if _, err := buf.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	if _, err := buf.Write([]byte{0x01}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := []byte{0xFF, 0xFF, 0, 0, 0, 0, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("bytes = % x, want % x", buf.Bytes(), want)
	}
}

func TestIndexData_DoesNotAliasInput(t *testing.T) {
	backing := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	d := NewIndexData(backing[:2], LittleEndian)

	if err := d.Writer.WriteUint16s([]uint16{0x1234}); err != nil {
		t.Fatalf("WriteUint16s: %v", err)
	}

	if !bytes.Equal(backing, []byte{0xAA, 0xBB, 0xCC, 0xDD}) {
		t.Errorf("caller slice modified: % x", backing)
	}
	if !bytes.Equal(d.Bytes(), []byte{0xAA, 0xBB, 0x34, 0x12}) {
		t.Errorf("index data = % x", d.Bytes())
	}
}
