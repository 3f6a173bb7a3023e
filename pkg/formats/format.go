package formats

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// BinaryFormat identifies a binary format generation.
type BinaryFormat int32

// Known generations, oldest first.
const (
	FormatDT   BinaryFormat = 0
	FormatF    BinaryFormat = 1
	FormatFT   BinaryFormat = 2
	FormatF2nd BinaryFormat = 3
	FormatX    BinaryFormat = 4
)

var formatNames = map[BinaryFormat]string{
	FormatDT:   "DT",
	FormatF:    "F",
	FormatFT:   "FT",
	FormatF2nd: "F2nd",
	FormatX:    "X",
}

// String returns the generation name.
func (f BinaryFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int32(f))
}

// ParseBinaryFormat parses a generation name case-insensitively.
func ParseBinaryFormat(s string) (BinaryFormat, error) {
	for f, name := range formatNames {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// Validate returns ErrUnsupportedFormat for unknown generations.
func (f BinaryFormat) Validate() error {
	if _, ok := formatNames[f]; !ok {
		return errors.Wrapf(ErrUnsupportedFormat, "format %d", int32(f))
	}
	return nil
}

// IsModern reports whether records carry the bounding box trailer and keep
// their indices in the mesh section's index data.
func (f BinaryFormat) IsModern() bool {
	return f == FormatF2nd || f == FormatX
}

// IndexTableByteSize returns the fixed record size for f.
func IndexTableByteSize(f BinaryFormat) (int, error) {
	switch f {
	case FormatDT, FormatF, FormatFT:
		return 0x5C, nil
	case FormatF2nd:
		return 0x70, nil
	case FormatX:
		return 0x80, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "index table size for format %d", int32(f))
}

// reservedSpan is the gap between the indices offset and the bounding box
// in modern records.
func (f BinaryFormat) reservedSpan() int {
	if f == FormatX {
		return 0x18
	}
	return 0x14
}
