package formats

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PrimitiveType is the topology of an index buffer.
type PrimitiveType uint32

const (
	PrimitiveTriangles     PrimitiveType = 4
	PrimitiveTriangleStrip PrimitiveType = 5
)

// StripRestart starts a new strip inside a strip index buffer.
const StripRestart = 0xFFFF

// String returns a human-readable topology name.
func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveTriangles:
		return "Triangles"
	case PrimitiveTriangleStrip:
		return "TriangleStrip"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(p))
	}
}

// IsValid reports whether p is a known topology.
func (p PrimitiveType) IsValid() bool {
	return p == PrimitiveTriangles || p == PrimitiveTriangleStrip
}

func parsePrimitiveType(code uint32) (PrimitiveType, error) {
	p := PrimitiveType(code)
	if !p.IsValid() {
		return 0, errors.Wrapf(ErrUnsupportedPrimitiveType, "code %d", code)
	}
	return p, nil
}

// Triangle is three vertex indices in winding order.
type Triangle struct {
	A, B, C uint16
}

func (t Triangle) degenerate() bool {
	return t.A == t.B || t.B == t.C || t.C == t.A
}

// DecodeTriangles expands indices into a triangle list. For triangle lists a
// trailing partial triangle is discarded and its length returned as dropped.
// Strips flip winding on every step, restart on StripRestart and skip
// degenerate triangles. Unknown topologies decode to nothing.
func DecodeTriangles(indices []uint16, primitive PrimitiveType) (triangles []Triangle, dropped int) {
	switch primitive {
	case PrimitiveTriangles:
		n := len(indices) / 3
		triangles = make([]Triangle, 0, n)
		for i := 0; i < n*3; i += 3 {
			triangles = append(triangles, Triangle{indices[i], indices[i+1], indices[i+2]})
		}
		return triangles, len(indices) - n*3

	case PrimitiveTriangleStrip:
		triangles = make([]Triangle, 0, len(indices))
		if len(indices) < 2 {
			return triangles, 0
		}

		a, b := indices[0], indices[1]
		direction := -1
		for i := 2; i < len(indices); i++ {
			c := indices[i]
			if c == StripRestart {
				if i+2 >= len(indices) {
					break
				}
				a, b = indices[i+1], indices[i+2]
				i += 2
				direction = -1
				continue
			}

			direction = -direction
			t := Triangle{a, b, c}
			if !t.degenerate() {
				if direction < 0 {
					t = Triangle{a, c, b}
				}
				triangles = append(triangles, t)
			}
			a, b = b, c
		}
		return triangles, 0
	}
	return nil, 0
}

// Triangles decodes the table's indices, logging a warning when a partial
// trailing triangle is dropped.
func (it *IndexTable) Triangles() []Triangle {
	triangles, dropped := DecodeTriangles(it.Indices, it.PrimitiveType)
	if dropped > 0 {
		log.Warn("dropping partial trailing triangle",
			zap.Int("indices", len(it.Indices)),
			zap.Int("dropped", dropped))
	}
	return triangles
}

// FlattenTriangles returns the triangle list as a flat index buffer.
func FlattenTriangles(triangles []Triangle) []uint16 {
	indices := make([]uint16, 0, len(triangles)*3)
	for _, t := range triangles {
		indices = append(indices, t.A, t.B, t.C)
	}
	return indices
}

// Stripifier converts a triangle-list index buffer into a strip. ok is false
// when no beneficial strip exists.
type Stripifier interface {
	Strip(triangleIndices []uint16) (strip []uint16, ok bool)
}

// StripifierFunc adapts a function to Stripifier.
type StripifierFunc func(triangleIndices []uint16) ([]uint16, bool)

// Strip calls f.
func (f StripifierFunc) Strip(triangleIndices []uint16) ([]uint16, bool) {
	return f(triangleIndices)
}

// EncodeTriangles strips a triangle list with s. When s finds no strip, or s
// is nil, the list is returned unchanged as PrimitiveTriangles.
func EncodeTriangles(triangleIndices []uint16, s Stripifier) ([]uint16, PrimitiveType) {
	if s != nil {
		if strip, ok := s.Strip(triangleIndices); ok && strip != nil {
			return strip, PrimitiveTriangleStrip
		}
	}
	return triangleIndices, PrimitiveTriangles
}

// Strip replaces a triangle-list table's indices with a strip from s.
// Tables that are already strips are left alone.
func (it *IndexTable) Strip(s Stripifier) {
	if it.PrimitiveType != PrimitiveTriangles {
		return
	}
	it.Indices, it.PrimitiveType = EncodeTriangles(it.Indices, s)
}
