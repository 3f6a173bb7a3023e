// Package formats reads and writes index tables, the per-batch triangle
// records of the mesh formats, across all five binary format generations.
package formats

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/meshtable/pkg/binio"
)

// Codec errors.
var (
	ErrUnsupportedFormat        = errors.New("unsupported binary format")
	ErrUnsupportedPrimitiveType = errors.New("unsupported primitive type")
	ErrMissingIndexData         = errors.New("modern format requires mesh section index data")

	ErrUnexpectedEndOfData = binio.ErrUnexpectedEndOfData
	ErrWrite               = binio.ErrWrite
)

var log = zap.NewNop()

// SetLogger sets the logger used for non-fatal decode warnings.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
