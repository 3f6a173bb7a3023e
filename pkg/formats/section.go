package formats

import "github.com/Faultbox/meshtable/pkg/binio"

// MeshSection is the context modern records are read and written in. Its
// IndexData is shared by every record of the section; records must be
// written one at a time and in order.
type MeshSection struct {
	Format    BinaryFormat
	IndexData *binio.IndexData
}

// NewMeshSection returns a section with an empty index data stream.
func NewMeshSection(format BinaryFormat, endianness binio.Endianness) *MeshSection {
	return &MeshSection{
		Format:    format,
		IndexData: binio.NewIndexData(nil, endianness),
	}
}

// OpenMeshSection returns a section reading the given index data bytes.
func OpenMeshSection(format BinaryFormat, endianness binio.Endianness, indexData []byte) *MeshSection {
	return &MeshSection{
		Format:    format,
		IndexData: binio.NewIndexData(indexData, endianness),
	}
}
