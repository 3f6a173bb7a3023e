// Package stripify converts triangle lists into triangle strips joined with
// restart indices.
package stripify

import "github.com/Faultbox/meshtable/pkg/formats"

type triangle [3]uint16

type edge struct {
	from, to uint16
}

type stripper struct {
	triangles []triangle
	edges     map[edge][]int
	used      []bool
}

// Generate returns a strip encoding of the triangle-list index buffer, or
// false when the list cannot be stripped or the strip would not be shorter.
// Decoding the strip yields every input triangle once with its winding
// preserved, although possibly rotated and in a different order.
func Generate(indices []uint16) ([]uint16, bool) {
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, false
	}

	s := &stripper{
		triangles: make([]triangle, len(indices)/3),
		edges:     make(map[edge][]int, len(indices)),
		used:      make([]bool, len(indices)/3),
	}
	for i := range s.triangles {
		t := triangle{indices[i*3], indices[i*3+1], indices[i*3+2]}
		// Strips cannot carry degenerate triangles or the restart value.
		if t[0] == t[1] || t[1] == t[2] || t[2] == t[0] {
			return nil, false
		}
		for _, v := range t {
			if v == formats.StripRestart {
				return nil, false
			}
		}
		s.triangles[i] = t
		for k := 0; k < 3; k++ {
			e := edge{t[k], t[(k+1)%3]}
			s.edges[e] = append(s.edges[e], i)
		}
	}

	out := make([]uint16, 0, len(indices))
	for i := range s.triangles {
		if s.used[i] {
			continue
		}

		var best []uint16
		var bestMembers []int
		for rot := 0; rot < 3; rot++ {
			strip, members := s.walk(i, rot)
			if len(members) > len(bestMembers) {
				best, bestMembers = strip, members
			}
		}

		for _, m := range bestMembers {
			s.used[m] = true
		}
		if len(out) > 0 {
			out = append(out, formats.StripRestart)
		}
		out = append(out, best...)
	}

	if len(out) >= len(indices) {
		return nil, false
	}
	return out, true
}

// Stripifier returns Generate as a formats.Stripifier.
func Stripifier() formats.Stripifier {
	return formats.StripifierFunc(Generate)
}

// walk grows a strip from triangle start rotated by rot without marking
// anything used.
func (s *stripper) walk(start, rot int) ([]uint16, []int) {
	t := s.triangles[start]
	strip := []uint16{t[rot], t[(rot+1)%3], t[(rot+2)%3]}
	members := []int{start}
	taken := map[int]bool{start: true}

	x, y := strip[1], strip[2]
	// The first triangle keeps its winding; the next one is emitted flipped.
	flipped := true
	for {
		e := edge{x, y}
		if flipped {
			e = edge{y, x}
		}
		next, z, ok := s.find(e, taken)
		if !ok {
			break
		}
		strip = append(strip, z)
		members = append(members, next)
		taken[next] = true
		x, y = y, z
		flipped = !flipped
	}
	return strip, members
}

// find returns an unused triangle containing the directed edge e and its
// third vertex.
func (s *stripper) find(e edge, taken map[int]bool) (int, uint16, bool) {
	for _, idx := range s.edges[e] {
		if s.used[idx] || taken[idx] {
			continue
		}
		t := s.triangles[idx]
		for k := 0; k < 3; k++ {
			if t[k] == e.from && t[(k+1)%3] == e.to {
				return idx, t[(k+2)%3], true
			}
		}
	}
	return 0, 0, false
}
