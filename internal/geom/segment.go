package geom

// LineSegment is a straight run of Length cells starting at Origin.Coord and
// extending in Origin.Dir.
type LineSegment struct {
	Origin Vector
	Length int
}

// IndexOf returns the position of c along the segment, or -1.
func (s LineSegment) IndexOf(c Coord) int {
	if !InDirection(s.Origin.Coord, c, s.Origin.Dir) {
		return -1
	}
	idx := DistanceInDirection(s.Origin.Coord, c, s.Origin.Dir)
	if idx >= s.Length {
		return -1
	}
	return idx
}

// Contains reports whether c lies on the segment.
func (s LineSegment) Contains(c Coord) bool {
	return s.IndexOf(c) != -1
}

// At returns the i-th coordinate of the segment.
func (s LineSegment) At(i int) (Coord, bool) {
	if i < 0 || i >= s.Length {
		return Coord{}, false
	}
	return s.Origin.Coord.At(s.Origin.Dir, i), true
}

// Coords returns every coordinate of the segment in order.
func (s LineSegment) Coords() []Coord {
	coords := make([]Coord, 0, s.Length)
	for i := 0; i < s.Length; i++ {
		coords = append(coords, s.Origin.Coord.At(s.Origin.Dir, i))
	}
	return coords
}
