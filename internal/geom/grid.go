package geom

// Grid describes the bounds of a rectangular board.
// Cells span rows [0, Height) and columns [0, Width).
type Grid struct {
	Width  int
	Height int
}

// Square returns a Grid with equal sides.
func Square(length int) Grid {
	return Grid{Width: length, Height: length}
}

// Contains checks if a coordinate is inside the board.
func (g Grid) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

// Corners returns the board's corner cells clockwise from the top-left.
func (g Grid) Corners() [4]Coord {
	return [4]Coord{
		C(0, 0),
		C(0, g.Width-1),
		C(g.Height-1, g.Width-1),
		C(g.Height-1, 0),
	}
}

// EdgeSegments returns the four segments running parallel to the board's
// sides, r cells outside of it. Index i holds the segment on the side facing
// Directions[i]. Each segment travels clockwise around the board and does
// not include ring corners.
func (g Grid) EdgeSegments(r int) [4]LineSegment {
	corners := g.Corners()
	var segs [4]LineSegment
	for i, d := range Directions {
		length := g.Width
		if d == DirRight || d == DirLeft {
			length = g.Height
		}
		segs[i] = LineSegment{
			Origin: V(corners[i].At(d, r), d.Rotate(1)),
			Length: length,
		}
	}
	return segs
}

// EdgeOf returns the side of the board whose r-ring segment holds c.
func (g Grid) EdgeOf(c Coord, r int) (Dir, bool) {
	for i, seg := range g.EdgeSegments(r) {
		if seg.Contains(c) {
			return Directions[i], true
		}
	}
	return DirUp, false
}

// OnRing reports whether c lies on the r-ring around the board.
func (g Grid) OnRing(c Coord, r int) bool {
	_, ok := g.EdgeOf(c, r)
	return ok
}

// RingCoords returns every coordinate of the r-ring in segment order.
func (g Grid) RingCoords(r int) []Coord {
	var coords []Coord
	for _, seg := range g.EdgeSegments(r) {
		coords = append(coords, seg.Coords()...)
	}
	return coords
}

// ProjectToEdge moves c along d until it sits on the last board row or
// column in that direction.
func (g Grid) ProjectToEdge(c Coord, d Dir) Coord {
	switch d {
	case DirUp:
		return C(0, c.Col)
	case DirRight:
		return C(c.Row, g.Width-1)
	case DirDown:
		return C(g.Height-1, c.Col)
	case DirLeft:
		return C(c.Row, 0)
	default:
		return c
	}
}

// ExitPoint returns the ring cell where a beam travelling along v leaves
// the board if nothing stops it.
func (g Grid) ExitPoint(v Vector) Coord {
	return g.ProjectToEdge(v.Coord, v.Dir).At(v.Dir, 1)
}

// OnEdge reports whether c is on the board's outermost row or column
// facing d.
func (g Grid) OnEdge(c Coord, d Dir) bool {
	switch d {
	case DirUp:
		return c.Row == 0
	case DirRight:
		return c.Col == g.Width-1
	case DirDown:
		return c.Row == g.Height-1
	case DirLeft:
		return c.Col == 0
	default:
		return false
	}
}
