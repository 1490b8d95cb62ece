package geom

import "fmt"

// Vector is a position plus a heading.
type Vector struct {
	Coord Coord
	Dir   Dir
}

// V is a convenience constructor for Vector.
func V(c Coord, d Dir) Vector {
	return Vector{Coord: c, Dir: d}
}

// String returns a string representation of the vector.
func (v Vector) String() string {
	return fmt.Sprintf("%s->%s", v.Coord, v.Dir)
}

// Advance moves the vector n cells along its heading.
func (v Vector) Advance(n int) Vector {
	return Vector{Coord: v.Coord.At(v.Dir, n), Dir: v.Dir}
}

// ProjectTo moves the vector forward until it is level with c (same row
// for vertical headings, same column for horizontal ones) and returns that
// coordinate. If c is behind the vector, the vector's own coordinate is
// returned.
func (v Vector) ProjectTo(c Coord) Coord {
	dist := DistanceInDirection(v.Coord, c, v.Dir)
	if dist < 0 {
		return v.Coord
	}
	return v.Coord.At(v.Dir, dist)
}
