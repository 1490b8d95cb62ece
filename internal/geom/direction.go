// Package geom provides the integer grid geometry used by the beam
// simulator: coordinates, cardinal directions, vectors, line segments and
// the edge rings that surround a board.
// This package is UI-agnostic and has no game state.
package geom

// Dir is one of the four cardinal directions.
// Values are ordered clockwise starting at Up.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists every direction in clockwise order.
var Directions = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (drow, dcol) offset for one step in this direction.
// Up decreases the row, Right increases the column.
func (d Dir) Delta() (drow, dcol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// Rotate turns the direction clockwise by n quarter turns.
// Negative n turns counter-clockwise.
func (d Dir) Rotate(n int) Dir {
	r := (int(d) + n) % 4
	if r < 0 {
		r += 4
	}
	return Dir(r)
}

// Opposite returns the direction pointing the other way.
func (d Dir) Opposite() Dir {
	return d.Rotate(2)
}

// Perpendicular returns the direction one clockwise quarter turn away.
func (d Dir) Perpendicular() Dir {
	return d.Rotate(1)
}

// Vertical reports whether the direction moves along rows.
func (d Dir) Vertical() bool {
	return d == DirUp || d == DirDown
}
