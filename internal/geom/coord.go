package geom

import "fmt"

// Coord is a cell position on the grid.
// Row increases downward, Col increases to the right. Coordinates outside
// the board are valid values and address the rings around it.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns the canonical string form of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Equal returns true if two coordinates are the same.
func (c Coord) Equal(other Coord) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// At returns the coordinate n cells away in direction d.
// A negative n moves the other way.
func (c Coord) At(d Dir, n int) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr*n, Col: c.Col + dc*n}
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Dir) Coord {
	return c.At(d, 1)
}

// Key packs the coordinate into a single integer.
// Distinct coordinates within the int32 range never share a key.
func (c Coord) Key() uint64 {
	return uint64(uint32(int32(c.Row)))<<32 | uint64(uint32(int32(c.Col)))
}

// CoordFromKey reverses Key.
func CoordFromKey(k uint64) Coord {
	return Coord{Row: int(int32(uint32(k >> 32))), Col: int(int32(uint32(k)))}
}

// Less orders coordinates row-major.
func (c Coord) Less(other Coord) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// InDirection reports whether to lies on the ray that starts at from and
// heads in direction d. from itself is on the ray.
func InDirection(from, to Coord, d Dir) bool {
	switch d {
	case DirUp:
		return from.Col == to.Col && to.Row <= from.Row
	case DirRight:
		return from.Row == to.Row && to.Col >= from.Col
	case DirDown:
		return from.Col == to.Col && to.Row >= from.Row
	case DirLeft:
		return from.Row == to.Row && to.Col <= from.Col
	default:
		return false
	}
}

// DistanceInDirection returns how far to is ahead of from when travelling
// in direction d. The coordinates need not be aligned; the result is
// negative when to is behind from.
func DistanceInDirection(from, to Coord, d Dir) int {
	switch d {
	case DirUp:
		return from.Row - to.Row
	case DirRight:
		return to.Col - from.Col
	case DirDown:
		return to.Row - from.Row
	case DirLeft:
		return from.Col - to.Col
	default:
		return 0
	}
}
