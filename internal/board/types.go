// Package board holds the mutable state of one round: obstacle positions,
// the prize ring and the log of beams fired so far.
// This package is UI-agnostic and deterministic.
package board

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
)

// Config sets the board's dimensions.
type Config struct {
	Length    int `yaml:"length"`    // side length of the square board
	Obstacles int `yaml:"obstacles"` // number of obstacles to place
}

// Board side length limits.
const (
	MinLength = 2
	MaxLength = 64
)

// DefaultConfig returns the standard 8x8 board with four obstacles.
func DefaultConfig() Config {
	return Config{Length: 8, Obstacles: 4}
}

// Obstacle is a blocking piece on the board.
type Obstacle struct {
	Coord   geom.Coord
	Active  bool // false once destroyed
	Visible bool // hidden obstacles still block beams
}

// PrizeState is the content of one prize tile.
// A reward is collected by setting Taken. A bomb is either defused or
// set off, which also marks it Taken.
type PrizeState struct {
	Prize   prize.Kind
	Taken   bool
	Defused bool
}

// IsBomb reports whether the tile holds a bomb.
func (p *PrizeState) IsBomb() bool {
	return p.Prize.Category() == prize.CategoryBomb
}

// Resolved reports whether the tile can no longer affect play.
func (p *PrizeState) Resolved() bool {
	return p.Taken || p.Defused
}

// PointType tags an event on a beam path.
type PointType uint8

const (
	PointEntry PointType = iota
	PointDeflect
	PointDoubleDeflect
	PointPhase
	PointIgnoreDeflect
	PointDestroy
	PointEmit
	PointHit
)

// String returns the string representation of a point type.
func (t PointType) String() string {
	switch t {
	case PointEntry:
		return "Entry"
	case PointDeflect:
		return "Deflect"
	case PointDoubleDeflect:
		return "DoubleDeflect"
	case PointPhase:
		return "Phase"
	case PointIgnoreDeflect:
		return "IgnoreDeflect"
	case PointDestroy:
		return "Destroy"
	case PointEmit:
		return "Emit"
	case PointHit:
		return "Hit"
	default:
		return "Unknown"
	}
}

// Terminal reports whether a path ends with this point.
func (t PointType) Terminal() bool {
	return t == PointEmit || t == PointHit
}

// Point is one event on a beam path.
type Point struct {
	Type  PointType
	Coord geom.Coord
}

func (p Point) String() string {
	return fmt.Sprintf("%s%s", p.Type, p.Coord)
}

// Path is the ordered list of events produced by one beam.
type Path struct {
	Beam   beam.Kind
	Points []Point
}

// Last returns the final point of the path.
func (p Path) Last() (Point, bool) {
	if len(p.Points) == 0 {
		return Point{}, false
	}
	return p.Points[len(p.Points)-1], true
}

// Entry returns the coordinate the beam was fired from.
func (p Path) Entry() (geom.Coord, bool) {
	if len(p.Points) == 0 || p.Points[0].Type != PointEntry {
		return geom.Coord{}, false
	}
	return p.Points[0].Coord, true
}

// Exit returns where the beam left the board, if it was emitted.
func (p Path) Exit() (geom.Coord, bool) {
	last, ok := p.Last()
	if !ok || last.Type != PointEmit {
		return geom.Coord{}, false
	}
	return last.Coord, true
}

// Count returns how many points of type t the path holds.
func (p Path) Count(t PointType) int {
	n := 0
	for _, pt := range p.Points {
		if pt.Type == t {
			n++
		}
	}
	return n
}

// Equal reports whether two paths hold identical events.
func (p Path) Equal(other Path) bool {
	if p.Beam != other.Beam || len(p.Points) != len(other.Points) {
		return false
	}
	for i := range p.Points {
		if p.Points[i] != other.Points[i] {
			return false
		}
	}
	return true
}

// String renders the path as "beam: Entry(r,c) -> ... -> Emit(r,c)".
func (p Path) String() string {
	parts := make([]string, len(p.Points))
	for i, pt := range p.Points {
		parts[i] = pt.String()
	}
	return p.Beam.String() + ": " + strings.Join(parts, " -> ")
}

// History records every beam fired on a board.
type History struct {
	Paths []Path
}
