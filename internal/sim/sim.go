// Package sim traces beams across a board and probes which ring cells a
// beam can reach.
// Tracing is deterministic. A dry run follows exactly the same path as a
// real shot but never writes to the board.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/geom"
)

var (
	// ErrNotOnRing is returned when a beam is fired from a cell that is not
	// on the ring directly around the board.
	ErrNotOnRing = errors.New("sim: entry is not on the board's outer ring")

	// ErrRunaway is returned when a beam fails to terminate within
	// MaxSteps. The path is closed with a Hit where the beam stopped.
	// Cycle detection ends every trapped beam first, so only a corrupted
	// board can produce it.
	ErrRunaway = errors.New("sim: beam exceeded step limit")
)

// MaxSteps bounds the number of resolution steps of one beam on a board
// with the given side length: one per (cell, heading) state on the board
// plus its ring.
func MaxSteps(length int) int {
	side := length + 2
	return 4 * side * side
}

// loopKey identifies the state a beam resumes from. Two equal keys on one
// traversal mean the beam is caught in a cycle, since a step depends only
// on the vector, the profile and the destroyed obstacles, and the latter
// two only change on a destroy.
type loopKey struct {
	vec       geom.Vector
	destroyed int
}

// traversal is the state of a beam in flight. step consumes one and
// returns the next, so profile changes show up as values rather than
// mutations.
type traversal struct {
	vec       geom.Vector
	profile   beam.Profile
	destroyed []int // obstacle indexes destroyed by this beam
}

func (t traversal) key() loopKey {
	return loopKey{vec: t.vec, destroyed: len(t.destroyed)}
}

func (t traversal) hasDestroyed(idx int) bool {
	for _, d := range t.destroyed {
		if d == idx {
			return true
		}
	}
	return false
}

// moveTo returns the traversal repositioned at c, keeping its heading.
func (t traversal) moveTo(c geom.Coord) traversal {
	t.vec.Coord = c
	return t
}

// turn returns the traversal repositioned at c with a new heading.
func (t traversal) turn(c geom.Coord, d geom.Dir) traversal {
	t.vec = geom.V(c, d)
	return t
}

// destroy records obstacle idx as destroyed and moves onto its cell.
func (t traversal) destroy(idx int, c geom.Coord) traversal {
	destroyed := make([]int, len(t.destroyed), len(t.destroyed)+1)
	copy(destroyed, t.destroyed)
	t.destroyed = append(destroyed, idx)
	t.profile = t.profile.AfterDestroy()
	t.vec.Coord = c
	return t
}

type simulator struct {
	board  *board.Board
	grid   geom.Grid
	dryRun bool
}

// FireBeam traces a beam of the given kind fired from entry, which must be
// on the ring of prize tiles around the board.
//
// A real shot (dryRun false) marks destroyed obstacles inactive and appends
// the path to the board's history. A dry run leaves the board untouched and
// returns the same path a real shot would.
func FireBeam(b *board.Board, kind beam.Kind, entry geom.Coord, dryRun bool) (board.Path, error) {
	grid := b.Grid()
	side, ok := grid.EdgeOf(entry, 1)
	if !ok {
		return board.Path{}, fmt.Errorf("%w: %s", ErrNotOnRing, entry)
	}

	s := simulator{board: b, grid: grid, dryRun: dryRun}
	path, err := s.trace(kind, geom.V(entry, side.Opposite()))

	if !dryRun {
		b.History.Paths = append(b.History.Paths, path)
	}
	return path, err
}

func (s *simulator) trace(kind beam.Kind, start geom.Vector) (board.Path, error) {
	path := board.Path{
		Beam:   kind,
		Points: []board.Point{{Type: board.PointEntry, Coord: start.Coord}},
	}

	if kind.EmitsOpposite() {
		path.Points = append(path.Points, board.Point{Type: board.PointEmit, Coord: s.grid.ExitPoint(start)})
		return path, nil
	}

	tr := traversal{vec: start, profile: kind.Profile()}

	if pt, ok := s.edgeReflection(tr); ok {
		path.Points = append(path.Points, pt)
		return path, nil
	}

	// A beam deflected back and forth between obstacles on either side
	// keeps turning on the same cell; it is absorbed there.
	seen := mapset.New[loopKey]()
	seen.Put(tr.key())

	limit := MaxSteps(s.board.Config.Length)
	for i := 0; i < limit; i++ {
		next, pt, done := s.step(tr)
		if done {
			path.Points = append(path.Points, pt)
			return path, nil
		}
		if seen.Has(next.key()) {
			path.Points = append(path.Points, board.Point{Type: board.PointHit, Coord: pt.Coord})
			return path, nil
		}
		seen.Put(next.key())
		path.Points = append(path.Points, pt)
		tr = next
	}

	path.Points = append(path.Points, board.Point{Type: board.PointHit, Coord: tr.vec.Coord})
	return path, fmt.Errorf("%w: %s from %s", ErrRunaway, kind, start.Coord)
}

// scan finds the obstacles closest to the beam inside a three lane wide
// cone that starts one cell ahead. Those dead ahead are returned in direct,
// those in a side lane in lateral. dist is their forward distance.
func (s *simulator) scan(tr traversal) (direct, lateral []int, dist int) {
	heading := tr.vec.Dir
	perp := heading.Perpendicular()
	ahead := tr.vec.Coord.Step(heading)
	dist = math.MaxInt

	for i, o := range s.board.Obstacles {
		if !o.Active || tr.hasDestroyed(i) {
			continue
		}
		inCone := false
		for lane := -1; lane <= 1; lane++ {
			if geom.InDirection(ahead.At(perp, lane), o.Coord, heading) {
				inCone = true
				break
			}
		}
		if !inCone {
			continue
		}

		d := geom.DistanceInDirection(tr.vec.Coord, o.Coord, heading)
		if d > dist {
			continue
		}
		if d < dist {
			dist = d
			direct, lateral = nil, nil
		}
		if geom.InDirection(tr.vec.Coord, o.Coord, heading) {
			direct = append(direct, i)
		} else {
			lateral = append(lateral, i)
		}
	}
	return direct, lateral, dist
}

// edgeReflection handles a deflectable beam that meets obstacles beside
// its lane on the very first board row. There is no room to turn, so the
// beam is sent straight back out where it came in.
func (s *simulator) edgeReflection(tr traversal) (board.Point, bool) {
	if !tr.profile.Deflectable {
		return board.Point{}, false
	}
	direct, lateral, dist := s.scan(tr)
	if dist != 1 || len(direct) > 0 || len(lateral) == 0 {
		return board.Point{}, false
	}
	return board.Point{Type: board.PointEmit, Coord: tr.vec.Coord}, true
}

// step resolves the next interaction of the beam. It returns the state to
// continue from, the point to record and whether the path is finished.
func (s *simulator) step(tr traversal) (traversal, board.Point, bool) {
	direct, lateral, dist := s.scan(tr)

	switch {
	case len(direct) == 0 && len(lateral) == 0:
		return tr, board.Point{Type: board.PointEmit, Coord: s.grid.ExitPoint(tr.vec)}, true

	case len(direct) > 0:
		// A head-on obstacle wins over any obstacle beside the lane.
		return s.directHit(tr, direct[0])

	case !tr.profile.Deflectable:
		// Stop level with the obstacle so the next scan starts past it.
		c := tr.vec.Coord.At(tr.vec.Dir, dist)
		return tr.moveTo(c), board.Point{Type: board.PointIgnoreDeflect, Coord: c}, false

	case len(lateral) == 1:
		return s.deflect(tr, lateral[0])

	default:
		return s.doubleDeflect(tr, lateral[0])
	}
}

func (s *simulator) directHit(tr traversal, idx int) (traversal, board.Point, bool) {
	o := &s.board.Obstacles[idx]
	p := tr.profile

	switch {
	case p.CanDestroy:
		if !s.dryRun {
			o.Active = false
		}
		return tr.destroy(idx, o.Coord), board.Point{Type: board.PointDestroy, Coord: o.Coord}, p.Collidable
	case p.CanPhase():
		return tr.moveTo(o.Coord), board.Point{Type: board.PointPhase, Coord: o.Coord}, false
	default:
		return tr, board.Point{Type: board.PointHit, Coord: o.Coord}, true
	}
}

// deflect turns the beam 90 degrees away from an obstacle beside its lane.
// The turn happens on the cell level with the obstacle's shield, the cell
// in front of the obstacle as seen by the incoming beam.
func (s *simulator) deflect(tr traversal, idx int) (traversal, board.Point, bool) {
	heading := tr.vec.Dir
	shield := s.board.Obstacles[idx].Coord.At(heading.Opposite(), 1)
	turnAt := tr.vec.ProjectTo(shield)

	perp := heading.Perpendicular()
	next := perp
	if !geom.InDirection(shield, turnAt, perp) {
		next = perp.Opposite()
	}
	return tr.turn(turnAt, next), board.Point{Type: board.PointDeflect, Coord: turnAt}, false
}

// doubleDeflect reverses a beam caught between two obstacles, one on each
// side of its lane.
func (s *simulator) doubleDeflect(tr traversal, idx int) (traversal, board.Point, bool) {
	heading := tr.vec.Dir
	turnAt := tr.vec.ProjectTo(s.board.Obstacles[idx].Coord).At(heading.Opposite(), 1)
	return tr.turn(turnAt, heading.Opposite()), board.Point{Type: board.PointDoubleDeflect, Coord: turnAt}, false
}
