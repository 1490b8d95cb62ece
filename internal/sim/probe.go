package sim

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/geom"
)

// ProbeBeam is the beam used to decide which tiles a player can reach.
const ProbeBeam = beam.Normal

// Survey is the result of dry-firing the probe beam from every ring cell.
type Survey struct {
	Entries   []geom.Coord              // every probed cell, in tile order
	Reachable geom.CoordSet             // cells some probe was emitted at
	Outputs   map[geom.Coord]geom.Coord // entry -> exit, reaching probes only
}

// Output returns where a probe fired from entry leaves the board. ok is
// false when the probe hit an obstacle or came back out of entry.
func (s Survey) Output(entry geom.Coord) (geom.Coord, bool) {
	c, ok := s.Outputs[entry]
	return c, ok
}

// exitOf returns the cell a path reached, ignoring paths that stopped on
// an obstacle or came straight back out.
func exitOf(entry geom.Coord, path board.Path) (geom.Coord, bool) {
	exit, ok := path.Exit()
	if !ok || exit == entry {
		return geom.Coord{}, false
	}
	return exit, true
}

func newSurvey(entries []geom.Coord) Survey {
	return Survey{
		Entries:   entries,
		Reachable: geom.NewCoordSet(),
		Outputs:   make(map[geom.Coord]geom.Coord, len(entries)),
	}
}

func (s Survey) record(entry geom.Coord, path board.Path) {
	if exit, ok := exitOf(entry, path); ok {
		s.Reachable.Add(exit)
		s.Outputs[entry] = exit
	}
}

// Probe dry-fires the probe beam from every ring cell of b.
// Runaway probes count as unreachable.
func Probe(b *board.Board) Survey {
	survey := newSurvey(b.RingCoords())
	for _, entry := range survey.Entries {
		path, err := FireBeam(b, ProbeBeam, entry, true)
		if err != nil {
			continue
		}
		survey.record(entry, path)
	}
	return survey
}

// Reachability returns the ring cells reachable by the probe beam.
func Reachability(b *board.Board) geom.CoordSet {
	return Probe(b).Reachable
}

// IOMap returns, for every ring cell whose probe reaches another ring cell,
// the cell it reaches. Cells whose probe is absorbed or reflected back are
// absent.
func IOMap(b *board.Board) map[geom.Coord]geom.Coord {
	return Probe(b).Outputs
}

// ProbeParallel is Probe with the dry runs spread over up to workers
// goroutines. b must not be modified until it returns.
func ProbeParallel(ctx context.Context, b *board.Board, workers int) (Survey, error) {
	entries := b.RingCoords()
	paths := make([]board.Path, len(entries))
	ok := make([]bool, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := FireBeam(b, ProbeBeam, entry, true)
			if errors.Is(err, ErrRunaway) {
				return nil
			}
			if err != nil {
				return err
			}
			paths[i], ok[i] = path, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Survey{}, err
	}

	survey := newSurvey(entries)
	for i, entry := range entries {
		if ok[i] {
			survey.record(entry, paths[i])
		}
	}
	return survey, nil
}
