package gen

import (
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/sim"
)

// placement is the bookkeeping of one board's prize placement.
type placement struct {
	board    *board.Board
	survey   sim.Survey
	ring     geom.CoordSet
	taken    geom.CoordSet
	jackpots geom.CoordSet
	counts   map[prize.Kind]int
	tallies  map[prize.Category]Tally
}

func (g *Generator) placePrizes(b *board.Board, level int, survey sim.Survey) Report {
	p := &placement{
		board:    b,
		survey:   survey,
		ring:     geom.NewCoordSet(b.RingCoords()...),
		taken:    geom.NewCoordSet(),
		jackpots: geom.NewCoordSet(),
		counts:   make(map[prize.Kind]int),
		tallies:  make(map[prize.Category]Tally),
	}
	report := Report{
		Level:     level,
		Target:    g.drawTotal(level),
		Reachable: survey.Reachable.Len(),
	}

	// Every prize's minimum goes down first.
	for _, kind := range prize.All() {
		for i := 0; i < g.tables.Yield(kind, level).Min; i++ {
			if g.place(p, kind) {
				report.Placed++
			} else {
				report.Skipped++
			}
		}
	}

	// Then random prizes that still have room, until the target.
	for attempts := report.Placed; attempts < report.Target; attempts++ {
		kind, ok := g.randomAvailable(p, level)
		if !ok {
			break
		}
		if g.place(p, kind) {
			report.Placed++
		} else {
			report.Skipped++
		}
	}

	report.Tallies = p.tallies
	return report
}

func (g *Generator) drawTotal(level int) int {
	r := TotalRange(g.tables, level)
	return r.Min + g.rng.Intn(r.Max-r.Min+1)
}

// randomAvailable picks a prize that has not reached its maximum yet.
func (g *Generator) randomAvailable(p *placement, level int) (prize.Kind, bool) {
	var available []prize.Kind
	for _, kind := range prize.All() {
		if p.counts[kind] < g.tables.Yield(kind, level).Max {
			available = append(available, kind)
		}
	}
	if len(available) == 0 {
		return prize.Jackpot, false
	}
	return available[g.rng.Intn(len(available))], true
}

// place puts one prize on a free tile. Some prizes prefer tiles no probe
// can reach, as long as that keeps the category's unreachable share within
// the quota. It returns false if no tile is available.
func (g *Generator) place(p *placement, kind prize.Kind) bool {
	category := kind.Category()
	tally := p.tallies[category]
	underQuota := float64(tally.Unreachable+1)/float64(tally.Total+1) <= g.tables.MaxUnreachable
	wantUnreachable := g.rng.Float64() < g.tables.ProbUnreachableOf(kind) && underQuota

	open := p.ring.Difference(p.taken)
	reachable := p.survey.Reachable
	if kind == prize.Jackpot {
		reachable = p.jackpotCandidates()
	}
	reachableOpen := open.Intersect(reachable)
	unreachableOpen := open.Difference(p.survey.Reachable)

	var candidates geom.CoordSet
	unreachable := false
	switch {
	case wantUnreachable && unreachableOpen.Len() > 0:
		candidates, unreachable = unreachableOpen, true
	case reachableOpen.Len() > 0:
		candidates = reachableOpen
	case kind != prize.Jackpot && underQuota && unreachableOpen.Len() > 0:
		candidates, unreachable = unreachableOpen, true
	default:
		g.logger.Debug("no free tile for prize", "prize", kind, "open", open.Len())
		return false
	}

	coords := candidates.Slice()
	c := coords[g.rng.Intn(len(coords))]

	p.board.AddPrize(c, kind)
	p.taken.Add(c)
	p.counts[kind]++
	if kind == prize.Jackpot {
		p.jackpots.Add(c)
	}
	tally.Total++
	if unreachable {
		tally.Unreachable++
	}
	p.tallies[category] = tally
	return true
}

// jackpotCandidates returns the reachable tiles a jackpot may use: a tile
// is excluded when a single shot could pair it with a jackpot already on
// the board.
func (p *placement) jackpotCandidates() geom.CoordSet {
	out := p.survey.Reachable.Clone()
	for _, j := range p.jackpots.Slice() {
		if exit, ok := p.survey.Output(j); ok {
			out.Remove(exit)
		}
	}
	for _, c := range out.Slice() {
		if exit, ok := p.survey.Output(c); ok && p.jackpots.Has(exit) {
			out.Remove(c)
		}
	}
	return out
}
