// Package round runs a game of beambox: it hands out beams, resolves the
// prize under each emitted beam and moves the player between levels.
package round

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/sim"
)

var (
	// ErrNoBeams is returned when firing a beam the inventory lacks.
	ErrNoBeams = errors.New("round: no beams of that kind left")
	// ErrRoundOver is returned when firing after the round ended.
	ErrRoundOver = errors.New("round: round is over")
	// ErrNoCredit is returned when the player cannot pay for a round.
	ErrNoCredit = errors.New("round: not enough credit")
)

// EndReason explains why a round finished.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndBomb
	EndNoBeams
	EndBoardCleared
	EndQuit
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "playing"
	case EndBomb:
		return "bomb"
	case EndNoBeams:
		return "out of beams"
	case EndBoardCleared:
		return "board cleared"
	case EndQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Outcome is the result of one shot.
type Outcome struct {
	Path     board.Path
	Prize    *prize.Kind // prize collected, nil if the beam landed on nothing
	Amount   int         // payout or beam count awarded, after multipliers
	Defused  bool        // a bomb was defused
	Exploded bool        // a bomb went off
}

// Round is one board and the inventory used to play it.
type Round struct {
	Board      *board.Board
	Level      int
	Inventory  map[beam.Kind]int
	Payout     int
	Shots      int
	Outcomes   []Outcome
	WonJackpot bool
	Ended      EndReason

	payouts config.PayoutTable
}

// New wraps a dealt board in a round holding the given beams.
func New(b *board.Board, level int, beams map[beam.Kind]int, payouts config.PayoutTable) *Round {
	inv := make(map[beam.Kind]int, len(beams))
	for k, n := range beams {
		inv[k] = n
	}
	return &Round{Board: b, Level: level, Inventory: inv, payouts: payouts}
}

// Over reports whether the round has finished.
func (r *Round) Over() bool {
	return r.Ended != EndNone
}

// Beams returns the beam kinds in the inventory with a count above zero,
// in display order.
func (r *Round) Beams() []beam.Kind {
	var out []beam.Kind
	for _, k := range beam.All() {
		if r.Inventory[k] > 0 {
			out = append(out, k)
		}
	}
	return out
}

// Fire shoots a beam from entry and applies the prize where it lands.
func (r *Round) Fire(kind beam.Kind, entry geom.Coord) (Outcome, error) {
	if r.Over() {
		return Outcome{}, ErrRoundOver
	}
	if r.Inventory[kind] <= 0 {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoBeams, kind)
	}

	path, err := sim.FireBeam(r.Board, kind, entry, false)
	if err != nil && !errors.Is(err, sim.ErrRunaway) {
		return Outcome{}, err
	}
	r.Inventory[kind]--
	r.Shots++

	// A runaway beam is spent without landing anywhere.
	out := Outcome{Path: path}
	if exit, ok := path.Exit(); ok {
		r.collect(kind, exit, &out)
	}
	r.Outcomes = append(r.Outcomes, out)
	r.checkEnd()
	return out, nil
}

// collect resolves the prize tile at c.
func (r *Round) collect(kind beam.Kind, c geom.Coord, out *Outcome) {
	state := r.Board.PrizeAt(c)
	if state == nil || state.Resolved() {
		return
	}
	p := state.Prize
	out.Prize = &p

	if state.IsBomb() {
		if kind.TriggersBomb() {
			state.Taken = true
			out.Exploded = true
			r.Payout = 0
			r.Ended = EndBomb
		} else {
			r.Board.DefuseAt(c)
			out.Defused = true
		}
		return
	}

	amount := r.payouts.Amount(p, r.Level)
	r.Board.TakePrizeAt(c)

	switch p.Category() {
	case prize.CategoryMoney:
		amount *= kind.PayoutFactor()
		r.Payout += amount
		if p == prize.Jackpot {
			r.WonJackpot = true
		}
	case prize.CategoryInventory:
		r.Inventory[beam.Normal] = max(0, r.Inventory[beam.Normal]+amount)
	case prize.CategoryBeam:
		if b, ok := p.Beam(); ok {
			r.Inventory[b] += amount
		}
	}
	out.Amount = amount
}

func (r *Round) checkEnd() {
	if r.Over() {
		return
	}
	beams := 0
	for _, n := range r.Inventory {
		beams += n
	}
	if beams == 0 {
		r.Ended = EndNoBeams
		return
	}
	for _, p := range r.Board.RemainingPrizes() {
		if !p.Negative() {
			return
		}
	}
	r.Ended = EndBoardCleared
}

// Quit ends the round early, keeping the payout collected so far.
func (r *Round) Quit() {
	if !r.Over() {
		r.Ended = EndQuit
	}
}
