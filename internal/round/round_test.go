package round_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/gen"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/round"
)

func payouts(t *testing.T) config.PayoutTable {
	t.Helper()
	table, err := config.Default().Payouts.Table()
	if err != nil {
		t.Fatalf("Table() error: %v", err)
	}
	return table
}

// newRound builds a 4x4 board with prizes on the bottom row, so a beam
// fired down column c from (-1,c) lands on (4,c).
func newRound(t *testing.T, beams map[beam.Kind]int, bottom ...prize.Kind) *round.Round {
	t.Helper()
	b := board.New(board.Config{Length: 4})
	for col, p := range bottom {
		if !b.AddPrize(geom.C(4, col), p) {
			t.Fatalf("AddPrize(4,%d) failed", col)
		}
	}
	return round.New(b, 1, beams, payouts(t))
}

func fire(t *testing.T, r *round.Round, kind beam.Kind, col int) round.Outcome {
	t.Helper()
	out, err := r.Fire(kind, geom.C(-1, col))
	if err != nil {
		t.Fatalf("Fire(%s, col %d) error: %v", kind, col, err)
	}
	return out
}

func TestMoneyPrize(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 2}, prize.SmallSum, prize.LargeSum)

	out := fire(t, r, beam.Normal, 0)
	if out.Prize == nil || *out.Prize != prize.SmallSum {
		t.Fatalf("Prize = %v, expected small-sum", out.Prize)
	}
	if out.Amount != 3 || r.Payout != 3 {
		t.Errorf("Amount = %d, Payout = %d, expected 3", out.Amount, r.Payout)
	}
	if r.Inventory[beam.Normal] != 1 {
		t.Errorf("normal beams = %d, expected 1", r.Inventory[beam.Normal])
	}
	if r.Over() {
		t.Error("round should continue while beams and prizes remain")
	}

	fire(t, r, beam.Normal, 1)
	if r.Payout != 13 {
		t.Errorf("Payout = %d, expected 13", r.Payout)
	}
}

func TestDoublePrizeBeam(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.DoublePrize: 1, beam.Normal: 1}, prize.MediumSum, prize.Plus3Beams)

	out := fire(t, r, beam.DoublePrize, 0)
	if out.Amount != 10 || r.Payout != 10 {
		t.Errorf("Amount = %d, Payout = %d, expected 10", out.Amount, r.Payout)
	}

	out = fire(t, r, beam.Normal, 1)
	if out.Amount != 3 {
		t.Errorf("inventory Amount = %d, expected 3", out.Amount)
	}
}

func TestJackpot(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 1}, prize.Jackpot, prize.SmallSum)
	fire(t, r, beam.Normal, 0)
	if !r.WonJackpot || r.Payout != 30 {
		t.Errorf("WonJackpot = %v, Payout = %d, expected true, 30", r.WonJackpot, r.Payout)
	}
}

func TestInventoryPrizes(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 1}, prize.Plus3Beams, prize.Minus1Beam, prize.CometBeam, prize.SmallSum)

	fire(t, r, beam.Normal, 0)
	if r.Inventory[beam.Normal] != 3 {
		t.Fatalf("normal beams = %d, expected 3", r.Inventory[beam.Normal])
	}
	fire(t, r, beam.Normal, 1)
	if r.Inventory[beam.Normal] != 1 {
		t.Errorf("normal beams = %d, expected 1", r.Inventory[beam.Normal])
	}
	fire(t, r, beam.Normal, 2)
	if r.Inventory[beam.Comet] != 1 {
		t.Errorf("comet beams = %d, expected 1", r.Inventory[beam.Comet])
	}
	if got := r.Beams(); len(got) != 1 || got[0] != beam.Comet {
		t.Errorf("Beams() = %v, expected [comet]", got)
	}
}

func TestMinusBeamFloorsAtZero(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 1, beam.Water: 1}, prize.Minus1Beam, prize.SmallSum)
	fire(t, r, beam.Normal, 0)
	if r.Inventory[beam.Normal] != 0 {
		t.Errorf("normal beams = %d, expected 0", r.Inventory[beam.Normal])
	}
}

func TestBombExplodes(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 3}, prize.LargeSum, prize.Bomb, prize.SmallSum)
	fire(t, r, beam.Normal, 0)

	out := fire(t, r, beam.Normal, 1)
	if !out.Exploded {
		t.Fatal("bomb should explode under a normal beam")
	}
	if r.Payout != 0 {
		t.Errorf("Payout = %d, expected 0 after a bomb", r.Payout)
	}
	if r.Ended != round.EndBomb {
		t.Errorf("Ended = %v, expected bomb", r.Ended)
	}
	if _, err := r.Fire(beam.Normal, geom.C(-1, 2)); !errors.Is(err, round.ErrRoundOver) {
		t.Errorf("Fire() after bomb error = %v, expected ErrRoundOver", err)
	}
}

func TestBombDefused(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Water: 1, beam.Normal: 1}, prize.Bomb, prize.SmallSum)
	out := fire(t, r, beam.Water, 0)
	if !out.Defused || out.Exploded {
		t.Errorf("Defused = %v, Exploded = %v, expected true, false", out.Defused, out.Exploded)
	}
	if r.Over() {
		t.Error("defusing a bomb should not end the round")
	}
	if !r.Board.PrizeAt(geom.C(4, 0)).Resolved() {
		t.Error("defused bomb should be resolved")
	}
}

func TestNoBeams(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 1}, prize.SmallSum, prize.LargeSum)
	if _, err := r.Fire(beam.Comet, geom.C(-1, 0)); !errors.Is(err, round.ErrNoBeams) {
		t.Errorf("Fire(comet) error = %v, expected ErrNoBeams", err)
	}
	fire(t, r, beam.Normal, 3)
	if r.Ended != round.EndNoBeams {
		t.Errorf("Ended = %v, expected out of beams", r.Ended)
	}
	if r.Shots != 1 {
		t.Errorf("Shots = %d, expected 1", r.Shots)
	}
}

func TestBoardCleared(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 3}, prize.SmallSum, prize.Bomb, prize.Minus1Beam)
	fire(t, r, beam.Normal, 0)
	if r.Ended != round.EndBoardCleared {
		t.Errorf("Ended = %v, expected board cleared", r.Ended)
	}
}

func TestFireOffRing(t *testing.T) {
	r := newRound(t, map[beam.Kind]int{beam.Normal: 1}, prize.SmallSum)
	if _, err := r.Fire(beam.Normal, geom.C(1, 1)); err == nil {
		t.Error("Fire() inside the board should fail")
	}
	if r.Inventory[beam.Normal] != 1 {
		t.Error("a rejected shot should not spend a beam")
	}
}

func TestNextLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		round    round.Round
		expected int
	}{
		{"jackpot", 3, round.Round{WonJackpot: true, Payout: 80}, 4},
		{"jackpot at max", 8, round.Round{WonJackpot: true, Payout: 600}, 8},
		{"empty", 3, round.Round{}, 2},
		{"empty at first level", 1, round.Round{}, 1},
		{"paid", 3, round.Round{Payout: 5}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := round.NextLevel(tt.level, &tt.round, 8); got != tt.expected {
				t.Errorf("NextLevel() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func newGame(t *testing.T, cfg config.Config) *round.Game {
	t.Helper()
	tables, err := cfg.Generator.Tables()
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}
	g, err := round.NewGame(cfg, gen.New(tables, gen.WithSeed(7)), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	return g
}

func TestGameCredit(t *testing.T) {
	cfg := config.Default()
	g := newGame(t, cfg)

	r, err := g.NextRound()
	if err != nil {
		t.Fatalf("NextRound() error: %v", err)
	}
	if g.Credit != cfg.Round.StartingCredit-cfg.Round.RoundCost {
		t.Errorf("Credit = %d, expected %d", g.Credit, cfg.Round.StartingCredit-cfg.Round.RoundCost)
	}
	if r.Inventory[beam.Normal] != cfg.Round.StartingBeams {
		t.Errorf("normal beams = %d, expected %d", r.Inventory[beam.Normal], cfg.Round.StartingBeams)
	}
	if len(r.Board.Obstacles) != cfg.Board.Obstacles {
		t.Errorf("obstacles = %d, expected %d", len(r.Board.Obstacles), cfg.Board.Obstacles)
	}

	r.Payout = 12
	before := g.Credit
	settled := g.Settle()
	if settled != r || settled.Ended != round.EndQuit {
		t.Errorf("Settle() = %v, expected the quit round", settled)
	}
	if g.Credit != before+12 {
		t.Errorf("Credit = %d, expected %d", g.Credit, before+12)
	}
	if g.Round != nil {
		t.Error("Settle() should clear the current round")
	}
}

func TestGameOutOfCredit(t *testing.T) {
	cfg := config.Default()
	cfg.Round.StartingCredit = cfg.Round.RoundCost
	g := newGame(t, cfg)

	if _, err := g.NextRound(); err != nil {
		t.Fatalf("first NextRound() error: %v", err)
	}
	if _, err := g.NextRound(); !errors.Is(err, round.ErrNoCredit) {
		t.Errorf("NextRound() error = %v, expected ErrNoCredit", err)
	}
}

func TestGameWithoutLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	cfg := config.Default()
	tables, err := cfg.Generator.Tables()
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}
	g, err := round.NewGame(cfg, gen.New(tables, gen.WithSeed(7)), nil)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	if _, err := g.NextRound(); err != nil {
		t.Fatalf("NextRound() error: %v", err)
	}
	g.Settle()

	if buf.Len() != 0 {
		t.Errorf("game without a logger wrote to the default logger: %q", buf.String())
	}
}
