package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/gen"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/round"
)

func TestRingMove(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		move     int
		expected int
	}{
		{"forward", 0, 1, 1},
		{"wrap forward", 31, 1, 0},
		{"wrap backward", 0, -1, 31},
		{"full turn", 5, 32, 5},
		{"many back", 2, -35, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ring{Length: 8, Index: tt.start}.Move(tt.move)
			if got.Index != tt.expected {
				t.Errorf("Move(%d) = %d, expected %d", tt.move, got.Index, tt.expected)
			}
		})
	}

	r := Ring{Length: 8, Index: 3}.JumpSide(1)
	if r.Index != 11 || r.Side() != 1 {
		t.Errorf("JumpSide(1) = %d (side %d), expected 11 (side 1)", r.Index, r.Side())
	}
}

func TestSegmentBetween(t *testing.T) {
	got := segmentBetween(geom.C(-1, 2), geom.C(3, 2))
	expected := []geom.Coord{geom.C(0, 2), geom.C(1, 2), geom.C(2, 2)}
	if len(got) != len(expected) {
		t.Fatalf("segmentBetween() = %v, expected %v", got, expected)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("segmentBetween()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}

	if got := segmentBetween(geom.C(3, 5), geom.C(3, 1)); len(got) != 3 {
		t.Errorf("leftward segment = %v, expected 3 cells", got)
	}
	if got := segmentBetween(geom.C(0, 0), geom.C(2, 2)); got != nil {
		t.Errorf("diagonal segment = %v, expected nil", got)
	}
}

func TestPathCellsSkipsPsybeamTrail(t *testing.T) {
	path := board.Path{
		Beam: beam.Psybeam,
		Points: []board.Point{
			{Type: board.PointEntry, Coord: geom.C(-1, 2)},
			{Type: board.PointEmit, Coord: geom.C(8, 2)},
		},
	}
	trail, points := pathCells(&path)
	if trail.Len() != 0 {
		t.Errorf("psybeam trail = %v, expected empty", trail.Slice())
	}
	if points[geom.C(8, 2)] != board.PointEmit {
		t.Error("emit point missing")
	}
}

func TestRenderBoard(t *testing.T) {
	b := board.New(board.Config{Length: 3})
	b.AddPrize(geom.C(-1, 0), prize.Jackpot)
	b.AddPrize(geom.C(3, 1), prize.Bomb)
	b.AddObstacle(geom.C(1, 1), false)

	out := RenderBoard(b, BoardView{}, DefaultTheme())
	if lines := strings.Split(out, "\n"); len(lines) != 5 {
		t.Errorf("RenderBoard() has %d lines, expected 5", len(lines))
	}
	if !strings.Contains(out, "JP") || !strings.Contains(out, "**") {
		t.Errorf("RenderBoard() missing prize labels:\n%s", out)
	}
	if strings.Contains(out, "()") {
		t.Error("hidden obstacle should not be drawn")
	}

	revealed := RenderBoard(b, BoardView{Reveal: true}, DefaultTheme())
	if !strings.Contains(revealed, "()") {
		t.Error("revealed board should draw the hidden obstacle")
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	tables, err := cfg.Generator.Tables()
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}
	logger := log.New(io.Discard)
	game, err := round.NewGame(cfg, gen.New(tables, gen.WithSeed(3)), logger)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	m, err := NewModel(Options{Game: game, Player: "tester", Logger: logger})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	return m
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelFireAndNavigate(t *testing.T) {
	m := newTestModel(t)
	if m.game.Round == nil || m.game.Rounds != 1 {
		t.Fatal("NewModel() should deal the first round")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.ring.Index != 1 {
		t.Errorf("ring index = %d, expected 1", m.ring.Index)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.ring.Index != 31 {
		t.Errorf("ring index = %d, expected 31", m.ring.Index)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game.Round.Shots != 1 {
		t.Errorf("Shots = %d, expected 1", m.game.Round.Shots)
	}
	if m.last == nil || m.status == "" {
		t.Error("firing should record the outcome and set a status")
	}
	if !strings.Contains(m.View(), "BEAMBOX") {
		t.Error("View() should render the HUD")
	}
}

func TestModelNextRoundAndQuit(t *testing.T) {
	m := newTestModel(t)
	credit := m.game.Credit

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.game.Rounds != 2 {
		t.Errorf("Rounds = %d, expected 2", m.game.Rounds)
	}
	if m.game.Credit != credit-m.game.Config().Round.RoundCost {
		t.Errorf("Credit = %d, expected %d", m.game.Credit, credit-m.game.Config().Round.RoundCost)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.game.Round != nil {
		t.Error("quitting should settle the current round")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelSurvivesFailedDeal(t *testing.T) {
	cfg := config.Default()
	tables, err := cfg.Generator.Tables()
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}
	cfg.Board.Length = 1 // rejected by the generator
	logger := log.New(io.Discard)
	game, err := round.NewGame(cfg, gen.New(tables, gen.WithSeed(3)), logger)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	m := Model{
		game:     game,
		theme:    DefaultTheme(),
		logger:   logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		shots:    newShotTable(),
		selected: beam.Normal,
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.game.Round != nil {
		t.Fatal("deal should have failed")
	}
	if m.outOfCredit || !m.warn || !strings.Contains(m.status, "cannot deal") {
		t.Errorf("status = %q (warn %v, out of credit %v)", m.status, m.warn, m.outOfCredit)
	}

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyTab},
		{Type: tea.KeyShiftTab},
		{Type: tea.KeyRight},
		{Type: tea.KeyUp},
	} {
		m = press(m, msg)
	}
	m.fire()
	m.cycleBeam(1)

	if !strings.Contains(m.View(), "BEAMBOX") {
		t.Error("View() should still render the HUD")
	}
}

func TestDescribeOutcome(t *testing.T) {
	small := prize.SmallSum
	tests := []struct {
		name     string
		out      round.Outcome
		contains string
	}{
		{"lost", round.Outcome{}, "lost"},
		{"prize", round.Outcome{
			Path:   board.Path{Points: []board.Point{{Type: board.PointEmit, Coord: geom.C(8, 1)}}},
			Prize:  &small,
			Amount: 3,
		}, "small-sum at (8,1): +3"},
		{"hit", round.Outcome{
			Path: board.Path{Points: []board.Point{{Type: board.PointHit, Coord: geom.C(2, 2)}}},
		}, "absorbed"},
		{"bomb", round.Outcome{
			Path:     board.Path{Points: []board.Point{{Type: board.PointEmit, Coord: geom.C(8, 1)}}},
			Exploded: true,
		}, "BOOM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeOutcome(tt.out); !strings.Contains(got, tt.contains) {
				t.Errorf("describeOutcome() = %q, expected it to contain %q", got, tt.contains)
			}
		})
	}
}
