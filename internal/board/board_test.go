package board

import (
	"strings"
	"testing"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
)

func TestTileIDRoundTrip(t *testing.T) {
	b := New(Config{Length: 5})

	seen := make(map[int]bool)
	for _, c := range b.RingCoords() {
		id := b.TileID(c)
		if id < 0 || id >= 20 {
			t.Fatalf("TileID(%v) = %d out of range", c, id)
		}
		if seen[id] {
			t.Errorf("TileID(%v) = %d is not unique", c, id)
		}
		seen[id] = true

		back, ok := b.TileCoord(id)
		if !ok || back != c {
			t.Errorf("TileCoord(%d) = %v, %v; expected %v", id, back, ok, c)
		}
	}
}

func TestTileIDLayout(t *testing.T) {
	b := New(Config{Length: 8})
	tests := []struct {
		c        geom.Coord
		expected int
	}{
		{geom.C(-1, 0), 0},
		{geom.C(-1, 7), 7},
		{geom.C(0, 8), 8},
		{geom.C(8, 7), 16},
		{geom.C(7, -1), 24},
		{geom.C(0, -1), 31},
		{geom.C(-1, -1), -1},
		{geom.C(3, 3), -1},
	}
	for _, tc := range tests {
		if got := b.TileID(tc.c); got != tc.expected {
			t.Errorf("TileID(%v) = %d, expected %d", tc.c, got, tc.expected)
		}
	}
}

func TestPrizeAccessors(t *testing.T) {
	b := New(DefaultConfig())
	top := geom.C(-1, 2)
	side := geom.C(4, 8)

	if !b.AddPrize(top, prize.Jackpot) {
		t.Fatal("AddPrize on ring failed")
	}
	if !b.AddPrize(side, prize.Bomb) {
		t.Fatal("AddPrize on ring failed")
	}
	if b.AddPrize(geom.C(2, 2), prize.SmallSum) {
		t.Error("AddPrize inside the board should fail")
	}

	if p := b.PrizeAt(top); p == nil || p.Prize != prize.Jackpot {
		t.Errorf("PrizeAt(%v) = %+v", top, p)
	}
	if b.PrizeAt(geom.C(-1, 3)) != nil {
		t.Error("empty tile should have no prize")
	}
	if got := b.NumPrizes(prize.Jackpot); got != 1 {
		t.Errorf("NumPrizes(Jackpot) = %d, expected 1", got)
	}

	b.TakePrizeAt(top)
	b.TakePrizeAt(geom.C(-1, 5))
	if !b.PrizeAt(top).Taken {
		t.Error("prize should be taken")
	}

	remaining := b.RemainingPrizes()
	if len(remaining) != 1 || remaining[0] != prize.Bomb {
		t.Errorf("RemainingPrizes() = %v, expected [bomb]", remaining)
	}

	b.DefuseAt(side)
	if !b.PrizeAt(side).Defused {
		t.Error("bomb should be defused")
	}
	if len(b.RemainingPrizes()) != 0 {
		t.Errorf("RemainingPrizes() = %v, expected none", b.RemainingPrizes())
	}
	if got := b.NumPrizes(prize.Jackpot); got != 1 {
		t.Errorf("NumPrizes counts taken prizes too, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(Config{Length: 4, Obstacles: 1})
	b.AddObstacle(geom.C(1, 1), true)
	b.AddPrize(geom.C(-1, 0), prize.SmallSum)
	b.History.Paths = append(b.History.Paths, Path{
		Beam:   beam.Normal,
		Points: []Point{{Type: PointEntry, Coord: geom.C(-1, 0)}},
	})

	c := b.Clone()
	c.Obstacles[0].Active = false
	c.TakePrizeAt(geom.C(-1, 0))
	c.History.Paths[0].Points[0].Type = PointHit

	if !b.Obstacles[0].Active {
		t.Error("clone shares obstacles with original")
	}
	if b.PrizeAt(geom.C(-1, 0)).Taken {
		t.Error("clone shares prize state with original")
	}
	if b.History.Paths[0].Points[0].Type != PointEntry {
		t.Error("clone shares history with original")
	}
}

func TestPathAccessors(t *testing.T) {
	p := Path{
		Beam: beam.Normal,
		Points: []Point{
			{Type: PointEntry, Coord: geom.C(-1, 2)},
			{Type: PointDeflect, Coord: geom.C(3, 2)},
			{Type: PointEmit, Coord: geom.C(3, 8)},
		},
	}
	if c, ok := p.Entry(); !ok || c != geom.C(-1, 2) {
		t.Errorf("Entry() = %v, %v", c, ok)
	}
	if c, ok := p.Exit(); !ok || c != geom.C(3, 8) {
		t.Errorf("Exit() = %v, %v", c, ok)
	}
	if p.Count(PointDeflect) != 1 {
		t.Errorf("Count(Deflect) = %d", p.Count(PointDeflect))
	}
	expected := "normal: Entry(-1,2) -> Deflect(3,2) -> Emit(3,8)"
	if p.String() != expected {
		t.Errorf("String() = %q, expected %q", p.String(), expected)
	}

	hit := Path{Points: []Point{{Type: PointEntry}, {Type: PointHit}}}
	if _, ok := hit.Exit(); ok {
		t.Error("a path ending in a hit has no exit")
	}
}

func TestPointTypeTerminal(t *testing.T) {
	for pt := PointEntry; pt <= PointHit; pt++ {
		expected := pt == PointEmit || pt == PointHit
		if pt.Terminal() != expected {
			t.Errorf("%v.Terminal() = %v", pt, pt.Terminal())
		}
	}
}

func TestStringDump(t *testing.T) {
	b := New(Config{Length: 3, Obstacles: 3})
	b.AddObstacle(geom.C(0, 0), true)
	b.AddObstacle(geom.C(1, 1), false)
	b.AddObstacle(geom.C(2, 2), true)
	b.Obstacles[2].Active = false
	b.AddPrize(geom.C(-1, 1), prize.Jackpot)
	b.AddPrize(geom.C(1, 3), prize.Bomb)
	b.AddPrize(geom.C(3, 0), prize.SmallSum)
	b.TakePrizeAt(geom.C(3, 0))

	expected := strings.Join([]string{
		"[##] | [  ] [JP] [  ] | [##]",
		"-----|----------------|-----",
		"[  ] | [B ] [  ] [  ] | [  ]",
		"[  ] | [  ] [h ] [  ] | [**]",
		"[  ] | [  ] [  ] [x ] | [  ]",
		"-----|----------------|-----",
		"[##] | [..] [  ] [  ] | [##]",
	}, "\n")

	if got := b.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
}
