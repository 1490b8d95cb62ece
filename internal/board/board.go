package board

import (
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
)

// Board is the state of a single round.
// Prizes is indexed by tile id; a nil entry is an empty tile.
type Board struct {
	Config    Config
	Obstacles []Obstacle
	Prizes    []*PrizeState
	History   History
}

// New creates an empty board for the given configuration.
func New(cfg Config) *Board {
	return &Board{
		Config: cfg,
		Prizes: make([]*PrizeState, 4*cfg.Length),
	}
}

// Grid returns the board bounds.
func (b *Board) Grid() geom.Grid {
	return geom.Square(b.Config.Length)
}

// OnRing reports whether c is a prize tile, which is also the set of
// places a beam may be fired from.
func (b *Board) OnRing(c geom.Coord) bool {
	return b.TileID(c) != -1
}

// RingCoords returns every prize tile coordinate in tile id order.
func (b *Board) RingCoords() []geom.Coord {
	return b.Grid().RingCoords(1)
}

// TileID returns the prize tile id of c, or -1 if c is not on the ring.
func (b *Board) TileID(c geom.Coord) int {
	for i, seg := range b.Grid().EdgeSegments(1) {
		if idx := seg.IndexOf(c); idx != -1 {
			return i*b.Config.Length + idx
		}
	}
	return -1
}

// TileCoord is the inverse of TileID.
func (b *Board) TileCoord(id int) (geom.Coord, bool) {
	if b.Config.Length <= 0 || id < 0 || id >= 4*b.Config.Length {
		return geom.Coord{}, false
	}
	seg := b.Grid().EdgeSegments(1)[id/b.Config.Length]
	return seg.At(id % b.Config.Length)
}

// AddObstacle places an active obstacle.
func (b *Board) AddObstacle(c geom.Coord, visible bool) {
	b.Obstacles = append(b.Obstacles, Obstacle{Coord: c, Active: true, Visible: visible})
}

// ObstacleAt returns the obstacle on c, if any.
func (b *Board) ObstacleAt(c geom.Coord) *Obstacle {
	for i := range b.Obstacles {
		if b.Obstacles[i].Coord == c {
			return &b.Obstacles[i]
		}
	}
	return nil
}

// ActiveObstacles returns how many obstacles have not been destroyed.
func (b *Board) ActiveObstacles() int {
	n := 0
	for _, o := range b.Obstacles {
		if o.Active {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the obstacle list.
func (b *Board) Snapshot() []Obstacle {
	out := make([]Obstacle, len(b.Obstacles))
	copy(out, b.Obstacles)
	return out
}

// PrizeAt returns the prize tile at c, or nil if c holds nothing.
func (b *Board) PrizeAt(c geom.Coord) *PrizeState {
	id := b.TileID(c)
	if id == -1 || id >= len(b.Prizes) {
		return nil
	}
	return b.Prizes[id]
}

// AddPrize puts a prize on the tile at c. It returns false if c is not a
// prize tile.
func (b *Board) AddPrize(c geom.Coord, kind prize.Kind) bool {
	id := b.TileID(c)
	if id == -1 {
		return false
	}
	if len(b.Prizes) < 4*b.Config.Length {
		grown := make([]*PrizeState, 4*b.Config.Length)
		copy(grown, b.Prizes)
		b.Prizes = grown
	}
	b.Prizes[id] = &PrizeState{Prize: kind}
	return true
}

// TakePrizeAt marks the prize at c as collected. Empty tiles are ignored.
func (b *Board) TakePrizeAt(c geom.Coord) {
	if p := b.PrizeAt(c); p != nil {
		p.Taken = true
	}
}

// DefuseAt marks the bomb at c as defused.
func (b *Board) DefuseAt(c geom.Coord) {
	if p := b.PrizeAt(c); p != nil && p.IsBomb() {
		p.Defused = true
	}
}

// NumPrizes counts the tiles holding the given prize, taken or not.
func (b *Board) NumPrizes(kind prize.Kind) int {
	n := 0
	for _, p := range b.Prizes {
		if p != nil && p.Prize == kind {
			n++
		}
	}
	return n
}

// RemainingPrizes lists the prizes that are still on the board, in tile
// id order.
func (b *Board) RemainingPrizes() []prize.Kind {
	var out []prize.Kind
	for _, p := range b.Prizes {
		if p != nil && !p.Resolved() {
			out = append(out, p.Prize)
		}
	}
	return out
}

// PrizeCoords returns the coordinates of every occupied tile.
func (b *Board) PrizeCoords() []geom.Coord {
	var out []geom.Coord
	for id, p := range b.Prizes {
		if p == nil {
			continue
		}
		if c, ok := b.TileCoord(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{
		Config:    b.Config,
		Obstacles: b.Snapshot(),
		Prizes:    make([]*PrizeState, len(b.Prizes)),
	}
	for i, p := range b.Prizes {
		if p != nil {
			cp := *p
			out.Prizes[i] = &cp
		}
	}
	for _, path := range b.History.Paths {
		points := make([]Point, len(path.Points))
		copy(points, path.Points)
		out.History.Paths = append(out.History.Paths, Path{Beam: path.Beam, Points: points})
	}
	return out
}
