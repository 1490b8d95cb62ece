// Package gen builds boards for a round: it scatters obstacles, probes
// the board with dry-run beams and places prizes on the ring under the
// per-level yield tables and reachability quotas.
package gen

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/sim"
)

// Rand is the random source used by the generator.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
}

// ConfigError describes a board request the generator cannot satisfy.
type ConfigError struct {
	Code    string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gen: %s: %s", e.Code, e.Message)
}

// Generator creates boards from a set of tables.
// A Generator is not safe for concurrent use because it owns its random
// source.
type Generator struct {
	tables  config.Tables
	rng     Rand
	logger  *log.Logger
	workers int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a math/rand source. A zero seed uses the current time.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger used for placement diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithProbeWorkers spreads reachability probes over n goroutines.
func WithProbeWorkers(n int) Option {
	return func(g *Generator) { g.workers = n }
}

// New creates a Generator.
func New(tables config.Tables, opts ...Option) *Generator {
	g := &Generator{
		tables: tables,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Tables returns the tables the generator draws from.
func (g *Generator) Tables() config.Tables {
	return g.tables
}

// Tally counts placements of one prize category.
type Tally struct {
	Unreachable int
	Total       int
}

// Report summarises a board's prize placement.
type Report struct {
	Level     int
	Target    int // total prizes drawn from the total range
	Placed    int
	Skipped   int // placements dropped for lack of a free tile
	Reachable int // ring tiles reachable by the probe beam
	Tallies   map[prize.Category]Tally
}

// Generate builds a board for the given level.
func (g *Generator) Generate(cfg board.Config, level int) (*board.Board, error) {
	b, _, err := g.GenerateReport(context.Background(), cfg, level)
	return b, err
}

// GenerateReport builds a board and reports how its prizes were placed.
func (g *Generator) GenerateReport(ctx context.Context, cfg board.Config, level int) (*board.Board, Report, error) {
	if err := g.validate(cfg, level); err != nil {
		return nil, Report{}, err
	}

	b := board.New(cfg)
	g.placeObstacles(b, level)

	survey, err := g.probe(ctx, b)
	if err != nil {
		return nil, Report{}, fmt.Errorf("gen: probing board: %w", err)
	}

	report := g.placePrizes(b, level, survey)
	g.logger.Debug("board generated",
		"level", level,
		"length", cfg.Length,
		"obstacles", cfg.Obstacles,
		"reachable", report.Reachable,
		"target", report.Target,
		"placed", report.Placed,
		"skipped", report.Skipped,
	)
	return b, report, nil
}

func (g *Generator) validate(cfg board.Config, level int) error {
	if cfg.Length < board.MinLength || cfg.Length > board.MaxLength {
		return &ConfigError{
			Code:    "bad_length",
			Message: fmt.Sprintf("board length %d is outside [%d, %d]", cfg.Length, board.MinLength, board.MaxLength),
		}
	}
	if cfg.Obstacles < 0 || cfg.Obstacles > cfg.Length*cfg.Length {
		return &ConfigError{
			Code:    "bad_obstacles",
			Message: fmt.Sprintf("%d obstacles do not fit a %dx%d board", cfg.Obstacles, cfg.Length, cfg.Length),
		}
	}
	if !g.tables.ValidLevel(level) {
		return &ConfigError{Code: "bad_level", Message: fmt.Sprintf("level %d is outside [1, %d]", level, g.tables.Levels)}
	}
	return nil
}

func (g *Generator) probe(ctx context.Context, b *board.Board) (sim.Survey, error) {
	if g.workers > 1 {
		return sim.ProbeParallel(ctx, b, g.workers)
	}
	return sim.Probe(b), nil
}

// placeObstacles picks distinct cells uniformly at random. The first
// hidden ones are invisible.
func (g *Generator) placeObstacles(b *board.Board, level int) {
	n := b.Config.Length
	hidden := g.tables.Hidden(level)
	cells := g.rng.Perm(n * n)[:b.Config.Obstacles]
	for i, cell := range cells {
		b.AddObstacle(geom.C(cell/n, cell%n), i >= hidden)
	}
}

// TotalRange returns the range of the total prize count at a level.
// Each prize count is treated as an independent uniform draw; the range is
// one standard deviation either side of the summed mean.
func TotalRange(t config.Tables, level int) config.Range {
	var mean, variance float64
	for _, kind := range prize.All() {
		r := t.Yield(kind, level)
		mean += float64(r.Min+r.Max) / 2
		span := float64(r.Max + 1 - r.Min)
		variance += span * span / 12
	}
	std := math.Sqrt(variance)
	lo := max(0, int(math.Floor(mean-std)))
	hi := max(lo, int(math.Floor(mean+std)))
	return config.Range{Min: lo, Max: hi}
}
