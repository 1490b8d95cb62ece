package round

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/gen"
)

// Game strings rounds together and carries credit and level between them.
type Game struct {
	Credit int
	Level  int
	Rounds int
	Round  *Round

	cfg     config.Config
	payouts config.PayoutTable
	gen     *gen.Generator
	logger  *log.Logger
}

// NewGame starts a game with the configured credit and level. No round is
// dealt until NextRound is called.
func NewGame(cfg config.Config, g *gen.Generator, logger *log.Logger) (*Game, error) {
	payouts, err := cfg.Payouts.Table()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		Credit:  cfg.Round.StartingCredit,
		Level:   cfg.Round.StartLevel,
		cfg:     cfg,
		payouts: payouts,
		gen:     g,
		logger:  logger,
	}, nil
}

// Config returns the configuration the game was created with.
func (g *Game) Config() config.Config {
	return g.cfg
}

// NextRound settles the current round, if any, charges the round cost and
// deals a new board.
func (g *Game) NextRound() (*Round, error) {
	if g.Round != nil {
		g.Settle()
	}
	if g.Credit < g.cfg.Round.RoundCost {
		return nil, ErrNoCredit
	}

	b, err := g.gen.Generate(g.cfg.Board, g.Level)
	if err != nil {
		return nil, err
	}
	g.Credit -= g.cfg.Round.RoundCost
	g.Rounds++
	g.Round = New(b, g.Level, map[beam.Kind]int{beam.Normal: g.cfg.Round.StartingBeams}, g.payouts)
	g.logger.Info("round started", "round", g.Rounds, "level", g.Level, "credit", g.Credit)
	return g.Round, nil
}

// Settle closes the current round: the payout is added to credit and the
// level moves up after a jackpot or down after an empty round.
// It returns the settled round, or nil if there was none.
func (g *Game) Settle() *Round {
	r := g.Round
	if r == nil {
		return nil
	}
	r.Quit()
	g.Credit += r.Payout
	g.Level = NextLevel(g.Level, r, g.cfg.Round.MaxLevel)
	g.Round = nil
	g.logger.Info("round settled",
		"payout", r.Payout,
		"reason", r.Ended,
		"jackpot", r.WonJackpot,
		"level", g.Level,
		"credit", g.Credit,
	)
	return r
}

// NextLevel returns the level after a finished round.
func NextLevel(level int, r *Round, maxLevel int) int {
	switch {
	case r.WonJackpot:
		return min(level+1, maxLevel)
	case r.Payout == 0:
		return max(level-1, 1)
	default:
		return level
	}
}
