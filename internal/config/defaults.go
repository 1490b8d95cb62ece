package config

import (
	_ "embed"

	"github.com/vovakirdan/beambox/internal/board"
)

//go:embed defaults/beambox.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultYAML))
	copy(out, defaultYAML)
	return out
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: board.DefaultConfig(),
		Round: RoundConfig{
			StartLevel:     1,
			MaxLevel:       8,
			StartingCredit: 100,
			RoundCost:      5,
			StartingBeams:  5,
		},
		Payouts: PayoutConfig{
			Jackpot: []int{30, 50, 80, 120, 180, 280, 400, 600},
			Prizes: map[string]int{
				"large-sum":    10,
				"medium-sum":   5,
				"small-sum":    3,
				"plus-3-beams": 3,
				"plus-5-beams": 5,
				"minus-1-beam": -1,
				"comet":        1,
				"flame":        1,
				"flash-cannon": 1,
				"shadow":       1,
				"psybeam":      1,
				"double-prize": 1,
				"water":        1,
				"bomb":         1,
			},
		},
		Generator: GeneratorConfig{
			MaxUnreachable:         0.5,
			HiddenObstacles:        []int{0, 1, 1, 2, 2, 3, 3, 4},
			DefaultProbUnreachable: 0.2,
			ProbUnreachable: map[string]float64{
				"jackpot":    0,
				"large-sum":  0.2,
				"medium-sum": 0.3,
				"small-sum":  0.4,
			},
			Yields: map[string][]Range{
				"jackpot":      {{1, 1}, {2, 2}, {2, 3}, {3, 4}, {3, 5}, {4, 5}, {5, 6}, {6, 7}},
				"large-sum":    {{1, 1}, {1, 1}, {1, 2}, {1, 2}, {1, 2}, {2, 3}, {2, 3}, {2, 4}},
				"medium-sum":   {{1, 3}, {1, 3}, {2, 4}, {2, 4}, {3, 5}, {3, 5}, {4, 6}, {4, 6}},
				"small-sum":    {{3, 5}, {3, 5}, {3, 5}, {4, 6}, {4, 6}, {4, 6}, {4, 7}, {4, 7}},
				"plus-3-beams": {{0, 1}, {0, 1}, {0, 1}, {0, 2}, {0, 2}, {0, 3}, {1, 4}, {1, 4}},
				"plus-5-beams": {{0, 0}, {0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 1}, {0, 2}, {0, 2}},
				"minus-1-beam": {{0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 2}, {0, 2}},
				"comet":        {{0, 0}, {0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 1}, {0, 2}, {0, 2}},
				"flame":        {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
				"flash-cannon": {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 0}},
				"shadow":       {{0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 2}, {0, 2}, {0, 3}, {0, 3}},
				"psybeam":      {{0, 0}, {0, 0}, {0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 1}, {0, 1}},
				"double-prize": {{0, 0}, {0, 0}, {0, 1}, {0, 1}, {0, 2}, {0, 2}, {0, 2}, {0, 3}},
				"water":        {{0, 0}, {0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 2}, {0, 2}, {0, 2}},
				"bomb":         {{2, 2}, {2, 3}, {2, 3}, {2, 4}, {2, 4}, {2, 5}, {3, 5}, {4, 6}},
			},
		},
	}
}
