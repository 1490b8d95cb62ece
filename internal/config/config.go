// Package config provides YAML-based configuration for boards, rounds,
// payouts and the prize generator tables.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/beambox/internal/board"
)

// Config is the full beambox configuration.
type Config struct {
	Board     board.Config    `yaml:"board"`
	Round     RoundConfig     `yaml:"round"`
	Payouts   PayoutConfig    `yaml:"payouts"`
	Generator GeneratorConfig `yaml:"generator"`
}

// RoundConfig defines the economy of a game.
type RoundConfig struct {
	StartLevel     int `yaml:"start_level"`
	MaxLevel       int `yaml:"max_level"`
	StartingCredit int `yaml:"starting_credit"`
	RoundCost      int `yaml:"round_cost"`     // credit charged when a round starts
	StartingBeams  int `yaml:"starting_beams"` // normal beams handed out per round
}

// PayoutConfig defines what each prize is worth.
// Jackpot holds one amount per level, starting at level 1.
type PayoutConfig struct {
	Jackpot []int          `yaml:"jackpot"`
	Prizes  map[string]int `yaml:"prizes"`
}

// GeneratorConfig holds the prize generator tables.
// Per-level lists start at level 1.
type GeneratorConfig struct {
	MaxUnreachable         float64            `yaml:"max_unreachable"`
	HiddenObstacles        []int              `yaml:"hidden_obstacles"`
	DefaultProbUnreachable float64            `yaml:"default_prob_unreachable"`
	ProbUnreachable        map[string]float64 `yaml:"prob_unreachable"`
	Yields                 map[string][]Range `yaml:"yields"`
}

// Range is an inclusive [Min, Max] count. In YAML it is written as a two
// element list, e.g. [1, 3].
type Range struct {
	Min int
	Max int
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	var pair []int
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: range must be a [min, max] list: %w", node.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("line %d: range must have two values, got %d", node.Line, len(pair))
	}
	r.Min, r.Max = pair[0], pair[1]
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Range) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []int{r.Min, r.Max} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(v)})
	}
	return node, nil
}

// Preset is a named difficulty.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetEasy, PresetHard:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset adjusts board and round settings for a difficulty preset.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Board.Obstacles = max(1, cfg.Board.Obstacles-1)
		cfg.Round.StartingBeams += 2
	case PresetHard:
		cfg.Board.Obstacles++
		cfg.Round.StartingBeams = max(1, cfg.Round.StartingBeams-1)
	}
}
