package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/beambox/internal/board"
)

// FileName is the name of the configuration file in the search path.
const FileName = "beambox.yaml"

// Load loads the beambox configuration.
// Search order: customPath -> ~/.beambox/config.yaml -> ./configs/beambox.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if err := candidate.Validate(); err != nil {
			return candidate, fmt.Errorf("invalid config %s: %w", path, err)
		}
		return candidate, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// userConfigPath returns the path to a file in the user config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beambox", filename)
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Board.Length < board.MinLength || c.Board.Length > board.MaxLength {
		errs = append(errs, fmt.Errorf("board.length: %d is outside [%d, %d]", c.Board.Length, board.MinLength, board.MaxLength))
	}
	if c.Board.Obstacles < 0 || c.Board.Obstacles > c.Board.Length*c.Board.Length {
		errs = append(errs, fmt.Errorf("board.obstacles: %d does not fit a %dx%d board",
			c.Board.Obstacles, c.Board.Length, c.Board.Length))
	}

	tables, err := c.Generator.Tables()
	if err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Payouts.Table(); err != nil {
		errs = append(errs, err)
	}

	if c.Round.MaxLevel < 1 {
		errs = append(errs, fmt.Errorf("round.max_level: %d must be at least 1", c.Round.MaxLevel))
	} else if tables.Levels > 0 && c.Round.MaxLevel > tables.Levels {
		errs = append(errs, fmt.Errorf("round.max_level: %d exceeds the %d generator levels", c.Round.MaxLevel, tables.Levels))
	}
	if c.Round.StartLevel < 1 || c.Round.StartLevel > c.Round.MaxLevel {
		errs = append(errs, fmt.Errorf("round.start_level: %d is outside [1, %d]", c.Round.StartLevel, c.Round.MaxLevel))
	}
	if c.Round.StartingBeams < 1 {
		errs = append(errs, fmt.Errorf("round.starting_beams: %d must be at least 1", c.Round.StartingBeams))
	}
	if c.Round.StartingCredit < 0 || c.Round.RoundCost < 0 {
		errs = append(errs, errors.New("round: credit and round cost cannot be negative"))
	}

	return errors.Join(errs...)
}
