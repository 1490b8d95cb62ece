package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/beambox/internal/prize"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
board:
  length: 6
  obstacles: 3
generator:
  yields:
    bomb: [[0, 0], [0, 1], [1, 1], [1, 1], [1, 2], [1, 2], [2, 2], [2, 3]]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Board.Length != 6 || cfg.Board.Obstacles != 3 {
		t.Errorf("Board = %+v, expected 6x6 with 3 obstacles", cfg.Board)
	}
	if got := cfg.Generator.Yields["bomb"][1]; got != (Range{Min: 0, Max: 1}) {
		t.Errorf("bomb level 2 = %+v, expected [0, 1]", got)
	}
	// Values absent from the file keep their defaults.
	if got := cfg.Generator.Yields["jackpot"][0]; got != (Range{Min: 1, Max: 1}) {
		t.Errorf("jackpot level 1 = %+v, expected default [1, 1]", got)
	}
	if cfg.Round.StartingCredit != 100 {
		t.Errorf("StartingCredit = %d, expected default 100", cfg.Round.StartingCredit)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		message string
	}{
		{"tiny board", "board: {length: 1, obstacles: 0}", "board.length"},
		{"huge board", "board: {length: 100000, obstacles: 4}", "board.length"},
		{"too many obstacles", "board: {length: 2, obstacles: 5}", "board.obstacles"},
		{"bad range", "generator: {yields: {bomb: [[3, 1], [0, 1], [1, 1], [1, 1], [1, 2], [1, 2], [2, 2], [2, 3]]}}", "invalid range"},
		{"short range", "generator: {yields: {bomb: [[1]]}}", "two values"},
		{"unknown prize", "payouts: {prizes: {treasure: 4}}", "unknown prize"},
		{"bad probability", "generator: {prob_unreachable: {small-sum: 1.5}}", "outside [0, 1]"},
		{"start level", "round: {start_level: 9}", "round.start_level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Errorf("error %q does not mention %q", err, tc.message)
			}
		})
	}
}

func TestTables(t *testing.T) {
	tables, err := Default().Generator.Tables()
	if err != nil {
		t.Fatalf("Tables() error: %v", err)
	}
	if tables.Levels != 8 {
		t.Errorf("Levels = %d, expected 8", tables.Levels)
	}
	if got := tables.Yield(prize.Bomb, 8); got != (Range{Min: 4, Max: 6}) {
		t.Errorf("Yield(bomb, 8) = %+v", got)
	}
	if got := tables.Yield(prize.Bomb, 9); got != (Range{}) {
		t.Errorf("Yield(bomb, 9) = %+v, expected zero range", got)
	}
	if got := tables.Hidden(4); got != 2 {
		t.Errorf("Hidden(4) = %d, expected 2", got)
	}
	if got := tables.ProbUnreachableOf(prize.SmallSum); got != 0.4 {
		t.Errorf("ProbUnreachableOf(small-sum) = %v, expected 0.4", got)
	}
	if got := tables.ProbUnreachableOf(prize.WaterBeam); got != 0.2 {
		t.Errorf("ProbUnreachableOf(water) = %v, expected default 0.2", got)
	}
	if got := tables.ProbUnreachableOf(prize.Jackpot); got != 0 {
		t.Errorf("ProbUnreachableOf(jackpot) = %v, expected 0", got)
	}
}

func TestPayoutTable(t *testing.T) {
	table, err := Default().Payouts.Table()
	if err != nil {
		t.Fatalf("Table() error: %v", err)
	}
	tests := []struct {
		kind     prize.Kind
		level    int
		expected int
	}{
		{prize.Jackpot, 1, 30},
		{prize.Jackpot, 8, 600},
		{prize.Jackpot, 12, 600},
		{prize.Jackpot, 0, 30},
		{prize.LargeSum, 3, 10},
		{prize.Minus1Beam, 1, -1},
		{prize.CometBeam, 1, 1},
	}
	for _, tc := range tests {
		if got := table.Amount(tc.kind, tc.level); got != tc.expected {
			t.Errorf("Amount(%v, %d) = %d, expected %d", tc.kind, tc.level, got, tc.expected)
		}
	}
}

func TestRangeMarshalRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(map[string]Range{"x": {Min: 2, Max: 5}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(out), "[2, 5]") {
		t.Errorf("Marshal() = %q, expected flow list", out)
	}
	var back map[string]Range
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if back["x"] != (Range{Min: 2, Max: 5}) {
		t.Errorf("round trip = %+v", back["x"])
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	ApplyPreset(&cfg, PresetHard)
	if cfg.Board.Obstacles != 5 || cfg.Round.StartingBeams != 4 {
		t.Errorf("hard preset = %+v %+v", cfg.Board, cfg.Round)
	}

	cfg = Default()
	ApplyPreset(&cfg, PresetEasy)
	if cfg.Board.Obstacles != 3 || cfg.Round.StartingBeams != 7 {
		t.Errorf("easy preset = %+v %+v", cfg.Board, cfg.Round)
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, err := ParsePreset(""); err != nil || p != PresetNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
}
