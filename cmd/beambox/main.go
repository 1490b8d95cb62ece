// beambox is a terminal puzzle about firing beams across a board of hidden
// obstacles to reach the prizes on its edge.
//
// Usage:
//
//	beambox play                 - Play rounds in the terminal
//	beambox serve                - Start SSH server for remote play
//	beambox api                  - Serve boards and rounds as JSON
//	beambox gen                  - Generate a board and print it
//	beambox fire <beam> <r> <c>  - Fire one beam at a generated board
//	beambox probe                - Print where every entry tile leads
//	beambox tables               - Show generator tables per level
//	beambox scores               - Show the best rounds
//	beambox config               - Print the configuration in use
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.beambox/rounds.db)
//	--config <path>      - Load a custom YAML configuration
//	--preset <name>      - Difficulty preset: easy, normal, hard
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/gen"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "beambox",
	Short: "Beambox - fire beams through a box of hidden obstacles",
	Long: `Beambox is a terminal puzzle game. Prizes sit on the ring of tiles
around a square board; beams fired from the ring bounce off hidden
obstacles and collect whatever prize they leave the board on.

Available commands:
  play     - Play rounds in the terminal
  serve    - Start SSH server for remote play
  api      - Serve boards and rounds as JSON over HTTP
  gen      - Generate a board and print it
  fire     - Fire one beam at a generated board
  probe    - Print where every entry tile leads
  tables   - Show generator tables per level
  scores   - View the best rounds
  config   - Print the configuration in use

Examples:
  beambox play
  beambox play --preset easy
  beambox gen --level 4 --seed 42
  beambox fire comet -1 3 --seed 42
  beambox serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.beambox/rounds.db", "Path to rounds database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(fireCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the stderr logger for a component.
func newLogger(prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("invalid --log-level %q", flagLogLevel)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// loadConfig loads the configuration and applies the preset flag.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			fail("%v", err)
		}
	}
	return cfg
}

// resolveSeed returns the seed flag, or a time based one when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// newGenerator creates a board generator from the config tables.
func newGenerator(cfg config.Config, seed int64, logger *log.Logger, workers int) *gen.Generator {
	tables, err := cfg.Generator.Tables()
	if err != nil {
		fail("%v", err)
	}
	return gen.New(tables,
		gen.WithSeed(seed),
		gen.WithLogger(logger),
		gen.WithProbeWorkers(workers),
	)
}
