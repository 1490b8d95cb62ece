package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/gen"
	"github.com/vovakirdan/beambox/internal/prize"
)

var (
	flagLevel     int
	flagSize      int
	flagObstacles int
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a board and print it",
	Long: `Generate a board the way a round would and print it together with a
summary of how its prizes were placed.

Legend:
  [##] corner       [B ] obstacle      [h ] hidden obstacle
  [XX] prize label  [..] resolved tile [x ] destroyed obstacle

Examples:
  beambox gen
  beambox gen --level 6 --seed 7
  beambox gen --size 10 --obstacles 6`,
	Args: cobra.NoArgs,
	Run:  runGen,
}

func init() {
	addBoardFlags(genCmd)
	genCmd.Flags().IntVar(&flagWorkers, "workers", 1, "Goroutines used to probe the board")
}

// addBoardFlags registers the flags that shape a generated board.
func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagLevel, "level", 1, "Level to generate for")
	cmd.Flags().IntVar(&flagSize, "size", 0, "Board side length (0 = from config)")
	cmd.Flags().IntVar(&flagObstacles, "obstacles", -1, "Number of obstacles (-1 = from config)")
}

// boardConfig applies the board flags to the loaded config.
func boardConfig(cfg config.Config) board.Config {
	bc := cfg.Board
	if flagSize > 0 {
		bc.Length = flagSize
	}
	if flagObstacles >= 0 {
		bc.Obstacles = flagObstacles
	}
	return bc
}

// generateBoard builds the board described by the flags.
func generateBoard() (*board.Board, gen.Report, int64) {
	cfg := loadConfig()
	seed := resolveSeed()
	g := newGenerator(cfg, seed, newLogger("gen"), flagWorkers)

	b, report, err := g.GenerateReport(context.Background(), boardConfig(cfg), flagLevel)
	if err != nil {
		fail("%v", err)
	}
	return b, report, seed
}

func runGen(_ *cobra.Command, _ []string) {
	b, report, seed := generateBoard()

	fmt.Printf("Board %dx%d, level %d, seed %d\n", b.Config.Length, b.Config.Length, report.Level, seed)
	fmt.Println()
	fmt.Println(b.String())
	fmt.Println()

	fmt.Printf("Prizes:     %d placed of %d drawn", report.Placed, report.Target)
	if report.Skipped > 0 {
		fmt.Printf(" (%d skipped)", report.Skipped)
	}
	fmt.Println()
	fmt.Printf("Reachable:  %d of %d tiles\n", report.Reachable, 4*b.Config.Length)
	fmt.Println()

	fmt.Printf("  %-10s  %-6s  %s\n", "Category", "Placed", "Unreachable")
	fmt.Printf("  %-10s  %-6s  %s\n", "--------", "------", "-----------")
	for _, cat := range prize.Categories {
		tally := report.Tallies[cat]
		if tally.Total == 0 {
			continue
		}
		fmt.Printf("  %-10s  %-6d  %d\n", cat, tally.Total, tally.Unreachable)
	}
}
