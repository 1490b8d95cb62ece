package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/sim"
)

var flagDryRun bool

var fireCmd = &cobra.Command{
	Use:   "fire <beam> <row> <col>",
	Short: "Fire one beam at a generated board",
	Long: `Generate a board and fire a single beam from a tile on its ring.
Rows and columns start at 0 inside the board; the ring sits at -1 and at
the board length.

Beams: normal, comet, flame, flash-cannon, shadow, psybeam, double-prize, water

Examples:
  beambox fire normal -1 3 --seed 42
  beambox fire comet 2 8 --level 4
  beambox fire shadow 8 0 --dry-run`,
	Args: cobra.ExactArgs(3),
	Run:  runFire,
}

func init() {
	addBoardFlags(fireCmd)
	fireCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Trace the beam without changing the board")
}

func runFire(_ *cobra.Command, args []string) {
	kind, err := beam.ParseKind(args[0])
	if err != nil {
		fail("%v", err)
	}
	row, err := strconv.Atoi(args[1])
	if err != nil {
		fail("invalid row %q", args[1])
	}
	col, err := strconv.Atoi(args[2])
	if err != nil {
		fail("invalid column %q", args[2])
	}

	b, _, seed := generateBoard()
	entry := geom.C(row, col)

	fmt.Printf("Board %dx%d, level %d, seed %d\n", b.Config.Length, b.Config.Length, flagLevel, seed)
	fmt.Println()
	fmt.Println(b.String())
	fmt.Println()

	path, err := sim.FireBeam(b, kind, entry, flagDryRun)
	switch {
	case errors.Is(err, sim.ErrRunaway):
		fmt.Printf("warning: %v\n", err)
	case err != nil:
		fail("%v", err)
	}

	fmt.Println(path.String())
	if exit, ok := path.Exit(); ok {
		if p := b.PrizeAt(exit); p != nil {
			fmt.Printf("Lands on %s at %s\n", p.Prize, exit)
		} else {
			fmt.Printf("Lands on an empty tile at %s\n", exit)
		}
	} else if last, ok := path.Last(); ok {
		fmt.Printf("Stopped by %s at %s\n", last.Type, last.Coord)
	}

	if !flagDryRun && path.Count(board.PointDestroy) > 0 {
		fmt.Println()
		fmt.Println("After the shot:")
		fmt.Println(b.String())
	}
}
