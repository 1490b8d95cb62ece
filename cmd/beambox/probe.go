package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beambox/internal/sim"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Print where every entry tile leads",
	Long: `Generate a board and fire a dry-run normal beam from every ring tile.
Entries whose beam is absorbed or reflected straight back are listed as
having no output.

Examples:
  beambox probe --seed 42
  beambox probe --level 5 --workers 8`,
	Args: cobra.NoArgs,
	Run:  runProbe,
}

func init() {
	addBoardFlags(probeCmd)
	probeCmd.Flags().IntVar(&flagWorkers, "workers", 4, "Goroutines used to probe the board")
}

func runProbe(_ *cobra.Command, _ []string) {
	b, _, seed := generateBoard()

	survey, err := sim.ProbeParallel(context.Background(), b, flagWorkers)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Board %dx%d, level %d, seed %d\n", b.Config.Length, b.Config.Length, flagLevel, seed)
	fmt.Println()
	fmt.Println(b.String())
	fmt.Println()

	fmt.Printf("  %-4s  %-9s  %-9s  %s\n", "Tile", "Entry", "Output", "Prize")
	fmt.Printf("  %-4s  %-9s  %-9s  %s\n", "----", "-----", "------", "-----")
	for _, entry := range survey.Entries {
		out, ok := survey.Output(entry)
		target, label := "-", ""
		if ok {
			target = out.String()
			if p := b.PrizeAt(out); p != nil {
				label = p.Prize.String()
			}
		}
		fmt.Printf("  %-4d  %-9s  %-9s  %s\n", b.TileID(entry), entry, target, label)
	}

	fmt.Println()
	fmt.Printf("Reachable: %d of %d tiles\n", survey.Reachable.Len(), len(survey.Entries))
}
