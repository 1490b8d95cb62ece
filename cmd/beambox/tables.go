package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beambox/internal/gen"
	"github.com/vovakirdan/beambox/internal/prize"
)

var flagTablesLevel int

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Show generator tables per level",
	Long: `Print how many of each prize a board may hold, the total prize range,
hidden obstacle counts and payouts for each level.

Examples:
  beambox tables
  beambox tables --level 3
  beambox tables --config ./my-beambox.yaml`,
	Args: cobra.NoArgs,
	Run:  runTables,
}

func init() {
	tablesCmd.Flags().IntVar(&flagTablesLevel, "level", 0, "Only show this level (0 = all)")
}

func runTables(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	tables, err := cfg.Generator.Tables()
	if err != nil {
		fail("%v", err)
	}
	payouts, err := cfg.Payouts.Table()
	if err != nil {
		fail("%v", err)
	}

	levels := make([]int, 0, tables.Levels)
	for level := 1; level <= tables.Levels; level++ {
		if flagTablesLevel == 0 || flagTablesLevel == level {
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		fail("level %d is outside [1, %d]", flagTablesLevel, tables.Levels)
	}

	fmt.Printf("  %-13s", "Prize")
	for _, level := range levels {
		fmt.Printf("  %-5s", fmt.Sprintf("L%d", level))
	}
	fmt.Printf("  %s\n", "Pays")
	fmt.Printf("  %-13s", "-----")
	for range levels {
		fmt.Printf("  %-5s", "---")
	}
	fmt.Printf("  %s\n", "----")

	for _, kind := range prize.All() {
		fmt.Printf("  %-13s", kind)
		for _, level := range levels {
			r := tables.Yield(kind, level)
			fmt.Printf("  %-5s", fmt.Sprintf("%d-%d", r.Min, r.Max))
		}
		if kind == prize.Jackpot {
			fmt.Printf("  %s\n", "by level")
		} else {
			fmt.Printf("  %+d\n", payouts.Amount(kind, 1))
		}
	}

	fmt.Println()
	row := func(label string, value func(level int) string) {
		fmt.Printf("  %-13s", label)
		for _, level := range levels {
			fmt.Printf("  %-5s", value(level))
		}
		fmt.Println()
	}
	row("total", func(level int) string {
		r := gen.TotalRange(tables, level)
		return fmt.Sprintf("%d-%d", r.Min, r.Max)
	})
	row("hidden", func(level int) string {
		return fmt.Sprintf("%d", tables.Hidden(level))
	})
	row("jackpot pays", func(level int) string {
		return fmt.Sprintf("%d", payouts.Amount(prize.Jackpot, level))
	})

	fmt.Println()
	fmt.Printf("At most %.0f%% of each prize category is placed out of reach.\n", tables.MaxUnreachable*100)
}
