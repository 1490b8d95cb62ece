package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beambox/internal/platform/tui"
	"github.com/vovakirdan/beambox/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagShowShots   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best rounds",
	Long: `Display the best paying rounds from the rounds database.

Examples:
  beambox scores
  beambox scores --limit 25
  beambox scores --shots <round-id>
  beambox scores -i`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse rounds in a TUI")
	scoresCmd.Flags().StringVar(&flagShowShots, "shots", "", "Show the shots of one round")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening rounds database: %v", err)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if flagShowShots != "" {
		printShots(store, flagShowShots)
		return
	}

	rounds, err := store.TopRounds(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		return
	}

	fmt.Println("Top Rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'beambox play' to set the first one!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %-13s  %-10s  %-16s  %s\n",
		"Rank", "Payout", "Level", "Shots", "End", "Player", "Date", "Round")
	fmt.Printf("  %-4s  %-6s  %-5s  %-5s  %-13s  %-10s  %-16s  %s\n",
		"----", "------", "-----", "-----", "---", "------", "----", "-----")
	for i, r := range rounds {
		end := r.EndReason
		if r.Jackpot {
			end += " *"
		}
		fmt.Printf("  %-4d  %-6d  %-5d  %-5d  %-13s  %-10s  %-16s  %s\n",
			i+1, r.Payout, r.Level, r.Shots, end, r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"), r.RoundID)
	}

	if stats, err := store.Stats(); err == nil {
		fmt.Println()
		fmt.Printf("Rounds: %d  Shots: %d  Best: %d  Average: %.1f  Jackpots: %d  Bombs: %d\n",
			stats.Rounds, stats.Shots, stats.HighPayout, stats.AvgPayout, stats.Jackpots, stats.Bombs)
	}
}

func printShots(store *storage.Store, roundID string) {
	shots, err := store.RoundShots(roundID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving shots: %v\n", err)
		return
	}
	if len(shots) == 0 {
		fmt.Printf("No shots recorded for round %s.\n", roundID)
		return
	}
	for _, s := range shots {
		prizeLabel := s.Prize
		if prizeLabel == "" {
			prizeLabel = "nothing"
		}
		fmt.Printf("  %2d. %s -> %s (%+d)\n", s.Seq, s.Path, prizeLabel, s.Amount)
	}
}
