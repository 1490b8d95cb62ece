package main

import (
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/beambox/internal/platform/tui"
	"github.com/vovakirdan/beambox/internal/round"
	"github.com/vovakirdan/beambox/internal/storage"
)

var (
	flagTheme   string
	flagWorkers int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play rounds in the terminal",
	Long: `Start a game. Every round costs credit and deals a new board; the
payout of a round is added to your credit when the next one starts.

Controls:
  ←/→ h/l      - Move along the ring of tiles
  ↑/↓ k/j      - Jump to the next side
  Tab/S-Tab    - Choose a beam
  Enter/Space  - Fire
  n            - Next round
  H            - Shot history
  v            - Reveal hidden obstacles
  ?            - Help
  q/Ctrl+C     - Quit

Examples:
  beambox play
  beambox play --preset hard
  beambox play --seed 42 --theme mono`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
	playCmd.Flags().IntVar(&flagWorkers, "workers", 1, "Goroutines used to probe boards")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("beambox")
	seed := resolveSeed()

	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := round.NewGame(cfg, newGenerator(cfg, seed, logger, flagWorkers), logger)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open rounds database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	player := "local"
	if u, userErr := user.Current(); userErr == nil {
		player = u.Username
	}

	runErr := tui.Run(tui.Options{
		Game:   game,
		Store:  store,
		Player: player,
		Seed:   seed,
		Theme:  &theme,
		Width:  width,
		Height: height,
		Logger: logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}
