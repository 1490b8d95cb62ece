package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/beambox/internal/api"
	"github.com/vovakirdan/beambox/internal/storage"
)

var (
	flagHTTPAddr string
	flagNoDB     bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve boards and the round log as JSON over HTTP",
	Long: `Start a read-only HTTP server. Every board request generates a
fresh board from the seed query parameter, so the same seed always
answers with the same board.

Endpoints:
  GET /boards/{level}                          Board and placement report
  GET /boards/{level}/probe                    Where every entry tile leads
  GET /boards/{level}/fire/{beam}/{row}/{col}  Dry-run one beam
  GET /tables/{level}                          Yields, total range, jackpot
  GET /rounds?limit=N                          Best logged rounds
  GET /rounds/{id}/shots                       Shots of one round

Board endpoints accept seed, size, obstacles and reveal=true.

Examples:
  beambox api --http :8080
  curl 'localhost:8080/boards/3?seed=42&reveal=true'`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	apiCmd.Flags().BoolVar(&flagNoDB, "no-db", false, "Do not open the rounds database")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("beambox-api")

	var store *storage.Store
	if !flagNoDB {
		var err error
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fail("opening database: %v", err)
		}
		defer store.Close()
	}

	server, err := api.New(cfg, store, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Serving beambox API on %s\n", flagHTTPAddr)
	if err := server.ListenAndServe(flagHTTPAddr); err != nil {
		fail("server: %v", err)
	}
}
