package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/config"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/storage"
)

func newServer(t *testing.T, store *storage.Store) *Server {
	t.Helper()
	s, err := New(config.Default(), store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, url string, wantStatus int, out any) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != wantStatus {
		t.Fatalf("GET %s: status %d, want %d (body %s)", url, rec.Code, wantStatus, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("GET %s: Content-Type = %q", url, ct)
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: decoding body: %v", url, err)
		}
	}
}

func TestBoard(t *testing.T) {
	s := newServer(t, nil)

	var first, second BoardJSON
	get(t, s, "/boards/2?seed=42", http.StatusOK, &first)
	get(t, s, "/boards/2?seed=42", http.StatusOK, &second)

	if first.Seed != 42 || first.Level != 2 {
		t.Errorf("seed/level = %d/%d, want 42/2", first.Seed, first.Level)
	}
	if first.Length != config.Default().Board.Length {
		t.Errorf("Length = %d, want %d", first.Length, config.Default().Board.Length)
	}
	if len(first.Prizes) != len(second.Prizes) {
		t.Fatalf("same seed gave %d and %d prizes", len(first.Prizes), len(second.Prizes))
	}
	for i := range first.Prizes {
		if first.Prizes[i] != second.Prizes[i] {
			t.Errorf("prize %d differs: %+v vs %+v", i, first.Prizes[i], second.Prizes[i])
		}
	}
	if first.Placed != len(first.Prizes) {
		t.Errorf("Placed = %d, but %d prizes listed", first.Placed, len(first.Prizes))
	}
	if first.Dump != "" {
		t.Error("Dump should be empty unless reveal=true")
	}
}

func TestBoardReveal(t *testing.T) {
	s := newServer(t, nil)

	var out BoardJSON
	get(t, s, "/boards/1?seed=7&size=5&obstacles=3&reveal=true", http.StatusOK, &out)

	if out.Length != 5 {
		t.Errorf("Length = %d, want 5", out.Length)
	}
	if len(out.Obstacles) != 3 {
		t.Errorf("revealed %d obstacles, want 3", len(out.Obstacles))
	}
	if out.Dump == "" {
		t.Error("Dump is empty with reveal=true")
	}
}

func TestBoardBadRequests(t *testing.T) {
	s := newServer(t, nil)

	for _, url := range []string{
		"/boards/x",
		"/boards/0",
		"/boards/99",
		"/boards/1?seed=abc",
		"/boards/1?size=1",
		"/boards/1?size=2147483648",
		"/boards/1?size=65",
		"/boards/1?size=3&obstacles=10",
	} {
		var body errorBody
		get(t, s, url, http.StatusBadRequest, &body)
		if body.Error == "" {
			t.Errorf("GET %s: empty error message", url)
		}
	}
}

func TestFireOnEmptyBoard(t *testing.T) {
	s := newServer(t, nil)

	var out PathJSON
	get(t, s, "/boards/1/fire/normal/-1/2?seed=3&size=4&obstacles=0", http.StatusOK, &out)

	if out.Beam != beam.Normal {
		t.Errorf("Beam = %s, want normal", out.Beam)
	}
	if len(out.Points) != 2 {
		t.Fatalf("got %d points, want entry and emit", len(out.Points))
	}
	if out.Points[0].Type != "Entry" || out.Points[1].Type != "Emit" {
		t.Errorf("point types = %s, %s", out.Points[0].Type, out.Points[1].Type)
	}
	if out.Exit == nil || *out.Exit != (CoordJSON{Row: 4, Col: 2}) {
		t.Errorf("Exit = %+v, want {4 2}", out.Exit)
	}
	if out.Runaway {
		t.Error("straight beam reported as runaway")
	}
}

func TestFireBadRequests(t *testing.T) {
	s := newServer(t, nil)

	for _, url := range []string{
		"/boards/1/fire/laser/-1/0",
		"/boards/1/fire/normal/a/0",
		"/boards/1/fire/normal/2/2?size=4",
	} {
		get(t, s, url, http.StatusBadRequest, nil)
	}
}

func TestProbeOnEmptyBoard(t *testing.T) {
	s := newServer(t, nil)

	var out ProbeJSON
	get(t, s, "/boards/1/probe?seed=5&size=3&obstacles=0", http.StatusOK, &out)

	if len(out.Entries) != 12 {
		t.Fatalf("got %d entries, want 12", len(out.Entries))
	}
	for _, e := range out.Entries {
		if e.Output == nil {
			t.Errorf("entry %+v has no output on an empty board", e.Entry)
		}
	}
}

func TestTables(t *testing.T) {
	s := newServer(t, nil)

	var out TablesJSON
	get(t, s, "/tables/1", http.StatusOK, &out)

	if len(out.Yields) != len(prize.All()) {
		t.Errorf("got %d yields, want %d", len(out.Yields), len(prize.All()))
	}
	if out.Jackpot != config.Default().Payouts.Jackpot[0] {
		t.Errorf("Jackpot = %d, want %d", out.Jackpot, config.Default().Payouts.Jackpot[0])
	}
	if out.Total[0] > out.Total[1] {
		t.Errorf("Total range %v is inverted", out.Total)
	}

	get(t, s, "/tables/0", http.StatusBadRequest, nil)
}

func TestRoundsWithoutStore(t *testing.T) {
	s := newServer(t, nil)
	get(t, s, "/rounds", http.StatusServiceUnavailable, nil)
	get(t, s, "/rounds/abc/shots", http.StatusServiceUnavailable, nil)
}

func TestRounds(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRoundWithShots(
		storage.RoundRecord{Player: "ash", Level: 2, Length: 8, Payout: 15, Shots: 1, EndReason: "quit"},
		[]storage.ShotRecord{{Seq: 1, Beam: "normal", EntryRow: -1, Terminal: "Emit", Exited: true, ExitRow: 8, Prize: "large-sum", Amount: 10, Points: 2}},
	)
	if err != nil {
		t.Fatalf("SaveRoundWithShots() failed: %v", err)
	}

	s := newServer(t, store)

	var rounds []storage.RoundRecord
	get(t, s, "/rounds?limit=5", http.StatusOK, &rounds)
	if len(rounds) != 1 || rounds[0].RoundID != id || rounds[0].Payout != 15 {
		t.Fatalf("rounds = %+v", rounds)
	}

	var shots []storage.ShotRecord
	get(t, s, "/rounds/"+id+"/shots", http.StatusOK, &shots)
	if len(shots) != 1 || shots[0].Prize != "large-sum" {
		t.Errorf("shots = %+v", shots)
	}

	get(t, s, "/rounds/unknown/shots", http.StatusNotFound, nil)
	get(t, s, "/rounds?limit=-1", http.StatusBadRequest, nil)
}

func TestNotFound(t *testing.T) {
	s := newServer(t, nil)
	var body errorBody
	get(t, s, "/nowhere", http.StatusNotFound, &body)
	if body.Error == "" {
		t.Error("empty error message")
	}
}

func TestServerWithoutLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	s, err := New(config.Default(), nil, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	get(t, s, "/tables/1", http.StatusOK, nil)

	if buf.Len() != 0 {
		t.Errorf("server without a logger wrote to the default logger: %q", buf.String())
	}
}
