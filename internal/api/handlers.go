package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/matryer/way"

	"github.com/vovakirdan/beambox/internal/beam"
	"github.com/vovakirdan/beambox/internal/board"
	"github.com/vovakirdan/beambox/internal/gen"
	"github.com/vovakirdan/beambox/internal/geom"
	"github.com/vovakirdan/beambox/internal/prize"
	"github.com/vovakirdan/beambox/internal/sim"
	"github.com/vovakirdan/beambox/internal/storage"
)

// probeWorkers bounds the goroutines one probe request may use.
const probeWorkers = 4

// CoordJSON is a board coordinate.
type CoordJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func coordJSON(c geom.Coord) CoordJSON {
	return CoordJSON{Row: c.Row, Col: c.Col}
}

// ObstacleJSON is one obstacle. Hidden obstacles are only listed when the
// request asks for them.
type ObstacleJSON struct {
	CoordJSON
	Visible bool `json:"visible"`
	Active  bool `json:"active"`
}

// TileJSON is one occupied prize tile.
type TileJSON struct {
	CoordJSON
	Tile  int        `json:"tile"`
	Prize prize.Kind `json:"prize"`
}

// BoardJSON describes a generated board.
type BoardJSON struct {
	Seed      int64          `json:"seed"`
	Level     int            `json:"level"`
	Length    int            `json:"length"`
	Obstacles []ObstacleJSON `json:"obstacles"`
	Prizes    []TileJSON     `json:"prizes"`
	Reachable int            `json:"reachable"`
	Placed    int            `json:"placed"`
	Skipped   int            `json:"skipped"`
	Dump      string         `json:"dump,omitempty"`
}

// PointJSON is one event on a beam path.
type PointJSON struct {
	CoordJSON
	Type string `json:"type"`
}

// PathJSON is a traced beam.
type PathJSON struct {
	Seed    int64       `json:"seed"`
	Beam    beam.Kind   `json:"beam"`
	Points  []PointJSON `json:"points"`
	Exit    *CoordJSON  `json:"exit,omitempty"`
	Prize   *prize.Kind `json:"prize,omitempty"`
	Runaway bool        `json:"runaway,omitempty"`
}

// ProbeJSON maps every entry tile to where the probe beam leaves.
type ProbeJSON struct {
	Seed    int64        `json:"seed"`
	Entries []ProbeEntry `json:"entries"`
}

// ProbeEntry is one row of a probe. Output is nil when the beam never
// reaches another tile.
type ProbeEntry struct {
	Entry  CoordJSON  `json:"entry"`
	Output *CoordJSON `json:"output,omitempty"`
}

// TablesJSON is the generator table for one level.
type TablesJSON struct {
	Level   int                   `json:"level"`
	Total   [2]int                `json:"total"`
	Hidden  int                   `json:"hidden"`
	Jackpot int                   `json:"jackpot"`
	Yields  map[prize.Kind][2]int `json:"yields"`
}

type boardRequest struct {
	seed   int64
	level  int
	config board.Config
	reveal bool
}

// parseBoardRequest reads the level path parameter and the seed, size,
// obstacles and reveal query parameters.
func (s *Server) parseBoardRequest(r *http.Request) (boardRequest, error) {
	req := boardRequest{config: s.cfg.Board}

	level, err := strconv.Atoi(way.Param(r.Context(), "level"))
	if err != nil {
		return req, fmt.Errorf("invalid level %q", way.Param(r.Context(), "level"))
	}
	req.level = level

	q := r.URL.Query()
	if v := q.Get("seed"); v != "" {
		if req.seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return req, fmt.Errorf("invalid seed %q", v)
		}
	}
	if req.seed == 0 {
		req.seed = time.Now().UnixNano()
	}
	if v := q.Get("size"); v != "" {
		if req.config.Length, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid size %q", v)
		}
	}
	if v := q.Get("obstacles"); v != "" {
		if req.config.Obstacles, err = strconv.Atoi(v); err != nil {
			return req, fmt.Errorf("invalid obstacles %q", v)
		}
	}
	req.reveal = q.Get("reveal") == "true"
	return req, nil
}

func (s *Server) generate(ctx context.Context, req boardRequest) (*board.Board, gen.Report, error) {
	g := gen.New(s.tables, gen.WithSeed(req.seed), gen.WithLogger(s.logger), gen.WithProbeWorkers(probeWorkers))
	return g.GenerateReport(ctx, req.config, req.level)
}

// boardFromRequest parses and generates, writing the error response itself.
func (s *Server) boardFromRequest(w http.ResponseWriter, r *http.Request) (*board.Board, gen.Report, boardRequest, bool) {
	req, err := s.parseBoardRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, gen.Report{}, req, false
	}
	b, report, err := s.generate(r.Context(), req)
	var cfgErr *gen.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		writeError(w, http.StatusBadRequest, cfgErr.Error())
		return nil, report, req, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, report, req, false
	}
	return b, report, req, true
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	b, report, req, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}

	out := BoardJSON{
		Seed:      req.seed,
		Level:     req.level,
		Length:    b.Config.Length,
		Obstacles: []ObstacleJSON{},
		Prizes:    []TileJSON{},
		Reachable: report.Reachable,
		Placed:    report.Placed,
		Skipped:   report.Skipped,
	}
	for _, o := range b.Obstacles {
		if !o.Visible && !req.reveal {
			continue
		}
		out.Obstacles = append(out.Obstacles, ObstacleJSON{CoordJSON: coordJSON(o.Coord), Visible: o.Visible, Active: o.Active})
	}
	for _, c := range b.PrizeCoords() {
		out.Prizes = append(out.Prizes, TileJSON{CoordJSON: coordJSON(c), Tile: b.TileID(c), Prize: b.PrizeAt(c).Prize})
	}
	if req.reveal {
		out.Dump = b.String()
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	b, _, req, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}

	survey, err := sim.ProbeParallel(r.Context(), b, probeWorkers)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out := ProbeJSON{Seed: req.seed, Entries: make([]ProbeEntry, 0, len(survey.Entries))}
	for _, entry := range survey.Entries {
		e := ProbeEntry{Entry: coordJSON(entry)}
		if exit, ok := survey.Output(entry); ok {
			c := coordJSON(exit)
			e.Output = &c
		}
		out.Entries = append(out.Entries, e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind, err := beam.ParseKind(way.Param(ctx, "beam"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	row, rowErr := strconv.Atoi(way.Param(ctx, "row"))
	col, colErr := strconv.Atoi(way.Param(ctx, "col"))
	if rowErr != nil || colErr != nil {
		writeError(w, http.StatusBadRequest, "row and col must be integers")
		return
	}

	b, _, req, ok := s.boardFromRequest(w, r)
	if !ok {
		return
	}

	path, err := sim.FireBeam(b, kind, geom.C(row, col), true)
	out := PathJSON{Seed: req.seed, Beam: kind, Points: make([]PointJSON, 0, len(path.Points))}
	switch {
	case errors.Is(err, sim.ErrNotOnRing):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, sim.ErrRunaway):
		out.Runaway = true
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	for _, pt := range path.Points {
		out.Points = append(out.Points, PointJSON{CoordJSON: coordJSON(pt.Coord), Type: pt.Type.String()})
	}
	if exit, ok := path.Exit(); ok {
		c := coordJSON(exit)
		out.Exit = &c
		if p := b.PrizeAt(exit); p != nil {
			pk := p.Prize
			out.Prize = &pk
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(way.Param(r.Context(), "level"))
	if err != nil || !s.tables.ValidLevel(level) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("level must be in [1, %d]", s.tables.Levels))
		return
	}
	payouts, err := s.cfg.Payouts.Table()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	total := gen.TotalRange(s.tables, level)
	out := TablesJSON{
		Level:   level,
		Total:   [2]int{total.Min, total.Max},
		Hidden:  s.tables.Hidden(level),
		Jackpot: payouts.Amount(prize.Jackpot, level),
		Yields:  make(map[prize.Kind][2]int),
	}
	for _, kind := range prize.All() {
		y := s.tables.Yield(kind, level)
		out.Yields[kind] = [2]int{y.Min, y.Max}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRounds(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no round log")
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	rounds, err := s.store.TopRounds(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rounds == nil {
		rounds = []storage.RoundRecord{}
	}
	writeJSON(w, http.StatusOK, rounds)
}

func (s *Server) handleShots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no round log")
		return
	}
	shots, err := s.store.RoundShots(way.Param(r.Context(), "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(shots) == 0 {
		writeError(w, http.StatusNotFound, "no shots for that round")
		return
	}
	writeJSON(w, http.StatusOK, shots)
}
