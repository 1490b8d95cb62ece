// Package storage keeps a log of played rounds in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the round log.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID        int64     `json:"id"`
	RoundID   string    `json:"round_id"` // uuid, assigned on save when empty
	Player    string    `json:"player"`
	Level     int       `json:"level"`
	Seed      int64     `json:"seed"`
	Length    int       `json:"length"`
	Obstacles int       `json:"obstacles"`
	Payout    int       `json:"payout"`
	Shots     int       `json:"shots"`
	Jackpot   bool      `json:"jackpot"`
	Bomb      bool      `json:"bomb"`
	EndReason string    `json:"end_reason"`
	CreatedAt time.Time `json:"created_at"`
}

// ShotRecord is one beam fired during a round.
type ShotRecord struct {
	ID       int64  `json:"id"`
	RoundID  string `json:"round_id"`
	Seq      int    `json:"seq"`
	Beam     string `json:"beam"`
	EntryRow int    `json:"entry_row"`
	EntryCol int    `json:"entry_col"`
	Terminal string `json:"terminal"` // type of the last path point
	Exited   bool   `json:"exited"`
	ExitRow  int    `json:"exit_row"`
	ExitCol  int    `json:"exit_col"`
	Prize    string `json:"prize,omitempty"` // empty when the beam collected nothing
	Amount   int    `json:"amount"`
	Points   int    `json:"points"`
	Path     string `json:"path"`
}

// Stats aggregates the whole log.
type Stats struct {
	Rounds      int
	Shots       int
	HighPayout  int
	AvgPayout   float64
	TotalPayout int64
	Jackpots    int
	Bombs       int
	MaxLevel    int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			length INTEGER NOT NULL,
			obstacles INTEGER NOT NULL,
			payout INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			jackpot INTEGER NOT NULL DEFAULT 0,
			bomb INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_payout ON rounds(payout DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player);

		CREATE TABLE IF NOT EXISTS shots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL REFERENCES rounds(round_id),
			seq INTEGER NOT NULL,
			beam TEXT NOT NULL,
			entry_row INTEGER NOT NULL,
			entry_col INTEGER NOT NULL,
			terminal TEXT NOT NULL,
			exit_row INTEGER,
			exit_col INTEGER,
			prize TEXT,
			amount INTEGER NOT NULL DEFAULT 0,
			points INTEGER NOT NULL,
			path TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_shots_round ON shots(round_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round and returns its round id.
func (s *Store) SaveRound(rec RoundRecord) (string, error) {
	return saveRound(s.db, rec)
}

// SaveShot records one shot of a saved round.
func (s *Store) SaveShot(rec ShotRecord) (int64, error) {
	return saveShot(s.db, rec)
}

// SaveRoundWithShots writes a round and its shots in one transaction.
func (s *Store) SaveRoundWithShots(rec RoundRecord, shots []ShotRecord) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	id, err := saveRound(tx, rec)
	if err != nil {
		tx.Rollback()
		return "", err
	}
	for _, shot := range shots {
		shot.RoundID = id
		if _, err := saveShot(tx, shot); err != nil {
			tx.Rollback()
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit round: %w", err)
	}
	return id, nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveRound(db execer, rec RoundRecord) (string, error) {
	if rec.RoundID == "" {
		rec.RoundID = uuid.NewString()
	}
	_, err := db.Exec(
		`INSERT INTO rounds
		 (round_id, player, level, seed, length, obstacles, payout, shots, jackpot, bomb, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RoundID,
		rec.Player,
		rec.Level,
		rec.Seed,
		rec.Length,
		rec.Obstacles,
		rec.Payout,
		rec.Shots,
		rec.Jackpot,
		rec.Bomb,
		rec.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return rec.RoundID, nil
}

func saveShot(db execer, rec ShotRecord) (int64, error) {
	if rec.RoundID == "" {
		return 0, errors.New("storage: shot without round id")
	}
	var exitRow, exitCol sql.NullInt64
	if rec.Exited {
		exitRow = sql.NullInt64{Int64: int64(rec.ExitRow), Valid: true}
		exitCol = sql.NullInt64{Int64: int64(rec.ExitCol), Valid: true}
	}
	var prize sql.NullString
	if rec.Prize != "" {
		prize = sql.NullString{String: rec.Prize, Valid: true}
	}

	res, err := db.Exec(
		`INSERT INTO shots
		 (round_id, seq, beam, entry_row, entry_col, terminal, exit_row, exit_col, prize, amount, points, path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RoundID,
		rec.Seq,
		rec.Beam,
		rec.EntryRow,
		rec.EntryCol,
		rec.Terminal,
		exitRow,
		exitCol,
		prize,
		rec.Amount,
		rec.Points,
		rec.Path,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save shot: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopRounds retrieves the best paying rounds, most recent first on ties.
func (s *Store) TopRounds(limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, round_id, player, level, seed, length, obstacles, payout, shots,
		        jackpot, bomb, end_reason, created_at
		 FROM rounds
		 ORDER BY payout DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.RoundID,
			&r.Player,
			&r.Level,
			&r.Seed,
			&r.Length,
			&r.Obstacles,
			&r.Payout,
			&r.Shots,
			&r.Jackpot,
			&r.Bomb,
			&r.EndReason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// RoundShots retrieves the shots of one round in firing order.
func (s *Store) RoundShots(roundID string) ([]ShotRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, round_id, seq, beam, entry_row, entry_col, terminal,
		        exit_row, exit_col, prize, amount, points, path
		 FROM shots
		 WHERE round_id = ?
		 ORDER BY seq`,
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query shots: %w", err)
	}
	defer rows.Close()

	var records []ShotRecord
	for rows.Next() {
		var r ShotRecord
		var exitRow, exitCol sql.NullInt64
		var prize sql.NullString
		if err := rows.Scan(
			&r.ID,
			&r.RoundID,
			&r.Seq,
			&r.Beam,
			&r.EntryRow,
			&r.EntryCol,
			&r.Terminal,
			&exitRow,
			&exitCol,
			&prize,
			&r.Amount,
			&r.Points,
			&r.Path,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if exitRow.Valid && exitCol.Valid {
			r.Exited = true
			r.ExitRow = int(exitRow.Int64)
			r.ExitCol = int(exitCol.Int64)
		}
		if prize.Valid {
			r.Prize = prize.String
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Stats retrieves aggregated statistics over every saved round.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(payout), 0), COALESCE(AVG(payout), 0), COALESCE(SUM(payout), 0),
		        COALESCE(SUM(jackpot), 0), COALESCE(SUM(bomb), 0), COALESCE(MAX(level), 0), MAX(created_at)
		 FROM rounds`,
	).Scan(
		&stats.Rounds,
		&stats.HighPayout,
		&stats.AvgPayout,
		&stats.TotalPayout,
		&stats.Jackpots,
		&stats.Bombs,
		&stats.MaxLevel,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	if err := s.db.QueryRow("SELECT COUNT(*) FROM shots").Scan(&stats.Shots); err != nil {
		return nil, fmt.Errorf("storage: cannot count shots: %w", err)
	}
	return stats, nil
}

// ClearRounds deletes every saved round and shot.
func (s *Store) ClearRounds() error {
	if _, err := s.db.Exec("DELETE FROM shots; DELETE FROM rounds;"); err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
