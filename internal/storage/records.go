package storage

import (
	"github.com/vovakirdan/beambox/internal/round"
)

// NewRoundRecord summarises a finished round. The seed is the one the
// board generator was created with, zero when unknown.
func NewRoundRecord(r *round.Round, player string, seed int64) RoundRecord {
	return RoundRecord{
		Player:    player,
		Level:     r.Level,
		Seed:      seed,
		Length:    r.Board.Config.Length,
		Obstacles: len(r.Board.Obstacles),
		Payout:    r.Payout,
		Shots:     r.Shots,
		Jackpot:   r.WonJackpot,
		Bomb:      r.Ended == round.EndBomb,
		EndReason: r.Ended.String(),
	}
}

// NewShotRecords converts the outcomes of a round into shot records.
func NewShotRecords(r *round.Round) []ShotRecord {
	records := make([]ShotRecord, 0, len(r.Outcomes))
	for i, out := range r.Outcomes {
		rec := ShotRecord{
			Seq:    i + 1,
			Beam:   out.Path.Beam.String(),
			Amount: out.Amount,
			Points: len(out.Path.Points),
			Path:   out.Path.String(),
		}
		if entry, ok := out.Path.Entry(); ok {
			rec.EntryRow, rec.EntryCol = entry.Row, entry.Col
		}
		if last, ok := out.Path.Last(); ok {
			rec.Terminal = last.Type.String()
		}
		if exit, ok := out.Path.Exit(); ok {
			rec.Exited = true
			rec.ExitRow, rec.ExitCol = exit.Row, exit.Col
		}
		if out.Prize != nil {
			rec.Prize = out.Prize.String()
		}
		records = append(records, rec)
	}
	return records
}

// SaveFinishedRound writes a round and all its shots.
func (s *Store) SaveFinishedRound(r *round.Round, player string, seed int64) (string, error) {
	return s.SaveRoundWithShots(NewRoundRecord(r, player, seed), NewShotRecords(r))
}
