package history

import (
	"context"
	"database/sql"
	"time"
)

// Result is one finished game recorded in the local results log.
// There are no accounts, so results carry no player identity.
type Result struct {
	Level          string    `json:"level"`
	Solved         int       `json:"solved"`
	Revealed       int       `json:"revealed"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	FinishedAt     time.Time `json:"finishedAt"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a completed game. Best effort; callers log and move on.
func (s *Store) Insert(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results(level, solved, revealed, elapsed_seconds, finished_at)
		 VALUES(?,?,?,?,?)`,
		r.Level, r.Solved, r.Revealed, r.ElapsedSeconds, r.FinishedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Recent returns the latest finished games, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, solved, revealed, elapsed_seconds, finished_at
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Result{}
	for rows.Next() {
		var r Result
		var finished string
		if err := rows.Scan(&r.Level, &r.Solved, &r.Revealed, &r.ElapsedSeconds, &finished); err != nil {
			return nil, err
		}
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
