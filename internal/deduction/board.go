// Package deduction persists the deduction board: the connections the
// player draws between evidence and suspects, and the theories they write
// up. The board only feeds presentation and two achievement counters, so a
// corrupt payload degrades to an empty board instead of failing.
package deduction

import (
	"context"
	"database/sql"
	"encoding/json"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/errors"
	"log/slog"
	"time"
)

const blobKey = "deduction-board"

// Connection links two items on the board.
type Connection struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// Theory is a written-up reading of the case.
type Theory struct {
	Suspect   string    `json:"suspect"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// Board is the full deduction board.
type Board struct {
	Connections []Connection `json:"connections"`
	Theories    []Theory     `json:"theories"`
}

// Repository stores the board as a single JSON blob.
type Repository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewRepository(dbs *db.DBs, logger *slog.Logger) *Repository {
	return &Repository{
		dbs:    dbs,
		logger: logger.With("source", "DeductionRepository"),
	}
}

// Load reads the board. A missing or corrupt payload yields an empty
// board, never an error from decoding.
func (r *Repository) Load(ctx context.Context) (Board, error) {
	var payload string
	stmt := `SELECT payload FROM blobs WHERE key = ?`
	err := r.dbs.ReadOnly.GetContext(ctx, &payload, stmt, blobKey)
	if errors.Is(err, sql.ErrNoRows) {
		return Board{}, nil
	}
	if err != nil {
		return Board{}, errors.Wrap(err, "read deduction board")
	}

	var board Board
	if err = json.Unmarshal([]byte(payload), &board); err != nil {
		r.logger.WarnContext(ctx, "corrupt deduction board, starting empty", errors.SlogError(err))
		return Board{}, nil
	}
	return board, nil
}

// Save overwrites the board. Full-snapshot overwrite, last write wins.
func (r *Repository) Save(ctx context.Context, board Board) error {
	payload, err := json.Marshal(board)
	if err != nil {
		return errors.Wrap(err, "marshal deduction board")
	}
	stmt := `INSERT INTO blobs (key, payload) VALUES (?, ?)
	ON CONFLICT (key) DO UPDATE SET payload = excluded.payload`
	if _, err = r.dbs.ReadWrite.ExecContext(ctx, stmt, blobKey, string(payload)); err != nil {
		return errors.Wrap(err, "write deduction board")
	}
	return nil
}
