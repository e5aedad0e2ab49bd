package achievements

import (
	"context"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/errors"
	"log/slog"
	"time"
)

// Repository persists achievement unlocks independently of game saves, so
// wiping a save slot never revokes an achievement.
type Repository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewRepository(dbs *db.DBs, logger *slog.Logger) *Repository {
	return &Repository{
		dbs:    dbs,
		logger: logger.With("source", "AchievementRepository"),
	}
}

type unlockRow struct {
	ID         string `db:"id"`
	UnlockedAt int64  `db:"unlocked_at"`
}

// Unlocked returns the persisted unlocks keyed by achievement id.
func (r *Repository) Unlocked(ctx context.Context) (map[string]time.Time, error) {
	var rows []unlockRow
	stmt := `SELECT id, unlocked_at FROM achievements`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, errors.Wrap(err, "query achievements")
	}

	unlocked := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		unlocked[row.ID] = time.Unix(row.UnlockedAt, 0).UTC()
	}
	return unlocked, nil
}

// Unlock records an unlock timestamp. Unlocking twice keeps the first
// timestamp; an unlock is terminal.
func (r *Repository) Unlock(ctx context.Context, id string, at time.Time) error {
	stmt := `INSERT INTO achievements (id, unlocked_at) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, id, at.Unix()); err != nil {
		return errors.Wrap(err, "insert achievement", slog.String("achievement", id))
	}
	return nil
}

// Reset wipes every persisted unlock. Intended for testing and debugging.
func (r *Repository) Reset(ctx context.Context) error {
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, `DELETE FROM achievements`); err != nil {
		return errors.Wrap(err, "delete achievements")
	}
	return nil
}
