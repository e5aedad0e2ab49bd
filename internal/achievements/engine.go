package achievements

import (
	"context"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/game"
	"log/slog"
	"time"
)

// Snapshot is one observed point of a playthrough: the game state plus the
// externally persisted counters.
type Snapshot struct {
	State *game.State
	Aux   Aux
}

// Engine evaluates the registry against game state snapshots and persists
// unlocks through the repository.
type Engine struct {
	repo   *Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine creates an achievement engine backed by the given repository.
func NewEngine(repo *Repository, logger *slog.Logger) *Engine {
	return &Engine{
		repo:   repo,
		logger: logger.With("source", "AchievementEngine"),
		now:    time.Now,
	}
}

// List returns every achievement with its persisted unlock state and, for
// locked progress achievements, the live progress clamped to
// [0, MaxProgress].
func (e *Engine) List(ctx context.Context, current Snapshot) ([]Achievement, error) {
	unlocked, err := e.repo.Unlocked(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read unlocked achievements")
	}

	achievements := make([]Achievement, 0, len(registry))
	for _, def := range registry {
		achievement := Achievement{Definition: def.Definition}
		if at, ok := unlocked[def.ID]; ok {
			achievement.Unlocked = true
			achievement.UnlockedAt = at
			achievement.Progress = def.MaxProgress
		} else if def.MaxProgress > 0 && def.progress != nil {
			achievement.Progress = clampProgress(def.progress(current.State, current.Aux), def.MaxProgress)
		}
		achievements = append(achievements, achievement)
	}
	return achievements, nil
}

// Observe compares two snapshots and fires the achievements whose
// predicate flipped from false to true. A nil previous snapshot counts as
// all-false, so the caller must hold back the very first observed state if
// no achievements should fire on initial load. Fired achievements are
// persisted immediately and never re-evaluated.
func (e *Engine) Observe(ctx context.Context, previous *Snapshot, current Snapshot) ([]Achievement, error) {
	unlocked, err := e.repo.Unlocked(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read unlocked achievements")
	}

	var fired []Achievement
	for _, def := range registry {
		if _, done := unlocked[def.ID]; done {
			continue
		}
		if !def.check(current.State, current.Aux) {
			continue
		}
		if previous != nil && def.check(previous.State, previous.Aux) {
			// True before this transition as well, so not an edge. This can
			// only happen for unlocks that predate persistence.
			continue
		}

		at := e.now().UTC()
		if err = e.repo.Unlock(ctx, def.ID, at); err != nil {
			return nil, errors.Wrap(err, "persist unlock", slog.String("achievement", def.ID))
		}
		e.logger.InfoContext(ctx, "achievement unlocked", slog.String("achievement", def.ID))

		achievement := Achievement{Definition: def.Definition, Unlocked: true, UnlockedAt: at}
		if def.MaxProgress > 0 {
			achievement.Progress = def.MaxProgress
		}
		fired = append(fired, achievement)
	}
	return fired, nil
}
