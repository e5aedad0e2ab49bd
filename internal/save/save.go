// Package save stores playthrough snapshots in numbered slots plus an
// autosave slot. Saves are full-snapshot overwrites; concurrent writers
// race with last-write-wins semantics, which is accepted.
package save

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/game"
	"log/slog"
	"math"
	"strconv"
	"time"
)

const (
	// Version stamps save payloads for forward compatibility checks.
	Version = "1.0.0"
	// AutoSlot is the autosave slot. Autosaves don't count towards the
	// save_master achievement.
	AutoSlot = "auto"
	// MaxSlots is the number of manual save slots.
	MaxSlots = 3

	saveCountCounter = "save-count"
)

// Payload is one persisted save.
type Payload struct {
	Slot         string      `json:"id"`
	SavedAt      time.Time   `json:"timestamp"`
	PlayerName   string      `json:"playerName"`
	CaseProgress int         `json:"caseProgress"`
	PlayTime     int         `json:"playTime"`
	Version      string      `json:"version"`
	State        *game.State `json:"gameState"`
}

// Slot is a save-slot preview for slot pickers.
type Slot struct {
	ID            string
	Name          string
	LastSaved     time.Time
	EvidenceCount int
	CurrentRoom   string
	Progress      int
	Empty         bool
}

// Repository persists saves and the manual-save counter.
type Repository struct {
	dbs    *db.DBs
	cat    *catalog.Catalog
	logger *slog.Logger
}

func NewRepository(dbs *db.DBs, cat *catalog.Catalog, logger *slog.Logger) *Repository {
	return &Repository{
		dbs:    dbs,
		cat:    cat,
		logger: logger.With("source", "SaveRepository"),
	}
}

// Save writes a full snapshot into a slot, overwriting any previous save.
// Manual saves bump the save counter; autosaves don't.
func (r *Repository) Save(
	ctx context.Context,
	slot string,
	s *game.State,
	playerName string,
	playTime int,
) (Payload, error) {
	if playerName == "" {
		playerName = fmt.Sprintf("Detective %s", slot)
	}
	save := Payload{
		Slot:         slot,
		SavedAt:      time.Now().UTC(),
		PlayerName:   playerName,
		CaseProgress: int(math.Round(game.EvidenceScore(s, r.cat))),
		PlayTime:     playTime,
		Version:      Version,
		State:        s,
	}

	payload, err := json.Marshal(save)
	if err != nil {
		return Payload{}, errors.Wrap(err, "marshal save")
	}

	stmt := `INSERT INTO saves (slot, payload, saved_at) VALUES (?, ?, ?)
	ON CONFLICT (slot) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`
	if _, err = r.dbs.ReadWrite.ExecContext(ctx, stmt, slot, string(payload), save.SavedAt.Unix()); err != nil {
		return Payload{}, errors.Wrap(err, "write save", slog.String("slot", slot))
	}

	if slot != AutoSlot {
		if err = r.incrementSaveCount(ctx); err != nil {
			return Payload{}, err
		}
	}
	return save, nil
}

// Load reads a slot. An empty slot or a corrupt payload yields nil, never
// an error from decoding.
func (r *Repository) Load(ctx context.Context, slot string) (*Payload, error) {
	var payload string
	stmt := `SELECT payload FROM saves WHERE slot = ?`
	err := r.dbs.ReadOnly.GetContext(ctx, &payload, stmt, slot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read save", slog.String("slot", slot))
	}

	var save Payload
	if err = json.Unmarshal([]byte(payload), &save); err != nil {
		r.logger.WarnContext(ctx, "corrupt save, treating slot as empty",
			slog.String("slot", slot), errors.SlogError(err))
		return nil, nil
	}
	if save.Version != Version {
		r.logger.WarnContext(ctx, "save version mismatch",
			slog.String("slot", slot), slog.String("version", save.Version))
	}
	return &save, nil
}

// Delete clears a slot. Deleting an empty slot is a no-op.
func (r *Repository) Delete(ctx context.Context, slot string) error {
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot); err != nil {
		return errors.Wrap(err, "delete save", slog.String("slot", slot))
	}
	return nil
}

// Autosave overwrites the autosave slot without touching the save counter.
func (r *Repository) Autosave(ctx context.Context, s *game.State, playTime int) error {
	_, err := r.Save(ctx, AutoSlot, s, "Autosave", playTime)
	return err
}

// Slots returns previews for every manual slot, empty ones included.
func (r *Repository) Slots(ctx context.Context) ([]Slot, error) {
	slots := make([]Slot, 0, MaxSlots)
	for i := 1; i <= MaxSlots; i++ {
		id := strconv.Itoa(i)
		save, err := r.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		if save == nil {
			slots = append(slots, Slot{
				ID:    id,
				Name:  fmt.Sprintf("Slot %s - empty", id),
				Empty: true,
			})
			continue
		}
		slots = append(slots, Slot{
			ID:            id,
			Name:          save.PlayerName,
			LastSaved:     save.SavedAt,
			EvidenceCount: len(save.State.EvidenceFound),
			CurrentRoom:   save.State.CurrentRoom,
			Progress:      save.CaseProgress,
		})
	}
	return slots, nil
}

// SaveCount returns how many manual saves have been made. Feeds the
// save_master achievement.
func (r *Repository) SaveCount(ctx context.Context) (int, error) {
	var count int
	stmt := `SELECT value FROM counters WHERE name = ?`
	err := r.dbs.ReadOnly.GetContext(ctx, &count, stmt, saveCountCounter)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "read save count")
	}
	return count, nil
}

func (r *Repository) incrementSaveCount(ctx context.Context) error {
	stmt := `INSERT INTO counters (name, value) VALUES (?, 1)
	ON CONFLICT (name) DO UPDATE SET value = value + 1`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, saveCountCounter); err != nil {
		return errors.Wrap(err, "increment save count")
	}
	return nil
}
