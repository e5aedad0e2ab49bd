package save_test

import (
	"context"
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/game"
	"gilmoremanor/internal/save"
	"gilmoremanor/internal/testhelpers"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) (*save.Repository, *catalog.Catalog) {
	t.Helper()
	dbs, err := db.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	cat, err := catalog.Load()
	require.NoError(t, err)
	return save.NewRepository(dbs, cat, testhelpers.NewLogger(io.Discard)), cat
}

func TestRepository_SaveAndLoad(t *testing.T) {
	t.Parallel()
	repo, cat := newTestRepository(t)
	ctx := context.Background()

	state := game.NewState(cat)
	state.AddEvidence("wine_glass")
	state.CurrentRoom = "dining_room"

	saved, err := repo.Save(ctx, "1", state, "Holmes", 120)
	require.NoError(t, err)
	require.Equal(t, save.Version, saved.Version)
	require.Equal(t, "Holmes", saved.PlayerName)

	loaded, err := repo.Load(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, "Holmes", loaded.PlayerName)
	require.Equal(t, 120, loaded.PlayTime)
	require.Equal(t, []string{"wine_glass"}, loaded.State.EvidenceFound)
	require.Equal(t, "dining_room", loaded.State.CurrentRoom)
}

func TestRepository_LoadEmptySlot(t *testing.T) {
	t.Parallel()
	repo, _ := newTestRepository(t)

	loaded, err := repo.Load(context.Background(), "2")
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestRepository_OverwriteSlot(t *testing.T) {
	t.Parallel()
	repo, cat := newTestRepository(t)
	ctx := context.Background()

	state := game.NewState(cat)
	_, err := repo.Save(ctx, "1", state, "First", 10)
	require.NoError(t, err)
	_, err = repo.Save(ctx, "1", state, "Second", 20)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Second", loaded.PlayerName)
	require.Equal(t, 20, loaded.PlayTime)
}

func TestRepository_SaveCountSkipsAutosaves(t *testing.T) {
	t.Parallel()
	repo, cat := newTestRepository(t)
	ctx := context.Background()
	state := game.NewState(cat)

	count, err := repo.SaveCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	_, err = repo.Save(ctx, "1", state, "Holmes", 0)
	require.NoError(t, err)
	_, err = repo.Save(ctx, "2", state, "Holmes", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Autosave(ctx, state, 0))

	count, err = repo.SaveCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()
	repo, cat := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, "3", game.NewState(cat), "Holmes", 0)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "3"))

	loaded, err := repo.Load(ctx, "3")
	require.NoError(t, err)
	require.Nil(t, loaded)

	// Deleting again is a no-op.
	require.NoError(t, repo.Delete(ctx, "3"))
}

func TestRepository_Slots(t *testing.T) {
	t.Parallel()
	repo, cat := newTestRepository(t)
	ctx := context.Background()

	state := game.NewState(cat)
	state.AddEvidence("wine_glass")
	state.AddEvidence("diary_page")
	_, err := repo.Save(ctx, "2", state, "Holmes", 0)
	require.NoError(t, err)

	slots, err := repo.Slots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, save.MaxSlots)

	require.True(t, slots[0].Empty)
	require.False(t, slots[1].Empty)
	require.Equal(t, "Holmes", slots[1].Name)
	require.Equal(t, 2, slots[1].EvidenceCount)
	require.True(t, slots[2].Empty)
}

func TestRepository_CorruptPayloadTreatedAsEmpty(t *testing.T) {
	t.Parallel()
	dbs, err := db.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	cat, err := catalog.Load()
	require.NoError(t, err)
	repo := save.NewRepository(dbs, cat, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	_, err = dbs.ReadWrite.ExecContext(ctx,
		`INSERT INTO saves (slot, payload, saved_at) VALUES ('1', 'not json', 0)`)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, "1")
	require.NoError(t, err)
	require.Nil(t, loaded)
}
