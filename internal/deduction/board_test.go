package deduction_test

import (
	"context"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/deduction"
	"gilmoremanor/internal/testhelpers"
	"github.com/stretchr/testify/require"
	"io"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) (*deduction.Repository, *db.DBs) {
	t.Helper()
	dbs, err := db.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	return deduction.NewRepository(dbs, testhelpers.NewLogger(io.Discard)), dbs
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	// Fresh store yields an empty board.
	board, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, board.Connections)
	require.Empty(t, board.Theories)

	board.Connections = append(board.Connections,
		deduction.Connection{From: "wine_glass", To: "selena", Label: "lipstick"},
		deduction.Connection{From: "spare_key", To: "elise"},
	)
	board.Theories = append(board.Theories, deduction.Theory{
		Suspect:   "selena",
		Summary:   "Poisoned the wine using the spare key",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, repo.Save(ctx, board))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, board, loaded)

	// Overwrite semantics, not append.
	require.NoError(t, repo.Save(ctx, deduction.Board{}))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded.Connections)
}

func TestRepository_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	repo, dbs := newTestRepo(t)

	_, err := dbs.ReadWrite.ExecContext(ctx,
		`INSERT INTO blobs (key, payload) VALUES ('deduction-board', 'not json at all')`)
	require.NoError(t, err)

	board, err := repo.Load(ctx)
	require.NoError(t, err, "corrupt payloads degrade to defaults")
	require.Equal(t, deduction.Board{}, board)
}
