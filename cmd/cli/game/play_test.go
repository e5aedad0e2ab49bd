package game

import (
	"bufio"
	"context"
	"gilmoremanor/internal/achievements"
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/deduction"
	"gilmoremanor/internal/game"
	"gilmoremanor/internal/save"
	"gilmoremanor/internal/suggestions"
	"gilmoremanor/internal/testhelpers"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// stubCompleter replaces the OpenAI client and records how many logged
// questions the character had at the moment each reply was generated.
type stubCompleter struct {
	reply       string
	historyLens []int
}

func (c *stubCompleter) Reply(_ context.Context, _ *catalog.Catalog, s *game.State, characterID, _, _ string) (string, error) {
	c.historyLens = append(c.historyLens, len(s.ConversationsWith(characterID)))
	return c.reply, nil
}

func newTestSession(t *testing.T, input string) (*session, *stubCompleter) {
	t.Helper()
	dbs, err := db.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, dbs.Close())
	})
	cat, err := catalog.Load()
	require.NoError(t, err)
	logger := testhelpers.NewLogger(io.Discard)
	suggester, err := suggestions.NewEngine()
	require.NoError(t, err)

	a := &app{
		cfg:          config{},
		logger:       logger,
		cat:          cat,
		dbs:          dbs,
		saves:        save.NewRepository(dbs, cat, logger),
		board:        deduction.NewRepository(dbs, logger),
		achievements: achievements.NewEngine(achievements.NewRepository(dbs, logger), logger),
	}
	completer := &stubCompleter{reply: "I was in my room all night."}
	sess := &session{
		app:       a,
		state:     game.NewState(cat),
		suggester: suggester,
		completer: completer,
		in:        bufio.NewScanner(strings.NewReader(input)),
		out:       io.Discard,
		startedAt: time.Now(),
	}
	snap, err := sess.snapshot(context.Background())
	require.NoError(t, err)
	sess.previous = &snap
	return sess, completer
}

func TestAccuse_WeakCaseConfirmedEndsFatal(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t, "y\n")
	ctx := context.Background()

	require.False(t, game.CanAccuse(sess.state, sess.cat))

	quit, err := sess.accuse(ctx, []string{"arthur"})
	require.NoError(t, err)
	require.True(t, quit)
	require.Equal(t, "arthur", sess.state.Accused)
	require.Equal(t, game.PhaseComplete, sess.state.Phase)
	require.True(t, sess.state.Flags.GameComplete)
	require.True(t, sess.state.Flags.FalseAccusationMade)
}

func TestAccuse_WeakCaseDeclinedChangesNothing(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t, "n\n")
	ctx := context.Background()

	quit, err := sess.accuse(ctx, []string{"arthur"})
	require.NoError(t, err)
	require.False(t, quit)
	require.Empty(t, sess.state.Accused)
	require.Equal(t, game.PhaseInvestigation, sess.state.Phase)
	require.Equal(t, game.Flags{}, sess.state.Flags)
}

func TestAccuse_NoTrustPenaltyAtResolution(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession(t, "")
	ctx := context.Background()

	sess.state.AddEvidence("wine_glass")
	sess.state.AddEvidence("threatening_letter")
	require.True(t, game.CanAccuse(sess.state, sess.cat))
	before := sess.state.TrustLevel("selena")

	quit, err := sess.accuse(ctx, []string{"selena"})
	require.NoError(t, err)
	require.False(t, quit)
	require.Equal(t, "selena", sess.state.Accused)
	// Resolution reads trust, never mutates it.
	require.Equal(t, before, sess.state.TrustLevel("selena"))
	require.Equal(t, game.PhaseInvestigation, sess.state.Phase)
}

func TestTalk_LogsQuestionAfterReply(t *testing.T) {
	t.Parallel()
	sess, completer := newTestSession(t, "")
	ctx := context.Background()

	require.NoError(t, sess.talk(ctx, game.ActionChat, []string{"selena", "where", "were", "you?"}))
	require.NoError(t, sess.talk(ctx, game.ActionChat, []string{"selena", "tell", "me", "more"}))

	// Each reply must be generated before its own question hits the log,
	// or the prompt would carry the question twice.
	require.Equal(t, []int{0, 1}, completer.historyLens)
	require.Len(t, sess.state.ConversationsWith("selena"), 2)
}

func TestShowEvidence_LogsQuestionAfterReply(t *testing.T) {
	t.Parallel()
	sess, completer := newTestSession(t, "")
	ctx := context.Background()

	sess.state.AddEvidence("wine_glass")
	require.NoError(t, sess.showEvidence(ctx, []string{"selena", "wine_glass"}))

	require.Equal(t, []int{0}, completer.historyLens)
	require.Len(t, sess.state.ConversationsWith("selena"), 1)
}
