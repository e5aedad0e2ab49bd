package game_test

import (
	"gilmoremanor/internal/game"
	"github.com/stretchr/testify/require"
	"testing"
)

func zeroTrust(s *game.State) {
	for id := range s.Trust {
		s.Trust[id] = 0
	}
}

func TestSearchRate(t *testing.T) {
	t.Run("grows with failed attempts", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)
		zeroTrust(s)

		require.InDelta(t, 40.0, game.SearchRate(s, "bathroom"), 0.001, "base rate with no trust and no attempts")

		alwaysFail := func() float64 { return 99.9 }
		_, found := game.Search(s, cat, "bathroom", alwaysFail)
		require.False(t, found)
		_, found = game.Search(s, cat, "bathroom", alwaysFail)
		require.False(t, found)

		require.InDelta(t, 80.0, game.SearchRate(s, "bathroom"), 0.001, "two failures add 40 points")
	})

	t.Run("highest single trust raises odds globally", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)
		zeroTrust(s)
		s.Trust["elise"] = 100

		require.InDelta(t, 70.0, game.SearchRate(s, "bathroom"), 0.001)
	})

	t.Run("capped at 90", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)
		s.Trust["elise"] = 100
		s.RecordSearchAttempt("bathroom")
		s.RecordSearchAttempt("bathroom")

		require.InDelta(t, 90.0, game.SearchRate(s, "bathroom"), 0.001)
	})
}

func TestSearch(t *testing.T) {
	alwaysSucceed := func() float64 { return 0 }
	alwaysFail := func() float64 { return 99.9 }

	t.Run("success grants first undiscovered item in room order", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)

		item, found := game.Search(s, cat, "living_room", alwaysSucceed)
		require.True(t, found)
		require.Equal(t, "wine_glass", item.ID)

		// The engine does not insert the evidence; that's the caller's call.
		require.False(t, s.HasEvidence("wine_glass"))
		s.AddEvidence(item.ID)

		item, found = game.Search(s, cat, "living_room", alwaysSucceed)
		require.True(t, found)
		require.Equal(t, "threatening_letter", item.ID)
	})

	t.Run("attempts increment regardless of outcome", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)

		_, _ = game.Search(s, cat, "bathroom", alwaysFail)
		_, _ = game.Search(s, cat, "bathroom", alwaysSucceed)
		_, _ = game.Search(s, cat, "bathroom", alwaysFail)
		require.Equal(t, 3, s.SearchAttempts("bathroom"))
	})

	t.Run("empty room never yields", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)
		s.AddEvidence("bloody_handkerchief")

		_, found := game.Search(s, cat, "bathroom", alwaysSucceed)
		require.False(t, found)
	})

	t.Run("roll equal to rate fails", func(t *testing.T) {
		cat := newTestCatalog(t)
		s := game.NewState(cat)
		zeroTrust(s)

		// Success iff roll < rate, strict.
		exactRate := func() float64 { return 40.0 }
		_, found := game.Search(s, cat, "bathroom", exactRate)
		require.False(t, found)

		justUnder := func() float64 { return 59.999 }
		_, found = game.Search(s, cat, "bathroom", justUnder)
		require.True(t, found)
	})
}

func TestCanSearch(t *testing.T) {
	cat := newTestCatalog(t)
	s := game.NewState(cat)

	require.True(t, game.CanSearch(s, cat, "bathroom"))

	// Cap reached.
	for i := 0; i < game.MaxSearchAttempts; i++ {
		s.RecordSearchAttempt("bathroom")
	}
	require.False(t, game.CanSearch(s, cat, "bathroom"))

	// Nothing left to find.
	s2 := game.NewState(cat)
	s2.AddEvidence("bloody_handkerchief")
	require.False(t, game.CanSearch(s2, cat, "bathroom"))

	// Unknown room has nothing to find.
	require.False(t, game.CanSearch(s, cat, "attic"))
}
