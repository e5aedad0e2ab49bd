package suggestions_test

import (
	"gilmoremanor/internal/game"
	"gilmoremanor/internal/suggestions"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestEngine(t *testing.T) *suggestions.Engine {
	t.Helper()
	engine, err := suggestions.NewEngine()
	require.NoError(t, err)
	return engine
}

func suggestionIDs(list []suggestions.Suggestion) []string {
	var out []string
	for _, suggestion := range list {
		out = append(out, suggestion.ID)
	}
	return out
}

func TestEngine_Suggest(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("no evidence yields the general pool only", func(t *testing.T) {
		list := engine.Suggest("arthur", nil, 50, nil)
		require.ElementsMatch(t, []string{"arthur_relationship", "arthur_alibi"}, suggestionIDs(list))
	})

	t.Run("evidence-keyed questions target the character or everybody", func(t *testing.T) {
		list := engine.Suggest("selena", []string{"wine_glass", "gambling_receipt"}, 50, nil)
		ids := suggestionIDs(list)
		require.Contains(t, ids, "wine_glass_general", "target 'all' matches")
		require.Contains(t, ids, "wine_glass_selena")
		require.NotContains(t, ids, "gambling_arthur", "another character's question is excluded")
	})

	t.Run("pressure pool opens below 30 trust", func(t *testing.T) {
		calm := engine.Suggest("arthur", nil, 30, nil)
		require.NotContains(t, suggestionIDs(calm), "arthur_pressure_money")

		hostile := engine.Suggest("arthur", nil, 29, nil)
		require.Contains(t, suggestionIDs(hostile), "arthur_pressure_money")
	})

	t.Run("sorted descending by priority", func(t *testing.T) {
		list := engine.Suggest("selena", []string{"wine_glass"}, 50, nil)
		require.NotEmpty(t, list)
		for i := 1; i < len(list); i++ {
			require.GreaterOrEqual(t, list[i-1].Priority, list[i].Priority)
		}
		require.Equal(t, "wine_glass_selena", list[0].ID, "priority 5 ranks first")
	})

	t.Run("asked questions are filtered by prefix overlap", func(t *testing.T) {
		history := []game.Message{
			{CharacterID: "arthur", Text: "Where were you around ten o'clock last night?"},
		}
		list := engine.Suggest("arthur", nil, 50, history)
		require.NotContains(t, suggestionIDs(list), "arthur_alibi")
		require.Contains(t, suggestionIDs(list), "arthur_relationship")
	})

	t.Run("history with another character does not filter", func(t *testing.T) {
		history := []game.Message{
			{CharacterID: "marcus", Text: "Where were you around ten o'clock last night?"},
		}
		list := engine.Suggest("arthur", nil, 50, history)
		require.Contains(t, suggestionIDs(list), "arthur_alibi")
	})

	t.Run("unknown character has no suggestions", func(t *testing.T) {
		require.Empty(t, engine.Suggest("stranger", nil, 50, nil))
	})
}

func TestEngine_QuestionStrategy(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		character string
		evidence  []string
		trust     int
		want      suggestions.Approach
	}{
		{name: "low trust is gentle", character: "arthur", trust: 10, want: suggestions.ApproachGentle},
		{name: "high trust is direct", character: "arthur", trust: 80, want: suggestions.ApproachDirect},
		{name: "middling trust is direct", character: "arthur", trust: 50, want: suggestions.ApproachDirect},
		{
			name:      "receipt plus trust turns aggressive on arthur",
			character: "arthur",
			evidence:  []string{"gambling_receipt"},
			trust:     60,
			want:      suggestions.ApproachAggressive,
		},
		{name: "elise always gentle", character: "elise", trust: 80, want: suggestions.ApproachGentle},
		{name: "marcus always gentle", character: "marcus", trust: 50, want: suggestions.ApproachGentle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := engine.QuestionStrategy(tt.character, tt.evidence, tt.trust)
			require.Equal(t, tt.want, strategy.Approach)
			require.NotEmpty(t, strategy.Reasoning)
		})
	}
}

func TestEngine_ContextualHints(t *testing.T) {
	engine := newTestEngine(t)

	hints := engine.ContextualHints("selena", []string{"wine_glass"}, 50)
	require.Contains(t, hints, "The wine glass may tie to Selena. Ask about the lipstick.")

	hints = engine.ContextualHints("arthur", nil, 10)
	require.Contains(t, hints, "Find some evidence first so your questions have teeth.")
	require.Contains(t, hints, "Trust is too low. Try a gentler approach.")
}
