package game_test

import (
	"gilmoremanor/internal/game"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestEmotionFor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    game.Emotion
		matched bool
	}{
		{name: "accusation turns defensive", input: "I accuse you of the murder!", want: game.EmotionDefensive, matched: true},
		{name: "guilty turns defensive", input: "You look GUILTY to me", want: game.EmotionDefensive, matched: true},
		{name: "reassurance calms", input: "You can trust me", want: game.EmotionCalm, matched: true},
		{name: "asking for help calms", input: "please help me understand", want: game.EmotionCalm, matched: true},
		{name: "accusatory wins over reassuring", input: "trust me, you are guilty", want: game.EmotionDefensive, matched: true},
		{name: "neutral input leaves emotion alone", input: "where were you last night?", matched: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emotion, ok := game.EmotionFor(tt.input)
			require.Equal(t, tt.matched, ok)
			if tt.matched {
				require.Equal(t, tt.want, emotion)
			}
		})
	}
}

func TestTrustChange(t *testing.T) {
	cat := newTestCatalog(t)

	tests := []struct {
		name      string
		action    game.Action
		character string
		evidence  string
		want      int
	}{
		{name: "building trust", action: game.ActionBuildTrust, character: "arthur", want: 10},
		{name: "interrogation costs goodwill", action: game.ActionInterrogate, character: "arthur", want: -5},
		{name: "accusing is expensive", action: game.ActionAccuse, character: "selena", want: -20},
		{name: "implicating evidence", action: game.ActionPresentEvidence, character: "selena", evidence: "wine_glass", want: -10},
		{name: "irrelevant evidence", action: game.ActionPresentEvidence, character: "marcus", evidence: "wine_glass", want: 5},
		{name: "unknown evidence counts as irrelevant", action: game.ActionPresentEvidence, character: "selena", evidence: "nonexistent", want: 5},
		{name: "small talk", action: game.ActionChat, character: "elise", want: 1},
		{name: "unknown action", action: game.Action("dance"), character: "elise", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, game.TrustChange(cat, tt.action, tt.character, tt.evidence))
		})
	}
}

func TestInvestigationHints(t *testing.T) {
	cat := newTestCatalog(t)

	t.Run("fresh game needs everything", func(t *testing.T) {
		s := game.NewState(cat)
		hints := game.InvestigationHints(s, cat)
		require.NotEmpty(t, hints)
		require.NotContains(t, hints, "You are ready to make an accusation.")
	})

	t.Run("red herrings earn a warning", func(t *testing.T) {
		s := game.NewState(cat)
		s.AddEvidence("muddy_shoes")
		require.Contains(t, game.InvestigationHints(s, cat),
			"Be careful, some of your evidence may be misleading.")
	})

	t.Run("complete file is ready", func(t *testing.T) {
		s := game.NewState(cat)
		for _, id := range []string{"wine_glass", "threatening_letter", "spare_key", "diary_page"} {
			s.AddEvidence(id)
		}
		for id := range s.Trust {
			s.Trust[id] = 80
		}
		for i := 0; i < 8; i++ {
			s.AddConversation(game.Message{CharacterID: "arthur", Text: "question"})
		}
		require.Equal(t, []string{"You are ready to make an accusation."}, game.InvestigationHints(s, cat))
	})
}
