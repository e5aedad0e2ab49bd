package dialogue

import (
	"fmt"
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/game"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// historyWindow caps how many earlier exchanges get replayed into the prompt.
const historyWindow = 6

const (
	lowTrustThreshold  = 30
	highTrustThreshold = 70
)

// BuildPrompt assembles chat messages for a suspect reply: a system prompt
// built from the character's persona conditioned on trust, emotion and any
// evidence shown, followed by the recent conversation and the player's
// question.
func BuildPrompt(
	cat *catalog.Catalog,
	s *game.State,
	characterID string,
	question string,
	evidenceShown string,
) ([]openai.ChatCompletionMessage, error) {
	char, ok := cat.Character(characterID)
	if !ok {
		return nil, errors.New("unknown character", slog.String("character", characterID))
	}

	var sb strings.Builder
	sb.WriteString(char.Persona)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "You are %s, %s. Background: %s\n", char.Name, char.Role, char.Background)
	if len(char.Secrets) > 0 {
		fmt.Fprintf(&sb, "You hide the following and deflect when pressed: %s.\n",
			strings.Join(char.Secrets, "; "))
	}

	trust := s.TrustLevel(characterID)
	switch {
	case trust < lowTrustThreshold:
		sb.WriteString("You distrust the detective. Keep answers short, evasive and guarded.\n")
	case trust >= highTrustThreshold:
		sb.WriteString("You trust the detective and answer openly, volunteering detail.\n")
	default:
		sb.WriteString("You are cautious but cooperative with the detective.\n")
	}
	fmt.Fprintf(&sb, "Your current emotional state is %s; let it color your tone.\n",
		s.Emotion(characterID))

	if evidenceShown != "" {
		if ev, found := cat.Evidence(evidenceShown); found {
			fmt.Fprintf(&sb, "The detective is showing you evidence: %s (%s). React to it in character.\n",
				ev.Name, ev.Description)
		}
	}
	sb.WriteString("Stay in character. Never reveal you are an AI. Answer in at most three sentences.")

	messages := []openai.ChatCompletionMessage{{
		Role:    openai.ChatMessageRoleSystem,
		Content: sb.String(),
	}}

	// The log keeps the detective's side only, so earlier questions get
	// replayed as user turns to keep the suspect consistent.
	history := s.ConversationsWith(characterID)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: msg.Text,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})
	return messages, nil
}
