package dialogue

import (
	"context"
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/game"
	"log/slog"
)

// Completer is the slice of the OpenAI client needed for replies. The CLI
// passes the real client; tests pass a stub.
type Completer interface {
	Reply(ctx context.Context, cat *catalog.Catalog, s *game.State, characterID, question, evidenceShown string) (string, error)
}

// Reply runs a single completion for a suspect answer.
func (c *Client) Reply(
	ctx context.Context,
	cat *catalog.Catalog,
	s *game.State,
	characterID string,
	question string,
	evidenceShown string,
) (string, error) {
	messages, err := BuildPrompt(cat, s, characterID, question, evidenceShown)
	if err != nil {
		return "", errors.Wrap(err, "build prompt")
	}
	completion, err := c.SyncCompletion(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// Ask asks a suspect a question and never fails: when the completion
// errors out it logs and substitutes a canned reply so the investigation
// can continue offline.
func Ask(
	ctx context.Context,
	completer Completer,
	logger *slog.Logger,
	cat *catalog.Catalog,
	s *game.State,
	characterID string,
	question string,
	evidenceShown string,
) string {
	reply, err := completer.Reply(ctx, cat, s, characterID, question, evidenceShown)
	if err != nil {
		logger.WarnContext(ctx, "completion failed, using fallback reply",
			slog.String("character", characterID), errors.SlogError(err))
		return FallbackReply(cat, s, characterID)
	}
	return reply
}
