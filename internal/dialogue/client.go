// Package dialogue produces suspect replies. It wraps the OpenAI chat API
// with persona prompts built from the case catalog, and degrades to canned
// replies when the API is unreachable.
package dialogue

import (
	"context"
	"gilmoremanor/internal/errors"
	"os"

	"github.com/sashabaranov/go-openai"
)

// MaxTokens bounds completion length. Suspect replies stay short.
const MaxTokens = 512

type Client struct {
	client    *openai.Client
	maxTokens int
}

func NewClient() Client {
	return Client{
		client:    openai.NewClient(os.Getenv("OPENAI_API_KEY")),
		maxTokens: MaxTokens,
	}
}

func (c *Client) SyncCompletion(
	ctx context.Context,
	messages []openai.ChatCompletionMessage,
) (openai.ChatCompletionResponse, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     openai.GPT4oMini,
			MaxTokens: c.maxTokens,
			Messages:  messages,
		},
	)
	if err != nil {
		return openai.ChatCompletionResponse{}, errors.Wrap(err, "create chat completion")
	}
	return completion, nil
}
