package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client wraps the OpenAI SDK to condense long reminder content into
// a short line suitable for text-to-speech.
type Client struct {
	client *openai.Client
	model  openai.ChatModel
}

// New returns an OpenAI-backed client when apiKey is provided,
// otherwise a client that only applies the truncation fallback.
func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
	}
}

// CondenseSpokenText shortens content for speaking over a call. When
// no API key is configured the content is truncated instead.
func (c *Client) CondenseSpokenText(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content cannot be empty")
	}
	if c.client == nil {
		if len(content) > 200 {
			return content[:200] + "...", nil
		}
		return content, nil
	}

	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You rewrite reminder texts as one short sentence to be read aloud over a phone call."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(fmt.Sprintf("Rewrite the following reminder as one spoken sentence: %s", content)),
					},
				},
			},
		},
		Temperature:         openai.Float(0.3),
		MaxCompletionTokens: openai.Int(60),
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion received")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
