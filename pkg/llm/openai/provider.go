package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"coursehub-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

// Provider talks to OpenAI-compatible chat completion endpoints. Images are
// sent as image_url content parts carrying data URLs.
type Provider struct {
	client *goopenai.Client
	model  string
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(apiKey, baseURL, model string, timeout time.Duration) *Provider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Provider{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts...)

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		messages[i] = toChatMessage(msg)
	}

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: float32(options.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}

func toChatMessage(msg llm.Message) goopenai.ChatCompletionMessage {
	role := msg.Role
	if role == "model" {
		role = goopenai.ChatMessageRoleAssistant
	}

	if len(msg.Images) == 0 {
		return goopenai.ChatCompletionMessage{Role: role, Content: msg.Content}
	}

	parts := make([]goopenai.ChatMessagePart, 0, len(msg.Images)+1)
	if msg.Content != "" {
		parts = append(parts, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeText,
			Text: msg.Content,
		})
	}
	for _, img := range msg.Images {
		parts = append(parts, goopenai.ChatMessagePart{
			Type: goopenai.ChatMessagePartTypeImageURL,
			ImageURL: &goopenai.ChatMessageImageURL{
				URL:    img.DataURL(),
				Detail: goopenai.ImageURLDetailAuto,
			},
		})
	}
	return goopenai.ChatCompletionMessage{Role: role, MultiContent: parts}
}
