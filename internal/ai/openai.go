package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const mistralBaseURL = "https://api.mistral.ai/v1"

// chatCompletions is a Provider for any OpenAI-compatible API. OpenAI and
// Mistral both speak this protocol, including the moderation endpoint.
type chatCompletions struct {
	name   string
	model  string
	client openai.Client
}

func newChatCompletions(name string, cfg ProviderConfig) *chatCompletions {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(newHTTPClient()),
		// Retries are owned by the caller's policy.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &chatCompletions{
		name:   name,
		model:  cfg.Model,
		client: openai.NewClient(opts...),
	}
}

func newOpenAI(cfg ProviderConfig) *chatCompletions {
	return newChatCompletions("openai", cfg)
}

func newMistral(cfg ProviderConfig) *chatCompletions {
	if cfg.BaseURL == "" {
		cfg.BaseURL = mistralBaseURL
	}
	return newChatCompletions("mistral", cfg)
}

func (c *chatCompletions) Name() string { return c.name }

// Generate sends a system and user message and returns the first choice.
func (c *chatCompletions) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", c.wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}

// moderate classifies text with the given moderation model and returns the
// categories that fired, as reported by the API.
func (c *chatCompletions) moderate(ctx context.Context, model, text string) (flagged bool, categories map[string]bool, err error) {
	resp, err := c.client.Moderations.New(ctx, openai.ModerationNewParams{
		Model: model,
		Input: openai.ModerationNewParamsInputUnion{OfString: openai.String(text)},
	})
	if err != nil {
		return false, nil, c.wrap(err)
	}
	if len(resp.Results) == 0 {
		return false, nil, nil
	}

	r := resp.Results[0]
	// Mistral sends only the category map, so it is decoded from the raw
	// payload instead of the OpenAI-specific struct fields.
	if raw := r.Categories.RawJSON(); raw != "" {
		if err := json.Unmarshal([]byte(raw), &categories); err != nil {
			return false, nil, fmt.Errorf("%s moderation categories: %w", c.name, err)
		}
	}
	return r.Flagged, categories, nil
}

// wrap turns an API error into a *StatusError so the retry policy can
// classify it. Transport failures keep their cause.
func (c *chatCompletions) wrap(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: c.name, StatusCode: apiErr.StatusCode, Body: strings.TrimSpace(apiErr.RawJSON())}
	}
	return fmt.Errorf("%s http: %w", c.name, err)
}
