// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiProvider talks to the Gemini generateContent REST endpoint.
type geminiProvider struct {
	model string
	api   *jsonAPI
}

func newGemini(cfg ProviderConfig) *geminiProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiBaseURL
	}
	header := http.Header{}
	header.Set("x-goog-api-key", cfg.APIKey)
	return &geminiProvider{
		model: cfg.Model,
		api:   newJSONAPI("gemini", cfg.BaseURL, header),
	}
}

func (p *geminiProvider) Name() string { return "gemini" }

// Generate returns the text parts of the first candidate. A prompt the API
// refuses to answer is reported as a 422 so it is not retried.
func (p *geminiProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	in := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: userPrompt}}}},
		GenerationConfig: geminiGenerationConfig{MaxOutputTokens: maxOutputTokens},
	}
	if systemPrompt != "" {
		in.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}}
	}

	var out geminiResponse
	path := "/v1beta/models/" + url.PathEscape(p.model) + ":generateContent"
	if err := p.api.post(ctx, path, in, &out); err != nil {
		return "", err
	}

	if reason := out.PromptFeedback.BlockReason; reason != "" {
		return "", &StatusError{Provider: "gemini", StatusCode: http.StatusUnprocessableEntity, Body: "prompt blocked: " + reason}
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates returned")
	}

	var text strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini: no text in response (finish reason %q)", out.Candidates[0].FinishReason)
	}
	return text.String(), nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"system_instruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}
