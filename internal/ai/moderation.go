// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/openai/openai-go"
)

// moderationTimeout keeps a slow moderation API from delaying the 202.
const moderationTimeout = 15 * time.Second

// ModerationResult contains the outcome of a prompt safety check.
type ModerationResult struct {
	Safe       bool     // true if the prompt passes moderation
	Categories []string // flagged category names, empty when safe
}

// Moderator checks user prompts for policy violations before sending
// them to AI generation endpoints.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*ModerationResult, error)
}

// apiModerator checks prompts against an OpenAI-compatible /moderations
// endpoint. OpenAI reports a top-level verdict; Mistral only reports
// categories, so any category set also counts as flagged.
type apiModerator struct {
	chat  *chatCompletions
	model string
}

func newOpenAIModerator(cfg ProviderConfig) *apiModerator {
	return &apiModerator{chat: newOpenAI(cfg), model: openai.ModerationModelOmniModerationLatest}
}

func newMistralModerator(cfg ProviderConfig) *apiModerator {
	return &apiModerator{chat: newMistral(cfg), model: "mistral-moderation-latest"}
}

func (m *apiModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, moderationTimeout)
	defer cancel()

	flagged, categories, err := m.chat.moderate(ctx, m.model, text)
	if err != nil {
		return nil, err
	}

	var labels []string
	for name, hit := range categories {
		if hit {
			labels = append(labels, categoryLabel(name))
		}
	}
	sort.Strings(labels)

	return &ModerationResult{
		Safe:       !flagged && len(labels) == 0,
		Categories: labels,
	}, nil
}

// categoryLabel renders an API category key for people:
// "hate/threatening" becomes "hate (threatening)", "self_harm" "self harm".
func categoryLabel(name string) string {
	if base, sub, ok := strings.Cut(name, "/"); ok {
		name = base + " (" + sub + ")"
	}
	return strings.ReplaceAll(name, "_", " ")
}

// fallbackModerator asks primary first and consults secondary only when
// primary fails outright, e.g. a project-scoped OpenAI key that may not
// call the moderation endpoint.
type fallbackModerator struct {
	primary   Moderator
	secondary Moderator
}

func newFallbackModerator(primary, secondary Moderator) *fallbackModerator {
	return &fallbackModerator{primary: primary, secondary: secondary}
}

func (m *fallbackModerator) CheckSafety(ctx context.Context, text string) (*ModerationResult, error) {
	res, err := m.primary.CheckSafety(ctx, text)
	if err == nil || ctx.Err() != nil {
		return res, err
	}
	res, err2 := m.secondary.CheckSafety(ctx, text)
	if err2 != nil {
		return nil, fmt.Errorf("moderation: primary: %v; fallback: %w", err, err2)
	}
	return res, nil
}
