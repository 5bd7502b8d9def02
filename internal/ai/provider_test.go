// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// TestProvidersLive calls each real API whose key is present in the
// environment. Providers without a key are skipped.
func TestProvidersLive(t *testing.T) {
	defaults := map[string]string{
		"openai":  "gpt-4o-mini",
		"gemini":  "gemini-2.5-flash",
		"claude":  "claude-sonnet-4-6",
		"mistral": "mistral-small-latest",
	}

	for name, model := range defaults {
		t.Run(name, func(t *testing.T) {
			prefix := strings.ToUpper(name)
			key := os.Getenv(prefix + "_API_KEY")
			if key == "" {
				t.Skip(prefix + "_API_KEY not set")
			}
			if m := os.Getenv(prefix + "_MODEL"); m != "" {
				model = m
			}

			reg := NewRegistry(name, map[string]ProviderConfig{
				name: {APIKey: key, Model: model},
			})

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			result, err := reg.Generate(ctx, "Reply in exactly one short sentence.", "What is 2+2?")
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if result == "" {
				t.Fatal("Generate returned empty string")
			}
			t.Logf("%s response: %s", name, result)
		})
	}
}

// TestRegistryBasics tests registry provider management without API calls.
func TestRegistryBasics(t *testing.T) {
	reg := NewRegistry("gemini", map[string]ProviderConfig{
		"openai":  {APIKey: "test-key", Model: "gpt-4o"},
		"gemini":  {APIKey: "test-key", Model: "gemini-pro"},
		"claude":  {APIKey: "", Model: "claude-sonnet"},
		"mistral": {APIKey: "test-key", Model: "mistral-large"},
	})

	if reg.ActiveName() != "gemini" {
		t.Errorf("expected active=gemini, got %s", reg.ActiveName())
	}
	if reg.HasProvider("claude") {
		t.Error("claude should not be available (no API key)")
	}

	available := reg.Available()
	want := []string{"gemini", "mistral", "openai"}
	if strings.Join(available, ",") != strings.Join(want, ",") {
		t.Errorf("Available() = %v, want %v", available, want)
	}

	if err := reg.SetActive("openai"); err != nil {
		t.Errorf("SetActive(openai) failed: %v", err)
	}
	if err := reg.SetActive("claude"); err == nil {
		t.Error("SetActive(claude) should fail (no API key)")
	}
	if reg.ActiveName() != "openai" {
		t.Errorf("failed switch changed active provider to %s", reg.ActiveName())
	}
}
