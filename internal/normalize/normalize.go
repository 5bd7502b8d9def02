// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package normalize coerces free-form language model output into
// structured site content. Normalize never fails: it walks an ordered list
// of parsing stages and returns the first success, ending in fallbacks that
// always produce at least one section.
package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"sitesmith/internal/models"
)

// Stage names the step of the cascade that produced a result.
type Stage string

const (
	StageDirect     Stage = "direct"
	StageFencedJSON Stage = "fenced-json"
	StageFenced     Stage = "fenced"
	StageBraceSpan  Stage = "brace-span"
	StageRepaired   Stage = "repaired"
	StageMarkdown   Stage = "markdown"
	StageParagraphs Stage = "paragraphs"
	StageFallback   Stage = "fallback"
)

const (
	fallbackSiteTitle   = "Generated Website"
	fallbackDescription = "Generated website content"
	fallbackSection     = "Generated Content"
)

var (
	errNoCandidate = errors.New("normalize: no candidate found")
	errNoContent   = errors.New("normalize: no content nodes")
)

// stage is one attempt of the cascade.
type stage struct {
	name Stage
	run  func(text string) (models.Content, error)
}

// defaultStages is the fixed cascade order. The final paragraph stage
// always succeeds.
var defaultStages = []stage{
	{StageDirect, parseDirect},
	{StageFencedJSON, fromExtractor(labeledFence)},
	{StageFenced, fromExtractor(anyFence)},
	{StageBraceSpan, fromExtractor(braceSpan)},
	{StageRepaired, parseRepaired},
	{StageMarkdown, fromMarkdown},
	{StageParagraphs, fromParagraphs},
}

// Normalize converts raw model text into structured content. It never
// fails and the result always has at least one section unless a model
// returned a JSON object without one; shape checks on parsed objects are
// left to the caller.
func Normalize(text string) models.Content {
	c, _ := Parse(text)
	return c
}

// Parse is Normalize that also reports which stage produced the result.
func Parse(text string) (models.Content, Stage) {
	return run(text, defaultStages)
}

// run applies stages in order and returns the first success. A panic in
// any stage abandons the cascade and yields the last-resort wrapper.
func run(text string, stages []stage) (c models.Content, s Stage) {
	defer func() {
		if r := recover(); r != nil {
			c, s = lastResort(text), StageFallback
		}
	}()

	for _, st := range stages {
		if content, err := st.run(text); err == nil {
			return content, st.name
		}
	}
	return lastResort(text), StageFallback
}

// parseObject strictly parses s as a JSON object.
func parseObject(s string) (models.Content, error) {
	var c models.Content
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return models.Content{}, err
	}
	return c, nil
}

func parseDirect(text string) (models.Content, error) {
	return parseObject(strings.TrimSpace(text))
}

// fromExtractor turns a candidate extractor into a strict-parse stage.
func fromExtractor(extract func(string) (string, bool)) func(string) (models.Content, error) {
	return func(text string) (models.Content, error) {
		candidate, ok := extract(text)
		if !ok {
			return models.Content{}, errNoCandidate
		}
		return parseObject(candidate)
	}
}

// parseRepaired retries each extracted candidate once after textual repair.
func parseRepaired(text string) (models.Content, error) {
	var lastErr error = errNoCandidate
	for _, extract := range []func(string) (string, bool){labeledFence, anyFence, braceSpan} {
		candidate, ok := extract(text)
		if !ok {
			continue
		}
		c, err := parseObject(repair(candidate))
		if err == nil {
			return c, nil
		}
		lastErr = err
	}
	return models.Content{}, fmt.Errorf("normalize repair: %w", lastErr)
}

// lastResort wraps the raw text in a single section with fence markers and
// the word "json" removed.
func lastResort(text string) models.Content {
	cleaned := strings.ReplaceAll(text, "```", "")
	cleaned = strings.ReplaceAll(cleaned, "json", "")
	return withMeta(models.Content{
		Sections: []models.Section{{
			Title:   fallbackSection,
			Content: strings.TrimSpace(cleaned),
		}},
	})
}

// withMeta fills in a synthetic globalMeta for content built by the
// fallback stages.
func withMeta(c models.Content) models.Content {
	if c.GlobalMeta.Title == "" {
		c.GlobalMeta.Title = fallbackSiteTitle
		if len(c.Sections) > 0 && c.Sections[0].Title != "" {
			c.GlobalMeta.Title = c.Sections[0].Title
		}
	}
	if c.GlobalMeta.Description == "" {
		c.GlobalMeta.Description = fallbackDescription
	}
	return c
}
