// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxPromptLength bounds the free-text prompt, in characters.
const MaxPromptLength = 4000

// WebsiteTypes lists the accepted values of GenerationRequest.WebsiteType.
var WebsiteTypes = []string{
	"business", "portfolio", "ecommerce", "blog", "restaurant",
	"agency", "landing", "personal", "nonprofit", "event",
}

// GenerationRequest is the client's description of the site to build.
// It is immutable once accepted.
type GenerationRequest struct {
	Prompt      string `json:"prompt"`
	WebsiteType string `json:"websiteType,omitempty"`
	ColorScheme string `json:"colorScheme,omitempty"`
	Style       string `json:"style,omitempty"`
	BrandTone   string `json:"brandTone,omitempty"`
}

// Validate checks the request fields.
func (r GenerationRequest) Validate() error {
	websiteTypes := make([]any, len(WebsiteTypes))
	for i, t := range WebsiteTypes {
		websiteTypes[i] = t
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt,
			validation.Required.Error("prompt is required"),
			validation.RuneLength(1, MaxPromptLength),
		),
		validation.Field(&r.WebsiteType, validation.In(websiteTypes...)),
		validation.Field(&r.Style, validation.Length(0, 64)),
		validation.Field(&r.BrandTone, validation.Length(0, 64)),
	)
}

// WithDefaults returns a copy with empty optional fields filled in.
func (r GenerationRequest) WithDefaults() GenerationRequest {
	if r.WebsiteType == "" {
		r.WebsiteType = "business"
	}
	if r.Style == "" {
		r.Style = "modern"
	}
	if r.BrandTone == "" {
		r.BrandTone = "professional"
	}
	return r
}

// GenerationStatus is the lifecycle state of a generation run.
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationRunning   GenerationStatus = "running"
	GenerationCompleted GenerationStatus = "completed"
	GenerationFailed    GenerationStatus = "failed"
)

// Generation is the history record of one generation run.
type Generation struct {
	ID           string           `json:"id"`
	Prompt       string           `json:"prompt"`
	WebsiteType  string           `json:"websiteType"`
	Theme        string           `json:"theme"`
	Status       GenerationStatus `json:"status"`
	Title        string           `json:"title,omitempty"`
	ParseStage   string           `json:"parseStage,omitempty"`
	Error        string           `json:"error,omitempty"`
	PublishedURL string           `json:"publishedUrl,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// IsFinished reports whether the generation reached a terminal state.
func (g *Generation) IsFinished() bool {
	return g.Status == GenerationCompleted || g.Status == GenerationFailed
}
