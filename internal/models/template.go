// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Template is a starter website preset offered to clients. Selecting one
// pre-fills a GenerationRequest.
type Template struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	WebsiteType string   `json:"websiteType" yaml:"website_type"`
	ColorScheme string   `json:"colorScheme" yaml:"color_scheme"`
	Style       string   `json:"style" yaml:"style"`
	BrandTone   string   `json:"brandTone,omitempty" yaml:"brand_tone"`
	Sections    []string `json:"sections" yaml:"sections"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
}

// Request builds the generation request this template stands for.
func (t Template) Request() GenerationRequest {
	return GenerationRequest{
		Prompt:      t.Prompt,
		WebsiteType: t.WebsiteType,
		ColorScheme: t.ColorScheme,
		Style:       t.Style,
		BrandTone:   t.BrandTone,
	}
}
