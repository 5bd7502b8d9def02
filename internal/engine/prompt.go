// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"sitesmith/internal/models"
	"sitesmith/internal/theme"
)

// ContentSystemPrompt sets up the first model call, which writes the site
// copy as structured JSON.
const ContentSystemPrompt = `You are an expert website copywriter and information architect.
You produce the complete text content for a website as a single JSON object.

Rules:
- Output ONLY the JSON object. No prose before or after it, no code fences.
- The object has a "sections" array and a "globalMeta" object.
- Each section has "title" (string), "content" (an HTML fragment string using <p>, <ul>, <h3>, <a>),
  and optional "design" {layout, spacing, images, animations, interactions}
  and "meta" {description, keywords}.
- "globalMeta" has "title" and "description".
- Write 5 to 8 sections with specific, realistic copy. Never use lorem ipsum.`

// SiteSystemPrompt sets up the second model call, which turns the
// structured content into a complete HTML document.
const SiteSystemPrompt = `You are a senior front-end developer who builds polished, responsive single-page websites.

Rules:
- Output ONLY a complete HTML5 document starting with <!DOCTYPE html>. No explanations, no code fences.
- Use Tailwind CSS utility classes. The Tailwind CDN script, fonts and theme variables are injected for you.
- Use the semantic color classes bg-primary, text-primary, bg-secondary, text-accent, bg-surface,
  text-muted and so on so the page follows the theme.
- Include a sticky navigation bar linking to every section, and a footer.
- Add data-aos attributes for scroll animations where they help.
- For images use https://placehold.co/WIDTHxHEIGHT URLs with descriptive alt text.
- Keep all JavaScript inline and minimal.`

// ChatSystemPrompt is used for the conversational endpoint.
const ChatSystemPrompt = `You are a friendly web design assistant helping a user plan and refine an AI-generated website.
Answer concisely in Markdown. When suggesting copy or layout changes, be concrete.`

// BuildContentPrompt builds the user prompt for the content call from the
// request parameters and the resolved theme.
func BuildContentPrompt(req models.GenerationRequest, name theme.Name) string {
	req = req.WithDefaults()

	var b strings.Builder
	fmt.Fprintf(&b, "Create the content for a %s website.\n\n", req.WebsiteType)
	fmt.Fprintf(&b, "Description: %s\n", strings.TrimSpace(req.Prompt))
	fmt.Fprintf(&b, "Visual style: %s\n", req.Style)
	fmt.Fprintf(&b, "Brand tone: %s\n", req.BrandTone)
	fmt.Fprintf(&b, "Color theme: %s\n\n", name)
	b.WriteString("Return the JSON object now.")
	return b.String()
}

// BuildSitePrompt builds the user prompt for the HTML call from the
// normalized content and the theme palette.
func BuildSitePrompt(content models.Content, name theme.Name) string {
	palette := theme.Get(name)

	var b strings.Builder
	fmt.Fprintf(&b, "Build the website for the content below using the %q color theme.\n\n", name)
	b.WriteString("Theme palette (Tailwind colors):\n")
	fmt.Fprintf(&b, "- primary: %s\n- secondary: %s\n- accent: %s\n- background: %s\n- text: %s\n- surface: %s\n- muted: %s\n- hero gradient: %s\n\n",
		palette.Primary, palette.Secondary, palette.Accent, palette.Background,
		palette.Text, palette.Surface, palette.Muted, palette.Gradient)
	b.WriteString("Content JSON:\n")
	b.WriteString(contentJSON(content))
	b.WriteString("\n\nReturn the complete HTML document now.")
	return b.String()
}

// BuildChatPrompt combines the user's message with optional context from
// the conversation or the current site.
func BuildChatPrompt(message, conversationContext string) string {
	message = strings.TrimSpace(message)
	conversationContext = strings.TrimSpace(conversationContext)
	if conversationContext == "" {
		return message
	}
	return "Context:\n" + truncate(conversationContext, 4000) + "\n\nMessage: " + message
}

// contentJSON serializes content as indented JSON without HTML escaping so
// the model sees the markup verbatim.
func contentJSON(content models.Content) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// truncate shortens s to at most maxLen bytes, appending "..." when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
