// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine turns normalized site content into a deliverable HTML
// document. It builds the two generation prompts, pulls the HTML out of the
// model's reply and splices theme assets into the page head. Everything
// here is plain string processing with no I/O.
package engine

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"sitesmith/internal/models"
	"sitesmith/internal/theme"
	"sitesmith/web"
)

const (
	placeholderHost    = "via.placeholder.com"
	placeholderReplace = "placehold.co"
)

var (
	htmlFence     = regexp.MustCompile("(?i)```(?:[a-z]+)?[ \\t]*\\n?([\\s\\S]*?)```")
	docStart      = regexp.MustCompile(`(?i)<!doctype\s+html|<html[\s>]`)
	doctypeTag    = regexp.MustCompile(`(?i)<!doctype\s+html[^>]*>`)
	htmlClose     = regexp.MustCompile(`(?i)</html\s*>`)
	headOpen      = regexp.MustCompile(`(?i)<head(?:\s[^>]*)?>`)
	danglingFence = regexp.MustCompile("\\s*```\\s*$")
)

// ExtractHTML pulls an HTML document out of a model reply. A fenced block
// (usually labeled html) is preferred; otherwise everything before the
// first doctype or <html> tag is dropped. Any doctype variant becomes
// "<!DOCTYPE html>". When the reply contains neither a fence nor a document
// start it is returned unchanged.
func ExtractHTML(raw string) string {
	text := raw
	found := false

	if m := htmlFence.FindStringSubmatch(raw); m != nil {
		// A fence that holds only a fragment loses to a full document
		// elsewhere in the reply.
		if docStart.MatchString(m[1]) || !docStart.MatchString(raw) {
			text = m[1]
			found = true
		}
	}

	if loc := docStart.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
		if end := htmlClose.FindAllStringIndex(text, -1); len(end) > 0 {
			text = text[:end[len(end)-1][1]]
		}
		found = true
	}

	if !found {
		return raw
	}

	text = danglingFence.ReplaceAllString(text, "")
	text = doctypeTag.ReplaceAllString(text, "<!DOCTYPE html>")
	return strings.TrimSpace(text)
}

// IsDocument reports whether s starts with a doctype or <html> tag.
func IsDocument(s string) bool {
	loc := docStart.FindStringIndex(strings.TrimSpace(s))
	return loc != nil && loc[0] == 0
}

// PostProcess rewrites placeholder image URLs to a working host and
// injects the theme head block right after the opening <head> tag. The
// splice is textual: only the first <head> is touched, and a document
// without one gets the host rewrite only.
func PostProcess(doc string, palette theme.Palette) string {
	doc = strings.ReplaceAll(doc, placeholderHost, placeholderReplace)

	loc := headOpen.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[1]] + "\n" + headBlock(palette) + doc[loc[1]:]
}

// AssembleDocument wraps body markup in the embedded page shell, filling
// {colors}, {title}, {meta} and {bodyContent}.
func AssembleDocument(body string, meta models.GlobalMeta, palette theme.Palette) string {
	r := strings.NewReplacer(
		"{colors}", cssVariables(palette),
		"{title}", html.EscapeString(meta.Title),
		"{meta}", html.EscapeString(meta.Description),
		"{bodyContent}", body,
	)
	return r.Replace(web.PageTemplate)
}

// RenderSections lays normalized sections out as page body markup, one
// <section> per entry. Section content is trusted HTML; titles are escaped.
func RenderSections(c models.Content) string {
	var b strings.Builder
	for i, sec := range c.Sections {
		fmt.Fprintf(&b, "<section id=\"section-%d\" class=\"py-16 px-6 max-w-5xl mx-auto\" data-aos=\"fade-up\">\n", i+1)
		if sec.Title != "" {
			fmt.Fprintf(&b, "<h2 class=\"text-3xl font-bold text-primary mb-6\">%s</h2>\n", html.EscapeString(sec.Title))
		}
		b.WriteString(sec.HTML())
		b.WriteString("\n</section>\n")
	}
	return b.String()
}

// headBlock is the fixed markup injected into every generated page.
func headBlock(palette theme.Palette) string {
	var b strings.Builder
	b.WriteString(`<meta charset="UTF-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	b.WriteString(`<script src="https://cdn.tailwindcss.com"></script>` + "\n")
	b.WriteString(`<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600;700&display=swap">` + "\n")
	b.WriteString(`<script src="https://unpkg.com/aos@2.3.4/dist/aos.js" defer></script>` + "\n")
	b.WriteString(`<link rel="stylesheet" href="https://unpkg.com/aos@2.3.4/dist/aos.css">` + "\n")
	fmt.Fprintf(&b, "<script>\nwindow.siteTheme = %s;\nif (window.tailwind) { tailwind.config = { theme: { extend: { colors: %s } } }; }\n</script>\n",
		themeJSON(palette), colorsJSON(palette))
	b.WriteString("<style>\n:root {\n")
	b.WriteString(cssVariables(palette))
	b.WriteString("\n}\n")
	for _, role := range colorRoles(palette) {
		fmt.Fprintf(&b, ".text-%[1]s { color: var(--color-%[1]s); }\n", role)
		fmt.Fprintf(&b, ".bg-%[1]s { background-color: var(--color-%[1]s); }\n", role)
		fmt.Fprintf(&b, ".border-%[1]s { border-color: var(--color-%[1]s); }\n", role)
	}
	b.WriteString("</style>\n")
	return b.String()
}

// cssVariables renders the palette as --color-<role> declarations in a
// stable order.
func cssVariables(palette theme.Palette) string {
	colors := palette.Colors()
	lines := make([]string, 0, len(colors))
	for _, role := range colorRoles(palette) {
		lines = append(lines, fmt.Sprintf("  --color-%s: %s;", role, colors[role]))
	}
	return strings.Join(lines, "\n")
}

func colorRoles(palette theme.Palette) []string {
	colors := palette.Colors()
	roles := make([]string, 0, len(colors))
	for role := range colors {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

func themeJSON(palette theme.Palette) string {
	b, _ := json.Marshal(palette)
	return string(b)
}

func colorsJSON(palette theme.Palette) string {
	b, _ := json.Marshal(palette.Colors())
	return string(b)
}
