// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds URL-friendly names for published sites.
package slug

import (
	"regexp"
	"strings"
)

// MaxLength bounds a generated slug. Longer slugs are cut at a hyphen.
const MaxLength = 60

const fallback = "site"

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// Site titles are often French, German or Spanish ("Café Lumière").
	accents = strings.NewReplacer(
		"à", "a", "á", "a", "â", "a", "ä", "a", "ã", "a", "å", "a",
		"ç", "c",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"ì", "i", "í", "i", "î", "i", "ï", "i",
		"ñ", "n",
		"ò", "o", "ó", "o", "ô", "o", "ö", "o", "õ", "o", "ø", "o",
		"ù", "u", "ú", "u", "û", "u", "ü", "u",
		"ý", "y", "ÿ", "y",
		"ß", "ss", "æ", "ae", "œ", "oe",
	)
)

// Generate creates a URL-friendly slug from s.
// Example: "Café Lumière, Paris!" → "cafe-lumiere-paris"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = accents.Replace(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if i := strings.LastIndex(result, "-"); i > 0 {
			result = result[:i]
		}
	}
	return result
}

// ForSite returns the slug a published site is stored under: the title
// slug followed by the first eight characters of the generation id, so
// two sites with the same title never collide.
func ForSite(title, id string) string {
	base := Generate(title)
	if base == "" {
		base = fallback
	}
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	if short == "" {
		return base
	}
	return base + "-" + strings.ToLower(short)
}
