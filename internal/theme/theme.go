// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme maps free-text website prompts to one of a fixed set of
// color themes and exposes the palette table used when assembling pages.
package theme

import "strings"

// Name identifies one of the built-in color themes.
type Name string

const (
	Elegant Name = "elegant"
	Coffee  Name = "coffee"
	Dark    Name = "dark"
	Nature  Name = "nature"
	Tech    Name = "tech"
)

// Default is returned when no keyword rule matches and is the fallback
// for unknown names passed to Get.
const Default = Elegant

// Palette holds the semantic color-class tokens for a theme. Values are
// Tailwind class fragments (e.g. "amber-800") so the same palette can feed
// both the inline Tailwind config and the generated CSS variables.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Gradient   string `json:"gradient"`
	Surface    string `json:"surface"`
	Muted      string `json:"muted"`
}

// rule maps a set of lowercase keywords to a theme. Rules are checked in
// slice order and the first one with any matching keyword wins.
type rule struct {
	theme    Name
	keywords []string
}

var rules = []rule{
	{Dark, []string{"dark mode", "dark theme", "dark", "night", "midnight", "black background"}},
	{Coffee, []string{"coffee", "cafe", "café", "espresso", "bakery", "restaurant", "food", "tea house", "bistro"}},
	{Tech, []string{"tech", "software", "startup", "saas", "developer", "crypto", "digital", "cyber"}},
	{Nature, []string{"nature", "eco", "green", "garden", "organic", "outdoor", "farm", "plant", "forest"}},
	// Luxury prompts share the elegant palette.
	{Elegant, []string{"luxury", "premium", "elegant", "boutique", "jewelry", "fashion", "high-end"}},
}

var palettes = map[Name]Palette{
	Elegant: {
		Primary:    "slate-900",
		Secondary:  "rose-400",
		Accent:     "amber-300",
		Background: "stone-50",
		Text:       "slate-800",
		Gradient:   "from-slate-900 via-slate-700 to-rose-400",
		Surface:    "white",
		Muted:      "stone-500",
	},
	Coffee: {
		Primary:    "amber-800",
		Secondary:  "amber-600",
		Accent:     "orange-300",
		Background: "amber-50",
		Text:       "stone-800",
		Gradient:   "from-amber-900 via-amber-700 to-orange-400",
		Surface:    "orange-50",
		Muted:      "stone-500",
	},
	Dark: {
		Primary:    "indigo-400",
		Secondary:  "purple-400",
		Accent:     "cyan-300",
		Background: "gray-950",
		Text:       "gray-100",
		Gradient:   "from-gray-900 via-indigo-950 to-purple-900",
		Surface:    "gray-900",
		Muted:      "gray-400",
	},
	Nature: {
		Primary:    "emerald-700",
		Secondary:  "lime-600",
		Accent:     "yellow-400",
		Background: "green-50",
		Text:       "stone-800",
		Gradient:   "from-emerald-800 via-green-600 to-lime-400",
		Surface:    "white",
		Muted:      "stone-500",
	},
	Tech: {
		Primary:    "blue-600",
		Secondary:  "cyan-500",
		Accent:     "violet-500",
		Background: "slate-50",
		Text:       "slate-900",
		Gradient:   "from-blue-700 via-cyan-600 to-violet-500",
		Surface:    "white",
		Muted:      "slate-500",
	},
}

// order is the presentation order for Names and the color-schemes endpoint.
var order = []Name{Elegant, Coffee, Dark, Nature, Tech}

// Resolve picks a theme for a prompt by case-insensitive keyword scan.
// It always returns a valid theme name.
func Resolve(prompt string) Name {
	p := strings.ToLower(prompt)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(p, kw) {
				return r.theme
			}
		}
	}
	return Default
}

// Lookup reports whether name is a known theme, matching case-insensitively.
func Lookup(name string) (Name, bool) {
	n := Name(strings.ToLower(strings.TrimSpace(name)))
	_, ok := palettes[n]
	return n, ok
}

// Get returns the palette for name, falling back to the default theme for
// unrecognized names. Palettes are returned by value.
func Get(name Name) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[Default]
}

// Names returns the theme names in presentation order.
func Names() []Name {
	out := make([]Name, len(order))
	copy(out, order)
	return out
}

// All returns a copy of the full theme table.
func All() map[Name]Palette {
	out := make(map[Name]Palette, len(palettes))
	for k, v := range palettes {
		out[k] = v
	}
	return out
}
