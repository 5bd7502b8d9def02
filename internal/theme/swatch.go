// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

// swatches maps the Tailwind color tokens used by the palettes to hex values.
var swatches = map[string]string{
	"white":       "#ffffff",
	"slate-50":    "#f8fafc",
	"slate-500":   "#64748b",
	"slate-800":   "#1e293b",
	"slate-900":   "#0f172a",
	"stone-50":    "#fafaf9",
	"stone-500":   "#78716c",
	"stone-800":   "#292524",
	"gray-100":    "#f3f4f6",
	"gray-400":    "#9ca3af",
	"gray-900":    "#111827",
	"gray-950":    "#030712",
	"rose-400":    "#fb7185",
	"orange-50":   "#fff7ed",
	"orange-300":  "#fdba74",
	"amber-50":    "#fffbeb",
	"amber-300":   "#fcd34d",
	"amber-600":   "#d97706",
	"amber-800":   "#92400e",
	"yellow-400":  "#facc15",
	"lime-600":    "#65a30d",
	"green-50":    "#f0fdf4",
	"emerald-700": "#047857",
	"cyan-300":    "#67e8f9",
	"cyan-500":    "#06b6d4",
	"blue-600":    "#2563eb",
	"indigo-400":  "#818cf8",
	"violet-500":  "#8b5cf6",
	"purple-400":  "#c084fc",
}

// Hex returns the hex color for a palette token, or the token itself when
// it is not a known Tailwind color.
func Hex(token string) string {
	if h, ok := swatches[token]; ok {
		return h
	}
	return token
}

// Colors returns the solid palette roles as CSS-ready values keyed by role.
// The gradient is omitted since it is a class list, not a color.
func (p Palette) Colors() map[string]string {
	return map[string]string{
		"primary":    Hex(p.Primary),
		"secondary":  Hex(p.Secondary),
		"accent":     Hex(p.Accent),
		"background": Hex(p.Background),
		"text":       Hex(p.Text),
		"surface":    Hex(p.Surface),
		"muted":      Hex(p.Muted),
	}
}
