// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis and lists",
			in:       "Make it **bold**.\n\n- one\n- two",
			contains: []string{"<strong>bold</strong>", "<ul>", "<li>one</li>"},
		},
		{
			name:     "heading gets an id",
			in:       "## Color ideas",
			contains: []string{`<h2 id="color-ideas">Color ideas</h2>`},
		},
		{
			name:     "gfm table",
			in:       "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "fenced code is highlighted",
			in:       "```css\n.hero { color: red; }\n```",
			contains: []string{"<pre", "color"},
		},
		{
			name:   "raw html is dropped",
			in:     "<script>alert(1)</script>\n\nhello",
			absent: []string{"<script>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.in)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q should contain %q", got, want)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("output %q should not contain %q", got, bad)
				}
			}
		})
	}
}
