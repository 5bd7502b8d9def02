// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown handles the markdown that comes back from language
// models. It has three parts: a structurer that turns loose markdown into a
// section tree (Parse/Format), a small regex renderer for paragraph bodies
// (RenderLite), and a full goldmark renderer for chat replies (ToHTML).
package markdown

import (
	"bytes"
	"fmt"

	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the shared goldmark instance used for chat replies.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	// Raw HTML in replies is dropped since html.WithUnsafe is not set.
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

// ToHTML renders a model reply to HTML with GitHub-flavored markdown and
// syntax-highlighted code blocks.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}
