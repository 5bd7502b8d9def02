// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
)

// NodeType identifies the kind of a document node.
type NodeType string

const (
	NodeSection    NodeType = "section"
	NodeSubsection NodeType = "subsection"
	NodeParagraph  NodeType = "paragraph"
)

// Node is one entry in the document tree. Sections and subsections carry a
// Title and child nodes; paragraphs carry Text only.
type Node struct {
	Type    NodeType `json:"type"`
	Title   string   `json:"title,omitempty"`
	Text    string   `json:"text,omitempty"`
	Content []*Node  `json:"content,omitempty"`
}

// Document is the structured form of loosely formatted markdown: optional
// frontmatter metadata plus a tree of sections, subsections and paragraphs.
// Only "#" and "##" headings are structural; deeper headings and inline
// formatting stay inside paragraph text.
type Document struct {
	Metadata map[string]any `json:"metadata"`
	Content  []*Node        `json:"content"`
}

// frontmatterFormat recognises a leading "---" block of key: value lines.
var frontmatterFormat = frontmatter.NewFormat("---", "---", unmarshalMetadata)

// unmarshalMetadata decodes frontmatter lines of the form "key: value".
// Each value is tried as a JSON literal first and kept as the raw string
// when that fails. Lines without a colon are ignored.
func unmarshalMetadata(data []byte, v any) error {
	meta, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("markdown metadata: unsupported target %T", v)
	}
	if *meta == nil {
		*meta = make(map[string]any)
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			continue
		}
		(*meta)[key] = metadataValue(strings.TrimSpace(value))
	}
	return nil
}

func metadataValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

// Parse converts markdown text into a Document in a single pass over its
// lines. A "# " line opens a top-level section, a "## " line opens a
// subsection under the current section, and any other non-blank line
// becomes a paragraph attached to the node the cursor points at (the
// document root when no section is open).
func Parse(text string) (*Document, error) {
	text = normalizeNewlines(text)

	meta := make(map[string]any)
	body, err := frontmatter.Parse(strings.NewReader(text), &meta, frontmatterFormat)
	if err != nil {
		return nil, fmt.Errorf("markdown parse frontmatter: %w", err)
	}

	doc := &Document{Metadata: meta, Content: []*Node{}}

	var section, cursor *Node
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if title, ok := headingTitle(line, 1); ok {
			section = &Node{Type: NodeSection, Title: title}
			doc.Content = append(doc.Content, section)
			cursor = section
			continue
		}

		if title, ok := headingTitle(line, 2); ok {
			sub := &Node{Type: NodeSubsection, Title: title}
			if section != nil {
				section.Content = append(section.Content, sub)
			} else {
				doc.Content = append(doc.Content, sub)
			}
			cursor = sub
			continue
		}

		para := &Node{Type: NodeParagraph, Text: line}
		if cursor != nil {
			cursor.Content = append(cursor.Content, para)
		} else {
			doc.Content = append(doc.Content, para)
		}
	}

	return doc, nil
}

// headingTitle reports whether line is an ATX heading of exactly the given
// level and returns its trimmed title.
func headingTitle(line string, level int) (string, bool) {
	marker := strings.Repeat("#", level)
	if !strings.HasPrefix(line, marker) {
		return "", false
	}
	rest := line[level:]
	if rest == "" {
		return "", true
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// Format renders a Document back to markdown: metadata as a frontmatter
// block, then nodes in order with "#"/"##" markers and blank lines between
// blocks. Parse(Format(d)) is structurally equal to d for any d produced by
// Parse.
func Format(doc *Document) string {
	var buf bytes.Buffer

	if len(doc.Metadata) > 0 {
		keys := make([]string, 0, len(doc.Metadata))
		for k := range doc.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteString("---\n")
		for _, k := range keys {
			fmt.Fprintf(&buf, "%s: %s\n", k, formatMetadataValue(doc.Metadata[k]))
		}
		buf.WriteString("---\n\n")
	}

	for _, n := range doc.Content {
		writeNode(&buf, n)
	}

	return strings.TrimRight(buf.String(), "\n") + "\n"
}

func writeNode(buf *bytes.Buffer, n *Node) {
	switch n.Type {
	case NodeSection:
		fmt.Fprintf(buf, "# %s\n\n", n.Title)
	case NodeSubsection:
		fmt.Fprintf(buf, "## %s\n\n", n.Title)
	default:
		buf.WriteString(n.Text)
		buf.WriteString("\n\n")
		return
	}
	for _, child := range n.Content {
		writeNode(buf, child)
	}
}

// formatMetadataValue writes strings bare unless the bare form would be
// read back as a different JSON literal; everything else is JSON-encoded.
func formatMetadataValue(v any) string {
	if s, ok := v.(string); ok {
		if _, isString := metadataValue(s).(string); isString && !strings.Contains(s, "\n") {
			if s == "" || json.Valid([]byte(s)) {
				// A bare JSON string literal would lose its quotes on re-read.
				b, _ := json.Marshal(s)
				return string(b)
			}
			return s
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
