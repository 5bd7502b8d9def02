// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package normalize

import (
	"regexp"
	"strings"

	"sitesmith/internal/markdown"
	"sitesmith/internal/models"
)

const (
	introTitle          = "Introduction"
	defaultSectionTitle = "Section"
)

var (
	blankLines   = regexp.MustCompile(`\n[ \t]*\n`)
	headingLine  = regexp.MustCompile(`^#{1,6}(?:[ \t]+(.*))?$`)
	listItemLine = regexp.MustCompile(`^[-*][ \t]+`)
)

// fromMarkdown structures the text as markdown and maps each top-level
// section onto a content section. Paragraphs that precede the first
// heading are gathered into an "Introduction" section.
func fromMarkdown(text string) (models.Content, error) {
	doc, err := markdown.Parse(text)
	if err != nil {
		return models.Content{}, err
	}
	if len(doc.Content) == 0 {
		return models.Content{}, errNoContent
	}

	var (
		sections []models.Section
		loose    []*markdown.Node
	)
	flushLoose := func() {
		if len(loose) == 0 {
			return
		}
		sections = append(sections, models.Section{
			Title:   introTitle,
			Content: renderNodes(loose),
		})
		loose = nil
	}

	for _, n := range doc.Content {
		if n.Type != markdown.NodeSection {
			loose = append(loose, n)
			continue
		}
		flushLoose()
		title := strings.TrimSpace(n.Title)
		if title == "" {
			title = defaultSectionTitle
		}
		sections = append(sections, models.Section{
			Title:   title,
			Content: renderNodes(n.Content),
		})
	}
	flushLoose()

	c := models.Content{Sections: sections}
	if title, ok := doc.Metadata["title"].(string); ok {
		c.GlobalMeta.Title = title
	}
	if desc, ok := doc.Metadata["description"].(string); ok {
		c.GlobalMeta.Description = desc
	}
	return withMeta(c), nil
}

// renderNodes renders a run of sibling nodes to HTML. Subsections become
// <h3> headings followed by their own paragraphs.
func renderNodes(nodes []*markdown.Node) string {
	var (
		parts []string
		paras []string
	)
	flushParas := func() {
		if len(paras) > 0 {
			parts = append(parts, markdown.RenderLite(joinParagraphs(paras)))
			paras = nil
		}
	}

	for _, n := range nodes {
		switch n.Type {
		case markdown.NodeParagraph:
			paras = append(paras, n.Text)
		default:
			flushParas()
			parts = append(parts, "<h3>"+n.Title+"</h3>")
			if body := renderNodes(n.Content); body != "" {
				parts = append(parts, body)
			}
		}
	}
	flushParas()

	return strings.Join(parts, "\n")
}

// joinParagraphs restores the block boundaries the structurer dropped:
// consecutive list items and lines inside a code fence are joined by a
// single newline, everything else by a blank line.
func joinParagraphs(paras []string) string {
	var b strings.Builder
	inFence := false
	for i, p := range paras {
		isFence := strings.HasPrefix(p, "```")
		if i > 0 {
			prev := paras[i-1]
			if inFence || (listItemLine.MatchString(prev) && listItemLine.MatchString(p)) {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(p)
		if isFence {
			inFence = !inFence
		}
	}
	return b.String()
}

// fromParagraphs splits the text on blank lines and turns each block into
// a section whose title is its first line. It always succeeds.
func fromParagraphs(text string) (models.Content, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))

	var sections []models.Section
	for _, block := range blankLines.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		first, rest, _ := strings.Cut(block, "\n")
		first = strings.TrimSpace(first)

		title := first
		if m := headingLine.FindStringSubmatch(first); m != nil {
			title = strings.TrimSpace(m[1])
		}
		if title == "" {
			title = defaultSectionTitle
		}

		body := strings.TrimSpace(rest)
		if body == "" && headingLine.FindStringSubmatch(first) == nil {
			body = first
		}

		sections = append(sections, models.Section{
			Title:   title,
			Content: markdown.RenderLite(body),
		})
	}

	if len(sections) == 0 {
		sections = []models.Section{{Title: defaultSectionTitle, Content: ""}}
	}

	return withMeta(models.Content{Sections: sections}), nil
}
