// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"reflect"
	"testing"
)

func TestParse_Structure(t *testing.T) {
	src := "Intro line\n\n# About\nWe roast beans.\n\n## Story\nSince 1999.\nFamily owned.\n\n# Menu\n- Espresso\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(doc.Content) != 3 {
		t.Fatalf("root nodes = %d, want 3", len(doc.Content))
	}

	intro := doc.Content[0]
	if intro.Type != NodeParagraph || intro.Text != "Intro line" {
		t.Errorf("root paragraph = %+v", intro)
	}

	about := doc.Content[1]
	if about.Type != NodeSection || about.Title != "About" {
		t.Fatalf("second node = %+v, want section About", about)
	}
	if len(about.Content) != 2 {
		t.Fatalf("About children = %d, want 2", len(about.Content))
	}
	if about.Content[0].Text != "We roast beans." {
		t.Errorf("About paragraph = %q", about.Content[0].Text)
	}

	story := about.Content[1]
	if story.Type != NodeSubsection || story.Title != "Story" {
		t.Fatalf("subsection = %+v", story)
	}
	if len(story.Content) != 2 {
		t.Errorf("Story paragraphs = %d, want 2", len(story.Content))
	}

	menu := doc.Content[2]
	if menu.Title != "Menu" || len(menu.Content) != 1 || menu.Content[0].Text != "- Espresso" {
		t.Errorf("Menu = %+v", menu)
	}
}

func TestParse_BlankLinesNeverProduceParagraphs(t *testing.T) {
	doc, err := Parse("\n\n   \n# Only\n\n\n\t\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Content) != 1 || len(doc.Content[0].Content) != 0 {
		t.Errorf("unexpected nodes: %+v", doc.Content)
	}
}

func TestParse_DeeperHeadingsStayParagraphs(t *testing.T) {
	doc, err := Parse("# Top\n### Detail\n#hashtag\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	children := doc.Content[0].Content
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	for _, c := range children {
		if c.Type != NodeParagraph {
			t.Errorf("node %q has type %q, want paragraph", c.Text, c.Type)
		}
	}
}

func TestParse_Frontmatter(t *testing.T) {
	src := "---\ntitle: Bean There\nyear: 1999\nfeatured: true\ntags: [\"coffee\",\"tea\"]\nquote: \"hi\"\n---\n# Home\nWelcome\n"

	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := map[string]any{
		"title":    "Bean There",
		"year":     float64(1999),
		"featured": true,
		"tags":     []any{"coffee", "tea"},
		"quote":    "hi",
	}
	if !reflect.DeepEqual(doc.Metadata, want) {
		t.Errorf("metadata = %#v, want %#v", doc.Metadata, want)
	}
	if len(doc.Content) != 1 || doc.Content[0].Title != "Home" {
		t.Errorf("content = %+v", doc.Content)
	}
}

func TestParse_CRLF(t *testing.T) {
	doc, err := Parse("# A\r\nline one\r\n\r\n## B\r\nline two\r\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Content[0].Title != "A" || doc.Content[0].Content[1].Title != "B" {
		t.Errorf("CRLF parse = %+v", doc.Content[0])
	}
}

func TestParse_SubsectionBeforeAnySection(t *testing.T) {
	doc, err := Parse("## Orphan\ntext\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Content) != 1 || doc.Content[0].Type != NodeSubsection {
		t.Fatalf("content = %+v", doc.Content)
	}
	if len(doc.Content[0].Content) != 1 {
		t.Errorf("orphan subsection children = %d, want 1", len(doc.Content[0].Content))
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"Loose intro\n\n# One\nPara a\nPara b\n\n## Sub\nDeep text\n\n# Two\n",
		"---\ntitle: Site\ncount: 3\nliteral: \"true\"\nempty:\n---\n\n# Home\nHello\n",
		"## Orphan\nx\n# Then\n## Nested\ny\n",
		"just one paragraph",
		"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(in)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			second, err := Parse(Format(first))
			if err != nil {
				t.Fatalf("Parse(Format): %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip mismatch\nfirst:  %#v\nsecond: %#v\nformatted:\n%s", first, second, Format(first))
			}
		})
	}
}
