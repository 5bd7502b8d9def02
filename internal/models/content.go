// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when structured content is decoded from JSON
// that is valid but not an object.
var ErrNotObject = errors.New("content: JSON value is not an object")

// Content is the structured site content produced by the first model call:
// an ordered list of sections plus page-level metadata.
//
// A Content decoded from JSON keeps the original object bytes and encodes
// back to exactly that object, so fields the model added beyond the known
// shape survive the trip into the second prompt.
type Content struct {
	Sections   []Section  `json:"sections"`
	GlobalMeta GlobalMeta `json:"globalMeta"`

	raw json.RawMessage
}

// Section is one block of the generated site.
type Section struct {
	Title string `json:"title"`
	// Content is either an HTML fragment string or an arbitrary nested
	// JSON value when the model returned structured data.
	Content any            `json:"content"`
	Design  map[string]any `json:"design,omitempty"`
	Meta    *SectionMeta   `json:"meta,omitempty"`
}

// SectionMeta carries optional per-section SEO metadata.
type SectionMeta struct {
	Description string `json:"description,omitempty"`
	Keywords    any    `json:"keywords,omitempty"`
}

// GlobalMeta holds the page title and description.
type GlobalMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HTML returns the section body as markup. String content is returned as
// is; nested values are rendered as JSON text.
func (s Section) HTML() string {
	switch v := s.Content.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// Raw returns the original JSON object this Content was decoded from, or
// nil when it was built in code.
func (c *Content) Raw() json.RawMessage { return c.raw }

// HasRaw reports whether c was decoded from a model-provided JSON object.
func (c *Content) HasRaw() bool { return len(c.raw) > 0 }

// Title returns the global title, falling back to the first section title.
func (c *Content) Title() string {
	if c.GlobalMeta.Title != "" {
		return c.GlobalMeta.Title
	}
	if len(c.Sections) > 0 {
		return c.Sections[0].Title
	}
	return ""
}

// MarshalJSON emits the original object when c was decoded from JSON.
func (c Content) MarshalJSON() ([]byte, error) {
	if len(c.raw) > 0 {
		return c.raw, nil
	}
	type plain Content
	return json.Marshal(plain(c))
}

// UnmarshalJSON accepts any JSON object. Known fields are decoded
// leniently: a "sections" or "globalMeta" member of the wrong shape is
// ignored rather than failing the whole value.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return err
	}

	*c = Content{raw: compact.Bytes()}

	if rawSections, ok := fields["sections"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(rawSections, &items) == nil {
			for _, item := range items {
				var s Section
				if json.Unmarshal(item, &s) == nil {
					c.Sections = append(c.Sections, s)
					continue
				}
				c.Sections = append(c.Sections, lenientSection(item))
			}
		}
	}

	if rawMeta, ok := fields["globalMeta"]; ok {
		var m map[string]any
		if json.Unmarshal(rawMeta, &m) == nil {
			c.GlobalMeta.Title, _ = m["title"].(string)
			c.GlobalMeta.Description, _ = m["description"].(string)
		}
	}

	return nil
}

// lenientSection salvages what it can from a section whose fields have
// unexpected types.
func lenientSection(item json.RawMessage) Section {
	var m map[string]any
	if err := json.Unmarshal(item, &m); err != nil {
		var v any
		_ = json.Unmarshal(item, &v)
		return Section{Content: v}
	}
	s := Section{Content: m["content"]}
	s.Title, _ = m["title"].(string)
	if d, ok := m["design"].(map[string]any); ok {
		s.Design = d
	}
	return s
}
