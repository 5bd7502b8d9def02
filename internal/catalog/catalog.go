// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog loads the starter website templates offered by
// GET /templates.
package catalog

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"sitesmith/internal/models"
	"sitesmith/internal/theme"
	"sitesmith/web"
)

// Catalog is an immutable, ordered set of templates.
type Catalog struct {
	templates []models.Template
	byID      map[string]int
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(web.CatalogYAML)
}

// Parse decodes a YAML list of templates. Ids must be unique, every
// template needs a prompt, and color schemes must name a known theme.
func Parse(data []byte) (*Catalog, error) {
	var templates []models.Template
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("catalog parse: %w", err)
	}

	c := &Catalog{templates: templates, byID: make(map[string]int, len(templates))}
	for i, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("catalog: template %d has no id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate template id %q", t.ID)
		}
		if t.Prompt == "" {
			return nil, fmt.Errorf("catalog: template %q has no prompt", t.ID)
		}
		if t.ColorScheme != "" {
			if _, ok := theme.Lookup(t.ColorScheme); !ok {
				return nil, fmt.Errorf("catalog: template %q uses unknown color scheme %q", t.ID, t.ColorScheme)
			}
		}
		if err := t.Request().Validate(); err != nil {
			return nil, fmt.Errorf("catalog: template %q: %w", t.ID, err)
		}
		c.byID[t.ID] = i
	}
	if len(templates) == 0 {
		return nil, errors.New("catalog: no templates")
	}
	return c, nil
}

// All returns the templates in file order.
func (c *Catalog) All() []models.Template {
	out := make([]models.Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (models.Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Template{}, false
	}
	return c.templates[i], true
}
