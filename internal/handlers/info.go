// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"sitesmith/internal/models"
	"sitesmith/internal/theme"
)

// endpoints is the route summary returned by Root.
var endpoints = []string{
	"POST /start-generation",
	"GET /generate-sse",
	"POST /chat",
	"GET /chat",
	"GET /color-schemes",
	"GET /templates",
	"GET /generations",
	"GET /generations/{id}",
	"GET /sites/{id}",
	"DELETE /sites/{id}",
	"POST /sites/{id}/publish",
	"GET /health",
	"GET /test",
}

// Root describes the service.
func (a *API) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":      "sitesmith",
		"message":   "AI website generator API",
		"version":   a.deps.Version,
		"provider":  a.deps.Assistant.ActiveName(),
		"endpoints": endpoints,
	})
}

// Test is a liveness probe for clients checking connectivity.
func (a *API) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Server is working",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports process status and optional backend availability.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"uptime":      time.Since(a.started).Round(time.Second).String(),
		"sessions":    a.deps.Events.Count(),
		"generations": len(a.deps.Generator.Active()),
		"history":     a.deps.History != nil,
		"cache":       a.deps.Sites != nil,
		"publishing":  a.deps.Publisher != nil,
	})
}

// colorScheme is one row of the theme table.
type colorScheme struct {
	Name theme.Name `json:"name"`
	theme.Palette
	Colors map[string]string `json:"colors"`
}

// ColorSchemes returns the full theme table in resolution order, each
// palette with its resolved hex colors.
func (a *API) ColorSchemes(w http.ResponseWriter, r *http.Request) {
	names := theme.Names()
	schemes := make([]colorScheme, 0, len(names))
	for _, name := range names {
		p := theme.Get(name)
		schemes = append(schemes, colorScheme{Name: name, Palette: p, Colors: p.Colors()})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": theme.Default,
		"schemes": schemes,
	})
}

// Templates returns the website template catalog.
func (a *API) Templates(w http.ResponseWriter, r *http.Request) {
	templates := a.deps.Catalog.All()
	if templates == nil {
		templates = []models.Template{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}
