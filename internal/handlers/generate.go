// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"sitesmith/internal/models"
	"sitesmith/internal/store"
)

// startRequest is the body of POST /start-generation. A templateId fills
// every field the client left empty from the catalog preset.
type startRequest struct {
	models.GenerationRequest
	TemplateID string `json:"templateId,omitempty"`
}

type startResponse struct {
	Message      string `json:"message"`
	GenerationID string `json:"generationId"`
}

// StartGeneration validates and moderates the request, launches a
// background generation and returns immediately with its id. Progress is
// delivered over /generate-sse.
func (a *API) StartGeneration(w http.ResponseWriter, r *http.Request) {
	var body startRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req := body.GenerationRequest
	req.Prompt = strings.TrimSpace(req.Prompt)

	if body.TemplateID != "" {
		tmpl, ok := a.deps.Catalog.Get(body.TemplateID)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown template: "+body.TemplateID)
			return
		}
		req = mergeTemplate(req, tmpl)
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.deps.Assistant.CheckPrompt(r.Context(), req.Prompt)
	if err != nil {
		// Fail open; providers run their own safety filters.
		a.logger.Warn("moderation check failed, allowing prompt", "error", err)
	} else if !result.Safe {
		a.logger.Warn("prompt flagged by moderation", "categories", strings.Join(result.Categories, ", "))
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:      "Your prompt was flagged by content moderation. Please reformulate your request and try again.",
			Categories: result.Categories,
		})
		return
	}

	id := a.deps.Generator.Start(req.WithDefaults())
	a.logger.Info("generation started", "generation_id", id, "website_type", req.WithDefaults().WebsiteType)

	writeJSON(w, http.StatusAccepted, startResponse{
		Message:      "Website generation started",
		GenerationID: id,
	})
}

// mergeTemplate fills empty request fields from a catalog preset.
func mergeTemplate(req models.GenerationRequest, tmpl models.Template) models.GenerationRequest {
	preset := tmpl.Request()
	if req.Prompt == "" {
		req.Prompt = preset.Prompt
	}
	if req.WebsiteType == "" {
		req.WebsiteType = preset.WebsiteType
	}
	if req.ColorScheme == "" {
		req.ColorScheme = preset.ColorScheme
	}
	if req.Style == "" {
		req.Style = preset.Style
	}
	if req.BrandTone == "" {
		req.BrandTone = preset.BrandTone
	}
	return req
}

// GenerateSSE streams generation events until the client disconnects.
func (a *API) GenerateSSE(w http.ResponseWriter, r *http.Request) {
	a.deps.Events.Serve(w, r)
}

// Generations lists the generations currently in flight.
func (a *API) Generations(w http.ResponseWriter, r *http.Request) {
	active := a.deps.Generator.Active()
	if active == nil {
		active = []models.Generation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": active})
}

// Generation returns one generation record, in flight or from history.
func (a *API) Generation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if g, ok := a.deps.Generator.Lookup(id); ok {
		writeJSON(w, http.StatusOK, g)
		return
	}

	if a.deps.History == nil {
		writeError(w, http.StatusNotFound, "Generation not found")
		return
	}

	g, err := a.deps.History.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Generation not found")
		return
	}
	if err != nil {
		a.logger.Error("failed to load generation", "generation_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load generation")
		return
	}
	writeJSON(w, http.StatusOK, g)
}
