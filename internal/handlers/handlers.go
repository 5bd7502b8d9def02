// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON and streaming HTTP endpoints of the
// generator API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"sitesmith/internal/ai"
	"sitesmith/internal/catalog"
	"sitesmith/internal/models"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// Generator starts and tracks background generations.
// *generator.Orchestrator satisfies it.
type Generator interface {
	Start(req models.GenerationRequest) string
	Active() []models.Generation
	Lookup(id string) (models.Generation, bool)
}

// EventStream serves the SSE endpoint. *sse.Manager satisfies it.
type EventStream interface {
	Serve(w http.ResponseWriter, r *http.Request)
	Count() int
}

// Assistant is the model registry as seen by the handlers.
// *ai.Registry satisfies it.
type Assistant interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
	ActiveName() string
}

// History reads and annotates generation records. *store.GenerationStore
// satisfies it.
type History interface {
	Get(ctx context.Context, id string) (*models.Generation, error)
	SetPublishedURL(ctx context.Context, id, url string) error
}

// Sites reads finished documents. *cache.SiteCache satisfies it.
type Sites interface {
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// Publisher uploads finished documents. *storage.Client satisfies it.
type Publisher interface {
	PublishSite(ctx context.Context, slug, html string) (string, error)
	UnpublishSite(ctx context.Context, slug string) error
}

// Deps wires the API. Generator, Events, Assistant and Catalog are
// required; History, Sites and Publisher are nil when their backend is not
// configured.
type Deps struct {
	Generator Generator
	Events    EventStream
	Assistant Assistant
	Catalog   *catalog.Catalog
	History   History
	Sites     Sites
	Publisher Publisher
	Retry     ai.RetryPolicy
	Version   string
}

// API groups every endpoint handler.
type API struct {
	deps    Deps
	started time.Time
	logger  *slog.Logger
}

// New creates the handler group.
func New(deps Deps) *API {
	if deps.Retry.MaxAttempts == 0 {
		deps.Retry = ai.DefaultRetryPolicy()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}
	return &API{
		deps:    deps,
		started: time.Now(),
		logger:  slog.Default().With("component", "handlers"),
	}
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error      string   `json:"error"`
	Categories []string `json:"categories,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an errorResponse with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a bounded JSON body into v. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return errEmptyBody
	}
	return err
}
