// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"html"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"sitesmith/internal/cache"
	"sitesmith/internal/slug"
	"sitesmith/internal/store"
)

var titleTag = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Site serves a generated document from the site cache for preview.
func (a *API) Site(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, ok := a.cachedSite(w, r, id)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(doc))
}

// DeleteSite drops a document from the site cache and removes its
// published copy when publishing is enabled.
func (a *API) DeleteSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, ok := a.cachedSite(w, r, id)
	if !ok {
		return
	}

	if a.deps.Publisher != nil {
		key := slug.ForSite(a.siteTitle(r.Context(), id, doc), id)
		if err := a.deps.Publisher.UnpublishSite(r.Context(), key); err != nil {
			a.logger.Warn("failed to unpublish site", "generation_id", id, "error", err)
		}
	}

	if err := a.deps.Sites.Delete(r.Context(), id); err != nil {
		a.logger.Error("failed to delete cached site", "generation_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete site")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishSite uploads a cached document to object storage and records the
// public URL on the generation.
func (a *API) PublishSite(w http.ResponseWriter, r *http.Request) {
	if a.deps.Publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "Publishing is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	doc, ok := a.cachedSite(w, r, id)
	if !ok {
		return
	}

	key := slug.ForSite(a.siteTitle(r.Context(), id, doc), id)
	url, err := a.deps.Publisher.PublishSite(r.Context(), key, doc)
	if err != nil {
		a.logger.Error("failed to publish site", "generation_id", id, "error", err)
		writeError(w, http.StatusBadGateway, "Failed to publish site")
		return
	}

	if a.deps.History != nil {
		err := a.deps.History.SetPublishedURL(r.Context(), id, url)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			a.logger.Warn("failed to record published url", "generation_id", id, "error", err)
		}
	}

	a.logger.Info("site published", "generation_id", id, "url", url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url, "slug": key})
}

// cachedSite loads a document or writes the error response.
func (a *API) cachedSite(w http.ResponseWriter, r *http.Request, id string) (string, bool) {
	if a.deps.Sites == nil {
		writeError(w, http.StatusNotFound, "Site not found")
		return "", false
	}

	doc, err := a.deps.Sites.Get(r.Context(), id)
	if errors.Is(err, cache.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Site not found")
		return "", false
	}
	if err != nil {
		a.logger.Error("failed to read cached site", "generation_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load site")
		return "", false
	}
	return doc, true
}

// siteTitle prefers the recorded title and falls back to the document's
// <title> element.
func (a *API) siteTitle(ctx context.Context, id, doc string) string {
	if a.deps.History != nil {
		if g, err := a.deps.History.Get(ctx, id); err == nil && g.Title != "" {
			return g.Title
		}
	}
	if m := titleTag.FindStringSubmatch(doc); m != nil {
		return html.UnescapeString(strings.TrimSpace(m[1]))
	}
	return ""
}
