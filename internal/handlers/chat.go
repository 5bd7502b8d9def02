// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"time"

	"sitesmith/internal/ai"
	"sitesmith/internal/engine"
	"sitesmith/internal/markdown"
	"sitesmith/internal/models"
)

// Chat answers a design-assistant message. POST reads a JSON body; GET
// reads the message and conversationContext query parameters. Model calls
// follow the same retry policy as generation.
func (a *API) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.Message = q.Get("message")
		req.ConversationContext = q.Get("conversationContext")
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy := a.deps.Retry
	policy.OnRetry = func(err error, attempt int, delay time.Duration) {
		a.logger.Warn("chat model call failed, retrying", "attempt", attempt, "delay", delay, "error", err)
	}

	prompt := engine.BuildChatPrompt(req.Message, req.ConversationContext)
	reply, err := ai.Retry(r.Context(), policy, func(ctx context.Context) (string, error) {
		return a.deps.Assistant.Generate(ctx, engine.ChatSystemPrompt, prompt)
	})
	if err != nil {
		a.logger.Error("chat failed", "provider", a.deps.Assistant.ActiveName(), "error", err)
		writeError(w, http.StatusBadGateway, "The assistant is unavailable right now. Please try again.")
		return
	}

	html, err := markdown.ToHTML(reply)
	if err != nil {
		a.logger.Warn("chat reply render failed, using lite renderer", "error", err)
		html = markdown.RenderLite(reply)
	}

	writeJSON(w, http.StatusOK, models.ChatReply{
		Response:  reply,
		HTML:      html,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
