// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxOutputTokens caps generated text. Full HTML documents regularly exceed
// the small defaults of the Claude and Gemini APIs.
const maxOutputTokens = 8192

// jsonAPI posts JSON to a provider without an SDK and maps failures the same
// way chatCompletions does: non-2xx answers become *StatusError, transport
// failures are wrapped with their cause.
type jsonAPI struct {
	provider string
	baseURL  string
	header   http.Header
	client   *http.Client
}

func newJSONAPI(provider, baseURL string, header http.Header) *jsonAPI {
	header.Set("Content-Type", "application/json")
	return &jsonAPI{
		provider: provider,
		baseURL:  baseURL,
		header:   header,
		client:   newHTTPClient(),
	}
}

func (a *jsonAPI) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s marshal: %w", a.provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s request: %w", a.provider, err)
	}
	req.Header = a.header.Clone()

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s http: %w", a.provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s read body: %w", a.provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Provider: a.provider, StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s unmarshal: %w", a.provider, err)
	}
	return nil
}
