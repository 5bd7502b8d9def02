// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sse

import (
	"encoding/json"
	"time"
)

// EventType tags the payload of a progress event.
type EventType string

const (
	EventConnected  EventType = "connected"
	EventStep       EventType = "step"
	EventCompletion EventType = "completion"
	EventComplete   EventType = "complete"
	EventError      EventType = "error"
)

// Event is one progress message delivered to clients as the JSON payload
// of an SSE data frame. Which fields are set depends on Type:
//
//	connected   SessionID
//	step        Message
//	completion  Data{code, content, metadata}
//	complete    Code, Content, Metadata (the same values, flattened)
//	error       Message, Details, optional Stack
//
// GenerationID is carried on every generation event so clients can tell
// concurrent runs apart.
type Event struct {
	Type         EventType `json:"type"`
	GenerationID string    `json:"generationId,omitempty"`
	SessionID    string    `json:"sessionId,omitempty"`
	Message      string    `json:"message,omitempty"`
	Data         *Result   `json:"data,omitempty"`
	Code         string    `json:"code,omitempty"`
	Content      any       `json:"content,omitempty"`
	Metadata     any       `json:"metadata,omitempty"`
	Details      string    `json:"details,omitempty"`
	Stack        string    `json:"stack,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Result is the terminal payload of a successful generation.
type Result struct {
	Code     string `json:"code"`
	Content  any    `json:"content"`
	Metadata any    `json:"metadata"`
}

// Connected is the first event written to every new session.
func Connected(sessionID string) Event {
	return Event{Type: EventConnected, SessionID: sessionID, Message: "Connected to generation stream", Timestamp: time.Now().UTC()}
}

// Step reports progress of a generation.
func Step(generationID, message string) Event {
	return Event{Type: EventStep, GenerationID: generationID, Message: message, Timestamp: time.Now().UTC()}
}

// Completion returns the nested "completion" event and its flattened
// "complete" twin for the same result. Both are sent.
func Completion(generationID string, r Result) (Event, Event) {
	now := time.Now().UTC()
	nested := Event{Type: EventCompletion, GenerationID: generationID, Data: &r, Timestamp: now}
	flat := Event{
		Type:         EventComplete,
		GenerationID: generationID,
		Code:         r.Code,
		Content:      r.Content,
		Metadata:     r.Metadata,
		Timestamp:    now,
	}
	return nested, flat
}

// Failure reports a generation that could not finish.
func Failure(generationID, message, details, stack string) Event {
	return Event{
		Type:         EventError,
		GenerationID: generationID,
		Message:      message,
		Details:      details,
		Stack:        stack,
		Timestamp:    time.Now().UTC(),
	}
}

// frame encodes e as a data-only SSE frame.
func (e Event) frame() ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(payload)+8)
	out = append(out, "data: "...)
	out = append(out, payload...)
	out = append(out, '\n', '\n')
	return out, nil
}
