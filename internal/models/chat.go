// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Chat limits, in characters.
const (
	MaxChatMessageLength = 2000
	MaxChatContextLength = 8000
)

// ChatRequest is a single message to the design assistant. The optional
// conversation context carries earlier turns or the current site content.
type ChatRequest struct {
	Message             string `json:"message"`
	ConversationContext string `json:"conversationContext,omitempty"`
}

// Validate checks the request fields.
func (r ChatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.RuneLength(1, MaxChatMessageLength),
		),
		validation.Field(&r.ConversationContext, validation.RuneLength(0, MaxChatContextLength)),
	)
}

// ChatReply is the assistant's answer. HTML is the reply rendered from
// markdown for direct display.
type ChatReply struct {
	Response  string `json:"response"`
	HTML      string `json:"html"`
	Timestamp string `json:"timestamp"`
}
