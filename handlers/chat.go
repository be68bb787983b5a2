// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/openpockets/assistant"
	"github.com/danielhkuo/openpockets/cliparse"
	"github.com/danielhkuo/openpockets/middleware"
	"github.com/danielhkuo/openpockets/models"
)

const chatUsage = "Please use POST with a JSON body { message } to interact with the chat endpoint."

type ChatHandler struct {
	assistant *assistant.Assistant
	timeout   time.Duration
}

// NewChatHandler takes a nil assistant when no provider is configured.
func NewChatHandler(a *assistant.Assistant, cfg cliparse.Config) *ChatHandler {
	return &ChatHandler{assistant: a, timeout: cfg.UpstreamTimeout}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Chat assistant is not configured")
		return
	}

	var req models.ChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	answer, err := h.assistant.Reply(ctx, req)
	if errors.Is(err, assistant.ErrEmptyMessage) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}
	if err != nil {
		slog.Error("chat completion failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to process chat message")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{Response: answer})
}

// ChatUsage handles GET /api/chat with a hint to use POST
func (h *ChatHandler) ChatUsage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	middleware.ErrorResponse(w, http.StatusMethodNotAllowed, chatUsage)
}
