// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/openpockets/cliparse"
	"github.com/danielhkuo/openpockets/congress"
	"github.com/danielhkuo/openpockets/middleware"
	"github.com/danielhkuo/openpockets/models"
)

const msgNoVotes = "No recent votes found for this member"

type VotesHandler struct {
	votes   congress.Provider
	timeout time.Duration
}

// NewVotesHandler takes a nil provider when no vote source is configured.
func NewVotesHandler(votes congress.Provider, cfg cliparse.Config) *VotesHandler {
	return &VotesHandler{votes: votes, timeout: cfg.UpstreamTimeout}
}

// GetRecentVotes handles GET /api/politician/{bioguideId}/recent-votes
func (h *VotesHandler) GetRecentVotes(w http.ResponseWriter, r *http.Request) {
	if h.votes == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Vote data is not configured")
		return
	}

	bioguideID := strings.TrimSpace(r.PathValue("bioguideId"))
	if bioguideID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "bioguideId is required")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	votes, err := h.votes.RecentVotes(ctx, bioguideID)
	if errors.Is(err, congress.ErrMemberNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No member found with bioguide ID: "+bioguideID)
		return
	}
	if err != nil {
		slog.Error("failed to fetch votes",
			"request_id", middleware.RequestID(r.Context()),
			"bioguide_id", bioguideID,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to fetch votes")
		return
	}

	resp := models.RecentVotesResponse{BioguideID: bioguideID, Votes: votes}
	if resp.Votes == nil {
		resp.Votes = []models.Vote{}
	}
	if len(resp.Votes) == 0 {
		resp.Message = msgNoVotes
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
