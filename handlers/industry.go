// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/openpockets/finance"
	"github.com/danielhkuo/openpockets/middleware"
)

type IndustryHandler struct {
	svc *finance.Service
}

func NewIndustryHandler(svc *finance.Service) *IndustryHandler {
	return &IndustryHandler{svc: svc}
}

func industryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	industry := strings.TrimSpace(r.PathValue("industry"))
	if industry == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "industry is required")
		return "", false
	}
	return industry, true
}

// GetRecipients handles GET /api/industry-contributions/{industry}
// Returns the top recipients of money from the industry as a bare array,
// empty when nothing matches
func (h *IndustryHandler) GetRecipients(w http.ResponseWriter, r *http.Request) {
	industry, ok := industryParam(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.IndustryRecipients(r.Context(), industry)
	if err != nil {
		storageError(w, r, "query industry recipients", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp.Recipients)
}

// GetRecipientGroups handles GET /api/industry-contributions/{industry}/groups
func (h *IndustryHandler) GetRecipientGroups(w http.ResponseWriter, r *http.Request) {
	industry, ok := industryParam(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.RecipientGroups(r.Context(), industry)
	if err != nil {
		storageError(w, r, "query industry recipient groups", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
