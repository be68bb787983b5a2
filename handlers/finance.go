// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/openpockets/finance"
	"github.com/danielhkuo/openpockets/middleware"
	"github.com/danielhkuo/openpockets/models"
)

type FinanceHandler struct {
	svc *finance.Service
}

func NewFinanceHandler(svc *finance.Service) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// politicianKey reads the politician identity from /api/politician/{name}/...
// A firstName query parameter is joined as "name, firstName", the FEC
// "LAST, FIRST" order.
func politicianKey(w http.ResponseWriter, r *http.Request) (finance.CandidateKey, bool) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return finance.CandidateKey{}, false
	}

	q := r.URL.Query()
	if first := strings.TrimSpace(q.Get("firstName")); first != "" {
		name = name + ", " + first
	}
	return finance.ByIdentity(models.PoliticianIdentity{
		Name:    name,
		State:   strings.TrimSpace(q.Get("state")),
		Chamber: strings.TrimSpace(q.Get("chamber")),
	}), true
}

func candidateKey(w http.ResponseWriter, r *http.Request) (finance.CandidateKey, bool) {
	id := strings.TrimSpace(r.PathValue("candidateId"))
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidateId is required")
		return finance.CandidateKey{}, false
	}
	return finance.ByCandidateID(id), true
}

// storageError logs err server-side and answers with a generic 500.
func storageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error("failed to "+op,
		"request_id", middleware.RequestID(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}

// GetPoliticianCommittees handles GET /api/politician/{name}/committees
// Unknown politicians get an empty report with a message, never 404
func (h *FinanceHandler) GetPoliticianCommittees(w http.ResponseWriter, r *http.Request) {
	key, ok := politicianKey(w, r)
	if !ok {
		return
	}
	h.committees(w, r, key)
}

// GetCandidateCommittees handles GET /api/candidate/{candidateId}/committees
func (h *FinanceHandler) GetCandidateCommittees(w http.ResponseWriter, r *http.Request) {
	key, ok := candidateKey(w, r)
	if !ok {
		return
	}
	h.committees(w, r, key)
}

func (h *FinanceHandler) committees(w http.ResponseWriter, r *http.Request, key finance.CandidateKey) {
	report, err := h.svc.CommitteeReport(r.Context(), key)
	if err != nil {
		storageError(w, r, "build committee report", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, report)
}

// GetPoliticianIndustries handles GET /api/politician/{name}/industries
func (h *FinanceHandler) GetPoliticianIndustries(w http.ResponseWriter, r *http.Request) {
	key, ok := politicianKey(w, r)
	if !ok {
		return
	}
	h.industries(w, r, key)
}

// GetCandidateIndustries handles GET /api/candidate/{candidateId}/industries
func (h *FinanceHandler) GetCandidateIndustries(w http.ResponseWriter, r *http.Request) {
	key, ok := candidateKey(w, r)
	if !ok {
		return
	}
	h.industries(w, r, key)
}

func (h *FinanceHandler) industries(w http.ResponseWriter, r *http.Request, key finance.CandidateKey) {
	report, err := h.svc.IndustryReport(r.Context(), key)
	if err != nil {
		storageError(w, r, "build industry report", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, report)
}

// GetPoliticianMoneyReport handles GET /api/politician/{name}/money-report
func (h *FinanceHandler) GetPoliticianMoneyReport(w http.ResponseWriter, r *http.Request) {
	key, ok := politicianKey(w, r)
	if !ok {
		return
	}
	h.moneyReport(w, r, key)
}

// GetCandidateMoneyReport handles GET /api/candidate/{candidateId}/money-report
func (h *FinanceHandler) GetCandidateMoneyReport(w http.ResponseWriter, r *http.Request) {
	key, ok := candidateKey(w, r)
	if !ok {
		return
	}
	h.moneyReport(w, r, key)
}

func (h *FinanceHandler) moneyReport(w http.ResponseWriter, r *http.Request, key finance.CandidateKey) {
	report, err := h.svc.MoneyReport(r.Context(), key)
	if err != nil {
		storageError(w, r, "build money report", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, report)
}

// GetCandidateInfo handles GET /api/candidate-info/{candidateId}
// The source field says which file answered; "none" is a placeholder
func (h *FinanceHandler) GetCandidateInfo(w http.ResponseWriter, r *http.Request) {
	key, ok := candidateKey(w, r)
	if !ok {
		return
	}

	info, err := h.svc.LookupCandidate(r.Context(), key.CandidateID)
	if err != nil {
		storageError(w, r, "look up candidate", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, info)
}
