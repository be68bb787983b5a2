// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/danielhkuo/openpockets/metrics"
	"github.com/danielhkuo/openpockets/models"
)

const unknown = "Unknown"

var partyNames = map[string]string{
	"1":   "Democrat",
	"2":   "Republican",
	"3":   "Independent",
	"DEM": "Democrat",
	"DFL": "Democratic-Farmer-Labor",
	"REP": "Republican",
	"IND": "Independent",
	"GRE": "Green",
	"LIB": "Libertarian",
	"CON": "Constitution",
	"NPA": "No Party Affiliation",
	"NNE": "None",
}

// PartyName expands FEC party codes. The affiliation code is preferred over
// the numeric summary code.
func PartyName(affiliation, partyCode string) string {
	if a := strings.ToUpper(strings.TrimSpace(affiliation)); a != "" {
		if name, ok := partyNames[a]; ok {
			return name
		}
		return a
	}
	if name, ok := partyNames[strings.TrimSpace(partyCode)]; ok {
		return name
	}
	return unknown
}

// LookupCandidate describes a candidate from the best available source: the
// financial summary, then the candidate master, then a placeholder. The
// result's Source says which one answered.
func (s *Service) LookupCandidate(ctx context.Context, candidateID string) (models.CandidateInfo, error) {
	info, err := s.candidateFromSummary(ctx, candidateID)
	if err == nil {
		return s.tagged(info, models.SourceSummary), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.CandidateInfo{}, storageErr("query candidate summary", err)
	}

	info, err = s.candidateFromMaster(ctx, candidateID)
	if err == nil {
		return s.tagged(info, models.SourceMaster), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.CandidateInfo{}, storageErr("query candidate master", err)
	}

	return s.tagged(models.CandidateInfo{
		ID:    candidateID,
		Name:  "Candidate " + candidateID,
		Party: unknown,
		State: unknown,
	}, models.SourceNone), nil
}

func (s *Service) tagged(info models.CandidateInfo, source string) models.CandidateInfo {
	metrics.CandidateLookups.WithLabelValues(source).Inc()
	info.Source = source
	return info
}

func (s *Service) candidateFromSummary(ctx context.Context, id string) (models.CandidateInfo, error) {
	var info models.CandidateInfo
	var partyCode, affiliation string
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT s.cand_name, s.pty_cd, s.cand_pty_affiliation, s.cand_office_st, s.cand_office_district,
			COALESCE(m.cand_office, ''),
			s.ttl_receipts, s.ttl_disb, s.coh_cop, s.debts_owed_by, s.ttl_indiv_contrib, s.cvg_end_dt
		FROM candidate_summaries s
		LEFT JOIN candidates_master m ON m.cand_id = s.cand_id
		WHERE s.cand_id = ?`), id).Scan(
		&info.Name, &partyCode, &affiliation, &info.State, &info.District, &info.Office,
		&info.TotalReceipts, &info.TotalDisbursements, &info.CashOnHand, &info.DebtsOwed,
		&info.IndividualContributions, &info.CoverageEndDate,
	)
	if err != nil {
		return info, err
	}
	info.ID = id
	info.Party = PartyName(affiliation, partyCode)
	if info.State == "" {
		info.State = unknown
	}
	return info, nil
}

func (s *Service) candidateFromMaster(ctx context.Context, id string) (models.CandidateInfo, error) {
	var info models.CandidateInfo
	var affiliation string
	err := s.db.QueryRowContext(ctx, s.dialect.Rebind(`
		SELECT cand_name, cand_pty_affiliation, cand_office_st, cand_office_district, cand_office
		FROM candidates_master
		WHERE cand_id = ?`), id).Scan(&info.Name, &affiliation, &info.State, &info.District, &info.Office)
	if err != nil {
		return info, err
	}
	info.ID = id
	info.Party = PartyName(affiliation, "")
	if info.State == "" {
		info.State = unknown
	}
	return info, nil
}
