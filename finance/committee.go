// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"slices"
	"strings"

	"github.com/danielhkuo/openpockets/models"
)

// TopCommittees is the number of committees listed in a committee report.
const TopCommittees = 20

type committeeRule struct {
	category string
	codes    []string
}

// Evaluated in order after the corporate check. N/Q are nonconnected and
// qualified nonconnected PACs, O is an independent-expenditure-only
// committee, V/W are leadership PACs (nonqualified/qualified).
var committeeRules = []committeeRule{
	{models.CategoryTraditional, []string{"N", "Q"}},
	{models.CategorySuper, []string{"O"}},
	{models.CategoryLeadership, []string{"V", "W"}},
}

// ClassifyCommittee assigns a committee category. A corporate sponsor
// always yields corporate_pac.
func ClassifyCommittee(typeCode string, isCorporateSponsor bool) string {
	if isCorporateSponsor {
		return models.CategoryCorporate
	}
	code := strings.ToUpper(strings.TrimSpace(typeCode))
	for _, r := range committeeRules {
		if slices.Contains(r.codes, code) {
			return r.category
		}
	}
	return models.CategoryOther
}

// IsCorporateSponsor reports whether committee master fields mark a
// corporation-connected committee.
func IsCorporateSponsor(orgType, connectedOrg string) bool {
	return strings.EqualFold(strings.TrimSpace(orgType), "C") || strings.TrimSpace(connectedOrg) != ""
}

// BuildCommitteeReport rolls up an aggregation. Totals cover every
// committee; only the detail list is cut to limit.
func BuildCommitteeReport(agg Aggregation, limit int) models.CommitteesReport {
	report := models.CommitteesReport{
		CandidateID:        agg.CandidateID,
		TotalContributions: agg.TotalAmount,
		TotalCommittees:    len(agg.ByCommittee),
		Committees:         []models.Committee{},
		PACsByType:         make(map[string][]models.Committee, len(models.Categories)),
	}
	for _, c := range models.Categories {
		report.PACsByType[c] = []models.Committee{}
	}

	for i, ca := range agg.ByCommittee {
		c := ca.toModel()
		report.PACsByType[c.PACCategory] = append(report.PACsByType[c.PACCategory], c)
		if i < limit {
			report.Committees = append(report.Committees, c)
		}
	}
	return report
}

func emptyCommitteeReport(message string) models.CommitteesReport {
	report := BuildCommitteeReport(Aggregation{}, 0)
	report.Message = message
	return report
}

func (ca CommitteeAggregate) toModel() models.Committee {
	years := ca.Years
	if years == nil {
		years = []int{}
	}
	return models.Committee{
		CommitteeID:           ca.CommitteeID,
		Name:                  ca.Name,
		EntityType:            ca.EntityType,
		PACType:               ca.Type,
		Designation:           ca.Designation,
		PartyAffiliation:      ca.Party,
		IsCorporatePAC:        ca.Corporate,
		ConnectedOrganization: ca.ConnectedOrg,
		TotalContributions:    ca.TotalAmount,
		TransactionCount:      ca.TransactionCount,
		Years:                 years,
		PACCategory:           ca.Category,
	}
}
