// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/models"
)

// Explanatory messages for empty reports
const (
	MsgNoCommittees = "No committee data found for this politician"
	MsgNoIndustries = "No industry data found for this politician"
	MsgNoFinances   = "No financial data found for this politician"
	MsgNoRecipients = "No contributions found for this industry"
)

// Service answers the finance queries. It is safe for concurrent use; the
// resolver cache is its only mutable state.
type Service struct {
	db       *sql.DB
	dialect  db.Dialect
	resolver *Resolver
	rules    *Rules
}

func NewService(conn *sql.DB, dialect db.Dialect, resolver *Resolver, rules *Rules) *Service {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Service{db: conn, dialect: dialect, resolver: resolver, rules: rules}
}

// Rules returns the industry rule table in use.
func (s *Service) Rules() *Rules {
	return s.rules
}

// CandidateKey identifies the subject of a report: either an already
// resolved candidate ID or a politician identity to resolve.
type CandidateKey struct {
	CandidateID string
	Identity    models.PoliticianIdentity
}

func ByCandidateID(id string) CandidateKey {
	return CandidateKey{CandidateID: strings.TrimSpace(id)}
}

func ByIdentity(p models.PoliticianIdentity) CandidateKey {
	return CandidateKey{Identity: p}
}

// ResolveKey returns the candidate ID behind key, or ErrNotFound.
func (s *Service) ResolveKey(ctx context.Context, key CandidateKey) (string, error) {
	if key.CandidateID != "" {
		return key.CandidateID, nil
	}
	return s.resolver.Resolve(ctx, key.Identity)
}

// CommitteeReport returns the committee view for key. An unresolvable key
// yields an empty report with a message.
func (s *Service) CommitteeReport(ctx context.Context, key CandidateKey) (models.CommitteesReport, error) {
	id, err := s.ResolveKey(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return emptyCommitteeReport(MsgNoCommittees), nil
	}
	if err != nil {
		return models.CommitteesReport{}, err
	}

	agg, err := s.AggregateContributions(ctx, id)
	if err != nil {
		return models.CommitteesReport{}, err
	}
	return BuildCommitteeReport(agg, TopCommittees), nil
}

// IndustryReport returns the industry view for key.
func (s *Service) IndustryReport(ctx context.Context, key CandidateKey) (models.IndustriesReport, error) {
	id, err := s.ResolveKey(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return emptyIndustryReport(MsgNoIndustries), nil
	}
	if err != nil {
		return models.IndustriesReport{}, err
	}

	agg, err := s.AggregateContributions(ctx, id)
	if err != nil {
		return models.IndustriesReport{}, err
	}
	report, _ := s.buildIndustryReport(agg)
	return report, nil
}

// buildIndustryReport also returns the untruncated group count.
func (s *Service) buildIndustryReport(agg Aggregation) (models.IndustriesReport, int) {
	companies := CompaniesFromCommittees(agg.ByCommittee, s.rules)
	groups := GroupByIndustry(companies)
	total := len(groups)
	if len(groups) > TopIndustries {
		groups = groups[:TopIndustries]
	}
	return models.IndustriesReport{
		CandidateID:          agg.CandidateID,
		Industries:           groups,
		CorporateConnections: companies,
	}, total
}

func emptyIndustryReport(message string) models.IndustriesReport {
	return models.IndustriesReport{
		Industries:           []models.IndustryGroup{},
		CorporateConnections: []models.Company{},
		Message:              message,
	}
}

// MoneyReport bundles both views with candidate details, contribution
// totals and linked committees.
func (s *Service) MoneyReport(ctx context.Context, key CandidateKey) (models.MoneyReport, error) {
	id, err := s.ResolveKey(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return models.MoneyReport{
			Committees:       emptyCommitteeReport(MsgNoCommittees),
			Industries:       emptyIndustryReport(MsgNoIndustries),
			Totals:           models.ContributionTotals{YearsWithData: []int{}},
			LinkedCommittees: []models.LinkedCommittee{},
			Message:          MsgNoFinances,
		}, nil
	}
	if err != nil {
		return models.MoneyReport{}, err
	}

	info, err := s.LookupCandidate(ctx, id)
	if err != nil {
		return models.MoneyReport{}, err
	}
	agg, err := s.AggregateContributions(ctx, id)
	if err != nil {
		return models.MoneyReport{}, err
	}
	totals, err := s.contributionTotals(ctx, id)
	if err != nil {
		return models.MoneyReport{}, err
	}
	linked, err := s.linkedCommittees(ctx, id)
	if err != nil {
		return models.MoneyReport{}, err
	}

	committees := BuildCommitteeReport(agg, TopCommittees)
	industries, industryCount := s.buildIndustryReport(agg)

	report := models.MoneyReport{
		CandidateID:      id,
		Committees:       committees,
		Industries:       industries,
		Totals:           totals,
		LinkedCommittees: linked,
		SummaryStats: models.SummaryStats{
			TotalPACsConnected:        committees.TotalCommittees,
			TotalPACContributions:     committees.TotalContributions,
			TotalCorporateConnections: len(industries.CorporateConnections),
			TotalIndustries:           industryCount,
			LinkedCommittees:          len(linked),
		},
	}
	if info.Source != models.SourceNone {
		report.Candidate = &info
	}
	return report, nil
}

func (s *Service) contributionTotals(ctx context.Context, id string) (models.ContributionTotals, error) {
	totals := models.ContributionTotals{YearsWithData: []int{}}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT CASE WHEN entity_type = 'IND' THEN 1 ELSE 0 END AS individual,
			COUNT(*), COALESCE(SUM(transaction_amt), 0)
		FROM committee_contributions
		WHERE candidate_id = ?
		GROUP BY CASE WHEN entity_type = 'IND' THEN 1 ELSE 0 END`), id)
	if err != nil {
		return totals, storageErr("query contribution totals", err)
	}
	defer rows.Close()

	for rows.Next() {
		var individual, count int
		var sum float64
		if err := rows.Scan(&individual, &count, &sum); err != nil {
			return totals, storageErr("scan contribution totals", err)
		}
		if individual == 1 {
			totals.IndividualContributions, totals.IndividualContributionCount = sum, count
		} else {
			totals.CommitteeContributions, totals.CommitteeContributionCount = sum, count
		}
	}
	if err := rows.Err(); err != nil {
		return totals, storageErr("iterate contribution totals", err)
	}
	totals.TotalContributions = totals.CommitteeContributions + totals.IndividualContributions

	yearRows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT DISTINCT cycle FROM committee_contributions
		WHERE candidate_id = ? AND cycle > 0
		ORDER BY cycle`), id)
	if err != nil {
		return totals, storageErr("query contribution years", err)
	}
	defer yearRows.Close()

	for yearRows.Next() {
		var y int
		if err := yearRows.Scan(&y); err != nil {
			return totals, storageErr("scan contribution year", err)
		}
		totals.YearsWithData = append(totals.YearsWithData, y)
	}
	if err := yearRows.Err(); err != nil {
		return totals, storageErr("iterate contribution years", err)
	}
	return totals, nil
}

func (s *Service) linkedCommittees(ctx context.Context, id string) ([]models.LinkedCommittee, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT l.cmte_id, COALESCE(c.cmte_nm, ''), l.cmte_tp, l.cmte_dsgn, l.cand_election_yr
		FROM candidate_committee_links l
		LEFT JOIN committees c ON c.cmte_id = l.cmte_id
		WHERE l.cand_id = ?
		ORDER BY l.cand_election_yr DESC, l.cmte_id`), id)
	if err != nil {
		return nil, storageErr("query linked committees", err)
	}
	defer rows.Close()

	linked := []models.LinkedCommittee{}
	for rows.Next() {
		var lc models.LinkedCommittee
		if err := rows.Scan(&lc.CommitteeID, &lc.Name, &lc.Type, &lc.Designation, &lc.ElectionYear); err != nil {
			return nil, storageErr("scan linked committee", err)
		}
		linked = append(linked, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate linked committees", err)
	}
	return linked, nil
}
