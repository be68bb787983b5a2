// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// GroupKey names the field an aggregation pass grouped by.
type GroupKey string

const (
	ByCommitteeID     GroupKey = "committee_id"
	ByContributorName GroupKey = "contributor_name"
)

// CommitteeAggregate is one contributing entity's total for a candidate.
type CommitteeAggregate struct {
	Key              string
	CommitteeID      string
	Name             string
	EntityType       string
	Type             string
	Designation      string
	Party            string
	OrgType          string
	ConnectedOrg     string
	Corporate        bool
	Category         string
	TotalAmount      float64
	TransactionCount int
	Years            []int

	hasMaster bool
}

// Aggregation is the grouped, ranked view of a candidate's non-individual
// contributions.
type Aggregation struct {
	CandidateID string
	GroupedBy   GroupKey
	TotalAmount float64
	ByCommittee []CommitteeAggregate
}

type contributionRow struct {
	committeeID string
	contributor string
	entityType  string
	amount      float64
	cycle       int
	date        string

	// From the committee master; known is false when the committee is
	// missing from it.
	known        bool
	cmteName     string
	cmteType     string
	designation  string
	party        string
	orgType      string
	connectedOrg string
}

// AggregateContributions groups and ranks every non-individual
// contribution to candidateID. No rows is not an error.
func (s *Service) AggregateContributions(ctx context.Context, candidateID string) (Aggregation, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT c.cmte_id, c.contributor_name, c.entity_type, c.transaction_amt, c.cycle, c.transaction_dt,
			m.cmte_id IS NOT NULL,
			COALESCE(m.cmte_nm, ''), COALESCE(m.cmte_tp, ''), COALESCE(m.cmte_dsgn, ''),
			COALESCE(m.cmte_pty_affiliation, ''), COALESCE(m.org_tp, ''), COALESCE(m.connected_org_nm, '')
		FROM committee_contributions c
		LEFT JOIN committees m ON m.cmte_id = c.cmte_id
		WHERE c.candidate_id = ? AND c.entity_type <> 'IND'
		ORDER BY c.load_seq`), candidateID)
	if err != nil {
		return Aggregation{}, storageErr("query contributions", err)
	}
	defer rows.Close()

	var scanned []contributionRow
	for rows.Next() {
		var r contributionRow
		if err := rows.Scan(&r.committeeID, &r.contributor, &r.entityType, &r.amount, &r.cycle, &r.date,
			&r.known, &r.cmteName, &r.cmteType, &r.designation, &r.party, &r.orgType, &r.connectedOrg); err != nil {
			return Aggregation{}, storageErr("scan contribution", err)
		}
		scanned = append(scanned, r)
	}
	if err := rows.Err(); err != nil {
		return Aggregation{}, storageErr("iterate contributions", err)
	}

	agg := aggregate(scanned)
	agg.CandidateID = candidateID
	return agg, nil
}

// aggregate groups rows in scan order. The pass groups by committee ID only
// if every row has one, so keys are never mixed.
func aggregate(rows []contributionRow) Aggregation {
	agg := Aggregation{GroupedBy: ByCommitteeID, ByCommittee: []CommitteeAggregate{}}
	for _, r := range rows {
		if strings.TrimSpace(r.committeeID) == "" {
			agg.GroupedBy = ByContributorName
			break
		}
	}

	index := make(map[string]int)
	for _, r := range rows {
		key := strings.TrimSpace(r.committeeID)
		if agg.GroupedBy == ByContributorName {
			key = NormalizeName(r.contributor)
		}

		i, ok := index[key]
		if !ok {
			i = len(agg.ByCommittee)
			index[key] = i
			ca := CommitteeAggregate{Key: key, Name: strings.TrimSpace(r.contributor), EntityType: r.entityType}
			if agg.GroupedBy == ByCommitteeID {
				ca.CommitteeID = key
			}
			agg.ByCommittee = append(agg.ByCommittee, ca)
		}

		ca := &agg.ByCommittee[i]
		if r.known && !ca.hasMaster {
			ca.applyMaster(r)
		}
		ca.TotalAmount += r.amount
		ca.TransactionCount++
		if y := rowYear(r); y > 0 && !slices.Contains(ca.Years, y) {
			ca.Years = append(ca.Years, y)
		}
		agg.TotalAmount += r.amount
	}

	for i := range agg.ByCommittee {
		ca := &agg.ByCommittee[i]
		ca.Category = ClassifyCommittee(ca.Type, ca.Corporate)
		slices.Sort(ca.Years)
	}

	sort.SliceStable(agg.ByCommittee, func(a, b int) bool {
		return agg.ByCommittee[a].TotalAmount > agg.ByCommittee[b].TotalAmount
	})
	return agg
}

func (ca *CommitteeAggregate) applyMaster(r contributionRow) {
	ca.hasMaster = true
	if name := strings.TrimSpace(r.cmteName); name != "" {
		ca.Name = name
	}
	if ca.CommitteeID == "" {
		ca.CommitteeID = strings.TrimSpace(r.committeeID)
	}
	ca.Type = strings.TrimSpace(r.cmteType)
	ca.Designation = strings.TrimSpace(r.designation)
	ca.Party = strings.TrimSpace(r.party)
	ca.OrgType = strings.TrimSpace(r.orgType)
	ca.ConnectedOrg = strings.TrimSpace(r.connectedOrg)
	ca.Corporate = IsCorporateSponsor(ca.OrgType, ca.ConnectedOrg)
}

// rowYear is the row's cycle, or the year of an MMDDYYYY transaction date.
func rowYear(r contributionRow) int {
	if r.cycle > 0 {
		return r.cycle
	}
	d := strings.TrimSpace(r.date)
	if len(d) == 8 {
		if y, err := strconv.Atoi(d[4:]); err == nil {
			return y
		}
	}
	return 0
}
