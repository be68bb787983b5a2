// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/openpockets/models"
)

const (
	// TopRecipients caps the inverse industry view.
	TopRecipients = 20
	// TopRecipientGroups caps the grouped inverse view.
	TopRecipientGroups = 5

	lookupConcurrency = 8
)

type recipientTotal struct {
	candidateID string
	total       float64
	firstSeq    int64
	topName     string
	topAmount   float64
	topSeq      int64
}

// IndustryRecipients finds the candidates receiving the most from
// organizations whose names match the industry's keywords.
func (s *Service) IndustryRecipients(ctx context.Context, industry string) (models.IndustryRecipientsResponse, error) {
	keywords := s.rules.Keywords(industry)
	resp := models.IndustryRecipientsResponse{
		Industry:   industry,
		Keywords:   keywords,
		Recipients: []models.IndustryRecipient{},
	}
	if len(keywords) == 0 {
		resp.Keywords = []string{}
		resp.Message = MsgNoRecipients
		return resp, nil
	}

	totals, err := s.recipientTotals(ctx, keywords)
	if err != nil {
		return resp, err
	}
	if len(totals) > TopRecipients {
		totals = totals[:TopRecipients]
	}

	// Lookups are independent; each goroutine fills its own slot.
	recipients := make([]models.IndustryRecipient, len(totals))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, t := range totals {
		g.Go(func() error {
			info, err := s.LookupCandidate(gctx, t.candidateID)
			if err != nil {
				return err
			}
			recipients[i] = models.IndustryRecipient{
				Name:            info.Name,
				Party:           info.Party,
				State:           info.State,
				ContributorName: t.topName,
				Amount:          t.total,
				CandidateID:     t.candidateID,
				Source:          info.Source,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return resp, err
	}

	resp.Recipients = recipients
	if len(recipients) == 0 {
		resp.Message = MsgNoRecipients
	}
	return resp, nil
}

// recipientTotals sums matching contributions per candidate, ranked by
// total with ties in first-seen order.
func (s *Service) recipientTotals(ctx context.Context, keywords []string) ([]recipientTotal, error) {
	conds := make([]string, len(keywords))
	args := make([]any, len(keywords))
	for i, kw := range keywords {
		conds[i] = `UPPER(contributor_name) LIKE ? ESCAPE '\'`
		args[i] = containsPattern(kw)
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(`
		SELECT candidate_id, contributor_name, SUM(transaction_amt), MIN(load_seq)
		FROM committee_contributions
		WHERE entity_type <> 'IND' AND candidate_id <> '' AND (`+strings.Join(conds, " OR ")+`)
		GROUP BY candidate_id, contributor_name`), args...)
	if err != nil {
		return nil, storageErr("query industry contributions", err)
	}
	defer rows.Close()

	var totals []recipientTotal
	index := make(map[string]int)
	for rows.Next() {
		var id, name string
		var amount float64
		var seq int64
		if err := rows.Scan(&id, &name, &amount, &seq); err != nil {
			return nil, storageErr("scan industry contribution", err)
		}

		i, ok := index[id]
		if !ok {
			i = len(totals)
			index[id] = i
			totals = append(totals, recipientTotal{candidateID: id, firstSeq: seq, topName: name, topAmount: amount, topSeq: seq})
		} else {
			t := &totals[i]
			if seq < t.firstSeq {
				t.firstSeq = seq
			}
			if amount > t.topAmount || (amount == t.topAmount && seq < t.topSeq) {
				t.topName, t.topAmount, t.topSeq = name, amount, seq
			}
		}
		totals[i].total += amount
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate industry contributions", err)
	}

	sort.SliceStable(totals, func(a, b int) bool {
		if totals[a].total != totals[b].total {
			return totals[a].total > totals[b].total
		}
		return totals[a].firstSeq < totals[b].firstSeq
	})
	return totals, nil
}

// RecipientGroups groups the industry's top recipients by contributing
// organization (the part of the name before " - ") and keeps the top groups.
func (s *Service) RecipientGroups(ctx context.Context, industry string) (models.RecipientGroupsResponse, error) {
	recipients, err := s.IndustryRecipients(ctx, industry)
	if err != nil {
		return models.RecipientGroupsResponse{}, err
	}

	groups := GroupRecipients(recipients.Recipients)
	if len(groups) > TopRecipientGroups {
		groups = groups[:TopRecipientGroups]
	}
	resp := models.RecipientGroupsResponse{Industry: industry, Groups: groups}
	if len(groups) == 0 {
		resp.Message = MsgNoRecipients
	}
	return resp, nil
}

// GroupRecipients groups recipients by contributor prefix, ranked by total.
func GroupRecipients(recipients []models.IndustryRecipient) []models.RecipientGroup {
	groups := []models.RecipientGroup{}
	index := make(map[string]int)
	for _, r := range recipients {
		key := r.ContributorName
		if i := strings.Index(key, " - "); i >= 0 {
			key = key[:i]
		}
		key = strings.TrimSpace(key)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.RecipientGroup{Contributor: key, Recipients: []models.IndustryRecipient{}})
		}
		g := &groups[i]
		g.Recipients = append(g.Recipients, r)
		g.TotalContributions += r.Amount
		g.RecipientCount++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalContributions > groups[b].TotalContributions
	})
	return groups
}
