// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"fmt"
	"testing"

	"github.com/danielhkuo/openpockets/models"
	"github.com/danielhkuo/openpockets/testutil"
)

func seedOilRecipients(t *testing.T, svc *Service) {
	t.Helper()
	conn := svc.db

	testutil.SeedSummary(t, conn, testutil.Summary{ID: "S1TX00001", Name: "CRUZ, RAFAEL", Affiliation: "REP", State: "TX"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H2WV00002", Name: "MILLER, CAROL", Party: "REP", State: "WV", Office: "H"})

	rows := []testutil.Contribution{
		{CommitteeID: "C1", CandidateID: "S1TX00001", Contributor: "EXXON MOBIL - OIL PAC", EntityType: "PAC", Amount: 1000},
		{CommitteeID: "C2", CandidateID: "S1TX00001", Contributor: "CHEVRON OIL PAC", EntityType: "PAC", Amount: 3000},
		{CommitteeID: "C3", CandidateID: "S1TX00001", Contributor: "OIL, JOHN", EntityType: "IND", Amount: 99999},
		{CommitteeID: "C2", CandidateID: "H2WV00002", Contributor: "CHEVRON OIL PAC", EntityType: "PAC", Amount: 2000},
		{CommitteeID: "C2", CandidateID: "H2WV00002", Contributor: "CHEVRON OIL PAC", EntityType: "PAC", Amount: 500},
		{CommitteeID: "C4", CandidateID: "P00000009", Contributor: "ENERGY TRANSFER PAC", EntityType: "PAC", Amount: 100},
		{CommitteeID: "C5", CandidateID: "S1TX00001", Contributor: "BEER WHOLESALERS PAC", EntityType: "PAC", Amount: 5000},
	}
	for _, r := range rows {
		testutil.SeedContribution(t, conn, r)
	}
}

func TestIndustryRecipients(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)
	seedOilRecipients(t, svc)

	resp, err := svc.IndustryRecipients(context.Background(), "oil & gas")
	if err != nil {
		t.Fatalf("IndustryRecipients failed: %v", err)
	}
	if len(resp.Keywords) == 0 || resp.Keywords[0] != "ENERGY" {
		t.Errorf("Expected Oil & Gas keywords, got %v", resp.Keywords)
	}
	if resp.Message != "" {
		t.Errorf("Expected no message, got %q", resp.Message)
	}

	want := []struct {
		id          string
		amount      float64
		contributor string
		source      string
		name        string
	}{
		{"S1TX00001", 4000, "CHEVRON OIL PAC", models.SourceSummary, "CRUZ, RAFAEL"},
		{"H2WV00002", 2500, "CHEVRON OIL PAC", models.SourceMaster, "MILLER, CAROL"},
		{"P00000009", 100, "ENERGY TRANSFER PAC", models.SourceNone, "Candidate P00000009"},
	}
	if len(resp.Recipients) != len(want) {
		t.Fatalf("Expected %d recipients, got %+v", len(want), resp.Recipients)
	}
	for i, w := range want {
		got := resp.Recipients[i]
		if got.CandidateID != w.id || !almostEqual(got.Amount, w.amount) {
			t.Errorf("Recipient %d: expected %s/%v, got %s/%v", i, w.id, w.amount, got.CandidateID, got.Amount)
		}
		if got.ContributorName != w.contributor {
			t.Errorf("Recipient %d: expected contributor %s, got %s", i, w.contributor, got.ContributorName)
		}
		if got.Source != w.source || got.Name != w.name {
			t.Errorf("Recipient %d: expected %s from %s, got %s from %s", i, w.name, w.source, got.Name, got.Source)
		}
	}
}

func TestIndustryRecipients_TopTwentyAndTies(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)

	for i := 0; i < 25; i++ {
		testutil.SeedContribution(t, conn, testutil.Contribution{
			CommitteeID: "C1", CandidateID: fmt.Sprintf("H%02d", i), Contributor: "NATURAL GAS PAC", EntityType: "PAC", Amount: 100,
		})
	}

	resp, err := svc.IndustryRecipients(context.Background(), "Oil & Gas")
	if err != nil {
		t.Fatalf("IndustryRecipients failed: %v", err)
	}
	if len(resp.Recipients) != TopRecipients {
		t.Fatalf("Expected %d recipients, got %d", TopRecipients, len(resp.Recipients))
	}
	for i, r := range resp.Recipients {
		if want := fmt.Sprintf("H%02d", i); r.CandidateID != want {
			t.Errorf("Expected tied recipients in first-seen order, position %d: expected %s, got %s", i, want, r.CandidateID)
		}
	}
}

func TestIndustryRecipients_NoMatches(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)
	seedOilRecipients(t, svc)

	tests := []struct {
		industry     string
		wantKeywords int
	}{
		{"Widgets", 1},
		{"   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			resp, err := svc.IndustryRecipients(context.Background(), tt.industry)
			if err != nil {
				t.Fatalf("IndustryRecipients failed: %v", err)
			}
			if len(resp.Recipients) != 0 || resp.Recipients == nil {
				t.Errorf("Expected empty recipients, got %v", resp.Recipients)
			}
			if len(resp.Keywords) != tt.wantKeywords {
				t.Errorf("Expected %d keywords, got %v", tt.wantKeywords, resp.Keywords)
			}
			if resp.Message != MsgNoRecipients {
				t.Errorf("Expected message %q, got %q", MsgNoRecipients, resp.Message)
			}
		})
	}
}

func TestRecipientGroups(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)
	seedOilRecipients(t, svc)

	resp, err := svc.RecipientGroups(context.Background(), "Oil & Gas")
	if err != nil {
		t.Fatalf("RecipientGroups failed: %v", err)
	}
	if len(resp.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %+v", resp.Groups)
	}
	first := resp.Groups[0]
	if first.Contributor != "CHEVRON OIL PAC" || first.RecipientCount != 2 || !almostEqual(first.TotalContributions, 6500) {
		t.Errorf("Unexpected first group %+v", first)
	}
}

func TestRecipientGroups_TopFiveKeepsRecipients(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)

	sponsors := []string{"EXXON", "CHEVRON", "SHELL", "BP", "CONOCO", "MARATHON", "VALERO"}
	for i, sponsor := range sponsors {
		testutil.SeedContribution(t, conn, testutil.Contribution{
			CommitteeID: fmt.Sprintf("C%d", i), CandidateID: fmt.Sprintf("H0%d", i),
			Contributor: sponsor + " - OIL PAC", EntityType: "PAC", Amount: float64(1000 - i*100),
		})
	}

	recipients, err := svc.IndustryRecipients(context.Background(), "Oil & Gas")
	if err != nil {
		t.Fatalf("IndustryRecipients failed: %v", err)
	}
	if len(recipients.Recipients) != len(sponsors) {
		t.Fatalf("Expected %d recipients, got %d", len(sponsors), len(recipients.Recipients))
	}

	resp, err := svc.RecipientGroups(context.Background(), "Oil & Gas")
	if err != nil {
		t.Fatalf("RecipientGroups failed: %v", err)
	}
	if len(resp.Groups) != TopRecipientGroups {
		t.Fatalf("Expected %d groups, got %d", TopRecipientGroups, len(resp.Groups))
	}
	for i, g := range resp.Groups {
		if g.Contributor != sponsors[i] || g.RecipientCount != 1 || !almostEqual(g.TotalContributions, float64(1000-i*100)) {
			t.Errorf("Group %d: unexpected %+v", i, g)
		}
	}
}

func TestGroupRecipients(t *testing.T) {
	recipients := []models.IndustryRecipient{
		{CandidateID: "A", ContributorName: "PFIZER - EMPLOYEE PAC", Amount: 10},
		{CandidateID: "B", ContributorName: "MERCK", Amount: 50},
		{CandidateID: "C", ContributorName: "PFIZER - PAC", Amount: 45},
	}

	groups := GroupRecipients(recipients)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Contributor != "PFIZER" || groups[0].RecipientCount != 2 || !almostEqual(groups[0].TotalContributions, 55) {
		t.Errorf("Expected PFIZER group first, got %+v", groups[0])
	}
	if groups[1].Contributor != "MERCK" {
		t.Errorf("Expected MERCK second, got %s", groups[1].Contributor)
	}

	if got := GroupRecipients(nil); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil groups, got %v", got)
	}
}
