// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/danielhkuo/openpockets/models"
	"github.com/danielhkuo/openpockets/testutil"
)

func TestCommitteeReport_ScenarioD(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)

	report, err := svc.CommitteeReport(context.Background(), ByIdentity(models.PoliticianIdentity{Name: "Nobody, Known", State: "ZZ"}))
	if err != nil {
		t.Fatalf("Expected success for an unknown politician, got %v", err)
	}
	if report.TotalContributions != 0 || report.TotalCommittees != 0 || len(report.Committees) != 0 {
		t.Errorf("Expected zero report, got %+v", report)
	}
	if report.Message != MsgNoCommittees {
		t.Errorf("Expected message %q, got %q", MsgNoCommittees, report.Message)
	}
}

func TestCommitteeReport_Classification(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)
	seedScott(t, conn)

	committees := []testutil.Committee{
		{ID: "C001", Name: "NATIONAL BEER WHOLESALERS PAC", Type: "Q", Designation: "U"},
		{ID: "C002", Name: "AMERICA FIRST ACTION", Type: "O", Designation: "U"},
		{ID: "C003", Name: "OPPORTUNITY FUND", Type: "V", Designation: "D"},
		{ID: "C004", Name: "LOCKHEED MARTIN EMPLOYEES PAC", Type: "Q", Designation: "B", OrgType: "C", ConnectedOrg: "LOCKHEED MARTIN CORPORATION"},
		{ID: "C005", Name: "SC REPUBLICAN PARTY", Type: "Y", Party: "REP"},
	}
	amounts := []float64{5000, 2000, 1000, 10000, 500}
	for i, c := range committees {
		testutil.SeedCommittee(t, conn, c)
		testutil.SeedContribution(t, conn, testutil.Contribution{
			CommitteeID: c.ID, CandidateID: "S4SC00240", Contributor: c.Name, EntityType: "PAC",
			Amount: amounts[i], Cycle: 2024,
		})
	}

	report, err := svc.CommitteeReport(context.Background(), ByCandidateID("S4SC00240"))
	if err != nil {
		t.Fatalf("CommitteeReport failed: %v", err)
	}

	if report.TotalCommittees != 5 || !almostEqual(report.TotalContributions, 18500) {
		t.Errorf("Expected 5 committees totalling 18500, got %d / %v", report.TotalCommittees, report.TotalContributions)
	}
	if report.Committees[0].Name != "LOCKHEED MARTIN EMPLOYEES PAC" || !report.Committees[0].IsCorporatePAC {
		t.Errorf("Expected corporate committee ranked first, got %+v", report.Committees[0])
	}
	if report.Committees[0].ConnectedOrganization != "LOCKHEED MARTIN CORPORATION" {
		t.Errorf("Expected connected organization, got %q", report.Committees[0].ConnectedOrganization)
	}

	wantCounts := map[string]int{
		models.CategoryTraditional: 1,
		models.CategorySuper:       1,
		models.CategoryLeadership:  1,
		models.CategoryCorporate:   1,
		models.CategoryOther:       1,
	}
	for cat, n := range wantCounts {
		if len(report.PACsByType[cat]) != n {
			t.Errorf("Expected %d committees in %s, got %d", n, cat, len(report.PACsByType[cat]))
		}
	}
	if !slices.Equal(report.Committees[0].Years, []int{2024}) {
		t.Errorf("Expected years [2024], got %v", report.Committees[0].Years)
	}
}

func TestCommitteeReport_TopTwentyKeepsTotals(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)

	var total float64
	for i := 0; i < 30; i++ {
		amount := float64(100 + i)
		total += amount
		testutil.SeedContribution(t, conn, testutil.Contribution{
			CommitteeID: fmt.Sprintf("C%03d", i), CandidateID: "H1", EntityType: "PAC", Amount: amount,
		})
	}

	report, err := svc.CommitteeReport(context.Background(), ByCandidateID("H1"))
	if err != nil {
		t.Fatalf("CommitteeReport failed: %v", err)
	}
	if len(report.Committees) != 20 {
		t.Errorf("Expected 20 listed committees, got %d", len(report.Committees))
	}
	if report.TotalCommittees != 30 || !almostEqual(report.TotalContributions, total) {
		t.Errorf("Expected totals over all 30 committees (%v), got %d / %v", total, report.TotalCommittees, report.TotalContributions)
	}
	if report.Committees[0].CommitteeID != "C029" {
		t.Errorf("Expected largest committee first, got %s", report.Committees[0].CommitteeID)
	}
}

func TestIndustryReport(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)
	seedScott(t, conn)

	testutil.SeedCommittee(t, conn, testutil.Committee{ID: "C010", Name: "PFIZER INC PAC", Type: "Q", OrgType: "C", ConnectedOrg: "PFIZER PHARMACEUTICAL INC"})
	testutil.SeedCommittee(t, conn, testutil.Committee{ID: "C011", Name: "EXXON MOBIL CORP PAC", Type: "Q", OrgType: "C", ConnectedOrg: "EXXON MOBIL PETROLEUM"})

	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C010", CandidateID: "S4SC00240", Contributor: "PFIZER INC PAC", EntityType: "PAC", Amount: 2500})
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C011", CandidateID: "S4SC00240", Contributor: "EXXON MOBIL CORP PAC", EntityType: "PAC", Amount: 5000})
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C012", CandidateID: "S4SC00240", Contributor: "ACME HOLDINGS LLC", EntityType: "ORG", Amount: 100})
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C013", CandidateID: "S4SC00240", Contributor: "SMITH, JANE", EntityType: "IND", Amount: 2800})

	report, err := svc.IndustryReport(context.Background(), ByIdentity(models.PoliticianIdentity{Name: "Tim Scott"}))
	if err != nil {
		t.Fatalf("IndustryReport failed: %v", err)
	}

	want := []string{"Oil & Gas", "Pharmaceuticals", "Professional Services"}
	if len(report.Industries) != len(want) {
		t.Fatalf("Expected %d industries, got %+v", len(want), report.Industries)
	}
	for i, label := range want {
		if report.Industries[i].Industry != label {
			t.Errorf("Industry %d: expected %s, got %s", i, label, report.Industries[i].Industry)
		}
	}
	if len(report.CorporateConnections) != 3 {
		t.Errorf("Expected 3 corporate connections, got %d", len(report.CorporateConnections))
	}
}

func TestIndustryReport_TopTenKeepsTotals(t *testing.T) {
	// One rule per sector so twelve sponsors land in twelve industries.
	yamlRules := "rules:\n"
	for i := 1; i <= 12; i++ {
		yamlRules += fmt.Sprintf("  - label: Sector %02d\n    keywords: [KW%02d]\n", i, i)
	}
	yamlRules += "fallback:\n  default_label: Political Services\n"
	rules, err := ParseRules([]byte(yamlRules))
	if err != nil {
		t.Fatalf("Failed to parse rules: %v", err)
	}

	conn := testutil.SetupTestDB(t)
	svc := newTestServiceWithRules(t, conn, rules)
	seedScott(t, conn)

	var total float64
	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("C%03d", i)
		amount := float64(i * 1000)
		total += amount
		testutil.SeedCommittee(t, conn, testutil.Committee{ID: id, Name: fmt.Sprintf("SPONSOR %02d PAC", i), Type: "Q", OrgType: "C", ConnectedOrg: fmt.Sprintf("KW%02d HOLDINGS", i)})
		testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: id, CandidateID: "S4SC00240", Contributor: fmt.Sprintf("SPONSOR %02d PAC", i), EntityType: "PAC", Amount: amount})
	}

	key := ByCandidateID("S4SC00240")
	report, err := svc.IndustryReport(context.Background(), key)
	if err != nil {
		t.Fatalf("IndustryReport failed: %v", err)
	}
	if len(report.Industries) != TopIndustries {
		t.Fatalf("Expected %d industries, got %d", TopIndustries, len(report.Industries))
	}
	if report.Industries[0].Industry != "Sector 12" || report.Industries[TopIndustries-1].Industry != "Sector 03" {
		t.Errorf("Expected Sector 12 through Sector 03, got %s..%s", report.Industries[0].Industry, report.Industries[TopIndustries-1].Industry)
	}
	if len(report.CorporateConnections) != 12 {
		t.Errorf("Expected 12 corporate connections, got %d", len(report.CorporateConnections))
	}

	money, err := svc.MoneyReport(context.Background(), key)
	if err != nil {
		t.Fatalf("MoneyReport failed: %v", err)
	}
	if money.SummaryStats.TotalIndustries != 12 {
		t.Errorf("Expected 12 industries in summary stats, got %d", money.SummaryStats.TotalIndustries)
	}
	if len(money.Industries.Industries) != TopIndustries {
		t.Errorf("Expected %d industries in money report, got %d", TopIndustries, len(money.Industries.Industries))
	}
	if !almostEqual(money.SummaryStats.TotalPACContributions, total) {
		t.Errorf("Expected PAC total %v, got %v", total, money.SummaryStats.TotalPACContributions)
	}
}

func TestIndustryReport_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)

	report, err := svc.IndustryReport(context.Background(), ByIdentity(models.PoliticianIdentity{Name: "Nobody"}))
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if report.Message != MsgNoIndustries || report.Industries == nil || report.CorporateConnections == nil {
		t.Errorf("Expected empty industry report with message, got %+v", report)
	}
}

func TestMoneyReport(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)
	seedScott(t, conn)

	testutil.SeedSummary(t, conn, testutil.Summary{ID: "S4SC00240", Name: "SCOTT, TIMOTHY E", Affiliation: "REP", State: "SC", Receipts: 42000})
	testutil.SeedCommittee(t, conn, testutil.Committee{ID: "C00540302", Name: "TIM SCOTT FOR SENATE", Type: "S", Designation: "P"})
	testutil.SeedLink(t, conn, "S4SC00240", "C00540302", 2022, "S", "P")
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C1", CandidateID: "S4SC00240", Contributor: "ALPHA PAC", EntityType: "PAC", Amount: 1000, Cycle: 2022})
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C2", CandidateID: "S4SC00240", Contributor: "BETA PAC", EntityType: "ORG", Amount: 500, Cycle: 2024})
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C3", CandidateID: "S4SC00240", Contributor: "DOE, JOHN", EntityType: "IND", Amount: 9999, Cycle: 2024})

	report, err := svc.MoneyReport(context.Background(), ByIdentity(models.PoliticianIdentity{Name: "SCOTT, TIMOTHY E"}))
	if err != nil {
		t.Fatalf("MoneyReport failed: %v", err)
	}

	if report.CandidateID != "S4SC00240" {
		t.Errorf("Expected candidate S4SC00240, got %s", report.CandidateID)
	}
	if report.Candidate == nil || report.Candidate.Source != models.SourceSummary || report.Candidate.TotalReceipts != 42000 {
		t.Errorf("Expected summary candidate info, got %+v", report.Candidate)
	}
	if !almostEqual(report.Committees.TotalContributions, 1500) {
		t.Errorf("Expected committee total 1500, got %v", report.Committees.TotalContributions)
	}

	totals := report.Totals
	if !almostEqual(totals.CommitteeContributions, 1500) || totals.CommitteeContributionCount != 2 {
		t.Errorf("Expected committee totals 1500/2, got %v/%d", totals.CommitteeContributions, totals.CommitteeContributionCount)
	}
	if !almostEqual(totals.IndividualContributions, 9999) || totals.IndividualContributionCount != 1 {
		t.Errorf("Expected individual totals 9999/1, got %v/%d", totals.IndividualContributions, totals.IndividualContributionCount)
	}
	if !almostEqual(totals.TotalContributions, 11499) {
		t.Errorf("Expected grand total 11499, got %v", totals.TotalContributions)
	}
	if !slices.Equal(totals.YearsWithData, []int{2022, 2024}) {
		t.Errorf("Expected years [2022 2024], got %v", totals.YearsWithData)
	}

	if len(report.LinkedCommittees) != 1 || report.LinkedCommittees[0].Name != "TIM SCOTT FOR SENATE" {
		t.Errorf("Expected linked principal committee, got %+v", report.LinkedCommittees)
	}
	if report.SummaryStats.TotalPACsConnected != 2 || report.SummaryStats.LinkedCommittees != 1 {
		t.Errorf("Unexpected summary stats %+v", report.SummaryStats)
	}
}

func TestMoneyReport_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := newTestService(t, conn)

	report, err := svc.MoneyReport(context.Background(), ByIdentity(models.PoliticianIdentity{Name: "Nobody"}))
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if report.Message != MsgNoFinances || report.Committees.Message != MsgNoCommittees {
		t.Errorf("Expected empty report messages, got %+v", report)
	}
	if report.Candidate != nil || report.LinkedCommittees == nil || report.Totals.YearsWithData == nil {
		t.Errorf("Expected empty collections and no candidate, got %+v", report)
	}
}
