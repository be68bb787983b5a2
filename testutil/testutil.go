// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/openpockets/cliparse"
	"github.com/danielhkuo/openpockets/db"
)

// TestDBURL is the connection string for the test database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3001,
		DatabaseURL:      TestDBURL,
		DatabaseType:     "sqlite",
		ResolveCacheSize: 64,
		ResolveCacheTTL:  cliparse.DefaultCacheTTL,
		AllowedOrigin:    cliparse.DefaultAllowedOrigin,
		UpstreamTimeout:  cliparse.DefaultUpstreamTimeout,
	}
}

// Candidate is a candidate master row
type Candidate struct {
	ID       string
	Name     string
	Party    string
	State    string
	Office   string
	District string
}

// SeedCandidate inserts a candidate master row
func SeedCandidate(t *testing.T, conn *sql.DB, c Candidate) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidates_master (cand_id, cand_name, cand_pty_affiliation, cand_office_st, cand_office, cand_office_district)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Party, c.State, c.Office, c.District)
	if err != nil {
		t.Fatalf("Failed to seed candidate: %v", err)
	}
}

// Summary is a candidate financial summary row
type Summary struct {
	ID                string
	Name              string
	PartyCode         string
	Affiliation       string
	State             string
	District          string
	Receipts          float64
	Disbursements     float64
	CashOnHand        float64
	DebtsOwed         float64
	IndividualContrib float64
	CoverageEnd       string
}

// SeedSummary inserts a candidate financial summary row
func SeedSummary(t *testing.T, conn *sql.DB, s Summary) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidate_summaries (cand_id, cand_name, pty_cd, cand_pty_affiliation, cand_office_st,
			cand_office_district, ttl_receipts, ttl_disb, coh_cop, debts_owed_by, ttl_indiv_contrib, cvg_end_dt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Name, s.PartyCode, s.Affiliation, s.State, s.District, s.Receipts, s.Disbursements,
		s.CashOnHand, s.DebtsOwed, s.IndividualContrib, s.CoverageEnd)
	if err != nil {
		t.Fatalf("Failed to seed summary: %v", err)
	}
}

// Committee is a committee master row
type Committee struct {
	ID           string
	Name         string
	Type         string
	Designation  string
	Party        string
	OrgType      string
	ConnectedOrg string
	CandidateID  string
	Cycle        int
}

// SeedCommittee inserts a committee master row
func SeedCommittee(t *testing.T, conn *sql.DB, c Committee) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO committees (cmte_id, cmte_nm, cmte_tp, cmte_dsgn, cmte_pty_affiliation, org_tp, connected_org_nm, cand_id, cycle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Type, c.Designation, c.Party, c.OrgType, c.ConnectedOrg, c.CandidateID, c.Cycle)
	if err != nil {
		t.Fatalf("Failed to seed committee: %v", err)
	}
}

// SeedLink inserts a candidate-committee linkage row
func SeedLink(t *testing.T, conn *sql.DB, candidateID, committeeID string, year int, cmteType, designation string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO candidate_committee_links (cand_id, cand_election_yr, fec_election_yr, cmte_id, cmte_tp, cmte_dsgn, linkage_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, candidateID, year, year, committeeID, cmteType, designation, uuid.NewString())
	if err != nil {
		t.Fatalf("Failed to seed link: %v", err)
	}
}

// Contribution is a committee contribution row
type Contribution struct {
	CommitteeID string
	CandidateID string
	Contributor string
	EntityType  string
	Amount      float64
	Date        string
	Cycle       int
}

// SeedContribution inserts a contribution row after every row seeded so far
func SeedContribution(t *testing.T, conn *sql.DB, c Contribution) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO committee_contributions (sub_id, cmte_id, candidate_id, contributor_name, entity_type,
			transaction_dt, transaction_amt, cycle, load_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(load_seq), 0) + 1 FROM committee_contributions))
	`, uuid.NewString(), c.CommitteeID, c.CandidateID, c.Contributor, c.EntityType, c.Date, c.Amount, c.Cycle)
	if err != nil {
		t.Fatalf("Failed to seed contribution: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
