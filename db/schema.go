// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	// Executed one statement at a time; lib/pq and sqlite both accept this.
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Tables lists every table created by CreateSchema, in load order.
var Tables = []string{
	"candidates_master",
	"candidate_summaries",
	"committees",
	"candidate_committee_links",
	"committee_contributions",
}

const schema = `
-- Candidate master (FEC cn files)
CREATE TABLE IF NOT EXISTS candidates_master (
    cand_id TEXT PRIMARY KEY,
    cand_name TEXT NOT NULL,
    cand_pty_affiliation TEXT NOT NULL DEFAULT '',
    cand_election_yr INTEGER NOT NULL DEFAULT 0,
    cand_office_st TEXT NOT NULL DEFAULT '',
    cand_office TEXT NOT NULL DEFAULT '',
    cand_office_district TEXT NOT NULL DEFAULT '',
    cand_ici TEXT NOT NULL DEFAULT '',
    cand_status TEXT NOT NULL DEFAULT '',
    cand_pcc TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_candidates_master_name ON candidates_master(cand_name);

-- Candidate financial summary (FEC weball files)
CREATE TABLE IF NOT EXISTS candidate_summaries (
    cand_id TEXT PRIMARY KEY,
    cand_name TEXT NOT NULL DEFAULT '',
    cand_ici TEXT NOT NULL DEFAULT '',
    pty_cd TEXT NOT NULL DEFAULT '',
    cand_pty_affiliation TEXT NOT NULL DEFAULT '',
    ttl_receipts DOUBLE PRECISION NOT NULL DEFAULT 0,
    trans_from_auth DOUBLE PRECISION NOT NULL DEFAULT 0,
    ttl_disb DOUBLE PRECISION NOT NULL DEFAULT 0,
    trans_to_auth DOUBLE PRECISION NOT NULL DEFAULT 0,
    coh_bop DOUBLE PRECISION NOT NULL DEFAULT 0,
    coh_cop DOUBLE PRECISION NOT NULL DEFAULT 0,
    cand_contrib DOUBLE PRECISION NOT NULL DEFAULT 0,
    cand_loans DOUBLE PRECISION NOT NULL DEFAULT 0,
    other_loans DOUBLE PRECISION NOT NULL DEFAULT 0,
    cand_loan_repay DOUBLE PRECISION NOT NULL DEFAULT 0,
    other_loan_repay DOUBLE PRECISION NOT NULL DEFAULT 0,
    debts_owed_by DOUBLE PRECISION NOT NULL DEFAULT 0,
    ttl_indiv_contrib DOUBLE PRECISION NOT NULL DEFAULT 0,
    cand_office_st TEXT NOT NULL DEFAULT '',
    cand_office_district TEXT NOT NULL DEFAULT '',
    spec_election TEXT NOT NULL DEFAULT '',
    prim_election TEXT NOT NULL DEFAULT '',
    run_election TEXT NOT NULL DEFAULT '',
    gen_election TEXT NOT NULL DEFAULT '',
    gen_election_precent DOUBLE PRECISION NOT NULL DEFAULT 0,
    other_pol_cmte_contrib DOUBLE PRECISION NOT NULL DEFAULT 0,
    pol_pty_contrib DOUBLE PRECISION NOT NULL DEFAULT 0,
    cvg_end_dt TEXT NOT NULL DEFAULT '',
    indiv_refunds DOUBLE PRECISION NOT NULL DEFAULT 0,
    cmte_refunds DOUBLE PRECISION NOT NULL DEFAULT 0
);

-- Committee master (FEC cm files)
CREATE TABLE IF NOT EXISTS committees (
    cmte_id TEXT PRIMARY KEY,
    cmte_nm TEXT NOT NULL DEFAULT '',
    tres_nm TEXT NOT NULL DEFAULT '',
    cmte_city TEXT NOT NULL DEFAULT '',
    cmte_st TEXT NOT NULL DEFAULT '',
    cmte_zip TEXT NOT NULL DEFAULT '',
    cmte_dsgn TEXT NOT NULL DEFAULT '',
    cmte_tp TEXT NOT NULL DEFAULT '',
    cmte_pty_affiliation TEXT NOT NULL DEFAULT '',
    cmte_filing_freq TEXT NOT NULL DEFAULT '',
    org_tp TEXT NOT NULL DEFAULT '',
    connected_org_nm TEXT NOT NULL DEFAULT '',
    cand_id TEXT NOT NULL DEFAULT '',
    cycle INTEGER NOT NULL DEFAULT 0
);

-- Candidate-committee linkages (FEC ccl files)
CREATE TABLE IF NOT EXISTS candidate_committee_links (
    cand_id TEXT NOT NULL,
    cand_election_yr INTEGER NOT NULL DEFAULT 0,
    fec_election_yr INTEGER NOT NULL DEFAULT 0,
    cmte_id TEXT NOT NULL,
    cmte_tp TEXT NOT NULL DEFAULT '',
    cmte_dsgn TEXT NOT NULL DEFAULT '',
    linkage_id TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (cand_id, cmte_id, cand_election_yr)
);

CREATE INDEX IF NOT EXISTS idx_links_cand_id ON candidate_committee_links(cand_id);

-- Committee contributions to candidates (FEC itpas2 files)
CREATE TABLE IF NOT EXISTS committee_contributions (
    sub_id TEXT PRIMARY KEY,
    cmte_id TEXT NOT NULL DEFAULT '',
    candidate_id TEXT NOT NULL DEFAULT '',
    contributor_name TEXT NOT NULL DEFAULT '',
    entity_type TEXT NOT NULL DEFAULT '',
    transaction_tp TEXT NOT NULL DEFAULT '',
    transaction_dt TEXT NOT NULL DEFAULT '',
    transaction_amt DOUBLE PRECISION NOT NULL DEFAULT 0,
    cycle INTEGER NOT NULL DEFAULT 0,
    load_seq BIGINT NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_contributions_candidate ON committee_contributions(candidate_id, load_seq);
CREATE INDEX IF NOT EXISTS idx_contributions_cmte ON committee_contributions(cmte_id)
`
