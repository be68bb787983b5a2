// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Kind is the destination type of a column.
type Kind int

const (
	Text Kind = iota
	Float
	Int
)

// Field maps one column of a bulk file to a destination column.
type Field struct {
	Column string
	Source string
	Kind   Kind
}

// Table describes how one FEC bulk file type lands in the database.
type Table struct {
	Name string
	// Header is the positional layout published by the FEC, used when a
	// source does not ship its own header file.
	Header []string
	Fields []Field
	// Key lists the destination columns of the primary key; required
	// non-empty unless SyntheticKey names the column.
	Key []string
	// SyntheticKey is a source column that, when blank, is replaced by a
	// name-based UUID of the raw line so reloads stay idempotent.
	SyntheticKey string
	// Cycle and Sequence add the cycle/load_seq bookkeeping columns.
	Cycle    bool
	Sequence bool
}

var CandidateMaster = Table{
	Name: "candidates_master",
	Header: []string{
		"CAND_ID", "CAND_NAME", "CAND_PTY_AFFILIATION", "CAND_ELECTION_YR",
		"CAND_OFFICE_ST", "CAND_OFFICE", "CAND_OFFICE_DISTRICT", "CAND_ICI",
		"CAND_STATUS", "CAND_PCC", "CAND_ST1", "CAND_ST2", "CAND_CITY",
		"CAND_ST", "CAND_ZIP",
	},
	Fields: []Field{
		{"cand_id", "CAND_ID", Text},
		{"cand_name", "CAND_NAME", Text},
		{"cand_pty_affiliation", "CAND_PTY_AFFILIATION", Text},
		{"cand_election_yr", "CAND_ELECTION_YR", Int},
		{"cand_office_st", "CAND_OFFICE_ST", Text},
		{"cand_office", "CAND_OFFICE", Text},
		{"cand_office_district", "CAND_OFFICE_DISTRICT", Text},
		{"cand_ici", "CAND_ICI", Text},
		{"cand_status", "CAND_STATUS", Text},
		{"cand_pcc", "CAND_PCC", Text},
	},
	Key: []string{"cand_id"},
}

var CandidateSummaries = Table{
	Name: "candidate_summaries",
	Header: []string{
		"CAND_ID", "CAND_NAME", "CAND_ICI", "PTY_CD", "CAND_PTY_AFFILIATION",
		"TTL_RECEIPTS", "TRANS_FROM_AUTH", "TTL_DISB", "TRANS_TO_AUTH",
		"COH_BOP", "COH_COP", "CAND_CONTRIB", "CAND_LOANS", "OTHER_LOANS",
		"CAND_LOAN_REPAY", "OTHER_LOAN_REPAY", "DEBTS_OWED_BY",
		"TTL_INDIV_CONTRIB", "CAND_OFFICE_ST", "CAND_OFFICE_DISTRICT",
		"SPEC_ELECTION", "PRIM_ELECTION", "RUN_ELECTION", "GEN_ELECTION",
		"GEN_ELECTION_PRECENT", "OTHER_POL_CMTE_CONTRIB", "POL_PTY_CONTRIB",
		"CVG_END_DT", "INDIV_REFUNDS", "CMTE_REFUNDS",
	},
	Fields: []Field{
		{"cand_id", "CAND_ID", Text},
		{"cand_name", "CAND_NAME", Text},
		{"cand_ici", "CAND_ICI", Text},
		{"pty_cd", "PTY_CD", Text},
		{"cand_pty_affiliation", "CAND_PTY_AFFILIATION", Text},
		{"ttl_receipts", "TTL_RECEIPTS", Float},
		{"trans_from_auth", "TRANS_FROM_AUTH", Float},
		{"ttl_disb", "TTL_DISB", Float},
		{"trans_to_auth", "TRANS_TO_AUTH", Float},
		{"coh_bop", "COH_BOP", Float},
		{"coh_cop", "COH_COP", Float},
		{"cand_contrib", "CAND_CONTRIB", Float},
		{"cand_loans", "CAND_LOANS", Float},
		{"other_loans", "OTHER_LOANS", Float},
		{"cand_loan_repay", "CAND_LOAN_REPAY", Float},
		{"other_loan_repay", "OTHER_LOAN_REPAY", Float},
		{"debts_owed_by", "DEBTS_OWED_BY", Float},
		{"ttl_indiv_contrib", "TTL_INDIV_CONTRIB", Float},
		{"cand_office_st", "CAND_OFFICE_ST", Text},
		{"cand_office_district", "CAND_OFFICE_DISTRICT", Text},
		{"spec_election", "SPEC_ELECTION", Text},
		{"prim_election", "PRIM_ELECTION", Text},
		{"run_election", "RUN_ELECTION", Text},
		{"gen_election", "GEN_ELECTION", Text},
		{"gen_election_precent", "GEN_ELECTION_PRECENT", Float},
		{"other_pol_cmte_contrib", "OTHER_POL_CMTE_CONTRIB", Float},
		{"pol_pty_contrib", "POL_PTY_CONTRIB", Float},
		{"cvg_end_dt", "CVG_END_DT", Text},
		{"indiv_refunds", "INDIV_REFUNDS", Float},
		{"cmte_refunds", "CMTE_REFUNDS", Float},
	},
	Key: []string{"cand_id"},
}

var Committees = Table{
	Name: "committees",
	Header: []string{
		"CMTE_ID", "CMTE_NM", "TRES_NM", "CMTE_ST1", "CMTE_ST2", "CMTE_CITY",
		"CMTE_ST", "CMTE_ZIP", "CMTE_DSGN", "CMTE_TP", "CMTE_PTY_AFFILIATION",
		"CMTE_FILING_FREQ", "ORG_TP", "CONNECTED_ORG_NM", "CAND_ID",
	},
	Fields: []Field{
		{"cmte_id", "CMTE_ID", Text},
		{"cmte_nm", "CMTE_NM", Text},
		{"tres_nm", "TRES_NM", Text},
		{"cmte_city", "CMTE_CITY", Text},
		{"cmte_st", "CMTE_ST", Text},
		{"cmte_zip", "CMTE_ZIP", Text},
		{"cmte_dsgn", "CMTE_DSGN", Text},
		{"cmte_tp", "CMTE_TP", Text},
		{"cmte_pty_affiliation", "CMTE_PTY_AFFILIATION", Text},
		{"cmte_filing_freq", "CMTE_FILING_FREQ", Text},
		{"org_tp", "ORG_TP", Text},
		{"connected_org_nm", "CONNECTED_ORG_NM", Text},
		{"cand_id", "CAND_ID", Text},
	},
	Key:   []string{"cmte_id"},
	Cycle: true,
}

var CommitteeLinks = Table{
	Name: "candidate_committee_links",
	Header: []string{
		"CAND_ID", "CAND_ELECTION_YR", "FEC_ELECTION_YR", "CMTE_ID",
		"CMTE_TP", "CMTE_DSGN", "LINKAGE_ID",
	},
	Fields: []Field{
		{"cand_id", "CAND_ID", Text},
		{"cand_election_yr", "CAND_ELECTION_YR", Int},
		{"fec_election_yr", "FEC_ELECTION_YR", Int},
		{"cmte_id", "CMTE_ID", Text},
		{"cmte_tp", "CMTE_TP", Text},
		{"cmte_dsgn", "CMTE_DSGN", Text},
		{"linkage_id", "LINKAGE_ID", Text},
	},
	Key: []string{"cand_id", "cmte_id", "cand_election_yr"},
}

var Contributions = Table{
	Name: "committee_contributions",
	Header: []string{
		"CMTE_ID", "AMNDT_IND", "RPT_TP", "TRANSACTION_PGI", "IMAGE_NUM",
		"TRANSACTION_TP", "ENTITY_TP", "NAME", "CITY", "STATE", "ZIP_CODE",
		"EMPLOYER", "OCCUPATION", "TRANSACTION_DT", "TRANSACTION_AMT",
		"OTHER_ID", "CAND_ID", "TRAN_ID", "FILE_NUM", "MEMO_CD", "MEMO_TEXT",
		"SUB_ID",
	},
	Fields: []Field{
		{"sub_id", "SUB_ID", Text},
		{"cmte_id", "CMTE_ID", Text},
		{"candidate_id", "CAND_ID", Text},
		{"contributor_name", "NAME", Text},
		{"entity_type", "ENTITY_TP", Text},
		{"transaction_tp", "TRANSACTION_TP", Text},
		{"transaction_dt", "TRANSACTION_DT", Text},
		{"transaction_amt", "TRANSACTION_AMT", Float},
	},
	Key:          []string{"sub_id"},
	SyntheticKey: "SUB_ID",
	Cycle:        true,
	Sequence:     true,
}

// Tables is every known table in dependency-free load order.
var Tables = []Table{CandidateMaster, CandidateSummaries, Committees, CommitteeLinks, Contributions}

// TableByName finds a known table.
func TableByName(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Layout binds a Table to the column positions of a concrete header.
type Layout struct {
	Table   Table
	Width   int
	indices []int
	synth   int
}

// NewLayout resolves every field of t against header. A nil header means
// the table's built-in positional layout.
func NewLayout(t Table, header []string) (Layout, error) {
	if header == nil {
		header = t.Header
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	l := Layout{Table: t, Width: len(header), indices: make([]int, len(t.Fields)), synth: -1}
	for i, f := range t.Fields {
		idx, ok := pos[f.Source]
		if !ok {
			return Layout{}, fmt.Errorf("%s header is missing column %s", t.Name, f.Source)
		}
		l.indices[i] = idx
		if f.Source == t.SyntheticKey {
			l.synth = i
		}
	}
	return l, nil
}

// ReadHeaderFile reads the first row of a comma-separated header file, the
// format the FEC publishes alongside each bulk download.
func ReadHeaderFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open header file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header file %s: %w", path, err)
	}
	for i := range row {
		row[i] = strings.TrimSpace(strings.TrimPrefix(row[i], "\ufeff"))
	}
	return row, nil
}
