// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation.

# Connections

Open selects the driver from the configured database type. SQLite
(modernc.org/sqlite, pure Go) is the default; PostgreSQL uses lib/pq:

	conn, dialect, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries are written once with ? placeholders and passed through
dialect.Rebind before execution.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

One table per FEC bulk file type:

  - candidates_master: candidate master (cn)
  - candidate_summaries: all-candidates financial summary (weball)
  - committees: committee master (cm)
  - candidate_committee_links: candidate-committee linkages (ccl)
  - committee_contributions: contributions from committees to candidates (itpas2)

# Relationships

	candidates_master 1──* committee_contributions (candidate_id, not enforced)
	committees        1──* committee_contributions (cmte_id, not enforced)
	candidates_master *──* committees (via candidate_committee_links)

References are not enforced; contribution rows may name candidates or
committees missing from the master files.

# Indexes

  - candidates_master.cand_name
  - committee_contributions.(candidate_id, load_seq)
  - committee_contributions.cmte_id
  - candidate_committee_links.cand_id
*/
package db
