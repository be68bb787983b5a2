// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest loads FEC bulk data files into the database.

# File Types

Each pipe-delimited file type has a Table describing its columns:

  - CandidateMaster (cn): candidates_master
  - CandidateSummaries (weball): candidate_summaries
  - Committees (cm): committees
  - CommitteeLinks (ccl): candidate_committee_links
  - Contributions (itpas2): committee_contributions

Column positions come from the FEC's published layout, or from a header file
when a source names one. Numeric columns are coerced; blanks become 0.

# Manifest

Sources are listed in a YAML manifest:

	sources:
	  - table: candidates_master
	    files: [cn24.txt, cn22.txt]
	  - table: committee_contributions
	    cycle: 2024
	    header: pas2_header_file.csv
	    files: [itpas2_24.txt]

# Loading

	m, err := ingest.LoadManifest(cfg.IngestManifest)
	results, err := ingest.NewLoader(conn, dialect).Run(ctx, m)

Each table loads in one transaction and only when it is empty. Within a
table the first occurrence of a primary key wins. Lines with too few fields
or unparseable numbers are logged and skipped; unreadable files are logged
and reported in the results while the remaining files still load.
*/
package ingest
