// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"
	"time"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/finance"
	"github.com/danielhkuo/openpockets/testutil"
)

func setupService(t *testing.T) (*sql.DB, *finance.Service) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	resolver := finance.NewResolver(conn, db.SQLite, finance.ResolverOptions{CacheSize: 16, CacheTTL: time.Minute})
	return conn, finance.NewService(conn, db.SQLite, resolver, nil)
}

// seedWarren seeds a senator with one traditional PAC and one corporate PAC.
func seedWarren(t *testing.T, conn *sql.DB) {
	t.Helper()
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "S2MA00170", Name: "WARREN, ELIZABETH", Party: "DEM", State: "MA", Office: "S"})
	testutil.SeedSummary(t, conn, testutil.Summary{ID: "S2MA00170", Name: "WARREN, ELIZABETH", Affiliation: "DEM", State: "MA", Receipts: 5000000})
	testutil.SeedCommittee(t, conn, testutil.Committee{ID: "C00000001", Name: "TEACHERS UNION PAC", Type: "Q"})
	testutil.SeedCommittee(t, conn, testutil.Committee{ID: "C00000002", Name: "ACME HEALTH PAC", Type: "Q", OrgType: "C", ConnectedOrg: "ACME HEALTH INC"})
	testutil.SeedLink(t, conn, "S2MA00170", "C00000001", 2024, "Q", "U")
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C00000001", CandidateID: "S2MA00170", Contributor: "TEACHERS UNION PAC", EntityType: "PAC", Amount: 5000, Cycle: 2024})
	testutil.SeedContribution(t, conn, testutil.Contribution{CommitteeID: "C00000002", CandidateID: "S2MA00170", Contributor: "ACME HEALTH PAC", EntityType: "PAC", Amount: 2500, Cycle: 2024})
}
