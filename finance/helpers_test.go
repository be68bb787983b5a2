// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/testutil"
)

func newTestService(t *testing.T, conn *sql.DB) *Service {
	t.Helper()
	return newTestServiceWithRules(t, conn, DefaultRules())
}

func newTestServiceWithRules(t *testing.T, conn *sql.DB, rules *Rules) *Service {
	t.Helper()
	resolver := NewResolver(conn, db.SQLite, ResolverOptions{CacheSize: 32, CacheTTL: time.Minute})
	return NewService(conn, db.SQLite, resolver, rules)
}

// seedScott seeds the candidate used by most report tests.
func seedScott(t *testing.T, conn *sql.DB) {
	t.Helper()
	testutil.SeedCandidate(t, conn, testutil.Candidate{
		ID: "S4SC00240", Name: "SCOTT, TIMOTHY E", Party: "REP", State: "SC", Office: "S",
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
