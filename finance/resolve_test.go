// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/models"
	"github.com/danielhkuo/openpockets/testutil"
)

func TestResolveCandidateID(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "S2MA00170", Name: "WARREN, ELIZABETH A", Party: "DEM", State: "MA", Office: "S"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "S4SC00240", Name: "SCOTT, TIMOTHY E", Party: "REP", State: "SC", Office: "S"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H0SC01234", Name: "SCOTT, TIMOTHY", Party: "REP", State: "SC", Office: "H"})

	r := NewResolver(conn, db.SQLite, ResolverOptions{})

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"exact match", "Scott, Timothy E", "S4SC00240", nil},
		{"exact match wins over partial", "scott, timothy", "H0SC01234", nil},
		{"partial last name with comma", "Warren, Elizabeth", "S2MA00170", nil},
		{"partial last word", "Elizabeth Warren", "S2MA00170", nil},
		{"no match", "Nobody, Known", "", ErrNotFound},
		{"empty name", "   ", "", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveCandidateID(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestResolve_PartialMatchOrderedByName(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H8TX00001", Name: "SMITH, ZED", State: "TX", Office: "H"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H8OH00001", Name: "SMITH, ADAM", State: "OH", Office: "H"})

	r := NewResolver(conn, db.SQLite, ResolverOptions{})
	got, err := r.ResolveCandidateID(context.Background(), "John Smith")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "H8OH00001" {
		t.Errorf("Expected first match by name (SMITH, ADAM), got %s", got)
	}
}

func TestResolve_ExactMatchIgnoresStoredWhitespace(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H6NY00001", Name: "SMITH,  JOHN ", State: "NY", Office: "H"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H6NY00002", Name: "ASMITH, BOB", State: "NY", Office: "H"})

	r := NewResolver(conn, db.SQLite, ResolverOptions{})
	got, err := r.ResolveCandidateID(context.Background(), "Smith, John")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != "H6NY00001" {
		t.Errorf("Expected exact match on SMITH,  JOHN, got %s", got)
	}
}

func TestResolve_MatchRegion(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H8OH00001", Name: "SMITH, ADAM", State: "OH", Office: "H"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "S8TX00001", Name: "SMITH, ZED", State: "TX", Office: "S"})
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H8TX00002", Name: "SMITH, ZOE", State: "TX", Office: "H"})

	ctx := context.Background()
	identity := models.PoliticianIdentity{Name: "John Smith", State: "tx", Chamber: "house"}

	plain := NewResolver(conn, db.SQLite, ResolverOptions{})
	if got, _ := plain.Resolve(ctx, identity); got != "H8OH00001" {
		t.Errorf("Without region matching expected first row H8OH00001, got %s", got)
	}

	regional := NewResolver(conn, db.SQLite, ResolverOptions{MatchRegion: true})
	if got, _ := regional.Resolve(ctx, identity); got != "H8TX00002" {
		t.Errorf("With region matching expected H8TX00002, got %s", got)
	}

	senate := models.PoliticianIdentity{Name: "John Smith", State: "TX", Chamber: "senate"}
	if got, _ := regional.Resolve(ctx, senate); got != "S8TX00001" {
		t.Errorf("Expected senate match S8TX00001, got %s", got)
	}

	nowhere := models.PoliticianIdentity{Name: "John Smith", State: "AK"}
	if got, _ := regional.Resolve(ctx, nowhere); got != "H8OH00001" {
		t.Errorf("Expected fallback to first row when no region matches, got %s", got)
	}
}

func TestResolve_IdempotentAndCached(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "S2MA00170", Name: "WARREN, ELIZABETH A"})

	r := NewResolver(conn, db.SQLite, ResolverOptions{CacheSize: 8, CacheTTL: time.Minute})
	ctx := context.Background()

	first, err := r.ResolveCandidateID(ctx, "Warren, Elizabeth")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := r.ResolveCandidateID(ctx, "warren,  elizabeth")
	if err != nil {
		t.Fatalf("Second resolve failed: %v", err)
	}
	if first != second {
		t.Errorf("Expected identical results, got %s and %s", first, second)
	}

	// A cached answer survives the row disappearing; a purge does not
	if _, err := conn.Exec("DELETE FROM candidates_master"); err != nil {
		t.Fatal(err)
	}
	if got, err := r.ResolveCandidateID(ctx, "Warren, Elizabeth"); err != nil || got != first {
		t.Errorf("Expected cached %s, got %s (%v)", first, got, err)
	}
	r.Purge()
	if _, err := r.ResolveCandidateID(ctx, "Warren, Elizabeth"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after purge, got %v", err)
	}
}

func TestResolve_CacheDisabled(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "S2MA00170", Name: "WARREN, ELIZABETH A"})

	r := NewResolver(conn, db.SQLite, ResolverOptions{CacheSize: 0})
	ctx := context.Background()

	if _, err := r.ResolveCandidateID(ctx, "Warren"); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	conn.Exec("DELETE FROM candidates_master")
	if _, err := r.ResolveCandidateID(ctx, "Warren"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected uncached lookup to miss, got %v", err)
	}
}

func TestResolve_LikeMetacharacters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	testutil.SeedCandidate(t, conn, testutil.Candidate{ID: "H0XX00001", Name: "O'BRIEN, PAT"})

	r := NewResolver(conn, db.SQLite, ResolverOptions{})
	if _, err := r.ResolveCandidateID(context.Background(), "100%"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected %% to be matched literally, got %v", err)
	}
	if got, err := r.ResolveCandidateID(context.Background(), "Pat O'Brien"); err != nil || got != "H0XX00001" {
		t.Errorf("Expected H0XX00001, got %s (%v)", got, err)
	}
}
