// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/testutil"
)

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadTable_FirstSeenWinsAndSkipsMalformed(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()

	first := writeFile(t, dir, "cn24.txt",
		"S4SC00240|SCOTT, TIMOTHY E|REP|2024|SC|S|00|I|C|C00540302|||NORTH CHARLESTON|SC|29415",
		"H0VA08040|BEYER, DONALD STERNOFF JR.|DEM|2024|VA|H|08|I|C|C00555555|||ALEXANDRIA|VA|22314",
		"BROKEN|LINE",
	)
	second := writeFile(t, dir, "cn22.txt",
		"S4SC00240|SCOTT, TIM|REP|2022|SC|S|00|I|C|C00540302|||NORTH CHARLESTON|SC|29415",
		"S2MA00170|WARREN, ELIZABETH A|DEM|2024|MA|S|00|I|C|C00500843|||CAMBRIDGE|MA|02138",
	)
	missing := filepath.Join(dir, "cn20.txt")

	loader := NewLoader(conn, db.SQLite)
	res, err := loader.LoadTable(context.Background(), CandidateMaster, []Source{
		{Table: CandidateMaster.Name, Files: []string{first, missing, second}},
	})
	if err != nil {
		t.Fatalf("LoadTable failed: %v", err)
	}

	if res.Inserted != 3 {
		t.Errorf("Expected 3 inserted rows, got %d", res.Inserted)
	}
	if res.Duplicates != 1 {
		t.Errorf("Expected 1 duplicate, got %d", res.Duplicates)
	}
	if res.Malformed != 1 {
		t.Errorf("Expected 1 malformed line, got %d", res.Malformed)
	}
	if len(res.FileErrors()) != 1 {
		t.Errorf("Expected 1 file error for the missing file, got %v", res.FileErrors())
	}

	var name string
	if err := conn.QueryRow("SELECT cand_name FROM candidates_master WHERE cand_id = ?", "S4SC00240").Scan(&name); err != nil {
		t.Fatalf("Failed to query candidate: %v", err)
	}
	if name != "SCOTT, TIMOTHY E" {
		t.Errorf("Expected first-seen name to win, got %q", name)
	}
}

func TestLoadTable_IdempotentWhenPopulated(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "ccl.txt", "S4SC00240|2022|2022|C00540302|S|P|1")

	loader := NewLoader(conn, db.SQLite)
	src := []Source{{Table: CommitteeLinks.Name, Files: []string{path}}}

	if _, err := loader.LoadTable(context.Background(), CommitteeLinks, src); err != nil {
		t.Fatalf("First load failed: %v", err)
	}
	res, err := loader.LoadTable(context.Background(), CommitteeLinks, src)
	if err != nil {
		t.Fatalf("Second load failed: %v", err)
	}
	if !res.Skipped {
		t.Error("Expected second load to be skipped")
	}

	var n int
	conn.QueryRow("SELECT COUNT(*) FROM candidate_committee_links").Scan(&n)
	if n != 1 {
		t.Errorf("Expected 1 link row, got %d", n)
	}
}

func TestRun_ContributionsKeepScanOrderAndCycle(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	dir := t.TempDir()

	writeFile(t, dir, "itpas2_24.txt",
		"C001|N|Q3|P|1|24K|PAC|ALPHA PAC|X|VA|22201|||01152024|1000||S4SC00240|T1|1|||1001",
		"C002|N|Q3|P|2|24K|ORG|BETA CORP|X|VA|22201|||02152024|500||S4SC00240|T2|1|||1002",
		"C003|N|Q3|P|3|24K|IND|SMITH, JOHN|X|VA|22201|||03152024|9999||S4SC00240|T3|1|||1003",
	)
	writeFile(t, dir, "manifest.yaml",
		"sources:",
		"  - table: committee_contributions",
		"    cycle: 2024",
		"    files: [itpas2_24.txt]",
	)

	m, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}

	results, err := NewLoader(conn, db.SQLite).Run(context.Background(), m)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 1 || results[0].Inserted != 3 {
		t.Fatalf("Expected one table with 3 rows, got %+v", results)
	}

	rows, err := conn.Query("SELECT sub_id, cycle, load_seq FROM committee_contributions ORDER BY load_seq")
	if err != nil {
		t.Fatalf("Failed to query contributions: %v", err)
	}
	defer rows.Close()

	want := []string{"1001", "1002", "1003"}
	i := 0
	for rows.Next() {
		var subID string
		var cycle int
		var seq int64
		if err := rows.Scan(&subID, &cycle, &seq); err != nil {
			t.Fatalf("Failed to scan: %v", err)
		}
		if subID != want[i] {
			t.Errorf("Row %d: expected sub_id %s, got %s", i, want[i], subID)
		}
		if cycle != 2024 {
			t.Errorf("Row %d: expected cycle 2024, got %d", i, cycle)
		}
		if seq != int64(i+1) {
			t.Errorf("Row %d: expected load_seq %d, got %d", i, i+1, seq)
		}
		i++
	}
}

func TestLoadManifest_UnknownTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.yaml",
		"sources:",
		"  - table: ballots",
		"    files: [a.txt]",
	)
	if _, err := LoadManifest(path); err == nil {
		t.Error("Expected error for unknown table")
	}
}

func TestLoadManifest_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "manifest.yaml",
		"sources:",
		"  - table: committees",
		"    header: cm_header_file.csv",
		"    files: [cm24.txt, /abs/cm22.txt]",
	)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}
	src := m.Sources[0]
	if src.Header != filepath.Join(dir, "cm_header_file.csv") {
		t.Errorf("Expected header resolved against manifest dir, got %s", src.Header)
	}
	if src.Files[0] != filepath.Join(dir, "cm24.txt") || src.Files[1] != "/abs/cm22.txt" {
		t.Errorf("Unexpected file paths: %v", src.Files)
	}
}
