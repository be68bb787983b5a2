// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/metrics"
)

// maxLoggedMalformed caps per-file warnings; the remainder are only counted.
const maxLoggedMalformed = 100

// FileResult reports how one bulk file loaded.
type FileResult struct {
	Path       string
	Lines      int
	Inserted   int
	Duplicates int
	Malformed  int
	Err        error
}

// TableResult reports how one table loaded.
type TableResult struct {
	Table      string
	Skipped    bool
	Files      []FileResult
	Inserted   int
	Duplicates int
	Malformed  int
}

// FileErrors returns the errors of files that could not be read.
func (r TableResult) FileErrors() []error {
	var errs []error
	for _, f := range r.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errs
}

// Loader writes bulk files into the schema created by db.CreateSchema.
type Loader struct {
	db      *sql.DB
	dialect db.Dialect
	runID   string
	log     *slog.Logger
}

func NewLoader(conn *sql.DB, dialect db.Dialect) *Loader {
	runID := uuid.NewString()
	return &Loader{
		db:      conn,
		dialect: dialect,
		runID:   runID,
		log:     slog.With("run_id", runID),
	}
}

// Run loads every source in the manifest, one transaction per table. A
// table that already holds rows is left alone. Unreadable files are
// recorded in the results and do not stop the run; a database failure rolls
// back that table and is returned after the remaining tables are attempted.
func (l *Loader) Run(ctx context.Context, m Manifest) ([]TableResult, error) {
	l.log.Info("ingestion started", "sources", len(m.Sources))

	var results []TableResult
	var errs []error
	for _, table := range Tables {
		var sources []Source
		for _, s := range m.Sources {
			if s.Table == table.Name {
				sources = append(sources, s)
			}
		}
		if len(sources) == 0 {
			continue
		}

		res, err := l.LoadTable(ctx, table, sources)
		if err != nil {
			l.log.Error("table load failed", "table", table.Name, "error", err)
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}

	l.log.Info("ingestion finished", "tables", len(results), "failed", len(errs))
	return results, errors.Join(errs...)
}

// LoadTable loads all sources for one table inside a single transaction.
func (l *Loader) LoadTable(ctx context.Context, table Table, sources []Source) (TableResult, error) {
	res := TableResult{Table: table.Name}

	populated, err := l.hasRows(ctx, table.Name)
	if err != nil {
		return res, err
	}
	if populated {
		res.Skipped = true
		l.log.Info("table already populated, skipping", "table", table.Name)
		return res, nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction for %s: %w", table.Name, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, l.dialect.Rebind(insertSQL(table)))
	if err != nil {
		return res, fmt.Errorf("failed to prepare insert for %s: %w", table.Name, err)
	}
	defer stmt.Close()

	var seq int64
	for _, src := range sources {
		var header []string
		if src.Header != "" {
			if header, err = ReadHeaderFile(src.Header); err != nil {
				l.recordFileErrors(&res, src.Files, err)
				continue
			}
		}
		layout, err := NewLayout(table, header)
		if err != nil {
			l.recordFileErrors(&res, src.Files, err)
			continue
		}

		for _, path := range src.Files {
			fr, err := l.loadFile(ctx, stmt, layout, src.Cycle, path, &seq)
			if err != nil {
				// Statement failures leave the transaction unusable.
				return res, err
			}
			res.Files = append(res.Files, fr)
			res.Inserted += fr.Inserted
			res.Duplicates += fr.Duplicates
			res.Malformed += fr.Malformed
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit %s: %w", table.Name, err)
	}

	metrics.IngestRows.WithLabelValues(table.Name, "inserted").Add(float64(res.Inserted))
	metrics.IngestRows.WithLabelValues(table.Name, "duplicate").Add(float64(res.Duplicates))
	metrics.IngestRows.WithLabelValues(table.Name, "malformed").Add(float64(res.Malformed))

	l.log.Info("table loaded",
		"table", table.Name,
		"files", len(res.Files),
		"file_errors", len(res.FileErrors()),
		"inserted", humanize.Comma(int64(res.Inserted)),
		"duplicates", humanize.Comma(int64(res.Duplicates)),
		"malformed", humanize.Comma(int64(res.Malformed)),
	)
	return res, nil
}

// loadFile returns an error only for database failures; read failures are
// reported in the FileResult.
func (l *Loader) loadFile(ctx context.Context, stmt *sql.Stmt, layout Layout, cycle int, path string, seq *int64) (FileResult, error) {
	fr := FileResult{Path: path}
	table := layout.Table

	f, err := os.Open(path)
	if err != nil {
		fr.Err = fmt.Errorf("failed to open %s: %w", path, err)
		l.fileFailed(table.Name, fr.Err)
		return fr, nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		fr.Lines++
		if fr.Lines%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return fr, err
			}
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		values, err := layout.Parse(line)
		if err != nil {
			fr.Malformed++
			if fr.Malformed <= maxLoggedMalformed {
				l.log.Warn("skipping malformed line",
					"table", table.Name,
					"file", path,
					"line", fr.Lines,
					"error", err,
				)
			} else if fr.Malformed == maxLoggedMalformed+1 {
				l.log.Warn("further malformed lines suppressed", "table", table.Name, "file", path)
			}
			continue
		}

		if table.Cycle {
			values = append(values, cycle)
		}
		if table.Sequence {
			*seq++
			values = append(values, *seq)
		}

		result, err := stmt.ExecContext(ctx, values...)
		if err != nil {
			return fr, fmt.Errorf("failed to insert %s line %d of %s: %w", table.Name, fr.Lines, path, err)
		}
		if n, err := result.RowsAffected(); err == nil && n == 0 {
			fr.Duplicates++
		} else {
			fr.Inserted++
		}
	}
	if err := scanner.Err(); err != nil {
		fr.Err = fmt.Errorf("failed reading %s: %w", path, err)
		l.fileFailed(table.Name, fr.Err)
		return fr, nil
	}

	l.log.Info("file loaded",
		"table", table.Name,
		"file", path,
		"lines", humanize.Comma(int64(fr.Lines)),
		"inserted", humanize.Comma(int64(fr.Inserted)),
		"duplicates", fr.Duplicates,
		"malformed", fr.Malformed,
	)
	return fr, nil
}

func (l *Loader) recordFileErrors(res *TableResult, files []string, err error) {
	for _, path := range files {
		fr := FileResult{Path: path, Err: err}
		res.Files = append(res.Files, fr)
		l.fileFailed(res.Table, fmt.Errorf("%s: %w", path, err))
	}
}

func (l *Loader) fileFailed(table string, err error) {
	metrics.IngestFileErrors.WithLabelValues(table).Inc()
	l.log.Error("source file failed", "table", table, "error", err)
}

func (l *Loader) hasRows(ctx context.Context, table string) (bool, error) {
	var one int
	err := l.db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" LIMIT 1").Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return true, nil
}

func insertSQL(t Table) string {
	cols := make([]string, 0, len(t.Fields)+2)
	for _, f := range t.Fields {
		cols = append(cols, f.Column)
	}
	if t.Cycle {
		cols = append(cols, "cycle")
	}
	if t.Sequence {
		cols = append(cols, "load_seq")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		t.Name, strings.Join(cols, ", "), db.Placeholders(len(cols)), strings.Join(t.Key, ", "))
}
