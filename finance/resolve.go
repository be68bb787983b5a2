// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"context"
	"database/sql"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/danielhkuo/openpockets/db"
	"github.com/danielhkuo/openpockets/metrics"
	"github.com/danielhkuo/openpockets/models"
)

// regionCandidates bounds how many partial matches are inspected when
// region matching is on.
const regionCandidates = 200

type ResolverOptions struct {
	// CacheSize of 0 disables caching.
	CacheSize int
	CacheTTL  time.Duration
	// MatchRegion prefers candidates whose office state (and chamber)
	// match the politician among equally named rows.
	MatchRegion bool
}

// Resolver maps politician identities to FEC candidate IDs. Results,
// including misses, are cached; the data is immutable once loaded.
type Resolver struct {
	db          *sql.DB
	dialect     db.Dialect
	cache       *expirable.LRU[string, string]
	matchRegion bool
}

func NewResolver(conn *sql.DB, dialect db.Dialect, opts ResolverOptions) *Resolver {
	r := &Resolver{db: conn, dialect: dialect, matchRegion: opts.MatchRegion}
	if opts.CacheSize > 0 {
		r.cache = expirable.NewLRU[string, string](opts.CacheSize, nil, opts.CacheTTL)
	}
	return r
}

// ResolveCandidateID resolves a bare name.
func (r *Resolver) ResolveCandidateID(ctx context.Context, name string) (string, error) {
	return r.Resolve(ctx, models.PoliticianIdentity{Name: name})
}

// Resolve returns the candidate ID for p, or ErrNotFound. An exact
// (case-insensitive) name match wins; otherwise the first candidate whose
// name contains the surname, ordered by name then ID.
func (r *Resolver) Resolve(ctx context.Context, p models.PoliticianIdentity) (string, error) {
	name := NormalizeName(p.Name)
	if name == "" {
		metrics.Resolutions.WithLabelValues("miss").Inc()
		return "", ErrNotFound
	}

	state, office := "", ""
	if r.matchRegion {
		state = NormalizeName(p.State)
		office = officeCode(p.Chamber)
	}
	key := name + "|" + state + "|" + office

	if r.cache != nil {
		if id, ok := r.cache.Get(key); ok {
			metrics.Resolutions.WithLabelValues("cached").Inc()
			if id == "" {
				return "", ErrNotFound
			}
			return id, nil
		}
	}

	id, outcome, err := r.lookup(ctx, name, state, office)
	if err != nil {
		return "", err
	}
	metrics.Resolutions.WithLabelValues(outcome).Inc()

	if r.cache != nil {
		r.cache.Add(key, id)
	}
	if id == "" {
		return "", ErrNotFound
	}
	return id, nil
}

// Purge drops every cached resolution.
func (r *Resolver) Purge() {
	if r.cache != nil {
		r.cache.Purge()
	}
}

func (r *Resolver) lookup(ctx context.Context, name, state, office string) (string, string, error) {
	// The pattern over-matches; rows are kept only when the stored name
	// normalizes to the same string as the input.
	loose, err := r.candidates(ctx, `
		SELECT cand_id, cand_name, cand_office_st, cand_office
		FROM candidates_master
		WHERE UPPER(cand_name) LIKE ? ESCAPE '\'
		ORDER BY cand_id`, spacedPattern(name))
	if err != nil {
		return "", "", err
	}
	var exact []candidateRow
	for _, c := range loose {
		if NormalizeName(c.name) == name {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return pickRegion(exact, state, office), "exact", nil
	}

	surname := LastNameToken(name)
	if surname == "" {
		return "", "miss", nil
	}

	limit := 1
	if r.matchRegion {
		limit = regionCandidates
	}
	partial, err := r.candidates(ctx, `
		SELECT cand_id, cand_name, cand_office_st, cand_office
		FROM candidates_master
		WHERE UPPER(cand_name) LIKE ? ESCAPE '\'
		ORDER BY cand_name, cand_id
		LIMIT ?`, containsPattern(surname), limit)
	if err != nil {
		return "", "", err
	}
	if len(partial) > 0 {
		return pickRegion(partial, state, office), "partial", nil
	}

	return "", "miss", nil
}

type candidateRow struct {
	id     string
	name   string
	state  string
	office string
}

func (r *Resolver) candidates(ctx context.Context, query string, args ...any) ([]candidateRow, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, storageErr("query candidate master", err)
	}
	defer rows.Close()

	var out []candidateRow
	for rows.Next() {
		var c candidateRow
		if err := rows.Scan(&c.id, &c.name, &c.state, &c.office); err != nil {
			return nil, storageErr("scan candidate", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate candidates", err)
	}
	return out, nil
}

// pickRegion returns the first row matching the requested state and office,
// falling back to the first row.
func pickRegion(rows []candidateRow, state, office string) string {
	if state != "" || office != "" {
		for _, c := range rows {
			if (state == "" || c.state == state) && (office == "" || c.office == office) {
				return c.id
			}
		}
		if state != "" {
			for _, c := range rows {
				if c.state == state {
					return c.id
				}
			}
		}
	}
	return rows[0].id
}
