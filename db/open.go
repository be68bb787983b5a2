// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect identifies the SQL flavor behind a connection. Queries are written
// with ? placeholders and rebound for PostgreSQL.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a configured database type to a Dialect.
func ParseDialect(dbType string) (Dialect, error) {
	switch strings.ToLower(dbType) {
	case "", "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

// Open opens and pings a database of the given type.
func Open(dbType, url string) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(dbType)
	if err != nil {
		return nil, "", err
	}

	if dialect == SQLite {
		url = sqliteDSN(url)
	}

	conn, err := sql.Open(string(dialect), url)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}

	return conn, dialect, nil
}

// busyTimeoutPragma applies to every pooled connection. The bulk loader
// holds a write transaction for a whole table.
const busyTimeoutPragma = "_pragma=busy_timeout(5000)"

// sqliteDSN adds the busy timeout to a modernc DSN unless it sets one.
func sqliteDSN(url string) string {
	if strings.Contains(url, "busy_timeout") {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&" + busyTimeoutPragma
	}
	return url + "?" + busyTimeoutPragma
}

// Rebind rewrites ? placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Placeholders returns n comma-separated ? markers.
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
