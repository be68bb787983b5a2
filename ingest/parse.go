// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

// ErrMalformedRow marks a line that does not fit its table's layout.
var ErrMalformedRow = errors.New("malformed row")

// Parse splits one pipe-delimited line and converts the mapped columns. The
// returned values line up with l.Table.Fields.
func (l Layout) Parse(line string) ([]any, error) {
	line = strings.TrimRight(line, "\r\n")
	if !utf8.ValidString(line) {
		// Older bulk files are Windows-1252.
		if decoded, err := charmap.Windows1252.NewDecoder().String(line); err == nil {
			line = decoded
		}
	}

	fields := strings.Split(line, "|")
	if len(fields) < l.Width {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRow, l.Width, len(fields))
	}

	values := make([]any, len(l.Table.Fields))
	for i, f := range l.Table.Fields {
		raw := strings.TrimSpace(fields[l.indices[i]])
		switch f.Kind {
		case Float:
			v, err := parseFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q is not numeric", ErrMalformedRow, f.Source, raw)
			}
			values[i] = v
		case Int:
			v, err := parseInt(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q is not an integer", ErrMalformedRow, f.Source, raw)
			}
			values[i] = v
		default:
			if raw == "" && i == l.synth {
				raw = uuid.NewSHA1(uuid.NameSpaceOID, []byte(l.Table.Name+"|"+line)).String()
			}
			if raw == "" && slices.Contains(l.Table.Key, f.Column) {
				return nil, fmt.Errorf("%w: empty key column %s", ErrMalformedRow, f.Source)
			}
			values[i] = raw
		}
	}
	return values, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	// Some exports write years as 2024.0
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
