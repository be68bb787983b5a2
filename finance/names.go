// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package finance

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName uppercases a name, strips diacritics and collapses runs of
// whitespace. FEC names are stored uppercase ASCII.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// LastNameToken extracts the surname used for partial matching: the text
// before the first comma, or else the last word.
func LastNameToken(normalized string) string {
	if i := strings.Index(normalized, ","); i >= 0 {
		return strings.TrimSpace(normalized[:i])
	}
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern for a substring match, used with
// ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// spacedPattern builds a LIKE pattern for a normalized name that also
// matches stored names with extra whitespace between or around its words.
func spacedPattern(normalized string) string {
	fields := strings.Fields(normalized)
	for i, f := range fields {
		fields[i] = likeEscaper.Replace(f)
	}
	return "%" + strings.Join(fields, "%") + "%"
}

// officeCode maps a chamber name to the FEC office code.
func officeCode(chamber string) string {
	switch strings.ToUpper(strings.TrimSpace(chamber)) {
	case "S", "SENATE", "SENATOR":
		return "S"
	case "H", "HOUSE", "REPRESENTATIVE", "REP":
		return "H"
	case "P", "PRESIDENT":
		return "P"
	}
	return ""
}
