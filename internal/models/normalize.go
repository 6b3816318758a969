package models

import "strings"

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Row is a list record that can normalise itself and identify itself
// within its list.
type Row[T any] interface {
	*T
	Normalize() bool
	Key() string
}

// NormalizeRows normalises every row in place, drops rows that fail
// normalisation and keeps only the first row for each key. Order is preserved.
func NormalizeRows[T any, PT Row[T]](rows []T) []T {
	out := rows[:0]
	seen := make(map[string]bool, len(rows))
	for i := range rows {
		row := PT(&rows[i])
		if !row.Normalize() {
			continue
		}
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rows[i])
	}
	return out
}
