package parsers

import (
	"errors"
	"strings"
)

var (
	nameColumns  = []string{"name", "team", "team name", "teamname"}
	colorColumns = []string{"color", "colour"}
)

// ErrNoEntries is returned when a roster has a header but no usable rows.
var ErrNoEntries = errors.New("roster contains no teams")

// findColumn searches for a column by multiple possible names (case-insensitive).
// Spaces, underscores and hyphens are ignored.
func findColumn(header []string, possibleNames []string) int {
	for i, col := range header {
		colNorm := normalizeHeader(col)
		for _, name := range possibleNames {
			if colNorm == normalizeHeader(name) {
				return i
			}
		}
	}
	return -1
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// entriesFromRows turns a header row plus data rows into roster entries. When
// no header names a team column, the first column is the name and the first
// row is data.
func entriesFromRows(rows [][]string) ([]RosterEntry, error) {
	if len(rows) == 0 {
		return nil, ErrNoEntries
	}

	nameIdx := findColumn(rows[0], nameColumns)
	colorIdx := findColumn(rows[0], colorColumns)
	start := 1
	if nameIdx < 0 {
		nameIdx = 0
		if colorIdx < 0 {
			start = 0
		}
	}

	var entries []RosterEntry
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if nameIdx >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameIdx])
		if name == "" {
			continue
		}
		entry := RosterEntry{Name: name, Row: i + 1}
		if colorIdx >= 0 && colorIdx < len(row) {
			entry.Color = strings.TrimSpace(row[colorIdx])
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}
