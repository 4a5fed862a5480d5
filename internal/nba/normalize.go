package nba

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playmaker-live/playmaker/pkg/models"
)

// ESPN ships box score statistics as an ordered list of column labels
// plus, per player, a parallel ordered list of values. The label layout
// is not guaranteed stable across games, so every field is resolved by
// matching its header text. Positional indexing is never used: a field
// whose label is absent defaults to zero.

// labelIndex maps a normalized column label to its position in the row
type labelIndex map[string]int

// newLabelIndex builds a case-insensitive, trimmed label lookup.
// Built once per payload, shared by every player row.
func newLabelIndex(labels []string) labelIndex {
	ix := make(labelIndex, len(labels))
	for i, label := range labels {
		key := strings.ToLower(strings.TrimSpace(label))
		if _, exists := ix[key]; !exists {
			ix[key] = i
		}
	}
	return ix
}

// value resolves a field by a prioritized list of acceptable label
// spellings, e.g. "PTS" then "Points". Returns "" when no label
// matches or the index is out of range.
func (ix labelIndex) value(row []string, names ...string) string {
	for _, name := range names {
		i, ok := ix[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if i < 0 || i >= len(row) {
			continue
		}
		return row[i]
	}
	return ""
}

// intValue resolves a field and parses it as a non-negative count.
// A negative resolved value is an upstream data-quality error (observed
// when the +/- column bleeds into a mis-built row) and clamps to zero.
func (ix labelIndex) intValue(row []string, names ...string) int {
	s := ix.value(row, names...)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

// signedValue resolves a field that legitimately carries a sign (+/-)
func (ix labelIndex) signedValue(row []string, names ...string) int {
	s := strings.TrimSpace(ix.value(row, names...))
	if s == "" {
		return 0
	}
	s = strings.TrimPrefix(s, "+")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseShooting parses a "made-attempted" shooting string.
// "--", "-", and empty input all parse to (0, 0).
func ParseShooting(s string) models.Shooting {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "--" {
		return models.Shooting{}
	}

	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return models.Shooting{}
	}

	made, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || made < 0 {
		return models.Shooting{}
	}
	attempted, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || attempted < 0 {
		return models.Shooting{}
	}

	return models.Shooting{Made: made, Attempted: attempted}
}

// NormalizeStatRow maps one player's raw stat values onto the fixed
// application schema using the payload's column labels. Values arrive
// as mixed JSON types; each is stringified before parsing.
func NormalizeStatRow(labels []string, raw []interface{}) models.PlayerGameStats {
	row := make([]string, len(raw))
	for i, v := range raw {
		row[i] = fmt.Sprint(v)
	}

	ix := newLabelIndex(labels)

	return models.PlayerGameStats{
		Minutes:       ix.value(row, "MIN", "Minutes"),
		Points:        ix.intValue(row, "PTS", "Points"),
		Rebounds:      ix.intValue(row, "REB", "Rebounds", "TREB"),
		Assists:       ix.intValue(row, "AST", "Assists"),
		Steals:        ix.intValue(row, "STL", "Steals"),
		Blocks:        ix.intValue(row, "BLK", "Blocks"),
		Turnovers:     ix.intValue(row, "TO", "Turnovers", "TOV"),
		FieldGoals:    ParseShooting(ix.value(row, "FG", "Field Goals", "FGM-A")),
		ThreePointers: ParseShooting(ix.value(row, "3PT", "Three Pointers", "3PM-A")),
		FreeThrows:    ParseShooting(ix.value(row, "FT", "Free Throws", "FTM-A")),
		PlusMinus:     ix.signedValue(row, "+/-", "Plus Minus", "PlusMinus"),
	}
}

// SumTeamTotals computes team totals from normalized player lines
func SumTeamTotals(lines []models.PlayerLine) models.TeamTotals {
	var t models.TeamTotals
	for _, l := range lines {
		t.Points += l.Stats.Points
		t.Rebounds += l.Stats.Rebounds
		t.Assists += l.Stats.Assists
		t.Steals += l.Stats.Steals
		t.Blocks += l.Stats.Blocks
		t.Turnovers += l.Stats.Turnovers
		t.FieldGoals.Made += l.Stats.FieldGoals.Made
		t.FieldGoals.Attempted += l.Stats.FieldGoals.Attempted
		t.ThreePointers.Made += l.Stats.ThreePointers.Made
		t.ThreePointers.Attempted += l.Stats.ThreePointers.Attempted
		t.FreeThrows.Made += l.Stats.FreeThrows.Made
		t.FreeThrows.Attempted += l.Stats.FreeThrows.Attempted
	}
	return t
}
