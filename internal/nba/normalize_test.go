package nba_test

import (
	"testing"

	"github.com/playmaker-live/playmaker/internal/nba"
	"github.com/playmaker-live/playmaker/pkg/models"
)

func TestNormalizeStatRow_StandardLayout(t *testing.T) {
	labels := []string{"MIN", "FG", "3PT", "FT", "REB", "AST", "STL", "BLK", "TO", "+/-", "PTS"}
	raw := []interface{}{"34", "10-18", "3-7", "5-6", "8", "11", "2", "1", "4", "+12", "28"}

	stats := nba.NormalizeStatRow(labels, raw)

	if stats.Points != 28 {
		t.Errorf("expected 28 points, got %d", stats.Points)
	}
	if stats.Rebounds != 8 {
		t.Errorf("expected 8 rebounds, got %d", stats.Rebounds)
	}
	if stats.Assists != 11 {
		t.Errorf("expected 11 assists, got %d", stats.Assists)
	}
	if stats.Turnovers != 4 {
		t.Errorf("expected 4 turnovers, got %d", stats.Turnovers)
	}
	if stats.PlusMinus != 12 {
		t.Errorf("expected +12, got %d", stats.PlusMinus)
	}
	if stats.FieldGoals != (models.Shooting{Made: 10, Attempted: 18}) {
		t.Errorf("unexpected field goals: %+v", stats.FieldGoals)
	}
	if stats.Minutes != "34" {
		t.Errorf("expected 34 minutes, got %q", stats.Minutes)
	}
}

// Column order shifts between payloads; values must follow their labels,
// not their positions.
func TestNormalizeStatRow_ReorderedColumns(t *testing.T) {
	labels := []string{"PTS", "MIN", "AST", "REB"}
	raw := []interface{}{"31", "36", "5", "12"}

	stats := nba.NormalizeStatRow(labels, raw)

	if stats.Points != 31 {
		t.Errorf("expected 31 points, got %d", stats.Points)
	}
	if stats.Minutes != "36" {
		t.Errorf("expected 36 minutes, got %q", stats.Minutes)
	}
	if stats.Assists != 5 {
		t.Errorf("expected 5 assists, got %d", stats.Assists)
	}
	if stats.Rebounds != 12 {
		t.Errorf("expected 12 rebounds, got %d", stats.Rebounds)
	}
}

// A negative value under a count column is corrupt upstream data and
// must clamp to zero; a +/- column keeps its sign.
func TestNormalizeStatRow_NegativePointsClamped(t *testing.T) {
	labels := []string{"PTS", "+/-"}
	raw := []interface{}{"-7", "-7"}

	stats := nba.NormalizeStatRow(labels, raw)

	if stats.Points != 0 {
		t.Errorf("expected negative points clamped to 0, got %d", stats.Points)
	}
	if stats.PlusMinus != -7 {
		t.Errorf("expected plus-minus -7, got %d", stats.PlusMinus)
	}
}

func TestNormalizeStatRow_MissingLabelsDefaultZero(t *testing.T) {
	labels := []string{"MIN", "PTS"}
	raw := []interface{}{"22", "14"}

	stats := nba.NormalizeStatRow(labels, raw)

	if stats.Points != 14 {
		t.Errorf("expected 14 points, got %d", stats.Points)
	}
	if stats.Rebounds != 0 || stats.Assists != 0 || stats.Blocks != 0 {
		t.Errorf("expected absent columns to be zero, got %+v", stats)
	}
	if stats.FieldGoals != (models.Shooting{}) {
		t.Errorf("expected empty field goals, got %+v", stats.FieldGoals)
	}
}

func TestNormalizeStatRow_AlternateLabelSpellings(t *testing.T) {
	labels := []string{"Minutes", "Points", "Rebounds", "Turnovers", "FGM-A"}
	raw := []interface{}{"29", "19", "6", "2", "7-13"}

	stats := nba.NormalizeStatRow(labels, raw)

	if stats.Points != 19 {
		t.Errorf("expected 19 points, got %d", stats.Points)
	}
	if stats.Turnovers != 2 {
		t.Errorf("expected 2 turnovers, got %d", stats.Turnovers)
	}
	if stats.FieldGoals != (models.Shooting{Made: 7, Attempted: 13}) {
		t.Errorf("unexpected field goals: %+v", stats.FieldGoals)
	}
}

func TestNormalizeStatRow_MixedValueTypes(t *testing.T) {
	// JSON decoding delivers numbers as float64
	labels := []string{"PTS", "REB"}
	raw := []interface{}{float64(25), float64(9)}

	stats := nba.NormalizeStatRow(labels, raw)

	if stats.Points != 25 {
		t.Errorf("expected 25 points, got %d", stats.Points)
	}
	if stats.Rebounds != 9 {
		t.Errorf("expected 9 rebounds, got %d", stats.Rebounds)
	}
}

func TestParseShooting(t *testing.T) {
	tests := []struct {
		input string
		want  models.Shooting
	}{
		{"5-10", models.Shooting{Made: 5, Attempted: 10}},
		{"0-0", models.Shooting{}},
		{"12-22", models.Shooting{Made: 12, Attempted: 22}},
		{" 3-8 ", models.Shooting{Made: 3, Attempted: 8}},
		{"--", models.Shooting{}},
		{"-", models.Shooting{}},
		{"", models.Shooting{}},
		{"garbage", models.Shooting{}},
		{"5", models.Shooting{}},
	}

	for _, tt := range tests {
		got := nba.ParseShooting(tt.input)
		if got != tt.want {
			t.Errorf("ParseShooting(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestSumTeamTotals(t *testing.T) {
	lines := []models.PlayerLine{
		{Stats: models.PlayerGameStats{
			Points: 30, Rebounds: 5, Assists: 8, Turnovers: 3,
			FieldGoals: models.Shooting{Made: 11, Attempted: 20},
		}},
		{Stats: models.PlayerGameStats{
			Points: 18, Rebounds: 12, Assists: 2, Turnovers: 1,
			FieldGoals: models.Shooting{Made: 7, Attempted: 12},
		}},
	}

	totals := nba.SumTeamTotals(lines)

	if totals.Points != 48 {
		t.Errorf("expected 48 total points, got %d", totals.Points)
	}
	if totals.Rebounds != 17 {
		t.Errorf("expected 17 total rebounds, got %d", totals.Rebounds)
	}
	if totals.FieldGoals != (models.Shooting{Made: 18, Attempted: 32}) {
		t.Errorf("unexpected field goal totals: %+v", totals.FieldGoals)
	}
}
