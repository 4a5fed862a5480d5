package live

import "github.com/playmaker-live/playmaker/pkg/models"

// Diff compares two consecutive scoreboards and produces one diff
// record per game, keyed by game ID. Games present only in the
// previous snapshot are reported Removed; games present only in the
// current one are reported Added. Order follows the current snapshot,
// with removed games appended.
func Diff(prev, curr []models.GameSnapshot) []models.GameDiff {
	prevByID := make(map[string]models.GameSnapshot, len(prev))
	for _, g := range prev {
		prevByID[g.GameID] = g
	}

	diffs := make([]models.GameDiff, 0, len(curr))
	seen := make(map[string]bool, len(curr))

	for _, g := range curr {
		seen[g.GameID] = true

		before, existed := prevByID[g.GameID]
		if !existed {
			diffs = append(diffs, models.GameDiff{GameID: g.GameID, Added: true})
			continue
		}

		diffs = append(diffs, models.GameDiff{
			GameID:        g.GameID,
			ScoreChanged:  g.HomeTeam.Score != before.HomeTeam.Score || g.AwayTeam.Score != before.AwayTeam.Score,
			StatusChanged: g.Status != before.Status,
			PeriodChanged: g.Period != before.Period,
		})
	}

	for _, g := range prev {
		if !seen[g.GameID] {
			diffs = append(diffs, models.GameDiff{GameID: g.GameID, Removed: true})
		}
	}

	return diffs
}
