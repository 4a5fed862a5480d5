package store

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/playmaker-live/playmaker/pkg/models"
)

// RankPlayers orders search candidates by closeness to the query.
// Exact and prefix matches sort first, then substring position, then
// Levenshtein distance on the lowercased full name, so "le" puts
// "LeBron James" ahead of "Kawhi Leonard".
func RankPlayers(players []models.Player, query string) []models.Player {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return players
	}

	ranked := make([]models.Player, len(players))
	copy(ranked, players)

	sort.SliceStable(ranked, func(i, j int) bool {
		return playerRank(ranked[i], q) < playerRank(ranked[j], q)
	})

	return ranked
}

// playerRank computes a sort key: lower is better
func playerRank(p models.Player, q string) int {
	name := strings.ToLower(p.FullName)
	last := strings.ToLower(p.LastName)

	switch {
	case name == q || last == q:
		return 0
	case strings.HasPrefix(name, q) || strings.HasPrefix(last, q):
		return 1
	}

	if idx := strings.Index(name, q); idx >= 0 {
		// Earlier substring hits rank higher
		return 100 + idx
	}

	return 1000 + fuzzy.LevenshteinDistance(q, name)
}
