package nba

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// ParseScoreboard parses an ESPN scoreboard payload into game snapshots.
// Malformed events are skipped, not fatal: a scoreboard with one broken
// game still serves the rest.
func ParseScoreboard(raw map[string]interface{}) ([]models.GameSnapshot, error) {
	events, ok := raw["events"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("no events in scoreboard payload")
	}

	games := make([]models.GameSnapshot, 0, len(events))
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}

		game, err := ParseGameSnapshot(event)
		if err != nil {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

// ParseGameSnapshot parses one scoreboard event into a GameSnapshot
func ParseGameSnapshot(event map[string]interface{}) (models.GameSnapshot, error) {
	game := models.GameSnapshot{
		GameID:    extractString(event, "id"),
		UpdatedAt: time.Now().UTC(),
	}
	if game.GameID == "" {
		return game, fmt.Errorf("event has no id")
	}

	if dateStr := extractString(event, "date"); dateStr != "" {
		game.StartTime = parseEventTime(dateStr)
	}

	status := extractMap(event, "status")
	statusType := extractMap(status, "type")
	game.Period = extractInt(status, "period")
	game.Clock = extractString(status, "displayClock")
	game.Status = parseGameStatus(statusType, game.Period, game.Clock)
	game.PeriodLabel = periodLabel(game.Period)

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return game, fmt.Errorf("no competitions in event %s", game.GameID)
	}

	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return game, fmt.Errorf("malformed competition in event %s", game.GameID)
	}

	venue := extractMap(comp, "venue")
	game.Venue = extractString(venue, "fullName")

	if broadcasts := extractArray(comp, "broadcasts"); len(broadcasts) > 0 {
		if b, ok := broadcasts[0].(map[string]interface{}); ok {
			if names := extractArray(b, "names"); len(names) > 0 {
				game.Broadcast = fmt.Sprint(names[0])
			}
		}
	}

	competitors := extractArray(comp, "competitors")
	if len(competitors) < 2 {
		return game, fmt.Errorf("insufficient competitors in event %s", game.GameID)
	}

	for _, compInterface := range competitors {
		competitor, ok := compInterface.(map[string]interface{})
		if !ok {
			continue
		}

		side := parseTeamSide(competitor)
		switch extractString(competitor, "homeAway") {
		case "home":
			game.HomeTeam = side
		case "away":
			game.AwayTeam = side
		}
	}

	if game.HomeTeam.Abbr == "" || game.AwayTeam.Abbr == "" {
		return game, fmt.Errorf("missing team abbreviations in event %s", game.GameID)
	}

	return game, nil
}

// parseTeamSide extracts one competitor into a TeamSide
func parseTeamSide(competitor map[string]interface{}) models.TeamSide {
	team := extractMap(competitor, "team")

	side := models.TeamSide{
		TeamID:  extractString(team, "id"),
		Abbr:    extractString(team, "abbreviation"),
		Name:    extractString(team, "displayName"),
		Score:   extractInt(competitor, "score"),
		LogoURL: extractString(team, "logo"),
	}

	// Overall record is the first records entry when present
	if records := extractArray(competitor, "records"); len(records) > 0 {
		if rec, ok := records[0].(map[string]interface{}); ok {
			side.Record = extractString(rec, "summary")
		}
	}

	return side
}

// parseGameStatus converts ESPN's status type into a GameStatus.
// Halftime is surfaced as its own state so the UI can label it.
func parseGameStatus(statusType map[string]interface{}, period int, clock string) models.GameStatus {
	name := extractString(statusType, "name")
	if name == "STATUS_HALFTIME" {
		return models.StatusHalftime
	}
	if name == "STATUS_POSTPONED" {
		return models.StatusPostponed
	}

	if completed := extractBool(statusType, "completed"); completed {
		return models.StatusFinal
	}

	switch extractString(statusType, "state") {
	case "in":
		if period == 2 && clock == "0.0" {
			return models.StatusHalftime
		}
		return models.StatusLive
	case "pre":
		return models.StatusScheduled
	case "post":
		return models.StatusFinal
	}

	return models.StatusScheduled
}

// parseEventTime parses ESPN's event date format, e.g. "2025-11-11T23:30Z"
func parseEventTime(dateStr string) time.Time {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t, err = time.Parse("2006-01-02T15:04Z", dateStr)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

// periodLabel returns the NBA display label for a period number
func periodLabel(period int) string {
	switch {
	case period <= 0:
		return ""
	case period <= 4:
		return fmt.Sprintf("Q%d", period)
	default:
		return fmt.Sprintf("OT%d", period-4)
	}
}

// ParseGameDetail parses an ESPN game summary payload into the full
// game detail view, with player lines normalized by label lookup and
// team totals computed from them.
func ParseGameDetail(raw map[string]interface{}) (*models.GameDetail, error) {
	header := extractMap(raw, "header")
	if len(header) == 0 {
		return nil, fmt.Errorf("game summary: %w", apperr.ErrNotFound)
	}

	game, err := parseSummaryHeader(header)
	if err != nil {
		return nil, err
	}

	detail := &models.GameDetail{
		Game:        game,
		HomePlayers: []models.PlayerLine{},
		AwayPlayers: []models.PlayerLine{},
	}

	lines := ParsePlayerLines(raw)
	for _, line := range lines {
		if line.TeamAbbr == game.HomeTeam.Abbr {
			detail.HomePlayers = append(detail.HomePlayers, line)
		} else {
			detail.AwayPlayers = append(detail.AwayPlayers, line)
		}
	}

	detail.HomeTotals = SumTeamTotals(detail.HomePlayers)
	detail.AwayTotals = SumTeamTotals(detail.AwayPlayers)

	return detail, nil
}

// parseSummaryHeader parses the summary "header" block, which carries
// the same competition shape as a scoreboard event.
func parseSummaryHeader(header map[string]interface{}) (models.GameSnapshot, error) {
	event := map[string]interface{}{
		"id":           header["id"],
		"competitions": header["competitions"],
	}

	competitions := extractArray(header, "competitions")
	if len(competitions) > 0 {
		if comp, ok := competitions[0].(map[string]interface{}); ok {
			event["date"] = comp["date"]
			event["status"] = comp["status"]
		}
	}

	return ParseGameSnapshot(event)
}

// ParsePlayerLines extracts normalized per-player box score rows from
// a game summary payload.
func ParsePlayerLines(raw map[string]interface{}) []models.PlayerLine {
	boxscore := extractMap(raw, "boxscore")
	playersData := extractArray(boxscore, "players")

	var lines []models.PlayerLine

	for _, teamDataInterface := range playersData {
		teamData, ok := teamDataInterface.(map[string]interface{})
		if !ok {
			continue
		}

		team := extractMap(teamData, "team")
		teamAbbr := extractString(team, "abbreviation")

		statistics := extractArray(teamData, "statistics")
		if len(statistics) == 0 {
			continue
		}

		statGroup, ok := statistics[0].(map[string]interface{})
		if !ok {
			continue
		}

		labels := stringSlice(extractArray(statGroup, "labels"))
		if len(labels) == 0 {
			// Some payloads carry labels under "names"
			labels = stringSlice(extractArray(statGroup, "names"))
		}

		for _, athleteInterface := range extractArray(statGroup, "athletes") {
			athleteData, ok := athleteInterface.(map[string]interface{})
			if !ok {
				continue
			}

			line := models.PlayerLine{
				Player:   parseAthleteRef(extractMap(athleteData, "athlete")),
				TeamAbbr: teamAbbr,
				Starter:  extractBool(athleteData, "starter"),
				Played:   !extractBool(athleteData, "didNotPlay"),
			}

			if line.Played {
				line.Stats = NormalizeStatRow(labels, extractArray(athleteData, "stats"))
			}

			lines = append(lines, line)
		}
	}

	return lines
}

// parseAthleteRef parses the embedded athlete reference in a box score row
func parseAthleteRef(athlete map[string]interface{}) models.Player {
	p := models.Player{
		PlayerID:  extractString(athlete, "id"),
		FirstName: extractString(athlete, "firstName"),
		LastName:  extractString(athlete, "lastName"),
		FullName:  extractString(athlete, "displayName"),
		Jersey:    extractString(athlete, "jersey"),
	}

	position := extractMap(athlete, "position")
	p.Position = extractString(position, "abbreviation")
	if p.Position == "" {
		// Scoreboard payloads flatten position to a string
		if s, ok := athlete["position"].(string); ok {
			p.Position = s
		}
	}

	headshot := extractMap(athlete, "headshot")
	p.HeadshotURL = extractString(headshot, "href")

	if p.FullName == "" {
		p.FullName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}

	return p
}

// ParseAthlete parses an athlete profile payload into a player profile
func ParseAthlete(raw map[string]interface{}) (*models.PlayerProfile, error) {
	athlete := extractMap(raw, "athlete")
	if len(athlete) == 0 {
		return nil, fmt.Errorf("athlete payload: %w", apperr.ErrNotFound)
	}

	profile := &models.PlayerProfile{
		Player: parseAthleteRef(athlete),
		Source: "espn",
	}

	profile.Player.Height = extractString(athlete, "displayHeight")
	profile.Player.Weight = extractString(athlete, "displayWeight")

	team := extractMap(athlete, "team")
	profile.Player.TeamID = extractString(team, "id")
	profile.Player.TeamAbbr = extractString(team, "abbreviation")

	// Season stat summary: parallel names/displayValues lists
	statsSummary := extractMap(athlete, "statsSummary")
	statItems := extractArray(statsSummary, "statistics")
	if len(statItems) > 0 {
		profile.SeasonStats = make(map[string]string, len(statItems))
		for _, itemInterface := range statItems {
			item, ok := itemInterface.(map[string]interface{})
			if !ok {
				continue
			}
			name := extractString(item, "abbreviation")
			if name == "" {
				name = extractString(item, "name")
			}
			if name != "" {
				profile.SeasonStats[name] = extractString(item, "displayValue")
			}
		}
	}

	return profile, nil
}

// ParseAthleteSearch parses an athlete search payload into players
func ParseAthleteSearch(raw map[string]interface{}) []models.Player {
	items := extractArray(raw, "items")
	if len(items) == 0 {
		items = extractArray(extractMap(raw, "athletes"), "items")
	}

	players := make([]models.Player, 0, len(items))
	for _, itemInterface := range items {
		item, ok := itemInterface.(map[string]interface{})
		if !ok {
			continue
		}
		p := parseAthleteRef(item)
		if p.PlayerID == "" {
			continue
		}
		team := extractMap(item, "team")
		p.TeamID = extractString(team, "id")
		p.TeamAbbr = extractString(team, "abbreviation")
		players = append(players, p)
	}

	return players
}

// ParseGameLog parses an athlete gamelog payload. Stat columns arrive
// as a top-level labels list with per-event parallel value lists;
// event metadata (date, opponent, result) lives in a separate map
// keyed by event id. Entries keep the payload order, most recent
// first.
func ParseGameLog(raw map[string]interface{}) []models.GameLogEntry {
	labels := stringSlice(extractArray(raw, "labels"))
	if len(labels) == 0 {
		labels = stringSlice(extractArray(raw, "names"))
	}
	if len(labels) == 0 {
		return nil
	}

	meta := extractMap(raw, "events")

	var entries []models.GameLogEntry
	for _, seasonInterface := range extractArray(raw, "seasonTypes") {
		season, ok := seasonInterface.(map[string]interface{})
		if !ok {
			continue
		}
		for _, catInterface := range extractArray(season, "categories") {
			cat, ok := catInterface.(map[string]interface{})
			if !ok {
				continue
			}
			for _, evInterface := range extractArray(cat, "events") {
				ev, ok := evInterface.(map[string]interface{})
				if !ok {
					continue
				}
				eventID := extractString(ev, "eventId")
				if eventID == "" {
					continue
				}

				entry := models.GameLogEntry{
					GameID: eventID,
					Stats:  NormalizeStatRow(labels, extractArray(ev, "stats")),
				}

				if game := extractMap(meta, eventID); len(game) > 0 {
					entry.GameDate = parseEventTime(extractString(game, "gameDate"))
					entry.Opponent = extractString(extractMap(game, "opponent"), "abbreviation")
					entry.HomeAway = extractString(game, "atVs")
					if result := extractString(game, "gameResult"); result != "" {
						entry.Result = result
						if score := extractString(game, "score"); score != "" {
							entry.Result = result + " " + score
						}
					}
				}

				entries = append(entries, entry)
			}
		}
	}

	return entries
}

// ParseTeams parses the league team list payload
func ParseTeams(raw map[string]interface{}) []models.Team {
	sports := extractArray(raw, "sports")
	if len(sports) == 0 {
		return nil
	}
	sport, _ := sports[0].(map[string]interface{})
	leagues := extractArray(sport, "leagues")
	if len(leagues) == 0 {
		return nil
	}
	league, _ := leagues[0].(map[string]interface{})

	var teams []models.Team
	for _, entryInterface := range extractArray(league, "teams") {
		entry, ok := entryInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(entry, "team")

		t := models.Team{
			TeamID:         extractString(team, "id"),
			Abbr:           extractString(team, "abbreviation"),
			Name:           extractString(team, "displayName"),
			PrimaryColor:   extractString(team, "color"),
			SecondaryColor: extractString(team, "alternateColor"),
		}

		if logos := extractArray(team, "logos"); len(logos) > 0 {
			if logo, ok := logos[0].(map[string]interface{}); ok {
				t.LogoURL = extractString(logo, "href")
			}
		}

		if conf, div, ok := TeamDivision(t.Abbr); ok {
			t.Conference = conf
			t.Division = div
		}

		if wins, losses, ok := parseTeamRecord(extractMap(team, "record")); ok {
			t.Wins = wins
			t.Losses = losses
		}

		teams = append(teams, t)
	}

	return teams
}

// parseTeamRecord reads cumulative wins and losses from a team record
// block, preferring the overall ("total") item. Falls back to the
// display summary ("41-27") when the stat list is absent.
func parseTeamRecord(record map[string]interface{}) (wins, losses int, ok bool) {
	var overall map[string]interface{}
	for _, itemInterface := range extractArray(record, "items") {
		item, itemOK := itemInterface.(map[string]interface{})
		if !itemOK {
			continue
		}
		if overall == nil || extractString(item, "type") == "total" {
			overall = item
		}
	}
	if overall == nil {
		return 0, 0, false
	}

	found := false
	for _, statInterface := range extractArray(overall, "stats") {
		stat, statOK := statInterface.(map[string]interface{})
		if !statOK {
			continue
		}
		switch extractString(stat, "name") {
		case "wins":
			wins = extractInt(stat, "value")
			found = true
		case "losses":
			losses = extractInt(stat, "value")
			found = true
		}
	}
	if found {
		return wins, losses, true
	}

	parts := strings.SplitN(extractString(overall, "summary"), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	l, errL := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errL != nil || w < 0 || l < 0 {
		return 0, 0, false
	}
	return w, l, true
}

// ParseRoster parses a team roster payload into players
func ParseRoster(raw map[string]interface{}, teamID, teamAbbr string) []models.Player {
	var players []models.Player
	for _, itemInterface := range extractArray(raw, "athletes") {
		item, ok := itemInterface.(map[string]interface{})
		if !ok {
			continue
		}
		p := parseAthleteRef(item)
		if p.PlayerID == "" {
			continue
		}
		p.Height = extractString(item, "displayHeight")
		p.Weight = extractString(item, "displayWeight")
		p.TeamID = teamID
		p.TeamAbbr = teamAbbr
		players = append(players, p)
	}
	return players
}

// stringSlice converts a JSON array to strings
func stringSlice(arr []interface{}) []string {
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
