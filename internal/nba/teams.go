package nba

// NBA team abbreviation mappings
var teamAbbreviations = map[string]string{
	"Atlanta Hawks":          "ATL",
	"Boston Celtics":         "BOS",
	"Brooklyn Nets":          "BKN",
	"Charlotte Hornets":      "CHA",
	"Chicago Bulls":          "CHI",
	"Cleveland Cavaliers":    "CLE",
	"Dallas Mavericks":       "DAL",
	"Denver Nuggets":         "DEN",
	"Detroit Pistons":        "DET",
	"Golden State Warriors":  "GSW",
	"Houston Rockets":        "HOU",
	"Indiana Pacers":         "IND",
	"Los Angeles Clippers":   "LAC",
	"Los Angeles Lakers":     "LAL",
	"Memphis Grizzlies":      "MEM",
	"Miami Heat":             "MIA",
	"Milwaukee Bucks":        "MIL",
	"Minnesota Timberwolves": "MIN",
	"New Orleans Pelicans":   "NOP",
	"New York Knicks":        "NYK",
	"Oklahoma City Thunder":  "OKC",
	"Orlando Magic":          "ORL",
	"Philadelphia 76ers":     "PHI",
	"Phoenix Suns":           "PHX",
	"Portland Trail Blazers": "POR",
	"Sacramento Kings":       "SAC",
	"San Antonio Spurs":      "SAS",
	"Toronto Raptors":        "TOR",
	"Utah Jazz":              "UTA",
	"Washington Wizards":     "WAS",
}

// Conference/division placement by abbreviation
var teamDivisions = map[string][2]string{
	"BOS": {"Eastern", "Atlantic"},
	"BKN": {"Eastern", "Atlantic"},
	"NYK": {"Eastern", "Atlantic"},
	"PHI": {"Eastern", "Atlantic"},
	"TOR": {"Eastern", "Atlantic"},
	"CHI": {"Eastern", "Central"},
	"CLE": {"Eastern", "Central"},
	"DET": {"Eastern", "Central"},
	"IND": {"Eastern", "Central"},
	"MIL": {"Eastern", "Central"},
	"ATL": {"Eastern", "Southeast"},
	"CHA": {"Eastern", "Southeast"},
	"MIA": {"Eastern", "Southeast"},
	"ORL": {"Eastern", "Southeast"},
	"WAS": {"Eastern", "Southeast"},
	"DEN": {"Western", "Northwest"},
	"MIN": {"Western", "Northwest"},
	"OKC": {"Western", "Northwest"},
	"POR": {"Western", "Northwest"},
	"UTA": {"Western", "Northwest"},
	"GSW": {"Western", "Pacific"},
	"LAC": {"Western", "Pacific"},
	"LAL": {"Western", "Pacific"},
	"PHX": {"Western", "Pacific"},
	"SAC": {"Western", "Pacific"},
	"DAL": {"Western", "Southwest"},
	"HOU": {"Western", "Southwest"},
	"MEM": {"Western", "Southwest"},
	"NOP": {"Western", "Southwest"},
	"SAS": {"Western", "Southwest"},
}

// Reverse mapping for lookups
var abbreviationToName = map[string]string{}

func init() {
	for name, abbr := range teamAbbreviations {
		abbreviationToName[abbr] = name
	}
}

// TeamAbbreviation returns the abbreviation for a full team name
func TeamAbbreviation(fullName string) string {
	if abbr, ok := teamAbbreviations[fullName]; ok {
		return abbr
	}
	return fullName
}

// TeamName returns the full name for an abbreviation
func TeamName(abbr string) string {
	if name, ok := abbreviationToName[abbr]; ok {
		return name
	}
	return abbr
}

// TeamDivision returns the conference and division for an abbreviation
func TeamDivision(abbr string) (conference, division string, ok bool) {
	d, ok := teamDivisions[abbr]
	if !ok {
		return "", "", false
	}
	return d[0], d[1], true
}

// AllTeams returns the full static team list, used by the seed tool
// when the upstream provider is unreachable.
func AllTeams() []string {
	names := make([]string, 0, len(teamAbbreviations))
	for name := range teamAbbreviations {
		names = append(names, name)
	}
	return names
}
