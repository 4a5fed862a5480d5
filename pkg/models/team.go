package models

// Team is a provider-sourced team record. The postgres mirror is
// refreshed by the seed tool and the daily refresh job, not by the
// live path.
type Team struct {
	TeamID         string `json:"team_id"`
	Abbr           string `json:"abbr"`
	Name           string `json:"name"`
	Conference     string `json:"conference,omitempty"`
	Division       string `json:"division,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	Wins           int    `json:"wins"`
	Losses         int    `json:"losses"`
}
