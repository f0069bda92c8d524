package model

import "time"

//nolint:tagliatelle // client compatibility
type TeamStats struct {
	Points      int `json:"points"`
	Wins        int `json:"wins"`
	Podiums     int `json:"podiums"`
	FastestLaps int `json:"fastest_laps"`
}

//nolint:tagliatelle // client compatibility
type Team struct {
	ID            int       `json:"id"`
	TeamID        int       `json:"team_id"`
	Name          string    `json:"name"`
	Base          string    `json:"base"`
	TeamPrincipal string    `json:"team_principal"`
	FoundedYear   int       `json:"founded_year"`
	Color         string    `json:"color"`
	Stats         TeamStats `json:"stats"`
	LastUpdated   time.Time `json:"last_updated"`
}
