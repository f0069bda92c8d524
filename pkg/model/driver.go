package model

import "time"

// DriverStats holds the season aggregates maintained by the scrape jobs.
// The results reconciler never writes these.
//
//nolint:tagliatelle // client compatibility
type DriverStats struct {
	Points      int     `json:"points"`
	Wins        int     `json:"wins"`
	Podiums     int     `json:"podiums"`
	FastestLaps int     `json:"fastest_laps"`
	AvgPosition float64 `json:"avg_position"`
}

//nolint:tagliatelle // client compatibility
type Driver struct {
	ID           int         `json:"id"`
	DriverID     int         `json:"driver_id"`
	DriverNumber int         `json:"driver_number"`
	Name         string      `json:"name"`
	TeamName     string      `json:"team_name"`
	TeamColor    string      `json:"team_color"`
	Stats        DriverStats `json:"stats"`
	LastUpdated  time.Time   `json:"last_updated"`
}
