package openf1

import "time"

// payload shapes as delivered by the OpenF1 API

//nolint:tagliatelle // upstream format
type Lap struct {
	DriverNumber int      `json:"driver_number"`
	LapNumber    int      `json:"lap_number"`
	// nil for invalidated or incomplete laps
	LapDuration *float64 `json:"lap_duration"`
	Compound    string   `json:"compound"`
}

//nolint:tagliatelle // upstream format
type Position struct {
	DriverNumber int       `json:"driver_number"`
	Position     int       `json:"position"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
	// total race time in seconds as reported by timing, if any
	ReportedTime *float64 `json:"time"`
	DriverName   string   `json:"driver_name"`
	TeamName     string   `json:"team_name"`
}

//nolint:tagliatelle // upstream format
type Session struct {
	SessionKey       int       `json:"session_key"`
	DateStart        time.Time `json:"date_start"`
	CircuitShortName string    `json:"circuit_short_name"`
	SessionName      string    `json:"session_name"`
	CountryName      string    `json:"country_name"`
	Year             int       `json:"year"`
}

//nolint:tagliatelle // upstream format
type TeamEntry struct {
	TeamID int    `json:"team_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

//nolint:tagliatelle // upstream format
type RaceResult struct {
	RaceID       int       `json:"race_id"`
	DriverID     int       `json:"driver_id"`
	Position     int       `json:"position"`
	Points       int       `json:"points"`
	FastestLap   bool      `json:"fastest_lap"`
	Status       string    `json:"status"`
	GridPosition int       `json:"grid_position"`
	RaceDate     time.Time `json:"race_date"`
}

//nolint:tagliatelle // upstream format
type DriverEntry struct {
	DriverID     int    `json:"driver_id"`
	DriverNumber int    `json:"driver_number"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
	TeamColour   string `json:"team_colour"`
}
