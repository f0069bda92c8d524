package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
	driverrepos "github.com/nicolarischia/f1-analytics/pkg/repository/driver"
	teamrepos "github.com/nicolarischia/f1-analytics/pkg/repository/team"
)

type (
	Scraper struct {
		pool      *pgxpool.Pool
		telemetry *openf1.Client
		l         *log.Logger
	}
	ScraperOption func(*Scraper)
)

func WithScraperPool(arg *pgxpool.Pool) ScraperOption {
	return func(s *Scraper) {
		s.pool = arg
	}
}

func WithScraperTelemetry(arg *openf1.Client) ScraperOption {
	return func(s *Scraper) {
		s.telemetry = arg
	}
}

func NewScraper(opts ...ScraperOption) *Scraper {
	ret := &Scraper{l: log.Default().Named("scrape")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// ScrapeDrivers imports the current driver entries. Duplicate car
// numbers in the upstream payload collapse to the last occurrence.
func (s *Scraper) ScrapeDrivers(ctx context.Context) error {
	entries, err := s.telemetry.Drivers(ctx)
	if err != nil {
		return err
	}
	unique := lo.Values(lo.KeyBy(entries,
		func(item openf1.DriverEntry) int { return item.DriverNumber }))
	for i := range unique {
		entry := &unique[i]
		err := driverrepos.Upsert(ctx, s.pool, &model.Driver{
			DriverID:     entry.DriverID,
			DriverNumber: entry.DriverNumber,
			Name:         entry.FullName,
			TeamName:     entry.TeamName,
			TeamColor:    entry.TeamColour,
		})
		if err != nil {
			return err
		}
	}
	s.l.Info("drivers imported", log.Int("num", len(unique)))
	return nil
}

// ScrapeTeams imports the team entries and recomputes each team's
// aggregates from its member drivers.
func (s *Scraper) ScrapeTeams(ctx context.Context) error {
	entries, err := s.telemetry.Teams(ctx)
	if err != nil {
		return err
	}
	unique := lo.Values(lo.KeyBy(entries,
		func(item openf1.TeamEntry) int { return item.TeamID }))
	for i := range unique {
		entry := &unique[i]
		err := teamrepos.Upsert(ctx, s.pool, &model.Team{
			TeamID: entry.TeamID,
			Name:   entry.Name,
			Color:  entry.Color,
		})
		if err != nil {
			return err
		}
		if err := s.updateTeamStats(ctx, entry.TeamID, entry.Name); err != nil {
			return err
		}
	}
	s.l.Info("teams imported", log.Int("num", len(unique)))
	return nil
}

func (s *Scraper) updateTeamStats(ctx context.Context, teamID int, name string) error {
	members, err := driverrepos.LoadByTeamName(ctx, s.pool, name)
	if err != nil {
		return err
	}
	stats := model.TeamStats{}
	for _, member := range members {
		stats.Points += member.Stats.Points
		stats.Wins += member.Stats.Wins
		stats.Podiums += member.Stats.Podiums
		stats.FastestLaps += member.Stats.FastestLaps
	}
	return teamrepos.UpdateStats(ctx, s.pool, teamID, &stats)
}

// ScrapeResults recomputes the per-driver season aggregates from the
// upstream result rows.
func (s *Scraper) ScrapeResults(ctx context.Context) error {
	rows, err := s.telemetry.RaceResults(ctx)
	if err != nil {
		return err
	}
	byDriver := lo.GroupBy(rows,
		func(item openf1.RaceResult) int { return item.DriverID })
	for driverID, results := range byDriver {
		stats := model.DriverStats{}
		sum := 0
		for i := range results {
			res := &results[i]
			stats.Points += res.Points
			if res.Position == 1 {
				stats.Wins++
			}
			if res.Position <= 3 {
				stats.Podiums++
			}
			if res.FastestLap {
				stats.FastestLaps++
			}
			sum += res.Position
		}
		stats.AvgPosition = float64(sum) / float64(len(results))
		if err := driverrepos.UpdateStats(ctx, s.pool, driverID, &stats); err != nil {
			s.l.Warn("could not update driver stats",
				log.Int("driverId", driverID),
				log.ErrorField(err))
		}
	}
	s.l.Info("driver stats recomputed", log.Int("num", len(byDriver)))
	return nil
}

// ScrapeAll runs the jobs in the original import order.
func (s *Scraper) ScrapeAll(ctx context.Context) error {
	if err := s.ScrapeDrivers(ctx); err != nil {
		return err
	}
	if err := s.ScrapeResults(ctx); err != nil {
		return err
	}
	return s.ScrapeTeams(ctx)
}
