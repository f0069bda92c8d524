// Package results computes the final classification of a race session
// from raw OpenF1 lap and position telemetry.
package results

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
)

// ClassificationEntry is one line of the final classification. It is
// derived fresh on every request and never persisted.
//
//nolint:tagliatelle // client compatibility
type ClassificationEntry struct {
	DriverNumber int    `json:"driver_number"`
	DriverName   string `json:"driver_name"`
	TeamName     string `json:"team_name"`
	Position     int    `json:"position"`
	RaceTime     string `json:"time"`
	Gap          string `json:"gap"`
	Retired      bool   `json:"retired"`
	Points       int    `json:"points"`
}

// TelemetrySource delivers the raw session data the reconciler works on.
type TelemetrySource interface {
	Positions(ctx context.Context, sessionID string) ([]openf1.Position, error)
	Laps(ctx context.Context, sessionID string) ([]openf1.Lap, error)
}

// DriverSource resolves display data for drivers the telemetry payload
// doesn't name. May be nil.
type DriverSource interface {
	ByNumber(ctx context.Context, driverNumber int) (*model.Driver, error)
}

type (
	Reconciler struct {
		telemetry TelemetrySource
		drivers   DriverSource
		l         *log.Logger
	}
	Option func(*Reconciler)
)

func WithTelemetry(arg TelemetrySource) Option {
	return func(r *Reconciler) {
		r.telemetry = arg
	}
}

func WithDriverSource(arg DriverSource) Option {
	return func(r *Reconciler) {
		r.drivers = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(r *Reconciler) {
		r.l = arg
	}
}

func NewReconciler(opts ...Option) *Reconciler {
	ret := &Reconciler{
		l: log.Default().Named("results"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Reconcile produces the ordered final classification for one session.
// Both upstream fetches must succeed; any failure aborts the whole
// computation and no partial result is returned. A session without
// position data yields an empty (non-nil) classification.
func (r *Reconciler) Reconcile(ctx context.Context, sessionID string) (
	[]ClassificationEntry, error,
) {
	var (
		positions []openf1.Position
		laps      []openf1.Lap
	)
	// the two fetches are independent reads; run them concurrently and
	// join before reconciling
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		var err error
		positions, err = r.telemetry.Positions(grpCtx, sessionID)
		return err
	})
	grp.Go(func() error {
		var err error
		laps, err = r.telemetry.Laps(grpCtx, sessionID)
		return err
	})
	if err := grp.Wait(); err != nil {
		r.l.Error("telemetry fetch failed",
			log.String("session", sessionID),
			log.ErrorField(err))
		return nil, err
	}

	raceTimes := cumulativeRaceTimes(laps)
	authoritative := latestPositions(positions)

	entries := make([]ClassificationEntry, 0, len(authoritative))
	for _, pos := range authoritative {
		entries = append(entries, r.buildEntry(ctx, pos, raceTimes[pos.DriverNumber]))
	}

	// ascending by position; zero/missing positions sort last; stable
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].Position, entries[j].Position
		if pi == 0 {
			return false
		}
		if pj == 0 {
			return true
		}
		return pi < pj
	})

	applyGaps(entries, raceTimes)
	return entries, nil
}

// cumulativeRaceTimes sums each driver's valid lap durations. Laps with
// an absent or non-positive duration don't count. Drivers without any
// valid lap are absent from the result (cumulative time zero).
func cumulativeRaceTimes(laps []openf1.Lap) map[int]float64 {
	ret := make(map[int]float64)
	for _, lap := range laps {
		if lap.LapDuration == nil || *lap.LapDuration <= 0 {
			continue
		}
		ret[lap.DriverNumber] += *lap.LapDuration
	}
	return ret
}

// latestPositions reduces the sample stream to one authoritative sample
// per driver: the one with the latest observation timestamp. On equal
// timestamps the sample seen later in the input wins; this depends on
// upstream response ordering and is deliberately not strengthened.
// Samples without a position value are discarded before grouping.
// The returned order is each driver's first appearance in the input so
// the later sort stays deterministic.
func latestPositions(positions []openf1.Position) []openf1.Position {
	order := make([]int, 0, len(positions))
	latest := make(map[int]openf1.Position)
	for _, pos := range positions {
		if pos.Position == 0 {
			continue
		}
		current, seen := latest[pos.DriverNumber]
		if !seen {
			order = append(order, pos.DriverNumber)
			latest[pos.DriverNumber] = pos
			continue
		}
		if !pos.Date.Before(current.Date) {
			latest[pos.DriverNumber] = pos
		}
	}
	ret := make([]openf1.Position, 0, len(order))
	for _, num := range order {
		ret = append(ret, latest[num])
	}
	return ret
}

var retirementMarkers = []string{"retired", "dnf", "accident"}

func isRetired(status string) bool {
	s := strings.ToLower(status)
	for _, marker := range retirementMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

//nolint:whitespace // can't make both editor and linter happy
func (r *Reconciler) buildEntry(
	ctx context.Context, pos openf1.Position, raceTime float64,
) ClassificationEntry {
	ret := ClassificationEntry{
		DriverNumber: pos.DriverNumber,
		DriverName:   pos.DriverName,
		TeamName:     pos.TeamName,
		Position:     pos.Position,
		Retired:      isRetired(pos.Status),
		Points:       PointsForPosition(pos.Position),
	}
	switch {
	case raceTime > 0:
		ret.RaceTime = FormatRaceTime(raceTime)
	case pos.ReportedTime != nil:
		ret.RaceTime = FormatRaceTime(*pos.ReportedTime)
	default:
		ret.RaceTime = ZeroTime
	}
	if ret.DriverName == "" || ret.TeamName == "" {
		r.resolveDriver(ctx, &ret)
	}
	if ret.DriverName == "" {
		ret.DriverName = fmt.Sprintf("Driver %d", pos.DriverNumber)
	}
	return ret
}

func (r *Reconciler) resolveDriver(ctx context.Context, entry *ClassificationEntry) {
	if r.drivers == nil {
		return
	}
	driver, err := r.drivers.ByNumber(ctx, entry.DriverNumber)
	if err != nil || driver == nil {
		return
	}
	if entry.DriverName == "" {
		entry.DriverName = driver.Name
	}
	if entry.TeamName == "" {
		entry.TeamName = driver.TeamName
	}
}

// applyGaps computes each entry's gap to the leader. The leader and any
// entry without timing data carry the NoGap marker.
func applyGaps(entries []ClassificationEntry, raceTimes map[int]float64) {
	var leaderTime float64
	for i := range entries {
		if entries[i].Position == 1 {
			leaderTime = raceTimes[entries[i].DriverNumber]
			break
		}
	}
	for i := range entries {
		own := raceTimes[entries[i].DriverNumber]
		if entries[i].Position == 1 || own <= 0 || own <= leaderTime {
			entries[i].Gap = NoGap
			continue
		}
		entries[i].Gap = FormatRaceTime(own - leaderTime)
	}
}
