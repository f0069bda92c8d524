package server

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
)

// handleListRaces forwards the upstream race sessions, newest first.
func (s *Server) handleListRaces(c *gin.Context) {
	sessions, err := s.telemetry.Sessions(c.Request.Context())
	if err != nil {
		s.respondUpstreamError(c, err)
		return
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].DateStart.After(sessions[j].DateStart)
	})
	c.JSON(http.StatusOK, sessions)
}

// handleLapTimes forwards the laps of a session, invalidated laps
// filtered out, sorted by lap number.
func (s *Server) handleLapTimes(c *gin.Context) {
	sessionID := c.Param("sessionId")
	laps, err := s.telemetry.Laps(c.Request.Context(), sessionID)
	if err != nil {
		s.respondUpstreamError(c, err)
		return
	}
	valid := lo.Filter(laps, func(item openf1.Lap, _ int) bool {
		return item.LapDuration != nil && *item.LapDuration > 0
	})
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].LapNumber < valid[j].LapNumber
	})
	c.JSON(http.StatusOK, valid)
}

func (s *Server) handleRaceResults(c *gin.Context) {
	sessionID := c.Param("sessionId")
	entries, err := s.reconciler.Reconcile(c.Request.Context(), sessionID)
	if err != nil {
		s.respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// respondUpstreamError hides upstream details behind a generic body.
func (s *Server) respondUpstreamError(c *gin.Context, err error) {
	s.l.Error("upstream request failed", log.ErrorField(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "upstream data unavailable"})
}
