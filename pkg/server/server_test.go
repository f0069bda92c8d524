//nolint:funlen //ok for this test code
package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolarischia/f1-analytics/pkg/auth"
	"github.com/nicolarischia/f1-analytics/pkg/model"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
	"github.com/nicolarischia/f1-analytics/pkg/results"
)

func testRouter(s *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	s.setupRoutes(router)
	return router
}

func TestAuthRequired(t *testing.T) {
	srv := NewServer(WithTokenIssuer(auth.NewTokenIssuer("secret")))
	router := testRouter(srv)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "invalid token", header: "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := NewServer()

	newRouter := func(account *model.User) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(auth.AddAuthToContext(
				c.Request.Context(), &accountAuth{account: account}))
			c.Set(currentUserKey, account)
		})
		router.DELETE("/api/drivers/:id", srv.adminRequired(),
			func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/drivers/1", nil)
	rec := httptest.NewRecorder()
	newRouter(&model.User{Username: "fan"}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "permission denied")

	rec = httptest.NewRecorder()
	newRouter(&model.User{Username: "ops", IsAdmin: true}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRaceResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/position":
				//nolint:errcheck // test handler
				w.Write([]byte(`[
					{"driver_number": 1, "position": 1,
					 "date": "2024-09-01T15:00:00Z", "driver_name": "A"},
					{"driver_number": 2, "position": 2,
					 "date": "2024-09-01T15:00:00Z", "driver_name": "B"}
				]`))
			case "/laps":
				//nolint:errcheck // test handler
				w.Write([]byte(`[
					{"driver_number": 1, "lap_number": 1, "lap_duration": 61.0},
					{"driver_number": 2, "lap_number": 1, "lap_duration": 62.121}
				]`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
	defer upstream.Close()

	telemetry := openf1.NewClient(openf1.WithBaseURL(upstream.URL))
	srv := NewServer(
		WithTelemetryClient(telemetry),
		WithReconciler(results.NewReconciler(results.WithTelemetry(telemetry))))
	router := testRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/api/race-results/9001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []results.ClassificationEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "A", entries[0].DriverName)
	assert.Equal(t, "-", entries[0].Gap)
	assert.Equal(t, "00:01.121", entries[1].Gap)
}

func TestRaceResultsUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
	defer upstream.Close()

	telemetry := openf1.NewClient(openf1.WithBaseURL(upstream.URL))
	srv := NewServer(
		WithTelemetryClient(telemetry),
		WithReconciler(results.NewReconciler(results.WithTelemetry(telemetry))))
	router := testRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/api/race-results/9001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	// upstream details must not leak into the response body
	assert.NotContains(t, rec.Body.String(), "503")
}

func TestLapTimesFiltersInvalidLaps(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test handler
			w.Write([]byte(`[
				{"driver_number": 1, "lap_number": 2, "lap_duration": 91.0},
				{"driver_number": 1, "lap_number": 1, "lap_duration": 92.5},
				{"driver_number": 1, "lap_number": 3, "lap_duration": null}
			]`))
		}))
	defer upstream.Close()

	srv := NewServer(
		WithTelemetryClient(openf1.NewClient(openf1.WithBaseURL(upstream.URL))))
	router := testRouter(srv)

	req := httptest.NewRequest(http.MethodGet, "/api/laptimes/9001", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var laps []openf1.Lap
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &laps))
	require.Len(t, laps, 2)
	assert.Equal(t, 1, laps[0].LapNumber)
	assert.Equal(t, 2, laps[1].LapNumber)
}
