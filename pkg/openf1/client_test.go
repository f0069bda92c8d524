package openf1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/position", r.URL.Path)
			assert.Equal(t, "9001", r.URL.Query().Get("session_key"))
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test handler
			w.Write([]byte(`[
				{"driver_number": 1, "position": 1,
				 "date": "2024-09-01T15:00:00Z", "status": "Finished"},
				{"driver_number": 16, "position": 2,
				 "date": "2024-09-01T15:00:01Z", "time": 5421.042}
			]`))
		}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	positions, err := c.Positions(context.Background(), "9001")
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, 1, positions[0].Position)
	assert.Nil(t, positions[0].ReportedTime)
	require.NotNil(t, positions[1].ReportedTime)
	assert.InDelta(t, 5421.042, *positions[1].ReportedTime, 0.0001)
}

func TestLapsNullDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/laps", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test handler
			w.Write([]byte(`[
				{"driver_number": 1, "lap_number": 1, "lap_duration": 92.5},
				{"driver_number": 1, "lap_number": 2, "lap_duration": null}
			]`))
		}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL))
	laps, err := c.Laps(context.Background(), "9001")
	require.NoError(t, err)
	require.Len(t, laps, 2)
	require.NotNil(t, laps[0].LapDuration)
	assert.Nil(t, laps[1].LapDuration)
}

func TestUpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "invalid payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				//nolint:errcheck // test handler
				w.Write([]byte(`{not json`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(WithBaseURL(srv.URL))
			_, err := c.Sessions(context.Background())
			assert.ErrorIs(t, err, ErrUpstream)
		})
	}
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond))
	_, err := c.Drivers(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
}
