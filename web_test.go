// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newWebServer(t *testing.T) *Server {
	t.Helper()

	svr, err := NewServer(Config{
		EncryptionKey: testSecrets.encryptionKey,
		AuthSecret:    testSecrets.authSecret,
	})
	require.NoError(t, err)

	return svr
}

func TestWebHealth(t *testing.T) {
	require := require.New(t)

	svr := newWebServer(t)

	rec := httptest.NewRecorder()
	svr.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(http.StatusOK, rec.Code)

	var health healthResponse
	require.NoError(json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal("healthy", health.Status)
	require.False(health.DroneConnected)
	require.Equal(0, health.ActiveClients)
}

func TestWebTelemetryHistory(t *testing.T) {
	require := require.New(t)

	svr := newWebServer(t)

	record := Telemetry{Timestamp: 1, BatteryLevel: 50, Status: StatusActive}
	svr.record(record)

	rec := httptest.NewRecorder()
	svr.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/telemetry", nil))

	require.Equal(http.StatusOK, rec.Code)

	var history []Telemetry
	require.NoError(json.Unmarshal(rec.Body.Bytes(), &history))
	require.Equal([]Telemetry{record}, history)
}

func TestWebCommandWithoutDrone(t *testing.T) {
	require := require.New(t)

	svr := newWebServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(`{"command": "up"}`))
	svr.Router().ServeHTTP(rec, req)

	require.Equal(http.StatusServiceUnavailable, rec.Code)

	var resp errorResponse
	require.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal("Drone not connected", resp.Error)
}

func TestWebCommandMissingBody(t *testing.T) {
	require := require.New(t)

	svr := newWebServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(`{}`))
	svr.Router().ServeHTTP(rec, req)

	require.Equal(http.StatusBadRequest, rec.Code)
}

func TestWebHistoryBounded(t *testing.T) {
	require := require.New(t)

	svr := newWebServer(t)

	for i := 0; i < HistorySize+10; i++ {
		svr.record(Telemetry{Timestamp: float64(i)})
	}

	history := svr.History()
	require.Len(history, HistorySize)
	require.Equal(float64(10), history[0].Timestamp, "oldest records are discarded first")
}
