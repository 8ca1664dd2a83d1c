// SPDX-FileCopyrightText: 2026 The skynet-secure authors
// SPDX-License-Identifier: Apache-2.0

package skynet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type healthResponse struct {
	Status         string `json:"status"`
	DroneConnected bool   `json:"drone_connected"`
	ActiveClients  int    `json:"active_clients"`
}

type commandRequest struct {
	Command string `json:"command"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router returns the dashboard's HTTP surface: health, recent telemetry, a
// live telemetry stream and command submission.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Get("/telemetry", s.handleTelemetry)
	r.Get("/telemetry/stream", s.handleTelemetryStream)
	r.Post("/command", s.handleCommand)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:         "healthy",
		DroneConnected: s.DroneConnected(),
		ActiveClients:  s.Subscribers(),
	})
}

func (s *Server) handleTelemetry(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.History())
}

// handleTelemetryStream delivers telemetry records as server-sent events for
// as long as the client stays connected.
func (s *Server) handleTelemetryStream(w http.ResponseWriter, r *http.Request) {
	fl, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	sub := s.Subscribe()
	defer sub.Close()

	go func() {
		<-r.Context().Done()
		sub.Close()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fl.Flush()

	for t := range sub.Telemetry() {
		data, err := json.Marshal(t)
		if err != nil {
			return
		}

		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return
		}

		fl.Flush()
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing command"})
		return
	}

	if err := s.SendCommand(req.Command); err != nil {
		if errors.Is(err, ErrNotConnected) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Drone not connected"})
		} else {
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Failed to send command to drone"})
		}

		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
