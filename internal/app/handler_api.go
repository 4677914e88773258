// Package app implements the web server and API layer for the TempMon dashboard.
package app

import (
	"encoding/json"
	"log"
	"net/http"

	"TempMon/internal/model"
)

// handleLatest returns the most recent accepted sample as JSON.
func (a *App) handleLatest(w http.ResponseWriter, r *http.Request) {
	s := a.Hub.Latest()
	if s == nil {
		http.Error(w, "no sample data", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		log.Printf("[app] warning: failed to write latest sample: %v", err)
	}
}

// handleSessions returns all finished session summaries, newest first.
func (a *App) handleSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.Store.ListSessions()
	if err != nil {
		http.Error(w, "failed to read sessions", http.StatusInternalServerError)
		return
	}
	if sessions == nil {
		sessions = []model.SessionInfo{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sessions); err != nil {
		log.Printf("[app] warning: failed to write sessions: %v", err)
	}
}
