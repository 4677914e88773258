package app

import (
	"net/http"
)

// registerRoutes sets up all HTTP handlers for the dashboard.
func (a *App) registerRoutes() {
	// Static files (CSS, JS)
	fs := http.FileServer(http.Dir("web/static"))
	a.Mux.Handle("/static/", http.StripPrefix("/static/", fs))

	a.Mux.HandleFunc("/", a.handleDashboard)

	// API routes
	a.Mux.HandleFunc("/api/latest", a.handleLatest)
	a.Mux.HandleFunc("/api/sessions", a.handleSessions)
	a.Mux.HandleFunc("/ws", a.Hub.ServeWS)
}
