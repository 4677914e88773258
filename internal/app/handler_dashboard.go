package app

import (
	"log"
	"net/http"
)

// handleDashboard renders the live chart page.
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	log.Printf("[app] GET / (dashboard) from %s", r.RemoteAddr)
	data := map[string]any{
		"Title": "TempMon Dashboard",
	}
	if err := a.Tmpl.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
