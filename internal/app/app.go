package app

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// App is the optional live dashboard: a read-only web view of the current
// session plus the session history.
type App struct {
	Store  *Store
	Hub    *Hub
	Tmpl   *template.Template
	Mux    *http.ServeMux
	Server *http.Server
}

// NewApp initializes the web app with templates, the session store and routes.
func NewApp(store *Store, hub *Hub) (*App, error) {
	cwd, _ := os.Getwd()
	tmplPath := filepath.Join(cwd, "web", "templates", "*.html")

	tmpl := template.New("").Funcs(template.FuncMap{
		"year": func() int { return time.Now().Year() },
	})

	tmpl, err := tmpl.ParseGlob(tmplPath)
	if err != nil {
		return nil, fmt.Errorf("[app] failed to load templates: %w", err)
	}

	app := &App{
		Store: store,
		Hub:   hub,
		Tmpl:  tmpl,
		Mux:   http.NewServeMux(),
	}

	app.registerRoutes()
	return app, nil
}

// Start launches the web server and blocks until stopped.
func (a *App) Start(addr string) error {
	if addr == "" {
		log.Println("[app] dashboard not started (empty address)")
		return nil
	}

	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	a.Server = &http.Server{
		Addr:    addr,
		Handler: a.Mux,
	}

	log.Printf("[app] dashboard listening at http://%s", addr)

	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("[app] HTTP server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the web server.
func (a *App) Stop() {
	if a == nil || a.Server == nil {
		return
	}
	log.Println("[app] shutting down dashboard...")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.Server.Shutdown(ctx); err != nil {
		log.Printf("[app] HTTP server shutdown error: %v", err)
	}
}
