package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tailwatch/internal/analyze"
	"tailwatch/internal/config"
)

//go:embed templates
var templateFiles embed.FS

// Server represents the web server
type Server struct {
	config    *config.Config
	analyzer  *analyze.Analyzer
	templates *template.Template
	now       func() time.Time
	srv       *http.Server
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, analyzer *analyze.Analyzer) (*Server, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		config:    cfg,
		analyzer:  analyzer,
		templates: tmpl,
		now:       time.Now,
	}, nil
}

// Start starts the web server on the specified port
func (s *Server) Start(port int) error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting tailwatch web UI at http://localhost:%d", port)
	log.Printf("Press Ctrl+C to stop")

	return s.srv.ListenAndServe()
}

// Handler builds the route table with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/plot/", s.handlePlot)
	return requestIDMiddleware(loggingMiddleware(mux))
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// requestIDMiddleware tags each request with an id for log correlation
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs method, path and duration per request
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[WEB] %s %s (%s) %s", r.Method, r.URL.Path,
			w.Header().Get("X-Request-ID"), time.Since(start).Round(time.Millisecond))
	})
}
