package web

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"tailwatch/internal/analyze"
	"tailwatch/pkg/model"
)

// indexData feeds the ticker selection form.
type indexData struct {
	Tickers []string
}

// resultsData feeds the results page.
type resultsData struct {
	Result *model.AnalysisResult
}

// handleIndex displays the form to select an index.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := indexData{Tickers: s.config.TickerNames()}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		log.Printf("[WEB] rendering index: %v", err)
	}
}

// handleAnalyze runs the analysis for the selected index and renders the results.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed — use POST", http.StatusMethodNotAllowed)
		return
	}

	name := r.FormValue("index")
	if name == "" {
		http.Error(w, "Invalid index selected", http.StatusBadRequest)
		return
	}
	if _, ok := s.config.Symbol(name); !ok {
		http.Error(w, "Invalid index selected", http.StatusBadRequest)
		return
	}

	result, err := s.analyzer.Run(r.Context(), name, s.now())
	if err != nil {
		var unknown *analyze.UnknownTickerError
		if errors.As(err, &unknown) {
			http.Error(w, "Invalid index selected", http.StatusBadRequest)
			return
		}
		log.Printf("[WEB] analyzing %s: %v", name, err)
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	if err := s.templates.ExecuteTemplate(w, "results.html", resultsData{Result: result}); err != nil {
		log.Printf("[WEB] rendering results: %v", err)
	}
}

// handlePlot serves the z-score plot image for the current day.
func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/plot/")
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		http.Error(w, "Plot not found", http.StatusNotFound)
		return
	}

	path := s.analyzer.PlotPath(name, s.now())
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Plot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}
