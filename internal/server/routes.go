package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/codescanhq/codescan/internal/cache"
	"github.com/codescanhq/codescan/internal/engine"
	"github.com/codescanhq/codescan/internal/report"
	"github.com/codescanhq/codescan/internal/similarity"
)

// registerRoutes mounts the codescan API.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Get("/monitoring/files", s.handleListFiles)
		r.Post("/monitoring/check", s.handleCheck)
		r.Get("/monitoring/detail/{rank}", s.handleDetail)
		r.Post("/reset", s.handleReset)
		r.Post("/export/csv", s.handleExportCSV)
		r.Post("/export/pdf", s.handleExportPDF)
		r.Get("/history", s.handleHistory)
	})
}

// userID extracts the caller's identity. An empty value is a client error.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps engine error kinds to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNoFiles):
		writeError(w, http.StatusBadRequest, "no source files uploaded")
	case errors.Is(err, cache.ErrNoEmbeddings):
		writeError(w, http.StatusUnprocessableEntity, "no files could be embedded")
	case errors.Is(err, cache.ErrNotFound):
		writeError(w, http.StatusNotFound, "no results yet: run a comparison first")
	case errors.Is(err, engine.ErrRankOutOfRange):
		writeError(w, http.StatusNotFound, "rank index out of range")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// resultView decorates a scored pair with its risk band for API clients.
type resultView struct {
	FileA      string  `json:"file_1"`
	FileB      string  `json:"file_2"`
	Similarity float64 `json:"similarity"`
	RiskLevel  string  `json:"risk_level"`
}

func toViews(results []similarity.Result) []resultView {
	views := make([]resultView, len(results))
	for i, r := range results {
		views[i] = resultView{
			FileA:      r.FileA,
			FileB:      r.FileB,
			Similarity: r.Score,
			RiskLevel:  string(report.Classify(r.Score)),
		}
	}
	return views
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	files, err := s.engine.ListFiles(uid)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploaded_files": files})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	maxFiles := 0
	if v := r.URL.Query().Get("max_files"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "max_files must be a non-negative integer")
			return
		}
		maxFiles = n
	}

	results, err := s.engine.RunComparison(r.Context(), uid, maxFiles)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"plagiarism_results": toViews(results)})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	rank, err := strconv.Atoi(chi.URLParam(r, "rank"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "rank must be an integer")
		return
	}

	detail, err := s.engine.GetDetail(r.Context(), uid, rank)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	if err := s.engine.Reset(r.Context(), uid); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user data reset"})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	results, err := s.engine.LatestResults(r.Context(), uid)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	name := fmt.Sprintf("plagiarism_report_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	if err := report.WriteCSV(w, results); err != nil {
		// Headers are already gone; the best we can do is log-worthy error text.
		fmt.Fprintf(w, "export error: %v", err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	results, err := s.engine.LatestResults(r.Context(), uid)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	name := fmt.Sprintf("plagiarism_report_%s.pdf", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	if err := report.WritePDF(w, results); err != nil {
		fmt.Fprintf(w, "export error: %v", err)
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	runs, err := s.engine.History(r.Context(), uid, limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}
