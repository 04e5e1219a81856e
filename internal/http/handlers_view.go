package http

import (
	"net/http"
	"time"
)

// handleMonthView serves the derived month view. The path month is
// "YYYY-MM"; views are cached per snapshot version.
func (s *Server) handleMonthView(w http.ResponseWriter, r *http.Request) {
	ref, err := parseMonthParam(r.PathValue("month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	view := s.monthView(ref.Year(), int(ref.Month()), time.Now())
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	ref, err := parseMonthParam(r.PathValue("month"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	view := s.monthView(ref.Year(), int(ref.Month()), time.Now())
	writeJSON(w, http.StatusOK, view.Insights)
}
