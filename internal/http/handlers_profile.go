package http

import (
	"fmt"
	"net/http"
	"time"

	"finanzas/internal/core"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Profile())
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	profile := core.DefaultProfile()
	if !decodeBody(w, r, &profile) {
		return
	}

	if err := s.tracker.SaveProfile(r.Context(), profile); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Profile())
}

// handlePlanImport pulls this month's row from the plan sheet and
// overlays it on the profile.
func (s *Server) handlePlanImport(w http.ResponseWriter, r *http.Request) {
	if s.planReader == nil {
		writeError(w, r, http.StatusServiceUnavailable, fmt.Errorf("no plan spreadsheet configured"))
		return
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v, err := parseMonthParam(r.URL.Query().Get("month")); err == nil {
		year, month = v.Year(), int(v.Month())
	}

	patch, err := s.planReader.ReadPlan(r.Context(), year, month)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}

	updated := patch.ApplyTo(s.tracker.Profile())
	if err := s.tracker.SaveProfile(r.Context(), updated); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Patch   any `json:"patch"`
		Profile any `json:"profile"`
	}{Patch: patch, Profile: s.tracker.Profile()})
}

// parseMonthParam parses "YYYY-MM" into the first day of that month.
func parseMonthParam(v string) (core.Date, error) {
	return core.ParseDate(v + "-01")
}
