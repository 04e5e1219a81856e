package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"finanzas/internal/importer"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := importer.Export(s.tracker.Log(), s.tracker.Profile())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("finanzas_backup_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type importResponse struct {
	Transactions   int  `json:"transactions"`
	ProfileApplied bool `json:"profileApplied"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	txLog, profile, err := importer.Import(data, s.tracker.UserID())
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	// Legacy backups carry no profile; keep the current one.
	applied := profile != nil
	if profile == nil {
		current := s.tracker.Profile()
		profile = &current
	}

	if err := s.tracker.ReplaceAll(r.Context(), txLog, *profile); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Transactions:   len(txLog.Flatten()),
		ProfileApplied: applied,
	})
}
