package http

import (
	"net/http"
	"strings"
	"time"

	"finanzas/internal/core"
)

type checkpointRequest struct {
	Date     string                `json:"date"`
	Declared core.Money            `json:"declared"`
	Accounts map[string]core.Money `json:"accounts,omitempty"`
}

func (s *Server) handleCheckpoint(w http.ResponseWriter, r *http.Request) {
	var req checkpointRequest
	if !decodeBody(w, r, &req) {
		return
	}

	target, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	result, err := s.tracker.CreateCheckpoint(r.Context(), target, req.Declared, req.Accounts)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type fundRequest struct {
	Amount     core.Money `json:"amount"`
	ImpactMain bool       `json:"impactMain"`
	Date       string     `json:"date,omitempty"`
}

func (req fundRequest) day() (core.Date, error) {
	if strings.TrimSpace(req.Date) == "" {
		return core.DateOf(time.Now()), nil
	}
	return core.ParseDate(req.Date)
}

func (s *Server) handleFundAdd(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if !decodeBody(w, r, &req) {
		return
	}

	day, err := req.day()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	change, err := s.tracker.FundAdd(r.Context(), r.PathValue("fund"), req.Amount, req.ImpactMain, day)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

func (s *Server) handleFundSet(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if !decodeBody(w, r, &req) {
		return
	}

	day, err := req.day()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	change, err := s.tracker.FundSet(r.Context(), r.PathValue("fund"), req.Amount, req.ImpactMain, day)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

type distributeResponse struct {
	Applied      bool   `json:"applied"`
	Month        string `json:"month,omitempty"`
	Transactions int    `json:"transactions"`
	NewBalances  any    `json:"newBalances,omitempty"`
}

func (s *Server) handleDistribute(w http.ResponseWriter, r *http.Request) {
	today := core.DateOf(time.Now())
	if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		today = d
	}

	result, ok, err := s.tracker.Distribute(r.Context(), today)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, distributeResponse{Applied: false})
		return
	}
	writeJSON(w, http.StatusOK, distributeResponse{
		Applied:      true,
		Month:        result.Month,
		Transactions: len(result.Transactions),
		NewBalances:  result.NewBalances,
	})
}
