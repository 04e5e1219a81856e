package http

import (
	"net/http"
	"strings"

	"finanzas/internal/core"
	"finanzas/internal/services"
)

// transactionRequest is the wire form of a transaction write. Amount
// accepts numbers and strings with either decimal separator.
type transactionRequest struct {
	Date        string     `json:"date"`
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
}

func (req transactionRequest) toInput() (services.TransactionInput, error) {
	day, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Date:        day,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		Type:        core.TxType(strings.TrimSpace(req.Type)),
		Category:    strings.TrimSpace(req.Category),
	}, nil
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txLog := s.tracker.Log()

	if month := strings.TrimSpace(r.URL.Query().Get("month")); month != "" {
		filtered := core.TransactionLog{}
		for key, day := range txLog {
			if strings.HasPrefix(key, month) {
				filtered[key] = day
			}
		}
		txLog = filtered
	}

	writeJSON(w, http.StatusOK, txLog)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	tx, err := s.tracker.AddTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	tx, err := s.tracker.UpdateTransaction(r.Context(), core.Transaction{
		ID:          r.PathValue("id"),
		Date:        input.Date,
		Amount:      input.Amount,
		Description: input.Description,
		Type:        input.Type,
		Category:    input.Category,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
