package http

import (
	"net/http"

	"budget/internal/core"
	"budget/internal/services"
)

type transactionRequest struct {
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	TransactionDate string  `json:"transaction_date"`
	CategoryID      string  `json:"category_id"`
}

// candidate converts the request to a domain candidate. A malformed date
// becomes a collected field error rather than a decode failure, so it
// reports alongside any other violations.
func (req transactionRequest) candidate() (core.TransactionCandidate, core.ValidationErrors) {
	c := core.TransactionCandidate{
		Amount:      core.Money{Cents: core.CentsFromAmount(req.Amount)},
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.TransactionDate != "" {
		d, err := core.ParseDate(req.TransactionDate)
		if err != nil {
			return c, core.ValidationErrors{{
				Field: "transaction_date", Message: "must be a YYYY-MM-DD date", Value: req.TransactionDate,
			}}
		}
		c.Date = d
	}
	return c, nil
}

type transactionBody struct {
	ID              string     `json:"id"`
	Amount          core.Money `json:"amount"`
	Description     string     `json:"description"`
	TransactionDate string     `json:"transaction_date"`
	CategoryID      string     `json:"category_id"`
}

func newTransactionBody(t core.Transaction) transactionBody {
	return transactionBody{
		ID:              t.ID,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.Date.String(),
		CategoryID:      t.CategoryID,
	}
}

type createTransactionResponse struct {
	transactionBody
	BudgetInfo services.BudgetInfo `json:"budgetInfo"`
	Warnings   []string            `json:"warnings"`
}

type transactionListItem struct {
	ID              string     `json:"id"`
	Amount          core.Money `json:"amount"`
	Description     string     `json:"description"`
	TransactionDate string     `json:"transaction_date"`
	CategoryID      string     `json:"category_id"`
	CategoryName    string     `json:"category_name"`
	CategoryType    string     `json:"category_type"`
	Color           string     `json:"color"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, u core.User) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	c, verrs := req.candidate()
	if len(verrs) > 0 {
		writeError(w, r, verrs)
		return
	}

	res, err := s.api.CreateTransaction(r.Context(), u.ID, c)
	if err != nil {
		writeError(w, r, err)
		return
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusCreated, createTransactionResponse{
		transactionBody: newTransactionBody(res.Transaction),
		BudgetInfo:      res.BudgetInfo,
		Warnings:        warnings,
	})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request, u core.User) {
	p, ok := pathPeriod(r)
	if !ok {
		badRequest(w, "month and year must be numeric")
		return
	}

	rows, err := s.api.TransactionsForPeriod(r.Context(), u.ID, p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]transactionListItem, len(rows))
	for i, row := range rows {
		out[i] = transactionListItem{
			ID:              row.Transaction.ID,
			Amount:          row.Transaction.Amount,
			Description:     row.Transaction.Description,
			TransactionDate: row.Transaction.Date.String(),
			CategoryID:      row.Transaction.CategoryID,
			CategoryName:    row.CategoryName,
			CategoryType:    string(row.CategoryType),
			Color:           row.Color,
		}
	}
	writeJSON(w, http.StatusOK, map[string][]transactionListItem{"transactions": out})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request, u core.User) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	c, verrs := req.candidate()
	if len(verrs) > 0 {
		writeError(w, r, verrs)
		return
	}

	updated, err := s.api.UpdateTransaction(r.Context(), u.ID, r.PathValue("id"), c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTransactionBody(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request, u core.User) {
	if err := s.api.DeleteTransaction(r.Context(), u.ID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
