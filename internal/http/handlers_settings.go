package http

import (
	"net/http"

	"budget/internal/core"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, u core.User) {
	p, ok := pathPeriod(r)
	if !ok {
		badRequest(w, "month and year must be numeric")
		return
	}

	summary, err := s.api.Summary(r.Context(), u.ID, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type settingsRequest struct {
	MonthlySalary float64 `json:"monthly_salary"`
	SavingsGoal   float64 `json:"savings_goal"`
}

type settingsResponse struct {
	MonthlySalary core.Money `json:"monthly_salary"`
	SavingsGoal   core.Money `json:"savings_goal"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	IsDefault     bool       `json:"isDefault"`
	Warnings      []string   `json:"warnings,omitempty"`
}

func toSettingsResponse(bs core.BudgetSettings, warnings []string) settingsResponse {
	return settingsResponse{
		MonthlySalary: bs.MonthlySalary,
		SavingsGoal:   bs.SavingsGoal,
		Month:         bs.Month,
		Year:          bs.Year,
		IsDefault:     bs.IsDefault,
		Warnings:      warnings,
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request, u core.User) {
	p, ok := pathPeriod(r)
	if !ok {
		badRequest(w, "month and year must be numeric")
		return
	}

	bs, err := s.api.GetSettings(r.Context(), u.ID, p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(bs, nil))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request, u core.User) {
	p, ok := pathPeriod(r)
	if !ok {
		badRequest(w, "month and year must be numeric")
		return
	}

	var req settingsRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	res, err := s.api.UpdateSettings(r.Context(), u.ID, p, core.SettingsInput{
		MonthlySalary: core.Money{Cents: core.CentsFromAmount(req.MonthlySalary)},
		SavingsGoal:   core.Money{Cents: core.CentsFromAmount(req.SavingsGoal)},
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(res.Settings, res.Warnings))
}
