package http

import (
	"net/http"

	"budget/internal/core"
	"budget/internal/services"
)

type categoryRequest struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	BudgetAmount float64 `json:"budget_amount"`
	Color        string  `json:"color"`
}

func (req categoryRequest) input() services.CategoryInput {
	return services.CategoryInput{
		Name:        req.Name,
		Type:        core.CategoryType(req.Type),
		BudgetCents: core.CentsFromAmount(req.BudgetAmount),
		Color:       req.Color,
	}
}

type categoryResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	BudgetAmount core.Money `json:"budget_amount"`
	Color        string     `json:"color"`
}

func toCategoryResponse(c core.Category) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Type:         string(c.Type),
		BudgetAmount: c.Budget,
		Color:        c.Color,
	}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request, u core.User) {
	cats, ok := s.categoriesCache.Get(u.ID)
	if !ok {
		var err error
		cats, err = s.api.ListCategories(r.Context(), u.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.categoriesCache.Set(u.ID, cats)
	}

	out := make([]categoryResponse, len(cats))
	for i, c := range cats {
		out[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, map[string][]categoryResponse{"categories": out})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request, u core.User) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	c, err := s.api.CreateCategory(r.Context(), u.ID, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateCategories(u.ID)
	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request, u core.User) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	c, err := s.api.UpdateCategory(r.Context(), u.ID, r.PathValue("id"), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateCategories(u.ID)
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request, u core.User) {
	if err := s.api.DeleteCategory(r.Context(), u.ID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateCategories(u.ID)
	w.WriteHeader(http.StatusNoContent)
}
