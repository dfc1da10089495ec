package http

import (
	"net/http"
	"strconv"
	"time"

	"budget/internal/core"
)

type registerUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	u, err := s.api.RegisterUser(r.Context(), req.Email, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	})
}

// pathPeriod reads the {month}/{year} path segments. Non-numeric segments
// are a malformed request; range checks happen in the service.
func pathPeriod(r *http.Request) (core.Period, bool) {
	month, errM := strconv.Atoi(r.PathValue("month"))
	year, errY := strconv.Atoi(r.PathValue("year"))
	if errM != nil || errY != nil {
		return core.Period{}, false
	}
	return core.Period{Month: month, Year: year}, true
}
