package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/cuidarmais/registry/internal/common"
	"github.com/cuidarmais/registry/internal/server/services"
)

type createUserRequest struct {
	Role       string  `json:"role"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	NationalID *string `json:"nationalId"`
	Phone      *string `json:"phone"`
	State      *string `json:"state"`
	City       *string `json:"city"`
}

type updateUserRequest struct {
	Role       *string `json:"role"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	NationalID *string `json:"nationalId"`
	Phone      *string `json:"phone"`
	State      *string `json:"state"`
	City       *string `json:"city"`
}

func (s *HTTPServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Cuidar+ registry API",
		"endpoints": map[string]string{
			"GET /api/users":         "list all users",
			"POST /api/users":        "create a user",
			"GET /api/users/{id}":    "get a user",
			"PUT /api/users/{id}":    "update a user",
			"DELETE /api/users/{id}": "delete a user",
		},
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.startedAt).Truncate(time.Second).String(),
	})
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request) {
	views, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *HTTPServer) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	view, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	view, err := s.users.Create(r.Context(), services.CreateUserParams{
		Role:       req.Role,
		Email:      req.Email,
		Password:   req.Password,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		State:      req.State,
		City:       req.City,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user created", "id", view.ID)
	respondJSON(w, http.StatusCreated, view)
}

func (s *HTTPServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if !s.decode(w, r, &req) {
		return
	}

	view, err := s.users.Update(r.Context(), id, services.UpdateUserParams{
		Role:       req.Role,
		Email:      req.Email,
		Password:   req.Password,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		State:      req.State,
		City:       req.City,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user updated", "id", id)
	respondJSON(w, http.StatusOK, view)
}

func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user deleted", "id", id)
	respondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// decode parses the JSON body into dst. Unknown keys are rejected rather
// than silently forwarded into an update.
func (s *HTTPServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return false
	}
	return true
}

func (s *HTTPServer) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, common.ErrorConflict):
		respondError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
