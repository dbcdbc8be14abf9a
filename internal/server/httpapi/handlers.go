package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ipeonte/usernotes/internal/common"
	"github.com/ipeonte/usernotes/internal/server/models"
)

// Wire DTOs. A note travels as {"id", "note"}; the owner and shared set
// are never exposed.
type noteDTO struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

type noteInput struct {
	Note *string `json:"note"`
}

type userInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenDTO struct {
	Token string `json:"token"`
}

func toNoteDTO(n *models.Note) noteDTO {
	return noteDTO{ID: n.ID, Note: n.Body}
}

func toNoteDTOs(list []*models.Note) []noteDTO {
	result := make([]noteDTO, 0, len(list))
	for _, n := range list {
		result = append(result, toNoteDTO(n))
	}
	return result
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Password == "" {
		http.Error(w, "name and password are required", http.StatusBadRequest)
		return
	}

	if _, err := s.users.SignUp(r.Context(), in.Name, in.Password); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Password == "" {
		http.Error(w, "name and password are required", http.StatusBadRequest)
		return
	}

	token, err := s.users.Authenticate(r.Context(), in.Name, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	s.writeJSON(w, tokenDTO{Token: token})
}

func (s *Server) handleFindAll(w http.ResponseWriter, r *http.Request, requester string) {
	result, err := s.notes.FindAll(r.Context(), requester)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, toNoteDTOs(result))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, requester string) {
	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Note == nil {
		http.Error(w, "note is required", http.StatusBadRequest)
		return
	}

	created, err := s.notes.Add(r.Context(), requester, *in.Note)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, toNoteDTO(created))
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request, requester string) {
	result, err := s.notes.Find(r.Context(), requester, r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, toNoteDTO(result))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request, requester string) {
	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Note == nil {
		http.Error(w, "note is required", http.StatusBadRequest)
		return
	}

	updated, err := s.notes.Update(r.Context(), requester, r.PathValue("id"), *in.Note)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, toNoteDTO(updated))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, requester string) {
	if err := s.notes.Delete(r.Context(), requester, r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request, requester string) {
	if err := s.notes.Share(r.Context(), requester, r.PathValue("noteId"), r.PathValue("userId")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, requester string) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	result, err := s.notes.Search(r.Context(), requester, query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, toNoteDTOs(result))
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy to HTTP statuses. Persistence faults
// reveal only the failing operation name, never storage details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var opErr *common.OpError

	switch {
	case errors.Is(err, common.ErrorRateExceeded):
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	case errors.Is(err, common.ErrorUnauthorized):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, common.ErrorForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, common.ErrorConflict):
		http.Error(w, "already exists", http.StatusConflict)
	case errors.As(err, &opErr):
		s.logger.Error(r.Context(), "Operation failed", "op", opErr.Op, "error", opErr.Err.Error())
		http.Error(w, opErr.Op+" Error", http.StatusInternalServerError)
	default:
		s.logger.Error(r.Context(), "Request failed", "error", err.Error())
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
