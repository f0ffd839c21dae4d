package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"emi-calculator/domain"
	"emi-calculator/repository"
	"emi-calculator/service"
)

type SessionHandler struct {
	service *service.SessionService
	logger  *zap.Logger
}

func NewSessionHandler(service *service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{service: service, logger: logger}
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	Summary   domain.Summary `json:"summary"`
}

type editResponse struct {
	Accepted bool           `json:"accepted"`
	Summary  domain.Summary `json:"summary"`
}

// POST /sessions
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, summary, err := h.service.Start(r.Context())
	if err != nil {
		h.logger.Error("error starting session", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, sessionResponse{SessionID: id, Summary: summary})
}

// GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	summary, err := h.service.Summary(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, sessionResponse{SessionID: id, Summary: summary})
}

// POST /sessions/{id}/edit
//
// A rejected value still answers 200 with accepted=false: the edit is simply
// ignored and the previous summary returned.
func (h *SessionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var edit domain.Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	accepted, summary, err := h.service.Edit(r.Context(), r.PathValue("id"), edit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, editResponse{Accepted: accepted, Summary: summary})
}

// DELETE /sessions/{id}
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.service.End(r.PathValue("id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidEdit):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("session request failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
