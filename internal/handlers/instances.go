package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aviiiiral/eventcalendarr/internal/models"
	"github.com/aviiiiral/eventcalendarr/internal/services"
)

type InstanceHandler struct {
	resolver *services.Resolver
}

func NewInstanceHandler(resolver *services.Resolver) *InstanceHandler {
	return &InstanceHandler{resolver: resolver}
}

type resolveEditRequest struct {
	Instance models.Instance `json:"instance"`
	Event    models.Event    `json:"event"`
	Scope    services.Scope  `json:"scope"`
	Proceed  bool            `json:"proceed"`
}

func (handler *InstanceHandler) ResolveEdit(w http.ResponseWriter, r *http.Request) {
	var request resolveEditRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid resolve body"})
		return
	}

	resolved, err := handler.resolver.ResolveEdit(r.Context(), request.Instance, request.Event, request.Scope, request.Proceed)
	if err != nil {
		writeResolutionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolved)
}

type resolveDeleteRequest struct {
	Instance models.Instance `json:"instance"`
	Scope    services.Scope  `json:"scope"`
}

func (handler *InstanceHandler) ResolveDelete(w http.ResponseWriter, r *http.Request) {
	var request resolveDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid resolve body"})
		return
	}

	if err := handler.resolver.ResolveDelete(r.Context(), request.Instance, request.Scope); err != nil {
		writeResolutionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	Instance  models.Instance `json:"instance"`
	TargetDay string          `json:"targetDay"`
	Scope     services.Scope  `json:"scope"`
	Proceed   bool            `json:"proceed"`
}

func (handler *InstanceHandler) Move(w http.ResponseWriter, r *http.Request) {
	var request moveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid move body"})
		return
	}

	targetDay, err := time.ParseInLocation(models.DateLayout, request.TargetDay, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "targetDay must be YYYY-MM-DD"})
		return
	}

	moved, err := handler.resolver.MoveInstance(r.Context(), request.Instance, targetDay, request.Scope, request.Proceed)
	if err != nil {
		writeResolutionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moved)
}

func writeResolutionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrConflict):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrTemplateNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, services.ErrUnknownScope):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		slog.Error("resolving instance mutation", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to resolve mutation"})
	}
}
