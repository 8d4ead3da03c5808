package handlers

import (
	"encoding/json"
	"net/http"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
	"mindmate-backend/internal/services"
)

type ExerciseHandler struct {
	breathingService *services.BreathingService
}

func NewExerciseHandler(breathingService *services.BreathingService) *ExerciseHandler {
	return &ExerciseHandler{breathingService: breathingService}
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.Catalog)
}

func (h *ExerciseHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	identity := middleware.GetIdentity(r.Context())
	state, err := h.breathingService.Start(r.Context(), identity, req.Exercise, req.DurationSeconds)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, state)
}

func (h *ExerciseHandler) State(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	state, ok := h.breathingService.State(identity)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No exercise in progress", r))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *ExerciseHandler) Stop(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	h.breathingService.Stop(identity)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Exercise stopped"})
}
