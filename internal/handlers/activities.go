package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
	"mindmate-backend/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
	publisher       services.UpdatePublisher
	now             func() time.Time
}

func NewActivityHandler(activityService *services.ActivityService, publisher services.UpdatePublisher) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (h *ActivityHandler) Log(w http.ResponseWriter, r *http.Request) {
	var req models.LogActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	identity := middleware.GetIdentity(r.Context())
	record, err := h.activityService.Record(r.Context(), identity, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	h.publisher.Publish(r.Context(), identity, models.WSMessage{
		Type:    "activity_logged",
		Payload: record,
	})

	writeJSON(w, http.StatusCreated, record)
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	records, err := h.activityService.Load(r.Context(), identity)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []models.ActivityRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Today returns the display feed of today's records, newest last.
func (h *ActivityHandler) Today(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	records, err := h.activityService.Load(r.Context(), identity)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	today := h.now().Format(models.CalendarDateLayout)
	views := []models.ActivityView{}
	for _, rec := range records {
		if rec.CalendarDate != today {
			continue
		}
		views = append(views, activityView(rec))
	}

	writeJSON(w, http.StatusOK, views)
}

func (h *ActivityHandler) Clear(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if err := h.activityService.Clear(r.Context(), identity); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Activities cleared"})
}

func activityView(rec models.ActivityRecord) models.ActivityView {
	view := models.ActivityView{LoggedAt: rec.CreatedAt}

	switch rec.Kind {
	case models.KindExercise:
		view.Icon = "🏃"
		view.Title = fmt.Sprintf("%s Exercise", titleCase(rec.Exercise.ExerciseType))
		view.Details = fmt.Sprintf("%d min • Intensity: %d/10", rec.Exercise.DurationMinutes, rec.Exercise.Intensity)
	case models.KindWork:
		view.Icon = "💼"
		view.Title = "Work Session"
		view.Details = fmt.Sprintf("%g hrs • Stress: %d/5 • Productivity: %d/5", rec.Work.Hours, rec.Work.Stress, rec.Work.Productivity)
	case models.KindWellness:
		view.Icon = "😴"
		view.Title = "Wellness Check"
		view.Details = fmt.Sprintf("Sleep: %g hrs • Quality: %d/5 • Mood: %d/5", rec.Wellness.SleepHours, rec.Wellness.SleepQuality, rec.Wellness.Mood)
	}

	return view
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
