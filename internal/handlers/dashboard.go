package handlers

import (
	"net/http"
	"strconv"
	"time"

	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/models"
	"mindmate-backend/internal/services"
)

type DashboardHandler struct {
	activityService *services.ActivityService
	now             func() time.Time
}

func NewDashboardHandler(activityService *services.ActivityService) *DashboardHandler {
	return &DashboardHandler{activityService: activityService, now: time.Now}
}

func (h *DashboardHandler) load(r *http.Request) ([]models.ActivityRecord, error) {
	identity := middleware.GetIdentity(r.Context())
	return h.activityService.Load(r.Context(), identity)
}

// Summary bundles today's stats, rolling-week progress and the health score
// into the single payload the dashboard renders from.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	records, err := h.load(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	now := h.now()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"today":           services.TodaySummary(records, now.Format(models.CalendarDateLayout)),
		"weekly_progress": services.WeeklyProgress(records, now),
		"health_score":    services.HealthScore(records, now),
	})
}

func (h *DashboardHandler) Insights(w http.ResponseWriter, r *http.Request) {
	records, err := h.load(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, services.Insights(records, h.now()))
}

func (h *DashboardHandler) MoodSeries(w http.ResponseWriter, r *http.Request) {
	records, err := h.load(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 31 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "days must be between 1 and 31", r))
			return
		}
		days = n
	}

	writeJSON(w, http.StatusOK, services.DailyMoodSeries(records, h.now(), days))
}

func (h *DashboardHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	records, err := h.load(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, services.WeeklyActivityBreakdown(records, h.now()))
}
