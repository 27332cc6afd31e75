package handler

import (
	"net/http"

	dashboarddomain "bookkeeping-app-go/internal/domain/dashboard"
)

type reminderResponse struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type activityResponse struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	ActivityType string `json:"activity_type"`
	Description  string `json:"description"`
	Timestamp    string `json:"timestamp"`
}

func (h *Handlers) HomeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.HomeStats(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.home_stats: load failed", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) Reminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.Dashboard.Reminders(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.reminders: list failed", err)
		writeInternalError(w)
		return
	}

	resp := make([]reminderResponse, 0, len(reminders))
	for _, reminder := range reminders {
		resp = append(resp, reminderResponse{
			ID:          reminder.ID,
			Date:        reminder.Date.Format(dashboarddomain.ReminderDateLayout),
			Description: reminder.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) UserActivities(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("dashboard.user_activities: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	activities, err := h.Dashboard.RecentActivities(r.Context(), userID)
	if err != nil {
		h.log.InternalError("dashboard.user_activities: list failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	resp := make([]activityResponse, 0, len(activities))
	for _, activity := range activities {
		resp = append(resp, activityResponse{
			ID:           activity.ID,
			UserID:       activity.UserID,
			ActivityType: activity.ActivityType,
			Description:  activity.Description,
			Timestamp:    formatTimestamp(activity.Timestamp),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
