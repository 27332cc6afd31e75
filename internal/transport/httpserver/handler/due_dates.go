package handler

import (
	"net/http"

	duedatesdomain "bookkeeping-app-go/internal/domain/duedates"
)

type dueDateResponse struct {
	Agency           string `json:"agency"`
	Description      string `json:"description"`
	DueDate          string `json:"dueDate"`
	MembershipNumber string `json:"membershipNumber"`
}

type dueDatesResponse struct {
	DueDates []dueDateResponse `json:"dueDates"`
}

func (h *Handlers) ListDueDates(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("due_dates.list: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	dates, err := h.DueDates.ForUser(r.Context(), userID)
	if err != nil {
		h.log.InternalError("due_dates.list: calculate failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	resp := dueDatesResponse{DueDates: make([]dueDateResponse, 0, len(dates))}
	for _, date := range dates {
		resp.DueDates = append(resp.DueDates, dueDateResponse{
			Agency:           date.Agency,
			Description:      date.Description,
			DueDate:          date.Date.Format(duedatesdomain.DateLayout),
			MembershipNumber: date.MembershipNumber,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
