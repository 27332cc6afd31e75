package handler

import (
	"errors"
	"net/http"

	grossdomain "bookkeeping-app-go/internal/domain/grossrecords"
	"github.com/shopspring/decimal"
)

type grossRecordRequest struct {
	FormName    string           `json:"form_name"`
	Month       string           `json:"month"`
	GrossIncome decimal.Decimal  `json:"gross_income"`
	ComputedTax *decimal.Decimal `json:"computed_tax"`
}

type grossRecordResponse struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	FormName    string          `json:"form_name"`
	Month       string          `json:"month"`
	GrossIncome decimal.Decimal `json:"gross_income"`
	ComputedTax decimal.Decimal `json:"computed_tax"`
	CreatedAt   string          `json:"created_at"`
}

func (h *Handlers) ListGrossRecords(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("gross_records.list: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	records, err := h.GrossRecords.List(r.Context(), userID)
	if err != nil {
		h.log.InternalError("gross_records.list: list failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	resp := make([]grossRecordResponse, 0, len(records))
	for _, record := range records {
		resp = append(resp, grossRecordResponse{
			ID:          record.ID,
			UserID:      record.UserID,
			FormName:    record.FormName,
			Month:       record.Month,
			GrossIncome: record.GrossIncome,
			ComputedTax: record.ComputedTax,
			CreatedAt:   formatTimestamp(record.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateGrossRecord(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("gross_records.create: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	var req grossRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("gross_records.create: invalid json", err, "user_id", userID)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	record, activityErr, err := h.GrossRecords.Create(r.Context(), grossdomain.CreateInput{
		UserID:      userID,
		FormName:    req.FormName,
		Month:       req.Month,
		GrossIncome: req.GrossIncome,
		ComputedTax: req.ComputedTax,
	})
	if err != nil {
		switch {
		case errors.Is(err, grossdomain.ErrMissingFields), errors.Is(err, grossdomain.ErrNegativeAmount):
			h.log.BusinessError("gross_records.create: validation failed", err, "user_id", userID)
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, grossdomain.ErrUserNotFound):
			h.log.BusinessError("gross_records.create: user not found", err, "user_id", userID)
			writeError(w, http.StatusNotFound, "not_found", "user not found")
		default:
			h.log.InternalError("gross_records.create: insert failed", err, "user_id", userID)
			writeInternalError(w)
		}
		return
	}
	h.log.InternalError("gross_records.create: activity not recorded", activityErr, "record_id", record.ID)

	writeJSON(w, http.StatusCreated, idResponse{ID: record.ID})
}
