package handler

import (
	"errors"
	"net/http"

	documentsdomain "bookkeeping-app-go/internal/domain/documents"
)

type createFormRequest struct {
	FormName string `json:"form_name"`
}

type formResponse struct {
	ID       uint   `json:"id"`
	FormName string `json:"form_name"`
}

func (h *Handlers) ListForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Documents.ListForms(r.Context())
	if err != nil {
		h.log.InternalError("forms.list: list failed", err)
		writeInternalError(w)
		return
	}

	resp := make([]formResponse, 0, len(forms))
	for _, form := range forms {
		resp = append(resp, formResponse{ID: form.ID, FormName: form.FormName})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateForm(w http.ResponseWriter, r *http.Request) {
	var req createFormRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("forms.create: invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	form, err := h.Documents.CreateForm(r.Context(), req.FormName)
	if err != nil {
		switch {
		case errors.Is(err, documentsdomain.ErrMissingFields):
			h.log.BusinessError("forms.create: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", "form name is required")
		case errors.Is(err, documentsdomain.ErrFormExists):
			h.log.BusinessError("forms.create: duplicate", err, "form_name", req.FormName)
			writeError(w, http.StatusBadRequest, "form_exists", "form already exists")
		default:
			h.log.InternalError("forms.create: insert failed", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, formResponse{ID: form.ID, FormName: form.FormName})
}
