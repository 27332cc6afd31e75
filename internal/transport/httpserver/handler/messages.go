package handler

import (
	"errors"
	"net/http"

	messagesdomain "bookkeeping-app-go/internal/domain/messages"
)

type sendMessageRequest struct {
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Message    string `json:"message"`
}

type messageThreadResponse struct {
	ID         uint   `json:"id"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
	SenderName string `json:"sender_name"`
	SenderRole string `json:"sender_role"`
}

func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userId")
	if err != nil {
		h.log.BusinessError("messages.list: invalid user id", err)
		writeError(w, http.StatusBadRequest, "invalid_id", "invalid user id")
		return
	}

	threads, err := h.Messages.List(r.Context(), userID)
	if err != nil {
		h.log.InternalError("messages.list: list failed", err, "user_id", userID)
		writeInternalError(w)
		return
	}

	resp := make([]messageThreadResponse, 0, len(threads))
	for _, thread := range threads {
		resp = append(resp, messageThreadResponse{
			ID:         thread.ID,
			SenderID:   thread.SenderID,
			ReceiverID: thread.ReceiverID,
			Message:    thread.Message,
			Timestamp:  formatTimestamp(thread.Timestamp),
			SenderName: thread.SenderName,
			SenderRole: thread.SenderRole,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("messages.send: invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	message, activityErr, err := h.Messages.Send(r.Context(), messagesdomain.SendInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, messagesdomain.ErrMissingFields):
			h.log.BusinessError("messages.send: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, messagesdomain.ErrUserNotFound):
			h.log.BusinessError("messages.send: user not found", err,
				"sender_id", req.SenderID,
				"receiver_id", req.ReceiverID,
			)
			writeError(w, http.StatusNotFound, "not_found", "user not found")
		default:
			h.log.InternalError("messages.send: insert failed", err)
			writeInternalError(w)
		}
		return
	}
	h.log.InternalError("messages.send: activity not recorded", activityErr, "message_id", message.ID)

	writeJSON(w, http.StatusCreated, idResponse{ID: message.ID})
}
