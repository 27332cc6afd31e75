package handler

import (
	"net/http"

	userdomain "bookkeeping-app-go/internal/domain/user"
)

type clientResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type clientAccountResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func (h *Handlers) ListClients(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Users.ListClients(r.Context())
	if err != nil {
		h.log.InternalError("users.clients: list failed", err)
		writeInternalError(w)
		return
	}

	resp := make([]clientResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, clientResponse{ID: account.ID, Name: account.Name, Email: account.Email})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.log.InternalError("users.list: list failed", err)
		writeInternalError(w)
		return
	}

	resp := make([]userResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, userResponse{ID: account.ID, Name: account.Name, Email: account.Email, Role: account.Role})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListClientAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Users.ListClients(r.Context())
	if err != nil {
		h.log.InternalError("users.client_accounts: list failed", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toClientAccounts(accounts))
}

func toClientAccounts(accounts []userdomain.Account) []clientAccountResponse {
	resp := make([]clientAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, clientAccountResponse{
			ID:        account.ID,
			Name:      account.Name,
			Email:     account.Email,
			CreatedAt: formatTimestamp(account.CreatedAt),
		})
	}
	return resp
}
