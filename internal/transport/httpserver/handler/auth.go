package handler

import (
	"errors"
	"net/http"

	userdomain "bookkeeping-app-go/internal/domain/user"
)

const resetRequestedMessage = "If the email is registered, a reset link has been sent"

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("auth.signup: invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	created, err := h.Users.Signup(r.Context(), userdomain.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrMissingFields):
			h.log.BusinessError("auth.signup: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", "email, password, role and name are required")
		case errors.Is(err, userdomain.ErrInvalidRole):
			h.log.BusinessError("auth.signup: validation failed", err, "role", req.Role)
			writeError(w, http.StatusBadRequest, "validation_error", "role must be client or bookkeeper")
		case errors.Is(err, userdomain.ErrPasswordTooLong):
			h.log.BusinessError("auth.signup: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, userdomain.ErrEmailTaken):
			h.log.BusinessError("auth.signup: duplicate email", err)
			writeError(w, http.StatusBadRequest, "email_exists", "email already exists")
		default:
			h.log.InternalError("auth.signup: create failed", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*created))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("auth.login: invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	found, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrMissingFields):
			h.log.BusinessError("auth.login: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", "email and password required")
		case errors.Is(err, userdomain.ErrInvalidCredentials):
			h.log.BusinessError("auth.login: rejected", err)
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		default:
			h.log.InternalError("auth.login: lookup failed", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*found))
}

// ForgotPassword answers the same way whether or not the email is known.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("auth.forgot_password: invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	err := h.Users.RequestPasswordReset(r.Context(), req.Email)
	switch {
	case err == nil:
	case errors.Is(err, userdomain.ErrMissingFields):
		h.log.BusinessError("auth.forgot_password: validation failed", err)
		writeError(w, http.StatusBadRequest, "validation_error", "email is required")
		return
	case errors.Is(err, userdomain.ErrUserNotFound):
		h.log.BusinessError("auth.forgot_password: unknown email", err)
	default:
		h.log.InternalError("auth.forgot_password: issue token failed", err)
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: resetRequestedMessage})
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.BusinessError("auth.reset_password: invalid json", err)
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	err := h.Users.ResetPassword(r.Context(), userdomain.ResetInput{
		Token:           req.Token,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, userdomain.ErrMissingFields):
			h.log.BusinessError("auth.reset_password: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", "token, newPassword and confirmPassword are required")
		case errors.Is(err, userdomain.ErrPasswordMismatch):
			h.log.BusinessError("auth.reset_password: validation failed", err)
			writeError(w, http.StatusBadRequest, "password_mismatch", "passwords do not match")
		case errors.Is(err, userdomain.ErrPasswordTooLong):
			h.log.BusinessError("auth.reset_password: validation failed", err)
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, userdomain.ErrInvalidResetToken):
			h.log.BusinessError("auth.reset_password: rejected token", err)
			writeError(w, http.StatusBadRequest, "invalid_token", "invalid or expired token")
		default:
			h.log.InternalError("auth.reset_password: update failed", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Password reset successfully"})
}

func toUserResponse(u userdomain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
