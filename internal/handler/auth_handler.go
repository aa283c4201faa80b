package handlers

import (
	"encoding/json"
	"net/http"

	"noticeboard/internal/dto"
	"noticeboard/internal/service"
)

type LoginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	User         dto.UserAccountDto `json:"user"`
}

func newAuthResponse(account dto.UserAccountDto, tokens service.Tokens) AuthResponse {
	return AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         account,
	}
}

// Register creates the account and logs it in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "invalid registration: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.AuthService.Register(r.Context(), req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	account, tokens, err := h.AuthService.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newAuthResponse(account, tokens), http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "user id and password are required", http.StatusBadRequest)
		return
	}

	account, tokens, err := h.AuthService.Login(r.Context(), req.UserID, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newAuthResponse(account, tokens), http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "refresh token is required", http.StatusBadRequest)
		return
	}

	account, tokens, err := h.AuthService.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newAuthResponse(account, tokens), http.StatusOK)
}

// Me returns the account of the authenticated caller.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	account, err := h.UserAccountService.GetUserAccount(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, account, http.StatusOK)
}
