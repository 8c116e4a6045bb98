package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/wedlock-lab/mandap/pkg/domain/model"
	"github.com/wedlock-lab/mandap/pkg/usecase"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC usecase.AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleLogin checks the dashboard password and issues a token
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, goerr.Wrap(err, "invalid login request body",
			goerr.T(model.ErrTagValidation)))
		return
	}

	token, err := h.authUC.Login(ctx, req.Password)
	if err != nil {
		status := http.StatusInternalServerError
		message := "Authentication not configured"
		if errors.Is(err, model.ErrIncorrectPassword) {
			status = http.StatusUnauthorized
			message = "Incorrect password"
		}
		writeJSON(ctx, w, status, loginResponse{
			Success: false,
			Message: message,
		})
		return
	}

	writeJSON(ctx, w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
	})
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// HandleVerify reports whether a previously issued token is still valid
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(ctx, w, http.StatusUnauthorized, verifyResponse{Valid: false})
		return
	}

	if !h.authUC.Verify(ctx, req.Token) {
		writeJSON(ctx, w, http.StatusUnauthorized, verifyResponse{Valid: false})
		return
	}

	writeJSON(ctx, w, http.StatusOK, verifyResponse{Valid: true})
}
