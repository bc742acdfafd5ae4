package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/micro-mikko/lonasystem/internal/auth"
	"github.com/micro-mikko/lonasystem/internal/transport/http/api"
	"github.com/micro-mikko/lonasystem/internal/transport/http/middleware"
)

type Handler struct {
	Auth *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Auth: service}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := h.Auth.Login(payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"token": token}, middleware.GetRequestID(r.Context()))
}
