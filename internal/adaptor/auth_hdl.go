package adaptor

import (
	"errors"
	"net/http"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service      usecase.AuthService
	cookieSecure bool
	log          *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookieSecure bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:      service,
		cookieSecure: cookieSecure,
		log:          log.With(zap.String("handler", "auth")),
	}
}

// Landing handles GET /
func (h *AuthHandler) Landing(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Welcome to book-review. Register or log in to continue.", map[string]string{
		"registration": "/registration",
		"login":        "/login",
	})
}

// RegisterForm handles GET /registration
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Registration form", map[string][]string{
		"fields": {"name", "email", "password"},
	})
}

// Register handles POST /registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := bind(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.SetSessionCookie(w, resp.Token, resp.ExpiresAt, h.cookieSecure)
	utils.RedirectWithData(w, "/books", "Registration successful", resp)
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Login form", map[string][]string{
		"fields": {"email", "password"},
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := bind(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.SetSessionCookie(w, resp.Token, resp.ExpiresAt, h.cookieSecure)
	utils.RedirectWithData(w, "/books", "Login successful", resp)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, _ := utils.GetTokenFromContext(r.Context())

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "logout")
		return
	}

	utils.ClearSessionCookie(w, h.cookieSecure)
	utils.Redirect(w, r, "/")
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		h.log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseConflict(w, usecase.ErrEmailAlreadyExists.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, usecase.ErrInvalidCredentials.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
