package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/perfumaria/catalog-api/internal/platform/httpx"
	"github.com/perfumaria/catalog-api/internal/shared"
	"github.com/perfumaria/catalog-api/jobs"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	tokens    *TokenManager
	enqueuer  jobs.Enqueuer
	validator *validator.Validate
}

// NewHandler constructs a Handler instance. The enqueuer is optional; without
// it registration skips the welcome email.
func NewHandler(logger *slog.Logger, service *Service, tokens *TokenManager, enqueuer jobs.Enqueuer) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		tokens:    tokens,
		enqueuer:  enqueuer,
		validator: validator.New(),
	}
}

// MountPublicRoutes registers the unauthenticated auth routes.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

// MountProtectedRoutes registers routes that require a verified identity.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Post("/logout", h.handleLogout)
	r.Post("/refresh", h.handleRefresh)
	r.Get("/me", h.handleMe)
}

type registerForm struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=6,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Message(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validateRegister(form); len(fields) > 0 {
		httpx.ValidationFailed(w, fields)
		return
	}

	user, err := h.service.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		httpx.RespondError(w, err, "")
		return
	}

	h.enqueueWelcomeEmail(user)
	httpx.Message(w, http.StatusOK, "User registered successfully")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Unauthorized(w)
		return
	}

	user, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		httpx.Unauthorized(w)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.logError("issue token", err)
		httpx.Message(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.respondWithToken(w, token)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Unauthenticated(w)
		return
	}

	if err := h.tokens.Invalidate(r.Context(), identity.TokenID, identity.ExpiresAt); err != nil {
		h.logError("invalidate token", err)
		httpx.Message(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	httpx.Message(w, http.StatusOK, "Successfully logged out")
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Unauthenticated(w)
		return
	}

	token, err := h.tokens.Refresh(r.Context(), identity.TokenID, identity.ExpiresAt, identity.UserID)
	if err != nil {
		h.logError("refresh token", err)
		httpx.Message(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	h.respondWithToken(w, token)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.Unauthenticated(w)
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		// The token outlived its user record.
		httpx.Unauthenticated(w)
		return
	}

	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) respondWithToken(w http.ResponseWriter, token string) {
	httpx.JSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}

func (h *Handler) validateRegister(form registerForm) shared.FieldErrors {
	fields := shared.FieldErrors{}
	if err := h.validator.Struct(form); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			name, message := registerFieldMessage(fieldErr)
			if _, seen := fields[name]; !seen {
				fields[name] = message
			}
		}
	}
	return fields
}

func registerFieldMessage(fe validator.FieldError) (string, string) {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "max" {
			return "name", "The name field must not be greater than 255 characters."
		}
		return "name", "The name field is required."
	case "Email":
		switch fe.Tag() {
		case "email":
			return "email", "The email field must be a valid email address."
		case "max":
			return "email", "The email field must not be greater than 255 characters."
		default:
			return "email", "The email field is required."
		}
	case "Password":
		switch fe.Tag() {
		case "min":
			return "password", "The password field must be at least 6 characters."
		case "eqfield":
			return "password", "The password field confirmation does not match."
		default:
			return "password", "The password field is required."
		}
	}
	return fe.Field(), fmt.Sprintf("The %s field is invalid.", fe.Field())
}

func (h *Handler) enqueueWelcomeEmail(user *User) {
	if h.enqueuer == nil {
		return
	}
	task, err := jobs.NewSendEmailTask(jobs.SendEmailPayload{
		To:      user.Email,
		Subject: "Welcome to the product catalog",
		Body:    fmt.Sprintf("Hello %s, your account is ready.", user.Name),
	})
	if err != nil {
		h.logWarn("build welcome email task", err)
		return
	}
	if _, err := h.enqueuer.Enqueue(task); err != nil {
		h.logWarn("enqueue welcome email", err)
	}
}

func (h *Handler) logError(msg string, err error) {
	if h.logger != nil {
		h.logger.Error(msg, slog.Any("error", err))
	}
}

func (h *Handler) logWarn(msg string, err error) {
	if h.logger != nil {
		h.logger.Warn(msg, slog.Any("error", err))
	}
}
