package http

import (
	"net/http"

	"github.com/prashast-singh/to-do/internal/common/config"
	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	commonhttp "github.com/prashast-singh/to-do/internal/common/http"
	"github.com/prashast-singh/to-do/internal/common/jwtverify"
	"github.com/prashast-singh/to-do/internal/common/logger"
	"github.com/prashast-singh/to-do/internal/user/domain"
	"github.com/prashast-singh/to-do/internal/user/service"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type authResponse struct {
	User  domain.Identity `json:"user"`
	Token string          `json:"token"`
}

type Handler struct {
	users  *service.UserService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(users *service.UserService, cfg config.UserConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		users:  users,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}

	withTimeout := commonhttp.WithTimeout(cfg.RequestTimeout)
	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler("user", log))
	mux.HandleFunc("/api/v1/auth/register", commonhttp.RequireMethod(http.MethodPost)(withTimeout(h.register)))
	mux.HandleFunc("/api/v1/auth/login", commonhttp.RequireMethod(http.MethodPost)(withTimeout(h.login)))
	mux.Handle("/api/v1/auth/password", requireAuth(
		commonhttp.RequireMethod(http.MethodPatch)(withTimeout(h.changePassword)),
	))
	mux.HandleFunc("/", commonhttp.NotFoundHandler())
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, http.StatusCreated, authResponse{
		User:  result.Identity,
		Token: result.Token,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, http.StatusOK, authResponse{
		User:  result.Identity,
		Token: result.Token,
	})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingCredential)
		return
	}

	var req changePasswordRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("password change failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	err := h.users.ChangePassword(r.Context(), domain.UUID(claims.Subject), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
