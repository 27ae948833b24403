package http

import (
	"net/http"

	"github.com/prashast-singh/to-do/internal/common/config"
	commonerrors "github.com/prashast-singh/to-do/internal/common/errors"
	commonhttp "github.com/prashast-singh/to-do/internal/common/http"
	"github.com/prashast-singh/to-do/internal/common/jwtverify"
	"github.com/prashast-singh/to-do/internal/common/logger"
	"github.com/prashast-singh/to-do/internal/todo/service"
)

const todosPath = "/api/v1/todos"

type createTodoRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type updateTodoRequest struct {
	Content *string `json:"content" validate:"omitempty,min=1,max=500"`
}

type Handler struct {
	todos  *service.TodoService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

// NewHandler mounts all todo routes behind the access-control gate; only
// /health is reachable without a token.
func NewHandler(todos *service.TodoService, cfg config.TodoConfig, log *logger.Logger) http.Handler {
	h := &Handler{
		todos:  todos,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}

	withTimeout := commonhttp.WithTimeout(cfg.RequestTimeout)
	requireAuth := jwtverify.Middleware(cfg.JWTSecret, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler("todo", log))
	mux.Handle(todosPath, requireAuth(withTimeout(h.collection)))
	mux.Handle(todosPath+"/", requireAuth(withTimeout(h.item)))
	mux.HandleFunc("/", commonhttp.NotFoundHandler())
	return mux
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPatch:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		commonhttp.WriteError(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingCredential)
		return
	}

	var req createTodoRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create todo failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	todo, err := h.todos.Create(r.Context(), req.Content, claims.Subject)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, http.StatusCreated, todo)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingCredential)
		return
	}

	todos, err := h.todos.List(r.Context(), claims.Subject)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, http.StatusOK, todos)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingCredential)
		return
	}

	id, err := commonhttp.ParseTodoIDFromPath(r.URL.Path, todosPath)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	todo, err := h.todos.Get(r.Context(), id, claims.Subject)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, http.StatusOK, todo)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingCredential)
		return
	}

	id, err := commonhttp.ParseTodoIDFromPath(r.URL.Path, todosPath)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	var req updateTodoRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("update todo failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	todo, err := h.todos.Update(r.Context(), id, claims.Subject, req.Content)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteSuccess(w, http.StatusOK, todo)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, commonerrors.ErrMissingCredential)
		return
	}

	id, err := commonhttp.ParseTodoIDFromPath(r.URL.Path, todosPath)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := h.todos.Delete(r.Context(), id, claims.Subject); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
