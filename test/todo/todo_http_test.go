package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prashast-singh/to-do/internal/common/clock"
	"github.com/prashast-singh/to-do/internal/common/config"
	"github.com/prashast-singh/to-do/internal/common/constants"
	"github.com/prashast-singh/to-do/internal/common/crypto"
	"github.com/prashast-singh/to-do/internal/common/logger"
	tododomain "github.com/prashast-singh/to-do/internal/todo/domain"
	todohttp "github.com/prashast-singh/to-do/internal/todo/http"
	"github.com/prashast-singh/to-do/internal/todo/service"
	userdomain "github.com/prashast-singh/to-do/internal/user/domain"
	userservice "github.com/prashast-singh/to-do/internal/user/service"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

func setupTodoHandler(t *testing.T) (http.Handler, *fakeTodoStore) {
	_ = t
	store := newFakeTodoStore()
	log, _ := logger.New("", "test", "info")
	svc := service.NewTodoService(store, log)
	cfg := config.TodoConfig{
		JWTSecret:      constants.TestJWTSecret,
		RequestTimeout: 30 * time.Second,
	}
	return todohttp.NewHandler(svc, cfg, log), store
}

// issueToken signs a token the way the user service does, with the shared
// secret the todo service trusts.
func issueToken(t *testing.T, uuid, email string, at time.Time) string {
	t.Helper()
	issuer := userservice.NewTokenIssuer(
		constants.TestJWTSecret,
		crypto.NewUUIDGenerator(),
		constants.TestTokenTTL,
		clock.NewMockClock(at),
	)
	token, err := issuer.IssueToken(userdomain.User{UUID: userdomain.UUID(uuid), Email: email})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	if rec.Body.Len() > 0 {
		if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
	}
	return rec, env
}

func decodeTodoData(t *testing.T, raw json.RawMessage) tododomain.Todo {
	t.Helper()
	var todo tododomain.Todo
	if err := json.Unmarshal(raw, &todo); err != nil {
		t.Fatalf("decode todo: %v", err)
	}
	return todo
}

func TestTodoHTTP_MissingAuthHeader(t *testing.T) {
	h, _ := setupTodoHandler(t)

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/todos", "", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "MISSING_AUTH_HEADER" {
		t.Fatalf("expected code MISSING_AUTH_HEADER, got %+v", env.Error)
	}
}

func TestTodoHTTP_GarbageToken(t *testing.T) {
	h, _ := setupTodoHandler(t)

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/todos", "not-a-jwt", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_TOKEN" {
		t.Fatalf("expected code INVALID_TOKEN, got %+v", env.Error)
	}
}

func TestTodoHTTP_ExpiredToken(t *testing.T) {
	h, _ := setupTodoHandler(t)
	expired := issueToken(t, ownerAlice, "alice@example.com", time.Now().Add(-2*time.Hour))

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/todos", expired, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	// Expired and forged tokens answer identically.
	if env.Error == nil || env.Error.Code != "INVALID_TOKEN" {
		t.Fatalf("expected code INVALID_TOKEN, got %+v", env.Error)
	}
}

func TestTodoHTTP_FullLifecycle(t *testing.T) {
	h, _ := setupTodoHandler(t)
	token := issueToken(t, ownerAlice, "alice@example.com", time.Now())

	// Create.
	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/todos", token,
		map[string]string{"content": "buy milk"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected status 201, got %d", rec.Code)
	}
	created := decodeTodoData(t, env.Data)
	if created.Content != "buy milk" || created.OwnerUUID != ownerAlice {
		t.Fatalf("create: unexpected todo %+v", created)
	}

	// List shows it.
	rec, env = doRequest(t, h, http.MethodGet, "/api/v1/todos", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected status 200, got %d", rec.Code)
	}
	var todos []tododomain.Todo
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != created.ID {
		t.Fatalf("list: expected the created todo, got %+v", todos)
	}

	itemPath := fmt.Sprintf("/api/v1/todos/%d", created.ID)

	// Update.
	rec, env = doRequest(t, h, http.MethodPatch, itemPath, token,
		map[string]string{"content": "buy oat milk"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected status 200, got %d", rec.Code)
	}
	updated := decodeTodoData(t, env.Data)
	if updated.Content != "buy oat milk" {
		t.Fatalf("update: expected new content, got %q", updated.Content)
	}

	// Get reflects the update.
	rec, env = doRequest(t, h, http.MethodGet, itemPath, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected status 200, got %d", rec.Code)
	}
	if got := decodeTodoData(t, env.Data); got.Content != "buy oat milk" {
		t.Fatalf("get: expected updated content, got %q", got.Content)
	}

	// Delete.
	rec, _ = doRequest(t, h, http.MethodDelete, itemPath, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected status 204, got %d", rec.Code)
	}

	// Gone afterwards.
	rec, env = doRequest(t, h, http.MethodGet, itemPath, token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: expected status 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "TODO_NOT_FOUND" {
		t.Fatalf("expected code TODO_NOT_FOUND, got %+v", env.Error)
	}
}

func TestTodoHTTP_OwnershipIsolation(t *testing.T) {
	h, _ := setupTodoHandler(t)
	aliceToken := issueToken(t, ownerAlice, "alice@example.com", time.Now())
	bobToken := issueToken(t, ownerBob, "bob@example.com", time.Now())

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/todos", aliceToken,
		map[string]string{"content": "alice's secret"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected status 201, got %d", rec.Code)
	}
	created := decodeTodoData(t, env.Data)
	itemPath := fmt.Sprintf("/api/v1/todos/%d", created.ID)

	// Bob sees an empty list.
	rec, env = doRequest(t, h, http.MethodGet, "/api/v1/todos", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bob list: expected status 200, got %d", rec.Code)
	}
	var todos []tododomain.Todo
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("bob list: expected no todos, got %+v", todos)
	}

	// Bob's access to alice's todo is a plain 404 on every verb.
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec, env = doRequest(t, h, method, itemPath, bobToken, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("bob %s: expected status 404, got %d", method, rec.Code)
		}
		if env.Error == nil || env.Error.Code != "TODO_NOT_FOUND" {
			t.Errorf("bob %s: expected code TODO_NOT_FOUND, got %+v", method, env.Error)
		}
	}
	rec, env = doRequest(t, h, http.MethodPatch, itemPath, bobToken,
		map[string]string{"content": "hijacked"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("bob patch: expected status 404, got %d", rec.Code)
	}

	// Alice still sees her todo untouched.
	rec, env = doRequest(t, h, http.MethodGet, itemPath, aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("alice get: expected status 200, got %d", rec.Code)
	}
	if got := decodeTodoData(t, env.Data); got.Content != "alice's secret" {
		t.Fatalf("alice get: expected content unchanged, got %q", got.Content)
	}
}

func TestTodoHTTP_InvalidID(t *testing.T) {
	h, _ := setupTodoHandler(t)
	token := issueToken(t, ownerAlice, "alice@example.com", time.Now())

	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/todos/abc", token, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_TODO_ID" {
		t.Fatalf("expected code INVALID_TODO_ID, got %+v", env.Error)
	}
}

func TestTodoHTTP_Create_InvalidJSON(t *testing.T) {
	h, _ := setupTodoHandler(t)
	token := issueToken(t, ownerAlice, "alice@example.com", time.Now())

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/todos", token, "not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_JSON" {
		t.Fatalf("expected code INVALID_JSON, got %+v", env.Error)
	}
}

func TestTodoHTTP_Create_EmptyContent(t *testing.T) {
	h, _ := setupTodoHandler(t)
	token := issueToken(t, ownerAlice, "alice@example.com", time.Now())

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/todos", token,
		map[string]string{"content": ""})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected code VALIDATION_ERROR, got %+v", env.Error)
	}
}

func TestTodoHTTP_MethodNotAllowed(t *testing.T) {
	h, _ := setupTodoHandler(t)
	token := issueToken(t, ownerAlice, "alice@example.com", time.Now())

	rec, env := doRequest(t, h, http.MethodPut, "/api/v1/todos/1", token,
		map[string]string{"content": "x"})

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "METHOD_NOT_ALLOWED" {
		t.Fatalf("expected code METHOD_NOT_ALLOWED, got %+v", env.Error)
	}
}

func TestTodoHTTP_MisconfiguredVerifierSecret(t *testing.T) {
	store := newFakeTodoStore()
	log, _ := logger.New("", "test", "info")
	svc := service.NewTodoService(store, log)
	h := todohttp.NewHandler(svc, config.TodoConfig{RequestTimeout: 30 * time.Second}, log)

	token := issueToken(t, ownerAlice, "alice@example.com", time.Now())
	rec, env := doRequest(t, h, http.MethodGet, "/api/v1/todos", token, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "AUTH_ERROR" {
		t.Fatalf("expected code AUTH_ERROR, got %+v", env.Error)
	}
}

func TestTodoHTTP_HealthIsPublic(t *testing.T) {
	h, _ := setupTodoHandler(t)

	rec, env := doRequest(t, h, http.MethodGet, "/health", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !env.Success {
		t.Error("expected success envelope")
	}
}
