package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	config "flowstate.app/flowstate-api/internal/configs"
	repository "flowstate.app/flowstate-api/internal/repositories"
	"flowstate.app/flowstate-api/internal/services"
	"flowstate.app/flowstate-api/internal/storage"
)

func newTestServer(t *testing.T) (*echo.Echo, *storage.Store) {
	t.Helper()

	store := storage.NewStore(filepath.Join(t.TempDir(), "tasks.json"), false)
	if err := store.Save(nil); err != nil {
		t.Fatalf("failed to initialize tasks file: %v", err)
	}
	repo := repository.NewTaskRepository(store)
	taskService := services.NewTaskService(repo)
	statsService := services.NewStatsService(repo)

	cfg := config.Config{
		AllowedOrigins:         []string{"http://localhost:5173"},
		RateLimit:              10000,
		ShutdownTimeoutSeconds: 5,
		Env:                    "test",
	}

	e := echo.New()
	Register(e, NewHandler(taskService, statsService, store, cfg.Env), cfg)
	return e, store
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v\n%s", err, rec.Body.String())
	}
	return out
}

func TestTaskLifecycle(t *testing.T) {
	e, _ := newTestServer(t)

	// Create task A.
	rec := do(t, e, http.MethodPost, "/api/tasks",
		`{"title":"Write spec","dueDate":"2025-01-01T00:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	a := decode(t, rec)
	if a["id"].(float64) != 1 || a["status"] != "todo" || a["completed"] != false {
		t.Fatalf("unexpected created task: %v", a)
	}

	// Create task B.
	rec = do(t, e, http.MethodPost, "/api/tasks",
		`{"title":"Review spec","dueDate":"2025-01-02T00:00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	b := decode(t, rec)
	if b["id"].(float64) != 2 {
		t.Fatalf("expected id 2, got %v", b["id"])
	}

	// Complete B via status.
	rec = do(t, e, http.MethodPut, "/api/tasks/2", `{"status":"completed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if updated := decode(t, rec); updated["completed"] != true {
		t.Fatalf("status=completed did not force completed=true: %v", updated)
	}

	// Stats reflect the mutation.
	rec = do(t, e, http.MethodGet, "/api/tasks/stats/overview", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	stats := decode(t, rec)
	if stats["total"].(float64) != 2 || stats["completed"].(float64) != 1 || stats["pending"].(float64) != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}

	// Delete A, then it is gone.
	rec = do(t, e, http.MethodDelete, "/api/tasks/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if confirm := decode(t, rec); confirm["id"].(float64) != 1 {
		t.Fatalf("delete confirmation missing id: %v", confirm)
	}

	rec = do(t, e, http.MethodGet, "/api/tasks/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCreateValidationResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing title", `{"dueDate":"2025-01-01T00:00"}`, "title"},
		{"blank title", `{"title":"  ","dueDate":"2025-01-01T00:00"}`, "title"},
		{"missing due date", `{"title":"t"}`, "Due date"},
		{"bad priority", `{"title":"t","dueDate":"2025-01-01T00:00","priority":"urgent"}`, "priority"},
		{"bad status", `{"title":"t","dueDate":"2025-01-01T00:00","status":"done"}`, "status"},
		{"malformed json", `{"title":`, "JSON"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, _ := newTestServer(t)

			rec := do(t, e, http.MethodPost, "/api/tasks", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}

			body := decode(t, rec)
			msg, _ := body["error"].(string)
			if !strings.Contains(strings.ToLower(msg), strings.ToLower(tc.want)) {
				t.Errorf("error %q does not name %q", msg, tc.want)
			}

			// The collection must be unchanged.
			rec = do(t, e, http.MethodGet, "/api/tasks", "")
			var tasks []any
			if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil || len(tasks) != 0 {
				t.Errorf("collection changed by rejected create: %s", rec.Body.String())
			}
		})
	}
}

func TestUpdateValidationAndNotFound(t *testing.T) {
	e, _ := newTestServer(t)

	do(t, e, http.MethodPost, "/api/tasks", `{"title":"t","dueDate":"2025-01-01T00:00"}`)

	rec := do(t, e, http.MethodPut, "/api/tasks/1", `{"priority":"urgent"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad priority, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodPut, "/api/tasks/99", `{"title":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing task, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodDelete, "/api/tasks/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing task, got %d", rec.Code)
	}
}

func TestStatsRouteNotShadowedByID(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/tasks/stats/overview", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats route misrouted: %d %s", rec.Code, rec.Body.String())
	}
	if stats := decode(t, rec); stats["total"].(float64) != 0 {
		t.Errorf("expected empty stats, got %v", stats)
	}
}

func TestListCompletedQueryParam(t *testing.T) {
	e, _ := newTestServer(t)

	do(t, e, http.MethodPost, "/api/tasks", `{"title":"open","dueDate":"2025-01-01T00:00"}`)
	do(t, e, http.MethodPost, "/api/tasks", `{"title":"closed","dueDate":"2025-01-01T00:00"}`)
	do(t, e, http.MethodPut, "/api/tasks/2", `{"status":"completed"}`)

	count := func(path string) int {
		rec := do(t, e, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: %d", path, rec.Code)
		}
		var tasks []any
		if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
			t.Fatalf("GET %s: not an array: %s", path, rec.Body.String())
		}
		return len(tasks)
	}

	if n := count("/api/tasks"); n != 2 {
		t.Errorf("no filter: expected 2, got %d", n)
	}
	if n := count("/api/tasks?completed=true"); n != 1 {
		t.Errorf("completed=true: expected 1, got %d", n)
	}
	// Anything other than the literal "true" selects pending tasks.
	if n := count("/api/tasks?completed=yes"); n != 1 {
		t.Errorf("completed=yes: expected 1, got %d", n)
	}
	if n := count("/api/tasks?search=closed"); n != 1 {
		t.Errorf("search: expected 1, got %d", n)
	}
}

func TestGetTaskIdempotentRead(t *testing.T) {
	e, _ := newTestServer(t)

	do(t, e, http.MethodPost, "/api/tasks", `{"title":"t","dueDate":"2025-01-01T00:00"}`)

	first := do(t, e, http.MethodGet, "/api/tasks/1", "")
	second := do(t, e, http.MethodGet, "/api/tasks/1", "")
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("reads failed: %d, %d", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("two reads with no intervening mutation returned different bodies")
	}
}

func TestCorruptionRecoveryOverHTTP(t *testing.T) {
	e, store := newTestServer(t)

	do(t, e, http.MethodPost, "/api/tasks", `{"title":"t","dueDate":"2025-01-01T00:00"}`)

	if err := os.WriteFile(store.Path(), []byte("{{{ definitely not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := do(t, e, http.MethodGet, "/api/tasks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after corruption, got %d", rec.Code)
	}
	var tasks []any
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("response is not a valid array: %s", rec.Body.String())
	}

	// The backing file was rewritten as a side effect.
	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	var onDisk []any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Errorf("backing file still corrupt: %v", err)
	}
	if store.Reseeds() != 1 {
		t.Errorf("expected 1 recorded reseed, got %d", store.Reseeds())
	}
}

func TestHealthEndpoint(t *testing.T) {
	e, store := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decode(t, rec)
	if body["status"] != "OK" {
		t.Errorf("unexpected status: %v", body["status"])
	}
	if body["tasksFile"] != store.Path() {
		t.Errorf("unexpected tasksFile: %v", body["tasksFile"])
	}
	if _, ok := body["uptime"]; !ok {
		t.Error("health response missing uptime")
	}
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decode(t, rec); body["error"] != "Route not found" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestAuthStubs(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/auth/status", "")
	if rec.Code != http.StatusOK {
		t.Errorf("auth status: expected 200, got %d", rec.Code)
	}
	for _, path := range []string{"/api/auth/login", "/api/auth/register", "/api/auth/logout"} {
		rec := do(t, e, http.MethodPost, path, `{}`)
		if rec.Code != http.StatusNotImplemented {
			t.Errorf("%s: expected 501, got %d", path, rec.Code)
		}
	}
}
