package http

import (
	stderrors "errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dto "flowstate.app/flowstate-api/internal/data_models"
	"flowstate.app/flowstate-api/internal/errors"
	"flowstate.app/flowstate-api/internal/http/validators"
	"flowstate.app/flowstate-api/internal/services"
	"flowstate.app/flowstate-api/internal/storage"
)

const apiVersion = "1.0.0"

type Handler struct {
	taskService  *services.TaskService
	statsService *services.StatsService
	store        *storage.Store
	env          string
	started      time.Time
}

func NewHandler(
	taskService *services.TaskService,
	statsService *services.StatsService,
	store *storage.Store,
	env string,
) *Handler {
	return &Handler{
		taskService:  taskService,
		statsService: statsService,
		store:        store,
		env:          env,
		started:      time.Now(),
	}
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "FlowState API is running!",
		"version": apiVersion,
		"endpoints": echo.Map{
			"tasks":  "/api/tasks",
			"health": "/api/health",
			"stats":  "/api/tasks/stats/overview",
		},
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "OK",
		"timestamp":     time.Now().Format(time.RFC3339),
		"uptime":        time.Since(h.started).Seconds(),
		"tasksFile":     h.store.Path(),
		"storageResets": h.store.Reseeds(),
	})
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := dto.TaskFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Priority: c.QueryParam("priority"),
		Status:   c.QueryParam("status"),
	}
	if c.QueryParams().Has("completed") {
		// The literal "true" selects completed tasks; anything else
		// selects pending ones. An absent parameter means no filter.
		completed := c.QueryParam("completed") == "true"
		filter.Completed = &completed
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err, "Failed to fetch tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.statsService.Overview(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to fetch statistics")
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch task")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON payload"})
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err, "Failed to create task")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return h.fail(c, err, "Failed to update task")
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON payload"})
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		return h.fail(c, err, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := validators.TaskID(c.Param("id"))
	if err != nil {
		return h.fail(c, err, "Failed to delete task")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete task")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Task deleted successfully",
		"id":      id,
	})
}

func (h *Handler) AuthStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Auth routes ready for implementation",
		"endpoints": []string{
			"POST /login",
			"POST /register",
			"POST /logout",
			"GET /status",
		},
	})
}

func (h *Handler) AuthNotImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, echo.Map{
		"message": "Authentication is not implemented yet",
	})
}

// fail maps a repository/storage error onto the HTTP response. Client
// errors carry their own message; everything else is logged server-side
// and answered with the generic fallback, plus detail in development.
func (h *Handler) fail(c echo.Context, err error, fallback string) error {
	code := errors.StatusCode(err)

	var ex *errors.Exception
	if stderrors.As(err, &ex) && code < http.StatusInternalServerError {
		return c.JSON(code, echo.Map{"error": ex.Message})
	}

	log.Printf("%s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)

	body := echo.Map{"error": fallback}
	if h.env == "development" {
		body["message"] = err.Error()
	}
	return c.JSON(code, body)
}
