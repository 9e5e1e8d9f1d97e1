package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	config "flowstate.app/flowstate-api/internal/configs"
	middleware "flowstate.app/flowstate-api/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, cfg config.Config) {
	e.Use(echomw.Logger())
	e.Use(middleware.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			"X-Requested-With",
		},
	}))
	e.Use(middleware.RateLimiter(cfg.RateLimit, time.Minute))

	e.GET("/", h.Root)

	api := e.Group("/api")
	api.GET("/health", h.Health)

	tasks := api.Group("/tasks")
	// The stats route must be registered ahead of /:id so the fixed
	// segment is not read as a task id.
	tasks.GET("/stats/overview", h.Stats)
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)

	auth := api.Group("/auth")
	auth.GET("/status", h.AuthStatus)
	auth.POST("/login", h.AuthNotImplemented)
	auth.POST("/register", h.AuthNotImplemented)
	auth.POST("/logout", h.AuthNotImplemented)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Route not found",
			"path":  c.Request().URL.Path,
		})
	})
}
