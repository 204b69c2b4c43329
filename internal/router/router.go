package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskmaster/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)

	// Protected routes
	r.GET("/api/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/analytics", authMiddleware(handlers.Task.GetAnalytics))

	return r
}
