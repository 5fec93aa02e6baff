package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	httpmw "github.com/taskscribe-dev/taskscribe/internal/infrastructure/http/middleware"
	"github.com/taskscribe-dev/taskscribe/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	authHandler    *Auth
	meetingHandler *Meeting
	taskHandler    *Task
	authMW         echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authHandler *Auth, meetingHandler *Meeting, taskHandler *Task, authMW echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:            cfg,
		authHandler:    authHandler,
		meetingHandler: meetingHandler,
		taskHandler:    taskHandler,
		authMW:         authMW,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/signup", rt.authHandler.Signup)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.GET("/me", rt.authHandler.Me, rt.authMW)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings", rt.authMW)

	meetingGroup.POST("", rt.meetingHandler.Create, httpmw.RequireRole(entities.RoleManager))
	meetingGroup.GET("", rt.meetingHandler.List)
}

// setupTaskRoutes configures task routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	taskGroup := g.Group("/tasks", rt.authMW)

	taskGroup.GET("", rt.taskHandler.List)
	taskGroup.PATCH("/:id/complete", rt.taskHandler.Complete, httpmw.RequireRole(entities.RoleEmployee))
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
