package api

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/yusup-a/task-planner/modules/auth"
	"github.com/yusup-a/task-planner/modules/planner"
	"github.com/yusup-a/task-planner/modules/tasks"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app           *fiber.App
	port          int
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskPort      tasks.TaskPort
	plannerPort   planner.PlannerPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on the given port.
func NewModule(port int) *APIModule {
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "tasks", "planner"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "tasks":
		m.taskPort = tasks.NewTaskAdapter(container)
	case "planner":
		m.plannerPort = planner.NewPlannerAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authContainer == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskPort == nil {
		return fmt.Errorf("tasks dependency not set")
	}
	if m.plannerPort == nil {
		return fmt.Errorf("planner dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	// Add middleware
	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	// Setup routes
	m.setupRoutes()

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", m.port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authContainer, m.authAdapter, m.taskPort, m.plannerPort)

	// Health check endpoint
	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// API v1 routes
	v1 := m.app.Group("/api/v1")

	// Public auth routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)

	// Protected routes (require authentication)
	protected := v1.Group("")
	protected.Use(AuthMiddleware(m.authAdapter))
	protected.Get("/profile", handlers.Profile)

	// Task and planner routes. Anonymous requests operate on the shared
	// anonymous collection; a bad token is still rejected.
	session := v1.Group("")
	session.Use(OptionalAuthMiddleware(m.authAdapter))
	session.Get("/tasks", handlers.ListTasks)
	session.Post("/tasks", handlers.CreateTask)
	session.Patch("/tasks/:id", handlers.UpdateTask)
	session.Post("/tasks/:id/toggle", handlers.ToggleTask)
	session.Delete("/tasks/:id", handlers.DeleteTask)
	session.Get("/planner/week", handlers.WeekView)
	session.Get("/planner/month", handlers.MonthGrid)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
