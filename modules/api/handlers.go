package api

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
	domain "github.com/yusup-a/task-planner/domain/user"
	"github.com/yusup-a/task-planner/modules/auth"
	"github.com/yusup-a/task-planner/modules/planner"
	"github.com/yusup-a/task-planner/modules/tasks"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authContainer mono.ServiceContainer
	authAdapter   auth.AuthPort
	taskPort      tasks.TaskPort
	plannerPort   planner.PlannerPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authContainer mono.ServiceContainer, authAdapter auth.AuthPort, taskPort tasks.TaskPort, plannerPort planner.PlannerPort) *Handlers {
	return &Handlers{
		authContainer: authContainer,
		authAdapter:   authAdapter,
		taskPort:      taskPort,
		plannerPort:   plannerPort,
	}
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Username and password are required",
		})
	}

	// Call auth service
	authReq := auth.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.RegisterResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"register",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		CreatedAt: resp.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Username and password are required",
		})
	}

	// Call auth service
	authReq := auth.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	}
	var resp auth.LoginResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"login",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	if req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Refresh token is required",
		})
	}

	// Call auth service
	authReq := auth.RefreshRequest{
		RefreshToken: req.RefreshToken,
	}
	var resp auth.RefreshResponse

	if err := helper.CallRequestReplyService(
		c.UserContext(),
		h.authContainer,
		"refresh-token",
		json.Marshal,
		json.Unmarshal,
		&authReq,
		&resp,
	); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    resp.TokenType,
	})
}

// Profile handles getting the current user's profile.
// This is a protected endpoint that requires a valid JWT token.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims, ok := c.Locals(UserContextKey).(*domain.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "User not authenticated",
		})
	}

	user, err := h.authAdapter.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to retrieve user profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// ListTasks returns the caller's full task collection, newest first.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	resp, err := h.taskPort.ListTasks(c.UserContext(), usernameFromContext(c))
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateTask adds a task to the caller's collection.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	task, err := h.taskPort.AddTask(c.UserContext(), &tasks.AddTaskRequest{
		Username:  usernameFromContext(c),
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask merges a partial edit into an existing task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	task, err := h.taskPort.UpdateTask(c.UserContext(), &tasks.UpdateTaskRequest{
		Username:  usernameFromContext(c),
		TaskID:    c.Params("id"),
		Title:     req.Title,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(task)
}

// ToggleTask flips a task between open and completed.
func (h *Handlers) ToggleTask(c *fiber.Ctx) error {
	task, err := h.taskPort.ToggleTask(c.UserContext(), usernameFromContext(c), c.Params("id"))
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(task)
}

// DeleteTask removes a task from the caller's collection.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	if err := h.taskPort.RemoveTask(c.UserContext(), usernameFromContext(c), c.Params("id")); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// WeekView returns the 7-day view for the caller's collection at the
// given whole-week offset from the current week.
func (h *Handlers) WeekView(c *fiber.Ctx) error {
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "offset must be an integer",
		})
	}

	view, err := h.plannerPort.WeekView(c.UserContext(), usernameFromContext(c), offset)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// MonthGrid returns the 42-cell calendar grid for a month.
func (h *Handlers) MonthGrid(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "year must be an integer",
		})
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "month must be an integer",
		})
	}

	grid, err := h.plannerPort.MonthGrid(c.UserContext(), year, month)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(grid)
}

// handleServiceError maps module errors to HTTP responses. Errors cross
// the service boundary as strings, so dispatch matches known messages
// rather than sentinel values.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid username or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid username or password",
		})
	case strings.Contains(errStr, "username already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "Username already exists",
		})
	case strings.Contains(errStr, "username must be"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Username must be 1-32 letters, digits, '_', '-' or '.'",
		})
	case strings.Contains(errStr, "password must be at least"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at least 8 characters",
		})
	case strings.Contains(errStr, "password must be at most"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Password must be at most 72 characters",
		})
	case strings.Contains(errStr, "task title must not be empty"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Task title must not be empty",
		})
	case strings.Contains(errStr, "task not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Task not found",
		})
	case strings.Contains(errStr, "month must be between"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Month must be between 1 and 12",
		})
	default:
		// Log the actual error but don't expose it to the client
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
