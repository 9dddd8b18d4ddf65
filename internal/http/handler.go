package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	dto "donext/internal/data_models"
	apperrors "donext/internal/errors"
	middleware "donext/internal/http/middlewares"
	model "donext/internal/models"
	"donext/internal/services"
)

type Handler struct {
	taskService *services.TaskService
	chatService *services.ChatService
	db          *gorm.DB
}

func NewHandler(taskService *services.TaskService, chatService *services.ChatService, db *gorm.DB) *Handler {
	return &Handler{
		taskService: taskService,
		chatService: chatService,
		db:          db,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	var completed *bool
	if raw := c.QueryParam("completed"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.Validation("completed must be true or false.", nil)
		}
		completed = &parsed
	}

	tasks, err := h.taskService.List(c.Request().Context(), middleware.UserID(c), completed)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	task, err := h.taskService.Create(ctx, middleware.UserID(c), services.CreateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		Priority:          model.TaskPriority(req.Priority),
		DueDate:           req.DueDate,
		Tags:              req.Tags,
		RecurrencePattern: model.RecurrencePattern(req.RecurrencePattern),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.RecurrencePattern != nil {
		pattern := model.RecurrencePattern(*req.RecurrencePattern)
		input.RecurrencePattern = &pattern
	}

	task, err := h.taskService.Update(c.Request().Context(), middleware.UserID(c), id, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	if _, err := h.taskService.SoftDelete(c.Request().Context(), middleware.UserID(c), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ToggleTaskCompletion(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleComplete(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("Task id must be a positive integer.", nil)
	}
	return uint(id), nil
}
