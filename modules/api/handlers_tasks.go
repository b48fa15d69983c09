package api

import (
	"errors"
	"time"

	domain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/modules/task"
	"github.com/gofiber/fiber/v2"
)

var errUnauthorized = ErrorResponse{Error: "Unauthorized"}

// updateTaskRequest is a partial update body. Due dates arrive as text and
// an empty one clears the field.
type updateTaskRequest struct {
	Title       domain.Field[string]          `json:"title"`
	Description domain.Field[string]          `json:"description"`
	DueDate     domain.Field[string]          `json:"dueDate"`
	Priority    domain.Field[domain.Priority] `json:"priority"`
	Category    domain.Field[string]          `json:"category"`
	Status      domain.Field[domain.Status]   `json:"status"`
}

func (r updateTaskRequest) patch() (domain.Patch, map[string][]string) {
	p := domain.Patch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Category:    r.Category,
		Status:      r.Status,
	}

	errs := map[string][]string{}
	if r.DueDate.Set {
		if r.DueDate.Null || r.DueDate.Value == "" {
			p.DueDate = domain.Null[time.Time]()
		} else if due, err := domain.ParseDate(r.DueDate.Value); err != nil {
			errs["dueDate"] = []string{"Invalid date"}
		} else {
			p.DueDate = domain.Value(due)
		}
	}
	for field, msgs := range p.Validate() {
		errs[field] = append(errs[field], msgs...)
	}

	if len(errs) == 0 {
		return p, nil
	}
	return p, errs
}

// ListTasks returns one filtered page of the caller's tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	claims := h.currentSession(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errUnauthorized)
	}

	filter := domain.Filter{
		Page:     domain.ParsePositive(c.Query("page")),
		Limit:    domain.ParsePositive(c.Query("limit")),
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}

	page, err := h.tasks.Query(c.UserContext(), claims.UserID, filter)
	if err != nil {
		h.logger.Error("Failed to fetch tasks", "user_id", claims.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to fetch tasks",
		})
	}

	return c.JSON(page)
}

// CreateTask stores a new task for the caller.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, fiber.StatusBadRequest, formError(msgInvalidBody))
	}
	if errs := h.validator.Check(&req); errs != nil {
		return validationError(c, fiber.StatusBadRequest, errs)
	}

	var due *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := domain.ParseDate(*req.DueDate)
		if err != nil {
			return validationError(c, fiber.StatusBadRequest, fieldErrors(map[string][]string{
				"dueDate": {"Invalid date"},
			}))
		}
		due = &parsed
	}

	claims := h.currentSession(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errUnauthorized)
	}

	created, err := h.tasks.Create(c.UserContext(), task.CreateTaskRequest{
		OwnerID:     claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    domain.Priority(req.Priority),
		Category:    req.Category,
		Status:      domain.Status(req.Status),
	})
	if err != nil {
		h.logger.Error("Failed to create task", "user_id", claims.UserID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to create task",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateTask applies a partial update to one task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, fiber.StatusBadRequest, formError(msgInvalidBody))
	}
	patch, errs := req.patch()
	if errs != nil {
		return validationError(c, fiber.StatusBadRequest, fieldErrors(errs))
	}

	owner, ok := h.mutationOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(errUnauthorized)
	}

	id := c.Params("id")
	updated, err := h.tasks.Update(c.UserContext(), id, owner, patch)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "Task not found",
				Message: "No task with id " + id,
			})
		}
		h.logger.Error("Failed to update task", "task_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to update task",
		})
	}

	return c.JSON(updated)
}

// DeleteTask removes one task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	owner, ok := h.mutationOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(errUnauthorized)
	}

	id := c.Params("id")
	if err := h.tasks.Delete(c.UserContext(), id, owner); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error:   "Task not found",
				Message: "No task with id " + id,
			})
		}
		h.logger.Error("Failed to delete task", "task_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to delete task",
		})
	}

	return c.JSON(SuccessResponse{Success: true})
}

// BulkDeleteTasks removes a set of tasks. The count echoes the number of
// submitted ids.
func (h *Handlers) BulkDeleteTasks(c *fiber.Ctx) error {
	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return validationError(c, fiber.StatusBadRequest, formError(msgInvalidBody))
	}
	if errs := h.validator.Check(&req); errs != nil {
		return validationError(c, fiber.StatusBadRequest, errs)
	}

	owner, ok := h.mutationOwner(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(errUnauthorized)
	}

	count, err := h.tasks.DeleteMany(c.UserContext(), req.IDs, owner)
	if err != nil {
		h.logger.Error("Failed to delete tasks", "count", len(req.IDs), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to delete tasks",
		})
	}

	return c.JSON(BulkDeleteResponse{Success: true, Count: count})
}

// mutationOwner resolves the owner scope for updates and deletes. Without
// ownership enforcement the scope is empty and no session is needed.
func (h *Handlers) mutationOwner(c *fiber.Ctx) (string, bool) {
	if !h.enforceOwnership {
		return "", true
	}
	claims := h.currentSession(c)
	if claims == nil {
		return "", false
	}
	return claims.UserID, true
}
