package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tasktracker/internal/models"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusTaskCreated  = "task_created"
	statusTaskUpdated  = "task_updated"
	statusTaskDeleted  = "task_deleted"
	statusTasksDeleted = "tasks_deleted"
	statusIgnored      = "ignored"

	// The inline-save button posts this action; any other value no-ops.
	actionSaveRow = "save_row"

	errLoadBoard   = "failed to load task list"
	errInvalidID   = "invalid task id"
	errBodyInvalid = "invalid body: "
)

// respondError maps service errors to JSON responses: field-level
// validation → 400 with the field list, not-found → 404, anything
// else → 500 with a generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}
	if errors.Is(err, service.ErrTaskNotFound) || errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if h.log != nil {
		h.log.Errorw("task_request_failed", "err", err, "path", c.FullPath())
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// taskIDParam parses the :id path segment.
func taskIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// Request DTO for creating a task. Optional fields arrive as strings,
// mirroring the form the values come from.
type createTaskRequest struct {
	Name           string `json:"name"`
	AssignedUserID string `json:"assigned_user_id,omitempty"`
	Status         string `json:"status,omitempty"`
	DueDate        string `json:"due_date,omitempty"` // YYYY-MM-DD
}

// @Summary      Task list
// @Description  All tasks ordered by due date ascending (undated last), plus users and status choices for the row editors.
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "tasks, count, users, statuses"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /task_list/ [get]
// @Security     BearerAuth
func (h *Handler) taskList(c *gin.Context) {
	ctx := c.Request.Context()

	tasks, err := h.services.Tasks.List(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("task_list_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadBoard})
		return
	}
	users, err := h.services.Users.List(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("task_list_users_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadBoard})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":    tasks,
		"count":    len(tasks),
		"users":    users,
		"statuses": models.Statuses(),
	})
}

// @Summary      Task form
// @Description  Choices needed to render the create-task form.
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "users, statuses"
// @Failure      401  {object}  map[string]string
// @Router       /task_list/task_form/ [get]
// @Security     BearerAuth
func (h *Handler) taskFormPage(c *gin.Context) {
	users, err := h.services.Users.List(c.Request.Context())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("task_form_users_failed", "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadBoard})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"statuses": models.Statuses(),
	})
}

// @Summary      Create task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body  createTaskRequest  true  "Task fields"
// @Success      200  {object}  map[string]interface{}  "status, task"
// @Failure      400  {object}  map[string]interface{}  "error, fields"
// @Failure      401  {object}  map[string]string
// @Router       /task_list/task_form/ [post]
// @Security     BearerAuth
func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errBodyInvalid + err.Error()})
		return
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), service.NewTask{
		Name:       req.Name,
		AssigneeID: req.AssignedUserID,
		Status:     req.Status,
		DueDate:    req.DueDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusTaskCreated, "task": task})
}

// @Summary      Inline row update
// @Description  Saves one row from the task list. Requires action=save_row; form fields are keyed by task id (task_status_{id}, assigned_user_{id}, due_date_{id}). Blank assignee keeps the current one; an empty due date clears it.
// @Tags         tasks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id      path      int     true   "Task id"
// @Param        action  formData  string  true   "Must be save_row"
// @Success      200  {object}  map[string]interface{}  "status, task"
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/update/ [post]
// @Security     BearerAuth
func (h *Handler) updateTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	// Only process if the row Save button was clicked.
	if c.PostForm("action") != actionSaveRow {
		c.JSON(http.StatusOK, gin.H{"status": statusIgnored})
		return
	}

	in := service.TaskUpdate{
		Status:     c.PostForm(fmt.Sprintf("task_status_%d", id)),
		AssigneeID: c.PostForm(fmt.Sprintf("assigned_user_%d", id)),
	}
	// Due date distinguishes "field absent" from "field empty": absent
	// keeps the current date, empty clears it.
	if due, present := c.GetPostForm(fmt.Sprintf("due_date_%d", id)); present {
		trimmed := strings.TrimSpace(due)
		in.DueDate = &trimmed
	}

	task, err := h.services.Tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusTaskUpdated, "task": task})
}

// @Summary      Delete task
// @Tags         tasks
// @Produce      json
// @Param        id  path  int  true  "Task id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/delete/ [post]
// @Security     BearerAuth
func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Tasks.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusTaskDeleted})
}

// @Summary      Bulk delete tasks
// @Description  Deletes every listed id that exists; unknown ids are silently ignored.
// @Tags         tasks
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        ids  formData  []string  true  "Task ids"  collectionFormat(multi)
// @Success      200  {object}  map[string]interface{}  "status, deleted"
// @Failure      401  {object}  map[string]string
// @Router       /tasks/bulk-delete/ [post]
// @Security     BearerAuth
func (h *Handler) bulkDeleteTasks(c *gin.Context) {
	raw := c.PostFormArray("ids")
	ids := make([]int, 0, len(raw))
	for _, s := range raw {
		if id, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}

	deleted, err := h.services.Tasks.BulkDelete(c.Request.Context(), ids)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusTasksDeleted, "deleted": deleted})
}
