package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teamtasks/task-system/internal/core/domain"
	"github.com/teamtasks/task-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task and note operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /v1/tasks.
//
// @Summary      Create a new task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date must be YYYY-MM-DD")
	}

	task, err := h.service.CreateTask(c.Request().Context(), actor, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Get handles GET /v1/tasks/:id.
//
// @Summary      Get a task with its notes
// @Tags         tasks
// @Produce      json
// @Security     SessionAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  taskDetailResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.service.GetTask(c.Request().Context(), actor, taskID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskDetailResponse(detail))
}

// List handles GET /v1/tasks with optional assignee_id, status, due_from,
// due_to query filters.
//
// @Summary      List the team's tasks
// @Tags         tasks
// @Produce      json
// @Security     SessionAuth
// @Param        assignee_id  query     int     false  "Filter by assignee"
// @Param        status       query     string  false  "Filter by status"
// @Param        due_from     query     string  false  "Due date window start (YYYY-MM-DD)"
// @Param        due_to       query     string  false  "Due date window end (YYYY-MM-DD)"
// @Success      200          {object}  taskListResponse
// @Failure      400          {object}  errorResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}

	filter := ports.ListTasksFilter{Status: c.QueryParam("status")}
	if raw := c.QueryParam("assignee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "assignee_id must be an integer")
		}
		filter.AssigneeID = &id
	}
	if filter.DueFrom, err = parseDueDate(c.QueryParam("due_from")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_from must be YYYY-MM-DD")
	}
	if filter.DueTo, err = parseDueDate(c.QueryParam("due_to")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_to must be YYYY-MM-DD")
	}

	tasks, err := h.service.ListTasks(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	resp := taskListResponse{Items: make([]taskResponse, 0, len(tasks)), Total: len(tasks)}
	for i := range tasks {
		resp.Items = append(resp.Items, toTaskResponse(&tasks[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Update handles PATCH /v1/tasks/:id.
//
// @Summary      Update a task's descriptive fields
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      int                true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateTaskInput{Title: req.Title, Description: req.Description}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			input.ClearDueDate = true
		} else {
			due, err := parseDueDate(*req.DueDate)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "due_date must be YYYY-MM-DD")
			}
			input.DueDate = due
		}
	}

	task, err := h.service.UpdateTask(c.Request().Context(), actor, taskID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// UpdateStatus handles POST /v1/tasks/:id/status.
//
// @Summary      Change the task status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      int            true  "Task id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id}/status [post]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.UpdateStatus(c.Request().Context(), actor, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Assign handles POST /v1/tasks/:id/assign.
//
// @Summary      Assign or clear the task assignee
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      int            true  "Task id"
// @Param        body  body      assignRequest  true  "Assignee (null clears)"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id}/assign [post]
func (h *TaskHandler) Assign(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	task, err := h.service.Assign(c.Request().Context(), actor, taskID, req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /v1/tasks/:id.
//
// @Summary      Delete a task and its notes
// @Tags         tasks
// @Produce      json
// @Security     SessionAuth
// @Param        id   path  int  true  "Task id"
// @Success      204  "task deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteTask(c.Request().Context(), actor, taskID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddNote handles POST /v1/tasks/:id/notes.
//
// @Summary      Add a note to a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     SessionAuth
// @Param        id    path      int             true  "Task id"
// @Param        body  body      addNoteRequest  true  "Note body"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/tasks/{id}/notes [post]
func (h *TaskHandler) AddNote(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req addNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.AddNote(c.Request().Context(), actor, taskID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// DeleteNote handles DELETE /v1/tasks/:id/notes/:note_id.
//
// @Summary      Soft-delete a note
// @Tags         tasks
// @Produce      json
// @Security     SessionAuth
// @Param        id       path  int  true  "Task id"
// @Param        note_id  path  int  true  "Note id"
// @Success      204  "note deleted"
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tasks/{id}/notes/{note_id} [delete]
func (h *TaskHandler) DeleteNote(c echo.Context) error {
	actor, err := ctxUser(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	noteID, err := pathID(c, "note_id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteNote(c.Request().Context(), actor, taskID, noteID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
