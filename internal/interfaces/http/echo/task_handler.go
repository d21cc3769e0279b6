package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
)

type TaskHandler struct {
	create   app.CreateTask
	list     app.ListTasks
	get      app.GetTask
	remove   app.DeleteTask
	start    app.StartEnrichment
	retry    app.RetryEnrichment
	transmit app.TransmitTask
}

func NewTaskHandler(
	create app.CreateTask,
	list app.ListTasks,
	get app.GetTask,
	remove app.DeleteTask,
	start app.StartEnrichment,
	retry app.RetryEnrichment,
	transmit app.TransmitTask,
) *TaskHandler {
	return &TaskHandler{
		create:   create,
		list:     list,
		get:      get,
		remove:   remove,
		start:    start,
		retry:    retry,
		transmit: transmit,
	}
}

type createTaskRequest struct {
	Name       string       `json:"name"`
	Source     string       `json:"source"`
	SourcePath string       `json:"source_path"`
	Rows       []app.RawRow `json:"rows"`
}

func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.create.Execute(c.Request().Context(), app.CreateTaskInput{
		Name:       req.Name,
		Source:     req.Source,
		SourcePath: req.SourcePath,
		Rows:       req.Rows,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *TaskHandler) ListTasks(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListTasksInput{
		Status: c.QueryParam("status"),
		Query:  c.QueryParam("q"),
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *TaskHandler) GetTask(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetTaskInput{ID: c.Param("id")})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *TaskHandler) DeleteTask(c echo.Context) error {
	if err := h.remove.Execute(c.Request().Context(), app.DeleteTaskInput{ID: c.Param("id")}); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TaskHandler) StartEnrichment(c echo.Context) error {
	out, err := h.start.Execute(c.Request().Context(), app.StartEnrichmentInput{TaskID: c.Param("id")})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *TaskHandler) RetryEnrichment(c echo.Context) error {
	out, err := h.retry.Execute(c.Request().Context(), app.RetryEnrichmentInput{TaskID: c.Param("id")})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

type transmitRequest struct {
	Destination string   `json:"destination"`
	RowIDs      []string `json:"row_ids"`
}

func (h *TaskHandler) TransmitTask(c echo.Context) error {
	var req transmitRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.transmit.Execute(c.Request().Context(), app.TransmitTaskInput{
		TaskID:      c.Param("id"),
		Destination: req.Destination,
		RowIDs:      req.RowIDs,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
