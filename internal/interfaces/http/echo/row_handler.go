package echo

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
)

type RowHandler struct {
	views       *app.ViewRegistry
	updateField app.UpdateRowField
	confirm     app.SetRowConfirmed
}

func NewRowHandler(views *app.ViewRegistry, updateField app.UpdateRowField, confirm app.SetRowConfirmed) *RowHandler {
	return &RowHandler{views: views, updateField: updateField, confirm: confirm}
}

type viewRowResponse struct {
	app.RowOutput
	Selected bool `json:"selected"`
}

type viewPageResponse struct {
	Filter        string            `json:"filter"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
	PageCount     int               `json:"page_count"`
	FilteredCount int               `json:"filtered_count"`
	SelectedCount int               `json:"selected_count"`
	Rows          []viewRowResponse `json:"rows"`
}

// GetRows renders the projected view: filter, then page, then selection.
func (h *RowHandler) GetRows(c echo.Context) error {
	filter, err := app.ParseRowFilter(c.QueryParam("filter"))
	if err != nil {
		return mapError(c, err)
	}

	view := h.views.For(c.Param("id"))
	view.SetFilter(filter)
	if rawPage := c.QueryParam("page"); rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			return fail(c, http.StatusBadRequest, "bad_request", "page must be a positive integer")
		}
		view.SetPage(page)
	}

	snapshot, err := view.Snapshot(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}

	resp := viewPageResponse{
		Filter:        string(snapshot.Filter),
		Page:          snapshot.Page,
		PageSize:      snapshot.PageSize,
		PageCount:     snapshot.PageCount,
		FilteredCount: snapshot.FilteredCount,
		SelectedCount: snapshot.SelectedCount,
		Rows:          make([]viewRowResponse, 0, len(snapshot.Rows)),
	}
	for _, row := range snapshot.Rows {
		resp.Rows = append(resp.Rows, viewRowResponse{
			RowOutput: app.RowToOutput(row.Row),
			Selected:  row.Selected,
		})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: resp})
}

type updateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *RowHandler) UpdateField(c echo.Context) error {
	var req updateFieldRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.updateField.Execute(c.Request().Context(), app.UpdateRowFieldInput{
		TaskID: c.Param("id"),
		RowID:  c.Param("rowID"),
		Field:  req.Field,
		Value:  req.Value,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type confirmRowRequest struct {
	Confirmed bool `json:"confirmed"`
}

func (h *RowHandler) ConfirmRow(c echo.Context) error {
	var req confirmRowRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.confirm.Execute(c.Request().Context(), app.SetRowConfirmedInput{
		TaskID:    c.Param("id"),
		RowID:     c.Param("rowID"),
		Confirmed: req.Confirmed,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type toggleSelectionRequest struct {
	RowID string `json:"row_id"`
}

func (h *RowHandler) ToggleSelection(c echo.Context) error {
	var req toggleSelectionRequest
	if err := c.Bind(&req); err != nil || req.RowID == "" {
		return fail(c, http.StatusBadRequest, "bad_request", "row_id is required")
	}

	h.views.For(c.Param("id")).ToggleOne(req.RowID)
	return c.NoContent(http.StatusNoContent)
}

func (h *RowHandler) SelectAllOnPage(c echo.Context) error {
	if err := h.views.For(c.Param("id")).SelectAllOnPage(c.Request().Context()); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type batchConfirmResponse struct {
	Confirmed int `json:"confirmed"`
}

func (h *RowHandler) ConfirmSelected(c echo.Context) error {
	confirmed, err := h.views.For(c.Param("id")).ConfirmSelected(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: batchConfirmResponse{Confirmed: confirmed}})
}
