package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
)

type ConfigHandler struct {
	fields app.FieldConfigService
}

func NewConfigHandler(fields app.FieldConfigService) *ConfigHandler {
	return &ConfigHandler{fields: fields}
}

func (h *ConfigHandler) GetFieldConfig(c echo.Context) error {
	out, err := h.fields.Get(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type updateFieldConfigRequest struct {
	Style  []string `json:"style"`
	Fabric []string `json:"fabric"`
}

func (h *ConfigHandler) UpdateFieldConfig(c echo.Context) error {
	var req updateFieldConfigRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.fields.Update(c.Request().Context(), app.UpdateFieldConfigInput{
		Style:  req.Style,
		Fabric: req.Fabric,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
