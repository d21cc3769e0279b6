package echo

import (
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
)

type StyleHandler struct {
	generate app.GenerateStyles
}

func NewStyleHandler(generate app.GenerateStyles) *StyleHandler {
	return &StyleHandler{generate: generate}
}

type generateStylesRequest struct {
	Seed  string `json:"seed"`
	Count int    `json:"count"`
}

func (h *StyleHandler) GenerateStyles(c echo.Context) error {
	var req generateStylesRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	out, err := h.generate.Execute(c.Request().Context(), app.GenerateStylesInput{
		Seed:  req.Seed,
		Count: req.Count,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
