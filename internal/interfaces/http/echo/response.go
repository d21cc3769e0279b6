package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
	"github.com/styleforge/datagovern/internal/domain/catalog"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, apiResponse{Error: &errorBody{Code: code, Message: message}})
}

// mapError translates application and domain sentinels into HTTP responses.
func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrTaskNotFound):
		return fail(c, http.StatusNotFound, "task_not_found", "task not found")
	case errors.Is(err, catalog.ErrRowNotFound):
		return fail(c, http.StatusNotFound, "row_not_found", "row not found")
	case errors.Is(err, catalog.ErrUnknownField):
		return fail(c, http.StatusBadRequest, "unknown_field", "unknown attribute field")
	case errors.Is(err, catalog.ErrFieldLocked):
		return fail(c, http.StatusUnprocessableEntity, "field_locked", "field is not editable for this task source")
	case errors.Is(err, app.ErrInvalidTaskInput), errors.Is(err, app.ErrInvalidRowPayload),
		errors.Is(err, app.ErrInvalidSeed), errors.Is(err, app.ErrInvalidFieldConfig):
		return fail(c, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, app.ErrEnrichmentRunning):
		return fail(c, http.StatusConflict, "enrichment_running", "an enrichment run is already active for this task")
	case errors.Is(err, app.ErrTaskNotTransmittable):
		return fail(c, http.StatusConflict, "not_transmittable", "task is not ready to transmit")
	case errors.Is(err, app.ErrTransmitFailed):
		return fail(c, http.StatusBadGateway, "transmit_failed", "destination did not accept the transmission")
	case errors.Is(err, app.ErrGenerationFailed):
		return fail(c, http.StatusBadGateway, "generation_failed", "style generation failed")
	default:
		return fail(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
