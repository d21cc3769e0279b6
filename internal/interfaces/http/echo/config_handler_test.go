package echo_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
	"github.com/styleforge/datagovern/internal/infrastructure/memory"
	httpecho "github.com/styleforge/datagovern/internal/interfaces/http/echo"
)

func newStyleServer(generate app.GenerateStyles) *echo.Echo {
	server := echo.New()

	rows := memory.NewAttributeStore()
	views := app.NewViewRegistry(rows, 10)

	taskHandler := httpecho.NewTaskHandler(
		&fakeCreateTask{}, &fakeListTasks{}, &fakeGetTask{}, &fakeDeleteTask{},
		&fakeStartEnrichment{}, &fakeRetryEnrichment{}, &fakeTransmitTask{},
	)
	rowHandler := httpecho.NewRowHandler(
		views,
		app.NewUpdateRowField(memory.NewTaskRepository(), rows),
		app.NewSetRowConfirmed(rows),
	)
	styleHandler := httpecho.NewStyleHandler(generate)
	configHandler := httpecho.NewConfigHandler(app.NewFieldConfigService(memory.NewFieldConfigStore()))

	httpecho.RegisterRoutes(server, taskHandler, rowHandler, styleHandler, configHandler)
	return server
}

func TestFieldConfigEndpoints(t *testing.T) {
	t.Parallel()

	server := newStyleServer(&fakeGenerateStyles{})

	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/config/fields", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out app.FieldConfigOutput
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if len(out.Style) != 2 || out.Style[0] != "material" {
		t.Fatalf("unexpected defaults: %+v", out)
	}

	rec, env = doJSON(t, server, http.MethodPut, "/api/v1/config/fields",
		`{"style": ["material", "style"], "fabric": ["color"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode updated config: %v", err)
	}
	if len(out.Style) != 2 || out.Style[1] != "style" || len(out.Fabric) != 1 {
		t.Fatalf("unexpected updated config: %+v", out)
	}

	// The update must be visible on the next read.
	_, env = doJSON(t, server, http.MethodGet, "/api/v1/config/fields", "")
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode config after update: %v", err)
	}
	if len(out.Fabric) != 1 || out.Fabric[0] != "color" {
		t.Fatalf("update did not persist: %+v", out)
	}
}

func TestUpdateFieldConfigEndpointRejectsUnknownField(t *testing.T) {
	t.Parallel()

	server := newStyleServer(&fakeGenerateStyles{})

	rec, env := doJSON(t, server, http.MethodPut, "/api/v1/config/fields",
		`{"style": ["weight"], "fabric": ["color"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "invalid_request" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
}
