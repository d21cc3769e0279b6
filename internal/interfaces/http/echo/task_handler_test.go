package echo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	app "github.com/styleforge/datagovern/internal/application/governance"
	"github.com/styleforge/datagovern/internal/domain/catalog"
	"github.com/styleforge/datagovern/internal/infrastructure/memory"
	httpecho "github.com/styleforge/datagovern/internal/interfaces/http/echo"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type fakeCreateTask struct {
	out app.CreateTaskOutput
	err error
	got app.CreateTaskInput
}

func (f *fakeCreateTask) Execute(ctx context.Context, in app.CreateTaskInput) (app.CreateTaskOutput, error) {
	f.got = in
	return f.out, f.err
}

type fakeListTasks struct {
	out app.ListTasksOutput
	err error
}

func (f *fakeListTasks) Execute(ctx context.Context, in app.ListTasksInput) (app.ListTasksOutput, error) {
	return f.out, f.err
}

type fakeGetTask struct {
	out app.TaskOutput
	err error
}

func (f *fakeGetTask) Execute(ctx context.Context, in app.GetTaskInput) (app.TaskOutput, error) {
	return f.out, f.err
}

type fakeDeleteTask struct {
	err error
	got string
}

func (f *fakeDeleteTask) Execute(ctx context.Context, in app.DeleteTaskInput) error {
	f.got = in.ID
	return f.err
}

type fakeStartEnrichment struct {
	out app.StartEnrichmentOutput
	err error
}

func (f *fakeStartEnrichment) Execute(ctx context.Context, in app.StartEnrichmentInput) (app.StartEnrichmentOutput, error) {
	return f.out, f.err
}

type fakeRetryEnrichment struct {
	out app.StartEnrichmentOutput
	err error
}

func (f *fakeRetryEnrichment) Execute(ctx context.Context, in app.RetryEnrichmentInput) (app.StartEnrichmentOutput, error) {
	return f.out, f.err
}

type fakeTransmitTask struct {
	out app.TransmitTaskOutput
	err error
}

func (f *fakeTransmitTask) Execute(ctx context.Context, in app.TransmitTaskInput) (app.TransmitTaskOutput, error) {
	return f.out, f.err
}

type taskUseCases struct {
	create   *fakeCreateTask
	list     *fakeListTasks
	get      *fakeGetTask
	remove   *fakeDeleteTask
	start    *fakeStartEnrichment
	retry    *fakeRetryEnrichment
	transmit *fakeTransmitTask
}

func newTaskUseCases() *taskUseCases {
	return &taskUseCases{
		create:   &fakeCreateTask{},
		list:     &fakeListTasks{},
		get:      &fakeGetTask{},
		remove:   &fakeDeleteTask{},
		start:    &fakeStartEnrichment{},
		retry:    &fakeRetryEnrichment{},
		transmit: &fakeTransmitTask{},
	}
}

func newTaskServer(ucs *taskUseCases) *echo.Echo {
	server := echo.New()

	rows := memory.NewAttributeStore()
	views := app.NewViewRegistry(rows, 10)

	taskHandler := httpecho.NewTaskHandler(
		ucs.create, ucs.list, ucs.get, ucs.remove, ucs.start, ucs.retry, ucs.transmit,
	)
	rowHandler := httpecho.NewRowHandler(
		views,
		app.NewUpdateRowField(memory.NewTaskRepository(), rows),
		app.NewSetRowConfirmed(rows),
	)
	styleHandler := httpecho.NewStyleHandler(&fakeGenerateStyles{})
	configHandler := httpecho.NewConfigHandler(app.NewFieldConfigService(memory.NewFieldConfigStore()))

	httpecho.RegisterRoutes(server, taskHandler, rowHandler, styleHandler, configHandler)
	return server
}

func doJSON(t *testing.T, server *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.create.out = app.CreateTaskOutput{TaskID: "t1", Status: "pending", TotalRows: 2}
	server := newTaskServer(ucs)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/tasks",
		`{"name": "春装上新", "source": "spreadsheet", "rows": [{"sku": "A"}, {"sku": "B"}]}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var out app.CreateTaskOutput
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.TaskID != "t1" || out.TotalRows != 2 {
		t.Fatalf("unexpected payload: %+v", out)
	}
	if ucs.create.got.Name != "春装上新" || len(ucs.create.got.Rows) != 2 {
		t.Fatalf("use case received wrong input: %+v", ucs.create.got)
	}
}

func TestCreateTaskEndpointInvalidInput(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.create.err = app.ErrInvalidTaskInput
	server := newTaskServer(ucs)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/tasks", `{"name": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "invalid_request" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
}

func TestGetTaskEndpointNotFound(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.get.err = catalog.ErrTaskNotFound
	server := newTaskServer(ucs)

	rec, env := doJSON(t, server, http.MethodGet, "/api/v1/tasks/ghost", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "task_not_found" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
}

func TestStartEnrichmentEndpoint(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.start.out = app.StartEnrichmentOutput{TaskID: "t1", AIStatus: "processing"}
	server := newTaskServer(ucs)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/tasks/t1/enrichment", "")

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
	var out app.StartEnrichmentOutput
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.AIStatus != "processing" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestStartEnrichmentEndpointAlreadyRunning(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.start.err = app.ErrEnrichmentRunning
	server := newTaskServer(ucs)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/tasks/t1/enrichment", "")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "enrichment_running" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
}

func TestRetryEnrichmentEndpoint(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.retry.out = app.StartEnrichmentOutput{TaskID: "t1", AIStatus: "processing"}
	server := newTaskServer(ucs)

	rec, _ := doJSON(t, server, http.MethodPost, "/api/v1/tasks/t1/enrichment/retry", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}
}

func TestTransmitEndpointErrors(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	ucs.transmit.err = app.ErrTaskNotTransmittable
	server := newTaskServer(ucs)

	rec, env := doJSON(t, server, http.MethodPost, "/api/v1/tasks/t1/transmit",
		`{"destination": "https://pdm.example.com/ingest"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "not_transmittable" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}

	ucs = newTaskUseCases()
	ucs.transmit.err = app.ErrTransmitFailed
	server = newTaskServer(ucs)

	rec, env = doJSON(t, server, http.MethodPost, "/api/v1/tasks/t1/transmit",
		`{"destination": "https://pdm.example.com/ingest"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "transmit_failed" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
}

func TestDeleteTaskEndpoint(t *testing.T) {
	t.Parallel()

	ucs := newTaskUseCases()
	server := newTaskServer(ucs)

	rec, _ := doJSON(t, server, http.MethodDelete, "/api/v1/tasks/t1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if ucs.remove.got != "t1" {
		t.Fatalf("use case received wrong id: %q", ucs.remove.got)
	}
}
