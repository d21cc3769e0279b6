package bootstrap

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	app "github.com/styleforge/datagovern/internal/application/governance"
	"github.com/styleforge/datagovern/internal/domain/catalog"
	httpecho "github.com/styleforge/datagovern/internal/interfaces/http/echo"
)

// Dependencies carries the infrastructure the server is wired from. The
// stores and the runner live for the whole session; everything else is
// constructed here.
type Dependencies struct {
	Logger      *zap.Logger
	Tasks       catalog.TaskRepository
	Rows        catalog.RowStore
	FieldConfig catalog.FieldConfigStore
	Source      app.RowSource
	Concepts    catalog.ConceptGenerator
	Images      catalog.ImageSynthesizer
	Transmitter catalog.Transmitter
	Runner      *app.EnrichmentRunner
	PageSize    int
}

func NewHTTPServer(deps Dependencies) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))

	views := app.NewViewRegistry(deps.Rows, deps.PageSize)

	taskHandler := httpecho.NewTaskHandler(
		app.NewCreateTask(deps.Tasks, deps.Rows, deps.Source),
		app.NewListTasks(deps.Tasks),
		app.NewGetTask(deps.Tasks),
		app.NewDeleteTask(deps.Tasks, deps.Rows, views),
		app.NewStartEnrichment(deps.Runner),
		app.NewRetryEnrichment(deps.Runner),
		app.NewTransmitTask(deps.Tasks, deps.Rows, deps.Transmitter),
	)
	rowHandler := httpecho.NewRowHandler(
		views,
		app.NewUpdateRowField(deps.Tasks, deps.Rows),
		app.NewSetRowConfirmed(deps.Rows),
	)
	styleHandler := httpecho.NewStyleHandler(
		app.NewGenerateStyles(deps.Concepts, deps.Images, deps.Logger),
	)
	configHandler := httpecho.NewConfigHandler(
		app.NewFieldConfigService(deps.FieldConfig),
	)

	httpecho.RegisterRoutes(server, taskHandler, rowHandler, styleHandler, configHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
