package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"trends-go/internal/config"
	"trends-go/internal/query"
	"trends-go/internal/service"
	"trends-go/pkg/logger"
	"trends-go/pkg/metrics"
	"trends-go/pkg/trends"
)

// Controller serves one route per report plus health and metrics.
type Controller struct {
	search   service.SearchService
	defaults config.SearchConfig
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewController(search service.SearchService, defaults config.SearchConfig, m *metrics.Metrics, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Controller{
		search:   search,
		defaults: defaults,
		metrics:  m,
		log:      log.WithComponent("http"),
		now:      time.Now,
	}
}

// App builds the fiber application with every route registered.
func (ctl *Controller) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "trends-go",
		DisableStartupMessage: true,
		ErrorHandler:          ctl.handleError,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(ctl.logRequests)

	for _, report := range trends.AllReports {
		app.Get("/"+report.Slug(), ctl.searchHandler(report))
	}

	app.Get("/health", ctl.health)
	if ctl.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(ctl.metrics.Handler()))
	}

	return app
}

func (ctl *Controller) searchHandler(report trends.ReportType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := query.Params{
			SearchTerm: c.Query("searchTerm"),
			Location:   c.Query("location"),
			Category:   c.Query("category"),
			Language:   c.Query("language"),
			Property:   c.Query("property"),
			Top:        c.Query("withTopMetrics"),
			Rising:     c.Query("withRisingMetrics"),
			Date:       c.Query("date"),
		}

		filter, err := params.Filter(ctl.defaults, ctl.now())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := ctl.search.Search(c.UserContext(), report, filter)
		if err != nil {
			return err
		}

		return c.JSON(result)
	}
}

func (ctl *Controller) health(c *fiber.Ctx) error {
	return c.JSON(StatusResponse{
		Status:    "ok",
		Timestamp: ctl.now().UTC().Format(time.RFC3339),
	})
}

// handleError maps domain failures to 502 and everything else to its fiber
// status, or 500.
func (ctl *Controller) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	var domainErr *trends.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.As(err, &domainErr):
		code = fiber.StatusBadGateway
	}

	if code >= fiber.StatusInternalServerError {
		ctl.log.WithError(err).WithField("path", c.Path()).Error("Request failed")
	}

	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

func (ctl *Controller) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if err != nil {
		err = ctl.handleError(c, err)
	}

	ctl.log.WithFields(map[string]interface{}{
		"method":      c.Method(),
		"path":        c.Path(),
		"status":      c.Response().StatusCode(),
		"request_id":  c.GetRespHeader(fiber.HeaderXRequestID),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Request handled")

	return err
}
