package server

import (
	"exam-grader/internal/config"
	"exam-grader/internal/handler"
	"exam-grader/internal/middleware"
	"exam-grader/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Exam   *handler.ExamHandler
	Health *handler.HealthHandler
}

// NewApp builds the fiber app with its middleware chain and routes.
// Metrics are served from gatherer.
func NewApp(serverCfg config.ServerConfig, h Handlers, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		BodyLimit:    serverCfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  util.NewULID,
		ContextKey: middleware.RequestIDLocal,
	}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*"}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/health", h.Health.Health)

	app.Post("/evaluate-answer", h.Exam.EvaluateAnswer)
	app.Post("/store-exam-result", h.Exam.StoreExamResult)
	app.Post("/extract-keywords", h.Exam.ExtractKeywords)

	return app
}
