// Package serve exposes journal entries and emotion analytics over HTTP.
package serve

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"tableflip.dev/innervoice/pkg/analytics"
	"tableflip.dev/innervoice/pkg/app"
	"tableflip.dev/innervoice/pkg/classify"
)

// Config wraps the knobs that impact runtime behavior.
type Config struct {
	Addr string
	// DefaultRange is used when a request has no range query parameter.
	DefaultRange analytics.Range
	// AllowOrigins is passed to the CORS middleware. Empty allows any origin.
	AllowOrigins string
	// Quiet disables the access log.
	Quiet bool
}

// Server exposes the Fiber application.
type Server struct {
	app *fiber.App
	svc *app.Service
	cfg Config
	now func() time.Time
}

// NewServer wires handlers and middleware.
func NewServer(cfg Config, svc *app.Service) *Server {
	a := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler:          errorHandler,
	})
	a.Use(recover.New())
	if !cfg.Quiet {
		a.Use(logger.New(logger.Config{Format: "${time} | ${status} | ${latency} | ${method} ${path}\n"}))
	}
	corsCfg := cors.Config{}
	if cfg.AllowOrigins != "" {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	}
	a.Use(cors.New(corsCfg))

	srv := &Server{app: a, svc: svc, cfg: cfg, now: time.Now}
	if svc != nil && svc.Now != nil {
		srv.now = svc.Now
	}
	srv.registerRoutes()
	return srv
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts listening for HTTP traffic until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.Shutdown()
	}()

	log.Printf("innervoice api listening on %s", s.cfg.Addr)
	return s.app.Listen(s.cfg.Addr)
}

func (s *Server) registerRoutes() {
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "InnerVoice API is running"})
	})
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Post("/analyze", s.handleAnalyze)

	api := s.app.Group("/api/v1")
	api.Get("/entries", s.handleListEntries)
	api.Post("/entries", s.handleCreateEntry)
	api.Get("/entries/:id", s.handleGetEntry)
	api.Put("/entries/:id/feedback", s.handleFeedback)
	api.Delete("/entries/:id", s.handleDeleteEntry)
	api.Get("/analytics", s.handleAnalytics)
	api.Get("/export", s.handleExport)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}

// statusFor maps service errors onto HTTP errors.
func statusFor(err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrEmptyContent), errors.Is(err, classify.ErrEmptyText):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrUnclassified):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, app.ErrNoClassifier):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func (s *Server) rangeParam(c *fiber.Ctx) (analytics.Range, error) {
	key := strings.TrimSpace(c.Query("range"))
	if key == "" {
		return s.cfg.DefaultRange, nil
	}
	r, err := analytics.ParseRange(key)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return r, nil
}

type textInput struct {
	Text string `json:"text"`
}

func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var payload textInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(payload.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Text cannot be empty")
	}
	res, err := s.svc.Classify(c.UserContext(), payload.Text)
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(res)
}

func (s *Server) handleListEntries(c *fiber.Ctx) error {
	r, err := s.rangeParam(c)
	if err != nil {
		return err
	}
	all, err := s.svc.Entries(c.UserContext())
	if err != nil {
		return statusFor(err)
	}
	items := analytics.Filter(all, r, s.now())
	if limit := c.QueryInt("limit", 0); limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{"count": len(items), "range": r.Key()},
	})
}

type createEntryInput struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateEntry(c *fiber.Ctx) error {
	var payload createEntryInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	e, err := s.svc.Add(c.UserContext(), payload.Content)
	if err != nil {
		return statusFor(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": e})
}

func (s *Server) handleGetEntry(c *fiber.Ctx) error {
	e, err := s.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(fiber.Map{"data": e})
}

type feedbackInput struct {
	Feedback *bool `json:"feedback"`
}

func (s *Server) handleFeedback(c *fiber.Ctx) error {
	var payload feedbackInput
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	e, err := s.svc.SetFeedback(c.UserContext(), c.Params("id"), payload.Feedback)
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(fiber.Map{"data": e})
}

func (s *Server) handleDeleteEntry(c *fiber.Ctx) error {
	if err := s.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return statusFor(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleAnalytics(c *fiber.Ctx) error {
	r, err := s.rangeParam(c)
	if err != nil {
		return err
	}
	report, err := s.svc.Analyze(c.UserContext(), r, s.now())
	if err != nil {
		return statusFor(err)
	}
	return c.JSON(report)
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	r, err := s.rangeParam(c)
	if err != nil {
		return err
	}
	name, csv, err := s.svc.Export(c.UserContext(), r, s.now())
	if err != nil {
		return statusFor(err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", name))
	return c.SendString(csv)
}
