// Package api serves the validation layer over local HTTP so a browser page
// can call it. It never navigates anywhere itself: it validates, builds links
// and answers pre-flight checks.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
	"poolgate/internal/linkguard"
	"poolgate/internal/poolurl"
	"poolgate/internal/presenter"
)

// MaxBodySize caps request bodies. Every request here is a few short strings.
const MaxBodySize = 4 * 1024

// Config holds server dependencies.
type Config struct {
	Validator *address.Validator
	Registry  *hosts.Registry
	Network   hosts.Network // default network for pool links
	Logger    *slog.Logger
}

// Server is the local HTTP API.
type Server struct {
	app       *fiber.App
	validator *address.Validator
	builder   *poolurl.Builder
	guard     *linkguard.Guard
	registry  *hosts.Registry
	network   hosts.Network
	logger    *slog.Logger
}

// NewServer creates the API and registers its routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		validator: cfg.Validator,
		registry:  cfg.Registry,
		network:   cfg.Network,
		logger:    cfg.Logger,
	}
	if s.validator == nil {
		s.validator = address.NewValidator(address.StrictnessStructural)
	}
	if s.registry == nil {
		s.registry = hosts.Default()
	}
	if s.network == "" {
		s.network = hosts.DefaultNetwork
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.builder = poolurl.NewBuilder(s.validator, s.registry)
	// Only Check is used; the guard can never open anything from here.
	s.guard = linkguard.New(linkguard.Config{
		Registry:  s.registry,
		Confirmer: linkguard.AlwaysDecline,
		Launcher: linkguard.LauncherFunc(func(*url.URL) error {
			return errors.New("navigation is not available from the API")
		}),
		Logger: s.logger,
	})

	s.app = fiber.New(fiber.Config{
		AppName:      "poolgate",
		BodyLimit:    MaxBodySize,
		ErrorHandler: s.handleError,
	})
	s.app.Use(RequestID())
	s.registerRoutes()

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", addr)
		errChan <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down API server")
		if err := s.app.ShutdownWithContext(context.Background()); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.Health)

	v1 := s.app.Group("/v1")
	v1.Post("/address/validate", s.ValidateAddress)
	v1.Post("/pool-url", s.BuildPoolURL)
	v1.Post("/links/check", s.CheckLink)
	v1.Get("/hosts", s.ListHosts)
}

// handleError keeps internal error text out of responses.
func (s *Server) handleError(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	s.logger.Error("request failed",
		"request_id", GetRequestID(c),
		"path", c.Path(),
		"status", code,
		"error", err,
	)

	return c.Status(code).JSON(fiber.Map{
		"error": presenter.Present(err, ""),
	})
}
