// Package target provides a small HTTP server to aim volley at during local
// trials. It serves /index.php with configurable delay and failure injection.
package target

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// Config controls the behaviour of the target server.
type Config struct {
	Addr string

	// FailRate is the probability in [0,1] that a request is answered with 500.
	FailRate float64

	// FailEvery answers every n-th request with 500 when greater than zero.
	FailEvery int

	// Delay is added to every /index.php response.
	Delay time.Duration
}

// Validate checks the failure injection settings.
func (c Config) Validate() error {
	if c.FailRate < 0 || c.FailRate > 1 {
		return fmt.Errorf("fail rate must be between 0 and 1, got %v", c.FailRate)
	}
	if c.FailEvery < 0 {
		return fmt.Errorf("fail every must not be negative, got %d", c.FailEvery)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", c.Delay)
	}
	return nil
}

type handler struct {
	cfg  Config
	seen atomic.Int64
}

func (h *handler) shouldFail() bool {
	n := h.seen.Add(1)
	if h.cfg.FailEvery > 0 && n%int64(h.cfg.FailEvery) == 0 {
		return true
	}
	return h.cfg.FailRate > 0 && rand.Float64() < h.cfg.FailRate
}

func (h *handler) index(c *fiber.Ctx) error {
	if h.cfg.Delay > 0 {
		time.Sleep(h.cfg.Delay)
	}
	if h.shouldFail() {
		return c.Status(fiber.StatusInternalServerError).SendString("500 Internal Server Error")
	}
	return c.SendString("OK")
}

// New builds the fiber app for cfg.
func New(cfg Config) *fiber.App {
	h := &handler{cfg: cfg}

	app := fiber.New(fiber.Config{
		AppName:               "volley-target",
		DisableStartupMessage: true,
	})

	app.Get("/index.php", h.index)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	return app
}

// ListenAndServe serves cfg until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, cfg Config, log *logrus.Entry) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	app := New(cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	log.WithFields(logrus.Fields{
		"addr":       cfg.Addr,
		"fail_rate":  cfg.FailRate,
		"fail_every": cfg.FailEvery,
		"delay":      cfg.Delay,
	}).Info("target server listening")

	select {
	case err := <-errCh:
		return fmt.Errorf("target server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down target server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown target server: %w", err)
	}
	return nil
}
