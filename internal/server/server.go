// Package server wires the fulfillment webhook onto an HTTP app.
package server

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/dublin-on-time/dublinontime/internal/arrivals"
	"github.com/dublin-on-time/dublinontime/internal/dialogflow"
	"github.com/dublin-on-time/dublinontime/internal/respond"
	"github.com/dublin-on-time/dublinontime/internal/stop"
)

// ArrivalSource supplies scraped arrival rows for a stop.
type ArrivalSource interface {
	StopArrivals(ctx context.Context, id stop.ID) ([]arrivals.Row, error)
}

// Options tunes request handling.
type Options struct {
	MaxBuses       int
	ClockSeparator string
	// NewRand supplies the per-request randomness for phrase selection.
	// Defaults to a time-seeded source; tests inject a fixed seed.
	NewRand func() *rand.Rand
}

// Server handles Dialogflow fulfillment requests for bus stop queries.
type Server struct {
	app      *fiber.App
	source   ArrivalSource
	composer *respond.Composer
	logger   *logrus.Logger
	opts     Options
}

func New(source ArrivalSource, composer *respond.Composer, opts Options, logger *logrus.Logger) *Server {
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}

	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		source:   source,
		composer: composer,
		logger:   logger,
		opts:     opts,
	}

	s.app.Post("/busstop", s.handleBusStop)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return s
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleBusStop fulfils one intent request. Every branch answers 200 with a
// well-formed envelope: a bad request, unknown action or upstream failure
// becomes a spoken error message, never a failure the platform has to handle.
func (s *Server) handleBusStop(c *fiber.Ctx) error {
	rng := s.opts.NewRand()

	var req dialogflow.WebhookRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Warn("unparseable webhook request")
		return s.reply(c, s.composer.UpstreamError(rng))
	}

	logger := s.logger.WithField("action", req.QueryResult.Action)

	if req.QueryResult.Action != dialogflow.ActionBusStop {
		logger.Warn("unknown action")
		return s.reply(c, s.composer.UpstreamError(rng))
	}

	stopID, err := stop.Parse(req.QueryResult.StopParameter())
	if errors.Is(err, stop.ErrNoStopNumber) {
		logger.Info("no usable stop number, asking again")
		return s.reply(c, s.composer.AskForStop(rng))
	}

	rows, err := s.source.StopArrivals(c.UserContext(), stopID)
	if err != nil {
		logger.WithFields(logrus.Fields{
			"stop":  stopID,
			"error": err,
		}).Error("fetching arrivals failed")
		return s.reply(c, s.composer.UpstreamError(rng))
	}

	records := arrivals.Normalize(rows, s.opts.ClockSeparator)
	state, kept := arrivals.Classify(records, s.opts.MaxBuses)

	logger.WithFields(logrus.Fields{
		"stop":         stopID,
		"availability": state,
		"buses":        len(kept),
	}).Info("composed response")

	return s.reply(c, s.composer.Compose(state, kept, rng))
}

func (s *Server) reply(c *fiber.Ctx, resp respond.Response) error {
	return c.JSON(dialogflow.NewResponse(resp.Text, resp.ExpectFollowUp))
}
