package drilldown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/fanout"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// ErrLocation wraps the error of a failed location fetch.
var ErrLocation = errors.New("failed to fetch location")

// Fetcher dereferences location and character URLs. *api.Client
// implements it.
type Fetcher interface {
	FetchLocation(ctx context.Context, locationURL string) (model.Location, error)
	FetchCharacter(ctx context.Context, characterURL string) (model.Character, error)
}

// Result is the outcome of a successful drill-down.
type Result struct {
	Location model.Location

	// Residents holds every resident that was fetched, in the order the
	// location lists them.
	Residents []model.Character

	// Dropped lists the resident URLs whose fetch failed.
	Dropped []string
}

// Engine performs drill-downs.
type Engine struct {
	fetcher Fetcher
	logger  *slog.Logger
	limit   int
	group   *fanout.Group
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConcurrency bounds the number of resident fetches in flight.
// Non-positive means unbounded.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.limit = n
	}
}

// NewEngine creates an Engine backed by fetcher.
func NewEngine(fetcher Fetcher, opts ...Option) *Engine {
	e := &Engine{fetcher: fetcher}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.group = fanout.New(
		fanout.WithLimit(e.limit),
		fanout.WithLogger(e.logger),
		fanout.WithName("residents"),
	)
	return e
}

// Resolve drills into the location at locationURL.
//
// The returned error is non-nil only when the location itself could not
// be fetched or decoded; it then wraps both ErrLocation and the api error.
func (e *Engine) Resolve(ctx context.Context, locationURL string) (Result, error) {
	start := time.Now()

	loc, err := e.fetcher.FetchLocation(ctx, locationURL)
	if err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", ErrLocation, locationURL, err)
	}

	results := fanout.Map(ctx, e.group, loc.Residents, e.fetcher.FetchCharacter)

	res := Result{
		Location:  loc,
		Residents: make([]model.Character, 0, len(results)),
	}
	for _, r := range results {
		if r.Err != nil {
			residentURL := loc.Residents[r.Index]
			e.logger.Warn("failed to fetch resident",
				"location", loc.Name,
				"url", residentURL,
				"error", r.Err,
			)
			res.Dropped = append(res.Dropped, residentURL)
			continue
		}
		res.Residents = append(res.Residents, r.Value)
	}

	e.logger.Debug("drill-down complete",
		"location", loc.Name,
		"residents", len(loc.Residents),
		"resolved", len(res.Residents),
		"elapsed", time.Since(start),
	)

	return res, nil
}
