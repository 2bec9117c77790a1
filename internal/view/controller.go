package view

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/drilldown"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/enrich"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// Source provides the listing the view is seeded from.
type Source interface {
	FetchCharacters(ctx context.Context) ([]model.Character, error)
	FetchPageInfo(ctx context.Context) (model.PageInfo, error)
}

// Enricher runs one enrichment pass. *enrich.Engine implements it.
type Enricher interface {
	Run(ctx context.Context, characters []model.Character) enrich.Index
}

// Driller resolves a location into its residents. *drilldown.Engine
// implements it.
type Driller interface {
	Resolve(ctx context.Context, locationURL string) (drilldown.Result, error)
}

// State is a copy of the view state.
type State struct {
	Characters []model.Character
	PageInfo   model.PageInfo
	Filter     model.Filter

	// SelectedLocation is the name of the drilled-into location, or "".
	SelectedLocation string

	// LocationResidents mirrors Characters after a drill-down.
	LocationResidents []model.Character

	Episodes enrich.Index
	Loaded   bool
}

// Controller owns the view state. All methods are safe for concurrent use.
type Controller struct {
	source   Source
	enricher Enricher
	driller  Driller
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State

	// generation counts character set replacements.
	generation uint64

	passes sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithFilter sets the initial filter.
func WithFilter(f model.Filter) Option {
	return func(c *Controller) {
		c.state.Filter = f
	}
}

// WithClock overrides the clock used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// NewController creates an empty, unloaded Controller.
func NewController(source Source, enricher Enricher, driller Driller, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		enricher: enricher,
		driller:  driller,
		state: State{
			Filter:   model.FilterAll,
			Episodes: enrich.Index{},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Load seeds the view from the first listing page: the characters and
// the page info are fetched with two separate requests. If either fails
// the state is left unchanged and the error is returned. The filter is
// kept; any drilled-into location is cleared.
func (c *Controller) Load(ctx context.Context) error {
	return c.load(ctx, false)
}

// Reset reloads the view from scratch and returns the filter to "all".
func (c *Controller) Reset(ctx context.Context) error {
	return c.load(ctx, true)
}

func (c *Controller) load(ctx context.Context, reset bool) error {
	characters, err := c.source.FetchCharacters(ctx)
	if err != nil {
		c.logger.Warn("failed to fetch characters", "error", err)
		return fmt.Errorf("load characters: %w", err)
	}
	info, err := c.source.FetchPageInfo(ctx)
	if err != nil {
		c.logger.Warn("failed to fetch page info", "error", err)
		return fmt.Errorf("load page info: %w", err)
	}

	c.mu.Lock()
	next := c.state
	next.Characters = characters
	next.PageInfo = info
	next.SelectedLocation = ""
	next.LocationResidents = nil
	next.Loaded = true
	if reset {
		next.Filter = model.FilterAll
		next.Episodes = enrich.Index{}
	}
	gen := c.replaceLocked(next)
	c.mu.Unlock()

	c.logger.Info("view loaded",
		"characters", len(characters),
		"count", info.Count,
		"reset", reset,
	)
	c.startPass(ctx, gen, characters)
	return nil
}

// SetFilter changes the status filter. Values outside all/alive/dead
// fall back to "all". The applied filter is returned.
func (c *Controller) SetFilter(value string) model.Filter {
	f, ok := model.ParseFilter(value)
	if !ok {
		c.logger.Warn("unsupported filter, showing all characters", "filter", value)
	}

	c.mu.Lock()
	c.state.Filter = f
	c.mu.Unlock()

	return f
}

// Filter returns the current filter.
func (c *Controller) Filter() model.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Filter
}

// FilteredView returns the characters that pass the current filter, in
// character set order. It is recomputed on every call.
func (c *Controller) FilteredView() []model.Character {
	c.mu.Lock()
	f, characters := c.state.Filter, c.state.Characters
	c.mu.Unlock()

	return f.Apply(characters)
}

// SelectLocation drills into the location at locationURL. On success the
// character set becomes the location's residents and the filter is kept.
// If the location cannot be fetched the state is left unchanged and the
// error is returned.
func (c *Controller) SelectLocation(ctx context.Context, locationURL string) error {
	res, err := c.driller.Resolve(ctx, locationURL)
	if err != nil {
		c.logger.Warn("failed to fetch location", "url", locationURL, "error", err)
		return err
	}

	c.mu.Lock()
	next := c.state
	next.Characters = res.Residents
	next.LocationResidents = res.Residents
	next.SelectedLocation = res.Location.Name
	gen := c.replaceLocked(next)
	c.mu.Unlock()

	c.logger.Info("location selected",
		"location", res.Location.Name,
		"residents", len(res.Residents),
		"dropped", len(res.Dropped),
	)
	c.startPass(ctx, gen, res.Residents)
	return nil
}

// LocationOf returns the location reference of a character in the
// current set.
func (c *Controller) LocationOf(id int) (model.LocationRef, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Loaded {
		return model.LocationRef{}, ErrNotLoaded
	}
	for _, ch := range c.state.Characters {
		if ch.ID != id {
			continue
		}
		if ch.Location.URL == "" {
			return model.LocationRef{}, fmt.Errorf("%w: %s", ErrNoLocation, ch.Name)
		}
		return ch.Location, nil
	}
	return model.LocationRef{}, fmt.Errorf("%w: %d", ErrUnknownCharacter, id)
}

// Enrich runs an enrichment pass over the current character set in the
// caller's goroutine, publishes it if the set has not changed meanwhile,
// and returns it.
func (c *Controller) Enrich(ctx context.Context) enrich.Index {
	c.mu.Lock()
	gen, characters := c.generation, c.state.Characters
	c.mu.Unlock()

	index := c.enricher.Run(ctx, characters)
	c.applyPass(gen, index)
	return index.Clone()
}

// Wait blocks until every background enrichment pass started so far has
// finished.
func (c *Controller) Wait() {
	c.passes.Wait()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Characters = slices.Clone(s.Characters)
	s.LocationResidents = slices.Clone(s.LocationResidents)
	s.Episodes = s.Episodes.Clone()
	return s
}

// Snapshot renders the current state for display.
func (c *Controller) Snapshot() *model.Snapshot {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()

	visible := s.Filter.Apply(s.Characters)
	cards := make([]model.Card, len(visible))
	for i, ch := range visible {
		cards[i] = model.NewCard(ch, s.Episodes[ch.ID])
	}

	return &model.Snapshot{
		TakenAt:          c.now(),
		Filter:           s.Filter,
		TotalCount:       s.PageInfo.Count,
		Pages:            s.PageInfo.Pages,
		SelectedLocation: s.SelectedLocation,
		CharacterCount:   len(s.Characters),
		Cards:            cards,
	}
}

// replaceLocked installs next and returns the new generation.
// c.mu must be held.
func (c *Controller) replaceLocked(next State) uint64 {
	c.generation++
	c.state = next
	return c.generation
}

// startPass runs an enrichment pass for generation gen in the background.
func (c *Controller) startPass(ctx context.Context, gen uint64, characters []model.Character) {
	c.passes.Add(1)
	go func() {
		defer c.passes.Done()
		c.applyPass(gen, c.enricher.Run(ctx, characters))
	}()
}

// applyPass publishes index if gen is still the current generation.
func (c *Controller) applyPass(gen uint64, index enrich.Index) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("discarding stale enrichment pass",
			"pass", gen,
			"current", c.generation,
		)
		return false
	}
	c.state.Episodes = index
	return true
}
