// Package enrich resolves the name of each character's first episode.
//
// A pass takes a character set, fetches the first episode URL of every
// character that has one, and returns an Index once every fetch has
// settled. Failed fetches are logged and leave no entry; callers render
// missing entries as model.PendingLabel.
package enrich

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/fanout"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// EpisodeFetcher dereferences an episode URL. *api.Client implements it.
type EpisodeFetcher interface {
	FetchEpisode(ctx context.Context, episodeURL string) (model.Episode, error)
}

// Index maps a character id to the name of its first episode.
// An Index is never modified after a pass returns it.
type Index map[int]string

// Label returns the episode name for id, or the pending sentinel.
func (ix Index) Label(id int) string {
	if name, ok := ix[id]; ok && name != "" {
		return name
	}
	return model.PendingLabel
}

// Clone returns an independent copy of the index.
func (ix Index) Clone() Index {
	if ix == nil {
		return Index{}
	}
	return maps.Clone(ix)
}

// Engine runs enrichment passes.
type Engine struct {
	fetcher EpisodeFetcher
	group   *fanout.Group
	logger  *slog.Logger
	limit   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for failed fetches and pass tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConcurrency bounds the number of episode fetches in flight per pass.
// Non-positive means unbounded.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.limit = n
	}
}

// NewEngine creates an Engine that fetches episodes with fetcher.
func NewEngine(fetcher EpisodeFetcher, opts ...Option) *Engine {
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
		fanout.WithName("episodes"),
	)
	return e
}

// Run performs one enrichment pass over characters and returns the new
// index. Only the first episode of each character is fetched; characters
// with no episode reference are skipped. Run returns after every fetch
// has succeeded or failed.
func (e *Engine) Run(ctx context.Context, characters []model.Character) Index {
	start := time.Now()

	type job struct {
		id  int
		url string
	}
	jobs := make([]job, 0, len(characters))
	for _, c := range characters {
		if u, ok := c.FirstEpisodeURL(); ok {
			jobs = append(jobs, job{id: c.ID, url: u})
		}
	}

	results := fanout.Map(ctx, e.group, jobs, func(ctx context.Context, j job) (string, error) {
		ep, err := e.fetcher.FetchEpisode(ctx, j.url)
		if err != nil {
			return "", err
		}
		return ep.Name, nil
	})

	index := make(Index, len(jobs))
	for _, r := range results {
		j := jobs[r.Index]
		if r.Err != nil {
			e.logger.Warn("failed to fetch episode",
				"character", j.id,
				"url", j.url,
				"error", r.Err,
			)
			continue
		}
		index[j.id] = r.Value
	}

	e.logger.Debug("enrichment pass complete",
		"characters", len(characters),
		"fetched", len(jobs),
		"resolved", len(index),
		"elapsed", time.Since(start),
	)

	return index
}
