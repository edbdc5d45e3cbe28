package reconcile

import (
	"context"
	"runtime"
	"time"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/contentid"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine applies reconciliation operations to a catalog held in memory.
// Per-file work runs on a bounded pool; every catalog mutation happens on the
// calling goroutine afterwards.
type Engine struct {
	probe   Probe
	workers int
	logger  *zap.Logger

	// Now supplies timestamps for new records. Defaults to time.Now.
	Now func() time.Time
}

// NewEngine creates an engine. workers <= 0 uses one worker per CPU.
func NewEngine(probe Probe, workers int, logger *zap.Logger) *Engine {
	if probe == nil {
		probe = FileProbe{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		probe:   probe,
		workers: workers,
		logger:  logger,
		Now:     time.Now,
	}
}

// Workers returns the pool size.
func (e *Engine) Workers() int {
	return e.workers
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// fanOut calls fn for every index in [0, n) on at most e.workers goroutines.
// Once ctx is done no further calls are scheduled and ctx.Err() is returned.
func (e *Engine) fanOut(ctx context.Context, n int, fn func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Supersede offers a single candidate to the catalog. See ingester.apply.
func (e *Engine) Supersede(c *catalog.Catalog, candidate catalog.Record, observedSize *int64) Outcome {
	return newIngester(c).apply(candidate, observedSize)
}

// ingester folds candidates into a catalog while keeping the live index current.
type ingester struct {
	cat  *catalog.Catalog
	live map[string]int
}

func newIngester(c *catalog.Catalog) *ingester {
	return &ingester{cat: c, live: c.LiveIndex()}
}

// apply is the single ingestion rule shared by load, check and merge.
//
// With no live record for the path the candidate is inserted. When both
// hashes are present and equal nothing is added; observedSize, if the file
// was just seen on disk, refreshes the live record's size and clears its
// missing flag. Otherwise the live record becomes stale and missing and the
// candidate is appended as the new live record.
func (in *ingester) apply(candidate catalog.Record, observedSize *int64) Outcome {
	candidate.Stale = false
	candidate.Missing = false

	i, ok := in.live[candidate.Path]
	if !ok {
		in.live[candidate.Path] = in.cat.Append(candidate)
		return Inserted
	}

	existing := &in.cat.Books[i]
	if contentid.Equal(existing.Hash, candidate.Hash) {
		if observedSize != nil {
			existing.SizeBytes = *observedSize
			existing.Missing = false
		}
		return Unchanged
	}

	existing.Stale = true
	existing.Missing = true
	in.live[candidate.Path] = in.cat.Append(candidate)
	return Superseded
}
