package library

import (
	"context"
	"fmt"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/reconcile"
	"ebook-indexer/core/storage"

	"go.uber.org/zap"
)

// Service runs catalog operations as whole invocations: lock, read, operate,
// write. A failed operation never writes.
type Service struct {
	store  *catalog.Store
	engine *reconcile.Engine
	client storage.Client
	logger *zap.Logger
	dryRun bool
}

// NewService creates a new library service. client may be nil when object
// storage is not configured.
func NewService(store *catalog.Store, engine *reconcile.Engine, client storage.Client, logger *zap.Logger, dryRun bool) *Service {
	return &Service{
		store:  store,
		engine: engine,
		client: client,
		logger: logger,
		dryRun: dryRun,
	}
}

// Load ingests every book found under root.
func (s *Service) Load(ctx context.Context, root string, opts reconcile.LoadOptions) (reconcile.Summary, error) {
	s.logger.Info("Loading books", zap.String("root", root), zap.Bool("no_hash", opts.SkipHash), zap.Int("threads", s.engine.Workers()))
	return s.mutate("load", func(c *catalog.Catalog) (reconcile.Summary, error) {
		return s.engine.Load(ctx, c, root, opts)
	})
}

// Check re-verifies live records against the filesystem.
func (s *Service) Check(ctx context.Context) (reconcile.Summary, error) {
	return s.mutate("check", func(c *catalog.Catalog) (reconcile.Summary, error) {
		return s.engine.Check(ctx, c)
	})
}

// Merge folds the catalog at source into the local one. A source that cannot
// be read is logged and treated as empty.
func (s *Service) Merge(ctx context.Context, source string) (reconcile.Summary, error) {
	return s.mutate("merge", func(c *catalog.Catalog) (reconcile.Summary, error) {
		other, err := catalog.ReadSource(ctx, source, s.client)
		if err != nil {
			s.logger.Warn("Could not read catalog to merge, treating it as empty", zap.String("source", source), zap.Error(err))
			other = catalog.New()
		}
		sum, err := s.engine.Merge(ctx, c, other)
		if sum.ForeignStale > 0 {
			s.logger.Info("Merged catalog carried stale records; they were offered as candidates", zap.Int("stale", sum.ForeignStale))
		}
		return sum, err
	})
}

// Prune drops stale records and returns how many were removed.
func (s *Service) Prune(ctx context.Context) (int, error) {
	sum, err := s.mutate("prune", func(c *catalog.Catalog) (reconcile.Summary, error) {
		if err := ctx.Err(); err != nil {
			return reconcile.Summary{}, err
		}
		return reconcile.Summary{Pruned: s.engine.Prune(c)}, nil
	})
	return sum.Pruned, err
}

// Rehash fills in missing hashes, or recomputes all of them when force is set.
func (s *Service) Rehash(ctx context.Context, force bool) (reconcile.Summary, error) {
	return s.mutate("rehash", func(c *catalog.Catalog) (reconcile.Summary, error) {
		return s.engine.Rehash(ctx, c, force)
	})
}

// Snapshot reads the catalog without locking or writing.
func (s *Service) Snapshot() (*catalog.Catalog, error) {
	return s.store.Load()
}

// Count returns the number of records, stale ones included.
func (s *Service) Count() (int, error) {
	c, err := s.store.Load()
	if err != nil {
		return 0, err
	}
	return len(c.Books), nil
}

// Stats summarizes the catalog.
func (s *Service) Stats() (catalog.Stats, error) {
	c, err := s.store.Load()
	if err != nil {
		return catalog.Stats{}, err
	}
	return c.Stats(), nil
}

func (s *Service) mutate(op string, fn func(c *catalog.Catalog) (reconcile.Summary, error)) (reconcile.Summary, error) {
	release, err := s.store.Acquire()
	if err != nil {
		return reconcile.Summary{}, err
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warn("Failed to release catalog lock", zap.Error(err))
		}
	}()

	c, err := s.store.Load()
	if err != nil {
		return reconcile.Summary{}, err
	}

	sum, err := fn(c)
	if err != nil {
		return sum, fmt.Errorf("%s failed: %w", op, err)
	}

	s.logger.Info("Operation finished", append([]zap.Field{zap.String("op", op)}, sum.Fields()...)...)

	if s.dryRun {
		s.logger.Info("Dry run, catalog not written", zap.String("path", s.store.Path))
		return sum, nil
	}
	if err := s.store.Save(c); err != nil {
		return sum, err
	}
	s.logger.Debug("Catalog written", zap.String("path", s.store.Path), zap.Int("records", len(c.Books)))
	return sum, nil
}
