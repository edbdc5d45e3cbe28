package reconcile

import (
	"context"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/contentid"
	"ebook-indexer/core/metadata"
	"ebook-indexer/core/scan"

	"go.uber.org/zap"
)

// LoadOptions controls a load walk.
type LoadOptions struct {
	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool
	// SkipHash records files without a content hash.
	SkipHash bool
	// Exclude holds doublestar patterns relative to the root.
	Exclude []string
}

// observation is what one worker learned about one file.
type observation struct {
	hash      *contentid.Hash
	size      int64
	sizeKnown bool
	meta      metadata.Metadata
	degraded  bool
}

// Load discovers books under root and ingests one candidate per file.
// Hashing and metadata extraction run in parallel; a failure on one file
// degrades that record and never aborts the batch. An unusable root is fatal
// and leaves the catalog untouched.
func (e *Engine) Load(ctx context.Context, c *catalog.Catalog, root string, opts LoadOptions) (Summary, error) {
	found, err := scan.Walk(root, scan.Options{
		FollowSymlinks: opts.FollowSymlinks,
		Exclude:        opts.Exclude,
		Logger:         e.logger,
	})
	if err != nil {
		return Summary{}, err
	}
	e.logger.Debug("Discovered files", zap.String("root", root), zap.Int("count", len(found)))

	obs := make([]observation, len(found))
	err = e.fanOut(ctx, len(found), func(i int) {
		obs[i] = e.observe(found[i], opts.SkipHash)
	})
	if err != nil {
		return Summary{}, err
	}

	now := e.now()
	in := newIngester(c)
	sum := newSummary()
	for i, cand := range found {
		o := obs[i]
		sum.Found[cand.Format]++
		if o.degraded {
			sum.Degraded++
		}

		var observed *int64
		if o.sizeKnown {
			observed = &o.size
		}
		rec := catalog.NewRecord(cand.Path, cand.Format, o.hash, o.size, o.meta, now)
		outcome := in.apply(rec, observed)
		sum.count(outcome, cand.Format)
		e.logger.Debug("Ingested", zap.String("path", cand.Path), zap.Stringer("outcome", outcome))
	}
	return sum, nil
}

func (e *Engine) observe(cand scan.Candidate, skipHash bool) observation {
	var o observation
	log := e.logger.With(zap.String("path", cand.Path))

	if !skipHash {
		h, size, err := e.probe.Hash(cand.Path)
		if err != nil {
			log.Warn("Failed to hash file", zap.Error(err))
			o.degraded = true
		} else {
			o.hash = &h
			o.size = size
			o.sizeKnown = true
		}
	}
	if !o.sizeKnown {
		if size, err := e.probe.Stat(cand.Path); err == nil {
			o.size = size
			o.sizeKnown = true
		}
	}

	md, err := e.probe.Extract(cand.Path, cand.Format)
	if err != nil {
		log.Warn("Failed to extract metadata", zap.Error(err))
		o.degraded = true
		md = metadata.Empty()
	}
	o.meta = md
	return o
}
