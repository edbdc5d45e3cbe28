package reconcile

import (
	"context"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/contentid"

	"go.uber.org/zap"
)

type rehashResult struct {
	hash contentid.Hash
	size int64
	err  error
}

// Rehash computes hashes for live, present records that lack one, or for all
// of them when force is set. Hash and size are updated in place. A failure
// keeps the previous hash. Rehash never supersedes.
func (e *Engine) Rehash(ctx context.Context, c *catalog.Catalog, force bool) (Summary, error) {
	var targets []int
	for i, r := range c.Books {
		if r.Live() && !r.Missing && (force || r.Hash == nil) {
			targets = append(targets, i)
		}
	}

	results := make([]rehashResult, len(targets))
	err := e.fanOut(ctx, len(targets), func(n int) {
		h, size, err := e.probe.Hash(c.Books[targets[n]].Path)
		results[n] = rehashResult{hash: h, size: size, err: err}
	})
	if err != nil {
		return Summary{}, err
	}

	sum := newSummary()
	for n, i := range targets {
		rec := &c.Books[i]
		res := results[n]
		if res.err != nil {
			e.logger.Warn("Failed to rehash", zap.String("path", rec.Path), zap.Error(res.err))
			sum.Degraded++
			continue
		}
		h := res.hash
		rec.Hash = &h
		rec.SizeBytes = res.size
		sum.Rehashed++
	}
	return sum, nil
}
