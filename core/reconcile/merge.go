package reconcile

import (
	"context"

	"ebook-indexer/core/catalog"

	"go.uber.org/zap"
)

// Merge folds every record of other, live or stale, into c in stored order.
// Records without a discovery time are stamped with the current time.
//
// Stale foreign records are offered like live ones, so merging a catalog
// with history replays that history locally.
func (e *Engine) Merge(ctx context.Context, c *catalog.Catalog, other *catalog.Catalog) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	sum := newSummary()
	if other == nil {
		return sum, nil
	}

	now := catalog.Timestamp(e.now())
	in := newIngester(c)
	for _, r := range other.Books {
		candidate := r
		candidate.Chapters = append([]string{}, r.Chapters...)
		candidate.Extras = make(map[string]string, len(r.Extras))
		for k, v := range r.Extras {
			candidate.Extras[k] = v
		}
		if candidate.DiscoveredAt == "" {
			candidate.DiscoveredAt = now
		}
		if r.Stale {
			sum.ForeignStale++
		}

		outcome := in.apply(candidate, nil)
		sum.count(outcome, candidate.Format)
		e.logger.Debug("Merged", zap.String("path", r.Path), zap.Stringer("outcome", outcome))
	}
	return sum, nil
}
