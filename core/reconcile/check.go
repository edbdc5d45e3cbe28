package reconcile

import (
	"context"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/contentid"
	"ebook-indexer/core/metadata"

	"go.uber.org/zap"
)

// probeResult is the on-disk state of one live record.
type probeResult struct {
	readable bool
	hash     contentid.Hash
	size     int64
	// meta is only filled when the hash differs from the record's.
	meta     metadata.Metadata
	degraded bool
}

// Check re-verifies every live record against the filesystem.
//
// A file that is gone, or exists but cannot be read, marks its record
// missing in place. A file whose hash still matches only refreshes the
// record's size. A file whose hash changed is superseded by a new record with
// fresh metadata.
func (e *Engine) Check(ctx context.Context, c *catalog.Catalog) (Summary, error) {
	var targets []int
	for i, r := range c.Books {
		if r.Live() {
			targets = append(targets, i)
		}
	}

	results := make([]probeResult, len(targets))
	err := e.fanOut(ctx, len(targets), func(n int) {
		results[n] = e.probeRecord(c.Books[targets[n]])
	})
	if err != nil {
		return Summary{}, err
	}

	now := e.now()
	in := newIngester(c)
	sum := newSummary()
	for n, i := range targets {
		res := results[n]
		if res.degraded {
			sum.Degraded++
		}
		rec := &c.Books[i]
		log := e.logger.With(zap.String("path", rec.Path))

		if !res.readable {
			if !rec.Missing {
				rec.Missing = true
				sum.MarkedMissing++
				log.Info("Book is missing")
			}
			continue
		}

		if contentid.Equal(rec.Hash, &res.hash) {
			rec.SizeBytes = res.size
			if rec.Missing {
				rec.Missing = false
				sum.Restored++
				log.Info("Book is back")
			}
			sum.Unchanged++
			continue
		}

		h := res.hash
		fresh := catalog.NewRecord(rec.Path, rec.Format, &h, res.size, res.meta, now)
		size := res.size
		outcome := in.apply(fresh, &size)
		sum.count(outcome, fresh.Format)
		log.Info("Book changed", zap.Stringer("outcome", outcome))
	}
	return sum, nil
}

func (e *Engine) probeRecord(r catalog.Record) probeResult {
	log := e.logger.With(zap.String("path", r.Path))

	if _, err := e.probe.Stat(r.Path); err != nil {
		log.Debug("Stat failed", zap.Error(err))
		return probeResult{}
	}

	h, size, err := e.probe.Hash(r.Path)
	if err != nil {
		log.Warn("Failed to hash file", zap.Error(err))
		return probeResult{degraded: true}
	}

	res := probeResult{readable: true, hash: h, size: size}
	if !contentid.Equal(r.Hash, &h) {
		md, err := e.probe.Extract(r.Path, r.Format)
		if err != nil {
			log.Warn("Failed to extract metadata", zap.Error(err))
			res.degraded = true
			md = metadata.Empty()
		}
		res.meta = md
	}
	return res
}
