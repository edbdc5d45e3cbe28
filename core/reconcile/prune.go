package reconcile

import "ebook-indexer/core/catalog"

// Prune removes every stale record and returns how many were dropped.
// Live records, including missing ones, keep their relative order.
func (e *Engine) Prune(c *catalog.Catalog) int {
	kept := make([]catalog.Record, 0, len(c.Books))
	for _, r := range c.Books {
		if r.Live() {
			kept = append(kept, r)
		}
	}
	removed := len(c.Books) - len(kept)
	c.Books = kept
	return removed
}
