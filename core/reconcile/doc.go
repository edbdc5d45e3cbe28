// Package reconcile keeps a book catalog in step with the filesystem.
//
// Every way a record can enter the catalog (a directory load, a re-check of
// existing records, or a merge of another catalog) reduces to one rule:
//
//   - no live record for the path: the candidate is inserted;
//   - live record with the same hash: nothing is added;
//   - otherwise the live record is marked stale and missing, and the
//     candidate becomes the live record.
//
// A hash that is absent never matches, so records loaded without hashing are
// always superseded on the next sighting.
//
// # Concurrency
//
// Load, Check and Rehash fan per-file work (hashing, metadata extraction,
// stat) out over an errgroup bounded by the worker count. Results are stored
// by index and folded into the catalog serially in discovery order, so the
// outcome does not depend on scheduling.
//
// # Usage
//
//	engine := reconcile.NewEngine(reconcile.FileProbe{}, 8, logger)
//	sum, err := engine.Load(ctx, cat, "/books", reconcile.LoadOptions{})
//	sum, err = engine.Check(ctx, cat)
//	removed := engine.Prune(cat)
package reconcile
