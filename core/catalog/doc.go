// Package catalog defines the persisted book catalog and its JSON store.
//
// A Catalog is a flat, append-ordered list of Records. Each path has at most
// one live record; superseded sightings stay in the list flagged stale until
// pruned. The document layout matches catalogs written by earlier releases:
//
//	{
//	  "books": [{"full_path": "/b/a.epub", "xxhash": 1234, "stale": false, ...}],
//	  "last_updated": "2024-05-01T10:00:00Z"
//	}
//
// Fields missing from older documents are defaulted on decode.
//
// # Store
//
// Store.Load treats an absent file as an empty catalog and a corrupt one as
// *MalformedError. Store.Save writes a temporary file and renames it over the
// target, so readers never observe a partial document. Store.Acquire takes an
// advisory lock beside the catalog so two invocations cannot interleave.
//
// # Usage
//
//	store := catalog.NewStore("books.json", true)
//	release, err := store.Acquire()
//	defer release()
//	c, err := store.Load()
//	// ... mutate c ...
//	err = store.Save(c)
package catalog
