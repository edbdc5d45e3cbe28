package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/contentid"
	"ebook-indexer/core/metadata"
	"ebook-indexer/core/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLifecycle tests load, reload, modify+check and prune end to end.
func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	a := filepath.Join(root, "a.epub")
	b := filepath.Join(root, "b.pdf")
	writeFile(t, a, "epub bytes v1")
	writeFile(t, b, "pdf bytes")

	e := newTestEngine(FileProbe{})
	c := catalog.New()

	sum, err := e.Load(ctx, c, root, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, c.Books, 2)
	assert.Equal(t, 1, sum.Found[metadata.Epub])
	assert.Equal(t, 1, sum.Found[metadata.Pdf])
	assert.Equal(t, 2, sum.Inserted)
	// Neither fixture is a real book, so metadata degrades.
	assert.Equal(t, 2, sum.Degraded)
	for _, r := range c.Books {
		require.NotNil(t, r.Hash)
		assert.False(t, r.Stale)
		assert.Equal(t, "2024-05-01T10:00:00Z", r.DiscoveredAt)
	}

	sum, err = e.Load(ctx, c, root, LoadOptions{})
	require.NoError(t, err)
	assert.Len(t, c.Books, 2)
	assert.Equal(t, 2, sum.Unchanged)
	assert.False(t, sum.Changed())

	writeFile(t, a, "epub bytes v2, longer")
	sum, err = e.Check(ctx, c)
	require.NoError(t, err)
	require.Len(t, c.Books, 3)
	assert.Equal(t, 1, sum.Superseded)
	assert.Equal(t, 1, sum.Unchanged)
	assertSingleLive(t, c)

	old := c.Books[0]
	assert.Equal(t, a, old.Path)
	assert.True(t, old.Stale)
	assert.True(t, old.Missing)

	current := c.Books[2]
	assert.Equal(t, a, current.Path)
	assert.False(t, current.Stale)
	assert.False(t, current.Missing)
	assert.Equal(t, int64(len("epub bytes v2, longer")), current.SizeBytes)
	assert.NotEqual(t, *old.Hash, *current.Hash)

	assert.Equal(t, 1, e.Prune(c))
	require.Len(t, c.Books, 2)
	for _, r := range c.Books {
		assert.False(t, r.Stale)
	}
}

// TestCheck_Missing tests in-place missing flags and check idempotence.
func TestCheck_Missing(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	a := filepath.Join(root, "a.epub")
	b := filepath.Join(root, "b.pdf")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	e := newTestEngine(FileProbe{})
	c := catalog.New()
	_, err := e.Load(ctx, c, root, LoadOptions{})
	require.NoError(t, err)

	require.NoError(t, os.Remove(b))
	sum, err := e.Check(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.MarkedMissing)
	require.Len(t, c.Books, 2)
	assert.True(t, c.Books[c.LiveIndex()[b]].Missing)
	assert.False(t, c.Books[c.LiveIndex()[b]].Stale)

	snapshot := append([]catalog.Record{}, c.Books...)
	sum, err = e.Check(ctx, c)
	require.NoError(t, err)
	assert.False(t, sum.Changed())
	assert.Equal(t, snapshot, c.Books)

	writeFile(t, b, "b")
	sum, err = e.Check(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Restored)
	assert.False(t, c.Books[c.LiveIndex()[b]].Missing)
	assert.Len(t, c.Books, 2)
}

// TestCheck_Unreadable tests that a hashing failure counts as missing.
func TestCheck_Unreadable(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.epub")
	writeFile(t, a, "a")

	probe := &fakeProbe{hashErr: map[string]error{}}
	e := newTestEngine(probe)
	c := catalog.New()
	c.Append(record(a, hashOf(1), 1))

	probe.hashErr[a] = errDenied
	sum, err := e.Check(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.MarkedMissing)
	assert.Equal(t, 1, sum.Degraded)
	require.Len(t, c.Books, 1)
	assert.True(t, c.Books[0].Missing)
	assert.Equal(t, hashOf(1), c.Books[0].Hash)
}

// TestCheck_FreshMetadata tests that a superseding record carries new metadata.
func TestCheck_FreshMetadata(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.epub")
	writeFile(t, a, "a")

	title := "Second Edition"
	md := metadata.Empty()
	md.Title = &title
	probe := &fakeProbe{
		hashes: map[string]contentid.Hash{a: {Lo: 2}},
		meta:   map[string]metadata.Metadata{a: md},
	}
	e := newTestEngine(probe)
	c := catalog.New()
	c.Append(record(a, hashOf(1), 1))

	_, err := e.Check(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, c.Books, 2)
	require.NotNil(t, c.Books[1].Title)
	assert.Equal(t, title, *c.Books[1].Title)
	assert.Nil(t, c.Books[0].Title)
}

// TestLoad_Degraded tests that per-file failures degrade the record only.
func TestLoad_Degraded(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.epub")
	b := filepath.Join(root, "b.pdf")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	probe := &fakeProbe{
		hashErr: map[string]error{a: errDenied},
		metaErr: map[string]error{a: errors.New("broken zip")},
		hashes:  map[string]contentid.Hash{b: {Lo: 7}},
	}
	e := newTestEngine(probe)
	c := catalog.New()

	sum, err := e.Load(context.Background(), c, root, LoadOptions{})
	require.NoError(t, err)
	require.Len(t, c.Books, 2)
	assert.Equal(t, 1, sum.Degraded)

	degraded := c.Books[c.LiveIndex()[a]]
	assert.Nil(t, degraded.Hash)
	assert.Equal(t, int64(1), degraded.SizeBytes)
	assert.Equal(t, metadata.Empty(), degraded.Metadata)

	healthy := c.Books[c.LiveIndex()[b]]
	assert.Equal(t, hashOf(7), healthy.Hash)
}

// TestLoad_SkipHash tests that unhashed records never match on reload.
func TestLoad_SkipHash(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.epub"), "abc")

	e := newTestEngine(FileProbe{})
	c := catalog.New()

	_, err := e.Load(ctx, c, root, LoadOptions{SkipHash: true})
	require.NoError(t, err)
	require.Len(t, c.Books, 1)
	assert.Nil(t, c.Books[0].Hash)
	assert.Equal(t, int64(3), c.Books[0].SizeBytes)

	sum, err := e.Load(ctx, c, root, LoadOptions{SkipHash: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Superseded)
	assert.Len(t, c.Books, 2)
	assertSingleLive(t, c)
}

// TestLoad_BadRoot tests that an unusable root leaves the catalog untouched.
func TestLoad_BadRoot(t *testing.T) {
	e := newTestEngine(FileProbe{})
	c := catalog.New()
	c.Append(record("/b/a.epub", hashOf(1), 1))

	_, err := e.Load(context.Background(), c, filepath.Join(t.TempDir(), "gone"), LoadOptions{})
	var rootErr *scan.RootError
	assert.True(t, errors.As(err, &rootErr))
	assert.Len(t, c.Books, 1)
}

// TestLoad_Cancelled tests that a cancelled context aborts before mutation.
func TestLoad_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.epub"), "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(FileProbe{})
	c := catalog.New()
	_, err := e.Load(ctx, c, root, LoadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.Books)
}

// TestMerge tests foreign record ingestion.
func TestMerge(t *testing.T) {
	e := newTestEngine(&fakeProbe{})

	t.Run("replays foreign history", func(t *testing.T) {
		local := catalog.New()
		local.Append(record("/b/a.epub", hashOf(1), 1))

		other := catalog.New()
		oldA := record("/b/a.epub", hashOf(1), 1)
		oldA.Stale, oldA.Missing = true, true
		other.Append(oldA)
		other.Append(record("/b/a.epub", hashOf(2), 2))

		sum, err := e.Merge(context.Background(), local, other)
		require.NoError(t, err)
		assert.Equal(t, 1, sum.ForeignStale)
		assert.Equal(t, 1, sum.Unchanged)
		assert.Equal(t, 1, sum.Superseded)
		require.Len(t, local.Books, 2)
		assertSingleLive(t, local)
		assert.Equal(t, hashOf(2), local.Books[local.LiveIndex()["/b/a.epub"]].Hash)
	})

	t.Run("backfills discovery time", func(t *testing.T) {
		local := catalog.New()
		other := catalog.New()
		r := record("/b/x.pdf", hashOf(5), 1)
		r.DiscoveredAt = ""
		other.Append(r)

		_, err := e.Merge(context.Background(), local, other)
		require.NoError(t, err)
		require.Len(t, local.Books, 1)
		assert.Equal(t, "2024-05-01T10:00:00Z", local.Books[0].DiscoveredAt)
	})

	t.Run("empty other catalog", func(t *testing.T) {
		local := catalog.New()
		local.Append(record("/b/a.epub", hashOf(1), 1))

		sum, err := e.Merge(context.Background(), local, catalog.New())
		require.NoError(t, err)
		assert.False(t, sum.Changed())
		assert.Len(t, local.Books, 1)

		_, err = e.Merge(context.Background(), local, nil)
		assert.NoError(t, err)
	})
}

// TestMerge_Commutative tests that disjoint catalogs merge to the same live set.
func TestMerge_Commutative(t *testing.T) {
	e := newTestEngine(&fakeProbe{})

	build := func(paths ...string) *catalog.Catalog {
		c := catalog.New()
		for i, p := range paths {
			c.Append(record(p, hashOf(uint64(i+1)), 1))
		}
		return c
	}
	liveSet := func(c *catalog.Catalog) []string {
		var out []string
		for _, r := range c.Live() {
			out = append(out, r.Path+"#"+r.Hash.String())
		}
		sort.Strings(out)
		return out
	}

	ab := build("/a/1.epub", "/a/2.pdf")
	_, err := e.Merge(context.Background(), ab, build("/b/1.epub"))
	require.NoError(t, err)

	ba := build("/b/1.epub")
	_, err = e.Merge(context.Background(), ba, build("/a/1.epub", "/a/2.pdf"))
	require.NoError(t, err)

	assert.Equal(t, liveSet(ab), liveSet(ba))
}

// TestRehash tests hash backfill and forced recomputation.
func TestRehash(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.epub")
	b := filepath.Join(root, "b.pdf")
	gone := filepath.Join(root, "gone.pdf")
	writeFile(t, a, "aaaa")
	writeFile(t, b, "bb")

	build := func() *catalog.Catalog {
		c := catalog.New()
		c.Append(record(a, nil, 0))
		c.Append(record(b, hashOf(99), 0))
		missing := record(gone, nil, 0)
		missing.Missing = true
		c.Append(missing)
		return c
	}

	e := newTestEngine(FileProbe{})

	t.Run("only unhashed", func(t *testing.T) {
		c := build()
		sum, err := e.Rehash(context.Background(), c, false)
		require.NoError(t, err)
		assert.Equal(t, 1, sum.Rehashed)
		require.Len(t, c.Books, 3)
		require.NotNil(t, c.Books[0].Hash)
		assert.Equal(t, int64(4), c.Books[0].SizeBytes)
		assert.Equal(t, hashOf(99), c.Books[1].Hash)
		assert.Nil(t, c.Books[2].Hash)
	})

	t.Run("force", func(t *testing.T) {
		c := build()
		sum, err := e.Rehash(context.Background(), c, true)
		require.NoError(t, err)
		assert.Equal(t, 2, sum.Rehashed)
		assert.NotEqual(t, hashOf(99), c.Books[1].Hash)
		assert.Equal(t, int64(2), c.Books[1].SizeBytes)
		assert.Len(t, c.Books, 3)
	})

	t.Run("failure keeps hash", func(t *testing.T) {
		c := build()
		probe := &fakeProbe{hashErr: map[string]error{b: errDenied}}
		sum, err := newTestEngine(probe).Rehash(context.Background(), c, true)
		require.NoError(t, err)
		assert.Equal(t, 1, sum.Degraded)
		assert.Equal(t, hashOf(99), c.Books[1].Hash)
	})
}
