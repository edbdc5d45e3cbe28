package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"ebook-indexer/core/metadata"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// Options controls a discovery walk.
type Options struct {
	// FollowSymlinks descends into symlinked directories and reports symlinked files.
	FollowSymlinks bool
	// Exclude holds doublestar patterns matched against root-relative slash paths.
	// A matching directory is pruned with its whole subtree.
	Exclude []string
	// Logger receives per-entry problems. Nil disables logging.
	Logger *zap.Logger
}

// Candidate is a discovered book file.
type Candidate struct {
	// Path is absolute.
	Path   string
	Format metadata.Format
}

// RootError reports a walk root that cannot be used.
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("cannot walk %s: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// Walk lists every file below root whose extension maps to a known format.
// Results are sorted by path. Problems below the root are logged and skipped;
// a root that is missing, not a directory, or unreadable yields *RootError.
func Walk(root string, opts Options) ([]Candidate, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &RootError{Root: root, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &RootError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &RootError{Root: root, Err: fmt.Errorf("not a directory")}
	}

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	// The root itself is always followed; opts.FollowSymlinks governs links below it.
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, &RootError{Root: root, Err: err}
	}

	w := &walker{
		root:    resolved,
		display: abs,
		opts:    opts,
		log:     log,
		visited: map[string]struct{}{},
	}

	err = godirwalk.Walk(resolved, &godirwalk.Options{
		Callback:            w.visit,
		ErrorCallback:       w.fail,
		FollowSymbolicLinks: opts.FollowSymlinks,
		Unsorted:            true,
	})
	if err != nil {
		return nil, &RootError{Root: root, Err: err}
	}

	sort.Slice(w.found, func(i, j int) bool {
		return w.found[i].Path < w.found[j].Path
	})
	return w.found, nil
}

type walker struct {
	root    string
	display string
	opts    Options
	log     *zap.Logger
	visited map[string]struct{}
	found   []Candidate
}

func (w *walker) visit(path string, de *godirwalk.Dirent) error {
	if path == w.root {
		w.markVisited(path)
		return nil
	}

	if de.IsSymlink() && !w.opts.FollowSymlinks {
		return nil
	}

	isDir, err := de.IsDirOrSymlinkToDir()
	if err != nil {
		w.log.Warn("Skipping unresolvable entry", zap.String("path", path), zap.Error(err))
		return godirwalk.SkipThis
	}

	if w.excluded(path) {
		w.log.Debug("Excluded", zap.String("path", path))
		if isDir {
			return godirwalk.SkipThis
		}
		return nil
	}

	if isDir {
		if !w.markVisited(path) {
			w.log.Debug("Skipping already visited directory", zap.String("path", path))
			return godirwalk.SkipThis
		}
		return nil
	}

	format, ok := metadata.FormatFromPath(path)
	if !ok {
		return nil
	}
	if !de.IsRegular() {
		// Symlinked files are only reached when following links.
		if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
			return nil
		}
	}

	w.found = append(w.found, Candidate{Path: w.displayPath(path), Format: format})
	return nil
}

// displayPath reports path under the root as the caller named it.
func (w *walker) displayPath(path string) string {
	if w.root == w.display {
		return path
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.Join(w.display, rel)
}

// fail halts the walk for root errors and skips anything else.
func (w *walker) fail(path string, err error) godirwalk.ErrorAction {
	if path == w.root {
		return godirwalk.Halt
	}
	w.log.Warn("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
	return godirwalk.SkipNode
}

// markVisited records the resolved directory and reports whether it was new.
func (w *walker) markVisited(path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	if _, seen := w.visited[resolved]; seen {
		return false
	}
	w.visited[resolved] = struct{}{}
	return true
}

func (w *walker) excluded(path string) bool {
	if len(w.opts.Exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.opts.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
