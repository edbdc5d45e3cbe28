package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/natefinch/atomic"
)

// Store reads and writes a catalog document on the local filesystem.
type Store struct {
	// Path is the catalog JSON file.
	Path string
	// Lock enables the advisory <Path>.lock file taken by Acquire.
	Lock bool
	// Now supplies timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewStore creates a store for the catalog at path.
func NewStore(path string, lock bool) *Store {
	return &Store{Path: path, Lock: lock, Now: time.Now}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Load reads the catalog. An absent file yields an empty catalog; a file that
// does not parse yields *MalformedError. LastUpdated is stamped with the
// current time either way.
func (s *Store) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c := New()
			s.stamp(c)
			return c, nil
		}
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedError{Path: s.Path, Err: err}
	}
	s.stamp(c)
	return c, nil
}

// Save replaces the catalog document atomically.
func (s *Store) Save(c *Catalog) error {
	s.stamp(c)
	data, err := Encode(c)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := atomic.WriteFile(s.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return nil
}

// Acquire takes the catalog lock without blocking. The returned function
// releases it. When locking is disabled both are no-ops.
func (s *Store) Acquire() (func() error, error) {
	if !s.Lock {
		return func() error { return nil }, nil
	}

	fl := flock.New(s.Path + ".lock")
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock catalog: %w", err)
	}
	if !ok {
		return nil, &LockedError{Path: s.Path}
	}
	return fl.Unlock, nil
}

func (s *Store) stamp(c *Catalog) {
	t := s.now().UTC()
	c.LastUpdated = &t
}

// Decode parses a catalog document.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	if c.Books == nil {
		c.Books = []Record{}
	}
	return &c, nil
}

// Encode renders the catalog as indented JSON with a trailing newline.
func Encode(c *Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
