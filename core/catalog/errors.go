package catalog

import "fmt"

// MalformedError reports a catalog document that exists but cannot be parsed.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("catalog %s is malformed: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// LockedError reports that another process holds the catalog lock.
type LockedError struct {
	Path string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("catalog %s is locked by another process", e.Path)
}
