package graph

import (
	"fmt"
	"strings"
)

// ScanError means the memory root itself was missing or unreadable. Fatal.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ParseError means one entity file could not be turned into an Entity.
// Fatal by policy: a silently dropped entity corrupts referential
// integrity for everything that mentions it.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateIDError means two entity files normalized to the same id,
// which would make the graph ambiguous. Fatal.
type DuplicateIDError struct {
	ID    string
	Paths []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate entity id %q from %s", e.ID, strings.Join(e.Paths, ", "))
}
