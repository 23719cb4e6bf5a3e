package crawler

import (
	"errors"
)

// Failure categories surfaced by browser sessions and the navigators built on
// them. Callers wrap the underlying cause with one of these so both remain
// visible to errors.Is.
var (
	// ErrLaunch is returned when the browser binary cannot be started or connected to
	ErrLaunch = errors.New("browser launch failed")

	// ErrNotReady is returned when the page never became interactive within its bound
	ErrNotReady = errors.New("page not ready")

	// ErrTimeout is returned when an expected element never appeared within its bound
	ErrTimeout = errors.New("timed out waiting for element")

	// ErrNotFound is returned when a state or commission name has no match
	ErrNotFound = errors.New("not found")

	// ErrFetch is returned when reference data cannot be fetched
	ErrFetch = errors.New("fetch failed")

	// ErrSearch is returned when a case search fails
	ErrSearch = errors.New("search failed")

	// ErrUnknownSearchCategory is returned for a search category outside the fixed table
	ErrUnknownSearchCategory = errors.New("unknown search category")
)
