package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrSkippedDomain = errors.New("domain requires client-side rendering")
	ErrNoContent     = errors.New("no usable content")
	ErrLowQuality    = errors.New("failed content quality gate")
	ErrNotRelevant   = errors.New("title does not mention country")
	ErrDuplicate     = errors.New("duplicate article")
	ErrEmptyResponse = errors.New("empty response body")
	ErrNoProviders   = errors.New("no search providers configured")
)

// FetchError wraps errors that occur while fetching a URL.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractError wraps errors that occur while parsing a fetched page.
type ExtractError struct {
	URL string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for %s: %v", e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// StoreError wraps errors from a storage backend.
type StoreError struct {
	Backend string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error (%s): %v", e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
