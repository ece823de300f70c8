package feed

import "fmt"

// FetchError is returned when a feed request fails or returns non-2xx status.
// URL is the original feed URL, not the relayed one.
type FetchError struct {
	URL    string
	Status int // zero for transport-level failures
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("feed unavailable (%d): %s", e.Status, e.URL)
	}
	return fmt.Sprintf("feed unavailable: %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError is returned when a feed response is not a well-formed feed document
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid feed %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
