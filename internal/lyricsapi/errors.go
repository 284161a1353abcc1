package lyricsapi

import (
	"errors"
	"fmt"
)

// ErrNoResults means the API answered cleanly with zero matches. It is
// deliberately distinct from transport failures so the UI can render
// "no song found" instead of a fetch error.
var ErrNoResults = errors.New("no songs matched the query")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lyrics api returned HTTP %d for %s", e.Code, e.URL)
}

// IsTransport reports whether err is a transport-level failure rather
// than a clean empty result.
func IsTransport(err error) bool {
	return err != nil && !errors.Is(err, ErrNoResults)
}
