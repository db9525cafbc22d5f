package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNotAuthenticated     = errors.New("not authenticated: login required before search")
	ErrMissingCredentials   = errors.New("username and password are required")
	ErrSessionClosed        = errors.New("browsing session is closed")
	ErrHashtagRequired      = errors.New("hashtag is required")
	ErrMaxFollowersRequired = errors.New("max followers must be a positive number")
)

// NavigationError wraps a failure to load or render a page within its
// deadline. It is fatal for the current search call.
type NavigationError struct {
	Stage string // "login", "hashtag", "post", "profile"
	URL   string
	Err   error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed at %s (%s): %v", e.Stage, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// IsNavigationError reports whether err is (or wraps) a NavigationError.
func IsNavigationError(err error) bool {
	var ne *NavigationError
	return errors.As(err, &ne)
}
