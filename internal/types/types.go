package types

import (
	"strings"
	"time"
)

// Default limits for a single search run.
const (
	DefaultResultCap         = 50
	DefaultMaxScrollAttempts = 2
)

// RawProfileSignals holds the signals extracted from one profile visit,
// before classification and filtering.
type RawProfileSignals struct {
	// Handle is the account's username, resolved from the post page.
	Handle string `json:"handle"`

	// FollowerText is the raw follower-count text as rendered on the
	// profile ("12.3K", "1,234"). Empty when no element matched.
	FollowerText string `json:"follower_text,omitempty"`

	// Biography is the profile's bio text, empty if none was found.
	Biography string `json:"biography"`

	// HasContactAffordance reports whether the profile exposes a
	// commercial contact action (email/call/directions button, business
	// category marker, or an outbound mailto/tel/maps link).
	HasContactAffordance bool `json:"has_contact_affordance"`
}

// ProfileRecord is one accepted business account. Immutable after creation.
type ProfileRecord struct {
	Handle        string    `json:"username"       bson:"username"`
	FollowerCount int       `json:"followers"      bson:"followers"`
	Biography     string    `json:"bio"            bson:"bio"`
	Hashtag       string    `json:"hashtag"        bson:"hashtag"`
	DiscoveredAt  time.Time `json:"found_at"       bson:"found_at"`
}

// SearchRequest describes one discovery run.
type SearchRequest struct {
	Hashtag           string `json:"hashtag"`
	MaxFollowers      int    `json:"max_followers"`
	City              string `json:"city,omitempty"`
	MaxScrollAttempts int    `json:"max_scroll_attempts,omitempty"`
	ResultCap         int    `json:"result_cap,omitempty"`
}

// Validate normalizes the request in place and reports whether it is usable.
// The hashtag loses any leading '#'; zero limits fall back to defaults.
func (r *SearchRequest) Validate() error {
	r.Hashtag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(r.Hashtag), "#"))
	if r.Hashtag == "" {
		return ErrHashtagRequired
	}
	if r.MaxFollowers <= 0 {
		return ErrMaxFollowersRequired
	}
	if r.MaxScrollAttempts <= 0 {
		r.MaxScrollAttempts = DefaultMaxScrollAttempts
	}
	if r.ResultCap <= 0 {
		r.ResultCap = DefaultResultCap
	}
	return nil
}

// SearchOutcome is the result of one completed run.
type SearchOutcome struct {
	// Accepted holds every record that passed classification and filtering,
	// deduplicated by handle within the run.
	Accepted []ProfileRecord `json:"accepted"`

	// TotalInspected counts the distinct post references actually visited.
	TotalInspected int `json:"total_inspected"`

	// NewlyAccepted is filled by the service layer after diffing Accepted
	// against previously stored handles.
	NewlyAccepted int `json:"newly_accepted"`
}

// Login failure kinds. Stable identifiers for machine checks; Message carries
// the human-readable detail.
const (
	FailureAlert              = "alert"
	FailureSecurityChallenge  = "security_challenge"
	FailureFieldError         = "field_error"
	FailureInvalidCredentials = "invalid_credentials"
)

// LoginResult is the structured outcome of a login attempt. Authentication
// failures are reported here, never as errors — only infrastructure problems
// (browser unreachable, login page unreachable) surface as errors.
type LoginResult struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// SearchParams is the parameter snapshot stored with a history entry.
type SearchParams struct {
	Hashtag      string `json:"hashtag"       bson:"hashtag"`
	MaxFollowers int    `json:"max_followers" bson:"max_followers"`
	City         string `json:"city,omitempty" bson:"city,omitempty"`
}

// SearchLogEntry is one line of the persisted search history, newest first.
type SearchLogEntry struct {
	ID          int64        `json:"id"           bson:"id"`
	Date        time.Time    `json:"date"         bson:"date"`
	Params      SearchParams `json:"params"       bson:"params"`
	ResultCount int          `json:"result_count" bson:"result_count"`
	TotalFound  int          `json:"total_found"  bson:"total_found"`
}
