package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestSearchRequestValidate(t *testing.T) {
	req := SearchRequest{Hashtag: " #kahve ", MaxFollowers: 5000}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.Hashtag != "kahve" {
		t.Errorf("hashtag = %q, want normalized kahve", req.Hashtag)
	}
	if req.MaxScrollAttempts != DefaultMaxScrollAttempts {
		t.Errorf("scroll attempts = %d, want default %d", req.MaxScrollAttempts, DefaultMaxScrollAttempts)
	}
	if req.ResultCap != DefaultResultCap {
		t.Errorf("result cap = %d, want default %d", req.ResultCap, DefaultResultCap)
	}
}

func TestSearchRequestValidateErrors(t *testing.T) {
	req := SearchRequest{MaxFollowers: 5000}
	if err := req.Validate(); !errors.Is(err, ErrHashtagRequired) {
		t.Errorf("expected ErrHashtagRequired, got %v", err)
	}

	req = SearchRequest{Hashtag: "#"}
	if err := req.Validate(); !errors.Is(err, ErrHashtagRequired) {
		t.Errorf("bare # is not a hashtag, got %v", err)
	}

	req = SearchRequest{Hashtag: "kahve"}
	if err := req.Validate(); !errors.Is(err, ErrMaxFollowersRequired) {
		t.Errorf("expected ErrMaxFollowersRequired, got %v", err)
	}
}

func TestSearchRequestValidateKeepsExplicitLimits(t *testing.T) {
	req := SearchRequest{Hashtag: "kahve", MaxFollowers: 5000, MaxScrollAttempts: 7, ResultCap: 3}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.MaxScrollAttempts != 7 || req.ResultCap != 3 {
		t.Errorf("explicit limits must survive: %+v", req)
	}
}

func TestNavigationError(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := fmt.Errorf("open hashtag: %w", &NavigationError{
		Stage: "hashtag",
		URL:   "https://www.instagram.com/explore/search/keyword/?q=%23kahve",
		Err:   cause,
	})

	if !IsNavigationError(err) {
		t.Error("wrapped NavigationError not detected")
	}
	if !errors.Is(err, cause) {
		t.Error("cause must be reachable through Unwrap")
	}
	if IsNavigationError(errors.New("other")) {
		t.Error("false positive")
	}
}
