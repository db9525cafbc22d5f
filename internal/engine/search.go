package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/profile"
	"github.com/emreunal/gramscout/internal/types"
)

// Navigator drives the hashtag search view. *hashtag.Navigator satisfies it.
type Navigator interface {
	Open(ctx context.Context, tag string) error
	PostLinks() ([]string, error)
	Paginate(ctx context.Context) error
}

// Extractor visits one post reference and returns its profile signals, or
// nil when the authoring handle could not be resolved.
// *profile.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, postURL string) (*types.RawProfileSignals, error)
}

// Classifier decides business/non-business from raw signals.
type Classifier interface {
	Classify(sig types.RawProfileSignals) bool
}

// Searcher runs the discovery pipeline for one SearchRequest: paginate the
// hashtag view, extract each post's profile, classify, dedup, filter,
// aggregate up to the cap.
type Searcher struct {
	nav      Navigator
	ext      Extractor
	cls      Classifier
	throttle Throttle
	cfg      config.SearchConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewSearcher wires the pipeline stages together. cfg supplies the follower
// floor and the fallback limits for requests that leave theirs zero.
func NewSearcher(nav Navigator, ext Extractor, cls Classifier, throttle Throttle, cfg config.SearchConfig, logger *slog.Logger) *Searcher {
	return &Searcher{
		nav:      nav,
		ext:      ext,
		cls:      cls,
		throttle: throttle,
		cfg:      cfg,
		logger:   logger.With("component", "searcher"),
		now:      time.Now,
	}
}

// runState is the per-run mutable state, destroyed when the run completes.
type runState struct {
	seen     map[string]struct{}
	visited  map[string]struct{}
	accepted []types.ProfileRecord
	scrolls  int
}

// markFirstSight records the handle and reports whether this is its first
// appearance in the run. A handle is "seen" the moment it is extracted, even
// if it is later rejected, so it is never re-visited within the run.
func (st *runState) markFirstSight(handle string) bool {
	if _, dup := st.seen[handle]; dup {
		return false
	}
	st.seen[handle] = struct{}{}
	return true
}

// Run executes one search. Per-item failures are logged and skipped; the
// only fatal errors are a failed hashtag open, a failed read of the current
// frame, and context cancellation.
func (s *Searcher) Run(ctx context.Context, req types.SearchRequest) (*types.SearchOutcome, error) {
	// Configured limits back any the request leaves zero; Validate keeps
	// its built-in constants as the last resort.
	if req.MaxScrollAttempts <= 0 {
		req.MaxScrollAttempts = s.cfg.MaxScrollAttempts
	}
	if req.ResultCap <= 0 {
		req.ResultCap = s.cfg.ResultCap
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.nav.Open(ctx, req.Hashtag); err != nil {
		return nil, err
	}

	st := &runState{
		seen:    make(map[string]struct{}),
		visited: make(map[string]struct{}),
	}

	s.logger.Info("search started",
		"hashtag", req.Hashtag,
		"max_followers", req.MaxFollowers,
		"city", req.City,
		"scroll_budget", req.MaxScrollAttempts,
	)

	for len(st.accepted) < req.ResultCap && st.scrolls < req.MaxScrollAttempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		links, err := s.nav.PostLinks()
		if err != nil {
			return nil, err
		}
		s.logger.Debug("frame read", "posts", len(links), "scrolls", st.scrolls)

		for _, link := range links {
			if len(st.accepted) >= req.ResultCap {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			s.processPost(ctx, link, req, st)
			s.throttle.Wait(ctx)
		}

		if len(st.accepted) >= req.ResultCap {
			break
		}

		if err := s.nav.Paginate(ctx); err != nil {
			// Pagination cannot abort the run; exhaustion is handled by the
			// attempt budget.
			s.logger.Warn("pagination failed", "error", err)
		}
		st.scrolls++
		s.logger.Debug("paginated",
			"attempt", st.scrolls,
			"budget", req.MaxScrollAttempts,
			"accepted", len(st.accepted),
		)
	}

	s.logger.Info("search complete",
		"hashtag", req.Hashtag,
		"accepted", len(st.accepted),
		"inspected", len(st.visited),
	)

	return &types.SearchOutcome{
		Accepted:       st.accepted,
		TotalInspected: len(st.visited),
	}, nil
}

// processPost runs one post reference through extract -> classify -> dedup &
// filter -> aggregate. Every failure here is a skip, never fatal.
func (s *Searcher) processPost(ctx context.Context, link string, req types.SearchRequest, st *runState) {
	// Frames overlap across paginations, so the same reference may be
	// visited more than once; the distinct set is what the outcome reports.
	st.visited[link] = struct{}{}

	sig, err := s.ext.Extract(ctx, link)
	if err != nil {
		s.logger.Warn("profile visit failed, skipping", "post", link, "error", err)
		return
	}
	if sig == nil {
		s.logger.Debug("handle unresolved, skipping", "post", link)
		return
	}

	if !st.markFirstSight(sig.Handle) {
		s.logger.Debug("handle already processed", "handle", sig.Handle)
		return
	}

	if !s.cls.Classify(*sig) {
		s.logger.Debug("not a business account", "handle", sig.Handle)
		return
	}

	followers := profile.ParseFollowerCount(sig.FollowerText)
	if followers <= s.cfg.MinFollowers || followers > req.MaxFollowers {
		s.logger.Debug("follower count out of bounds",
			"handle", sig.Handle,
			"followers", followers,
			"max", req.MaxFollowers,
		)
		return
	}

	if req.City != "" && !strings.Contains(strings.ToLower(sig.Biography), strings.ToLower(req.City)) {
		s.logger.Debug("city filter miss", "handle", sig.Handle, "city", req.City)
		return
	}

	st.accepted = append(st.accepted, types.ProfileRecord{
		Handle:        sig.Handle,
		FollowerCount: followers,
		Biography:     sig.Biography,
		Hashtag:       req.Hashtag,
		DiscoveredAt:  s.now(),
	})
	s.logger.Info("business account accepted", "handle", sig.Handle, "followers", followers)
}
