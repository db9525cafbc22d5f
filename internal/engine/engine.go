// Package engine owns the discovery pipeline: an authenticated browsing
// session, the hashtag navigator, the profile extractor, and the
// classify/dedup/filter loop that turns post references into accepted
// business-account records.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/emreunal/gramscout/internal/classify"
	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/hashtag"
	"github.com/emreunal/gramscout/internal/profile"
	"github.com/emreunal/gramscout/internal/session"
	"github.com/emreunal/gramscout/internal/types"
)

// Engine is the facade the service layer talks to: Login, Search, Close.
// It holds at most one browser session; calls are serialized.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	mu       sync.Mutex
	sess     *session.Session
	searcher *Searcher
}

// New creates an Engine. The browser is launched lazily on the first Login.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger.With("component", "engine"),
	}
}

// Login establishes (or re-establishes) the authenticated browsing session.
// A failed attempt leaves no session state behind and may be retried with
// new credentials.
func (e *Engine) Login(ctx context.Context, username, password string) (*types.LoginResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		sess, err := session.New(e.cfg, e.logger)
		if err != nil {
			return nil, err
		}
		e.sess = sess
	}

	res, err := e.sess.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if !res.Success {
		return res, nil
	}

	nav := hashtag.New(e.sess.Page(), e.cfg, e.logger)
	ext := profile.NewExtractor(e.sess, e.cfg, e.logger)
	cls := classify.New(e.cfg.Classifier)
	thr := NewJitterThrottle(e.cfg.Search.VisitDelayMin, e.cfg.Search.VisitDelayMax)
	e.searcher = NewSearcher(nav, ext, cls, thr, e.cfg.Search, e.logger)

	return res, nil
}

// Search runs one discovery pipeline. Requires a prior successful Login; no
// navigation happens otherwise.
func (e *Engine) Search(ctx context.Context, req types.SearchRequest) (*types.SearchOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil || !e.sess.Authenticated() || e.searcher == nil {
		return nil, types.ErrNotAuthenticated
	}

	return e.searcher.Run(ctx, req)
}

// Close tears down the session and browser. Idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess != nil {
		e.sess.Close()
		e.sess = nil
		e.searcher = nil
	}
	return nil
}
