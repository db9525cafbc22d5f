// Package profile resolves the authoring account of a post and extracts the
// raw business signals from its profile page.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/types"
)

// ContextOpener supplies isolated short-lived pages for profile visits.
// *session.Session satisfies it.
type ContextOpener interface {
	NewContext() (*rod.Page, error)
}

// Extractor visits one post and its authoring profile in an isolated
// browsing context.
type Extractor struct {
	opener ContextOpener
	cfg    *config.Config
	logger *slog.Logger
}

// NewExtractor creates an Extractor over the given context opener.
func NewExtractor(opener ContextOpener, cfg *config.Config, logger *slog.Logger) *Extractor {
	return &Extractor{
		opener: opener,
		cfg:    cfg,
		logger: logger.With("component", "extractor"),
	}
}

// Extract opens an isolated context, resolves the post's authoring handle,
// re-navigates to the profile and reads its signals. A nil, nil return means
// the handle could not be resolved and the post should be skipped. The
// context is closed before returning on every exit path.
func (e *Extractor) Extract(ctx context.Context, postURL string) (*types.RawProfileSignals, error) {
	tab, err := e.opener.NewContext()
	if err != nil {
		return nil, fmt.Errorf("open browsing context: %w", err)
	}
	// Close through the unbound handle: the ctx-bound clone below cannot
	// issue the close once the caller's context is canceled, and the tab
	// would outlive the visit.
	defer func() {
		if cerr := tab.Close(); cerr != nil {
			e.logger.Debug("context close failed", "error", cerr)
		}
	}()

	page := tab.Context(ctx)
	timeout := e.cfg.Session.PageLoadTimeout

	if err := page.Timeout(timeout).Navigate(postURL); err != nil {
		return nil, fmt.Errorf("navigate post %s: %w", postURL, err)
	}
	if err := page.Timeout(timeout).WaitStable(500 * time.Millisecond); err != nil {
		e.logger.Debug("post page stability timeout, continuing", "url", postURL)
	}

	postHTML, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read post page: %w", err)
	}

	handle := ResolveHandle(postHTML)
	if handle == "" {
		e.logger.Debug("could not resolve handle", "post", postURL)
		return nil, nil
	}

	profileURL := e.cfg.Session.BaseURL + "/" + handle + "/"
	if err := page.Timeout(timeout).Navigate(profileURL); err != nil {
		return nil, fmt.Errorf("navigate profile @%s: %w", handle, err)
	}
	if err := page.Timeout(timeout).WaitStable(500 * time.Millisecond); err != nil {
		e.logger.Debug("profile page stability timeout, continuing", "handle", handle)
	}

	profileHTML, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read profile @%s: %w", handle, err)
	}

	sig := SignalsFromHTML(handle, profileHTML)
	e.logger.Debug("profile signals extracted",
		"handle", handle,
		"follower_text", sig.FollowerText,
		"bio_len", len(sig.Biography),
		"contact", sig.HasContactAffordance,
	)
	return &sig, nil
}
