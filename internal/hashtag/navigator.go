// Package hashtag drives the hashtag search view on the session's primary
// browsing surface and yields post references for the pipeline.
package hashtag

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-rod/rod"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/types"
)

// postLinkSelector matches the post thumbnail links on the search view.
const postLinkSelector = `main a[href*="/p/"]`

// Navigator paginates a hashtag search view by scroll.
type Navigator struct {
	page   *rod.Page
	cfg    *config.Config
	logger *slog.Logger
}

// New wraps the session's primary page.
func New(page *rod.Page, cfg *config.Config, logger *slog.Logger) *Navigator {
	return &Navigator{
		page:   page,
		cfg:    cfg,
		logger: logger.With("component", "navigator"),
	}
}

// Open loads the keyword search view for the tag and waits for the first
// post reference to become visible. Failure to render any reference within
// the deadline is fatal for the whole search call.
func (n *Navigator) Open(ctx context.Context, tag string) error {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	searchURL := fmt.Sprintf("%s/explore/search/keyword/?q=%s",
		n.cfg.Session.BaseURL, url.QueryEscape("#"+tag))

	page := n.page.Context(ctx)

	if err := page.Timeout(n.cfg.Session.PageLoadTimeout).Navigate(searchURL); err != nil {
		return &types.NavigationError{Stage: "hashtag", URL: searchURL, Err: err}
	}

	el, err := page.Timeout(n.cfg.Search.PostLinkWait).Element(postLinkSelector)
	if err != nil {
		return &types.NavigationError{
			Stage: "hashtag",
			URL:   searchURL,
			Err:   fmt.Errorf("no post links rendered (selector may be outdated): %w", err),
		}
	}
	if err := el.WaitVisible(); err != nil {
		return &types.NavigationError{Stage: "hashtag", URL: searchURL, Err: err}
	}

	n.logger.Info("hashtag view open", "tag", tag)
	sleepCtx(ctx, n.cfg.Search.SettleDelay)
	return nil
}

// PostLinks returns the target URLs of every currently rendered post
// reference. Repeats across consecutive calls are expected; dedup happens
// downstream at the handle level.
func (n *Navigator) PostLinks() ([]string, error) {
	els, err := n.page.Elements(postLinkSelector)
	if err != nil {
		return nil, fmt.Errorf("read post links: %w", err)
	}

	links := make([]string, 0, len(els))
	for _, el := range els {
		href, err := el.Property("href")
		if err != nil {
			continue
		}
		if u := href.String(); u != "" {
			links = append(links, u)
		}
	}

	n.logger.Debug("post links read", "count", len(links))
	return links, nil
}

// Paginate scrolls the primary surface to its content end and waits the
// settle delay. It cannot fail the pipeline: absence of new content is
// indistinguishable from exhaustion and is handled by the attempt budget.
func (n *Navigator) Paginate(ctx context.Context) error {
	if _, err := n.page.Eval(`window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		n.logger.Warn("scroll failed", "error", err)
	}
	sleepCtx(ctx, n.cfg.Search.SettleDelay)
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
