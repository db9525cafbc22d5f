package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/types"
)

// Session owns one authenticated browser instance and its primary page.
// Exactly one live Session per Engine; navigation on the primary page is the
// caller's serialization point.
type Session struct {
	browser       *rod.Browser
	page          *rod.Page
	cfg           *config.Config
	logger        *slog.Logger
	mu            sync.Mutex
	authenticated bool
	closed        bool
}

// New launches a Chromium instance, connects to it, and opens the stealth
// primary page.
func New(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	s := &Session{
		cfg:    cfg,
		logger: logger.With("component", "session"),
	}

	launchURL, err := s.launchBrowser()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	s.browser = browser

	page, err := stealth.Page(browser)
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("stealth page: %w", err)
	}
	s.page = page

	if ua := cfg.Browser.UserAgent; ua != "" {
		err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent:      ua,
			AcceptLanguage: "en-US,en;q=0.9,tr;q=0.8",
		})
		if err != nil {
			s.logger.Warn("failed to set user agent", "error", err)
		}
	}

	s.logger.Info("browser session ready", "headless", cfg.Browser.Headless)
	return s, nil
}

// launchBrowser starts a Chromium instance with appropriate flags.
func (s *Session) launchBrowser() (string, error) {
	l := launcher.New().
		Headless(s.cfg.Browser.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("no-first-run").
		Set("disable-blink-features", "AutomationControlled")

	if s.cfg.Browser.WindowSize != "" {
		l = l.Set("window-size", s.cfg.Browser.WindowSize)
	}
	if s.cfg.Browser.UserDataDir != "" {
		l = l.UserDataDir(s.cfg.Browser.UserDataDir)
	}
	if s.cfg.Browser.ProxyURL != "" {
		l = l.Proxy(s.cfg.Browser.ProxyURL)
	}

	return l.Launch()
}

// Page returns the session's primary browsing surface.
func (s *Session) Page() *rod.Page {
	return s.page
}

// Authenticated reports whether a login has succeeded on this session.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// NewContext opens an isolated short-lived page for one profile visit. The
// caller must close it before returning, on every exit path.
func (s *Session) NewContext() (*rod.Page, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, types.ErrSessionClosed
	}
	return stealth.Page(s.browser)
}

// Login submits credentials on the login surface and classifies the result.
// Authentication failures come back as a LoginResult, never as an error;
// errors mean the login page itself was unreachable. On any failure the
// session stays unauthenticated.
func (s *Session) Login(ctx context.Context, username, password string) (*types.LoginResult, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil, types.ErrMissingCredentials
	}

	loginURL := s.cfg.Session.BaseURL + "/accounts/login/"
	page := s.page.Context(ctx)

	if err := page.Timeout(s.cfg.Session.PageLoadTimeout).Navigate(loginURL); err != nil {
		return nil, &types.NavigationError{Stage: "login", URL: loginURL, Err: err}
	}

	userField, err := page.Timeout(s.cfg.Session.LoginWaitTimeout).Element(`input[name="username"]`)
	if err != nil {
		return nil, &types.NavigationError{Stage: "login", URL: loginURL, Err: fmt.Errorf("login form did not appear: %w", err)}
	}
	if err := userField.Input(username); err != nil {
		return nil, fmt.Errorf("type username: %w", err)
	}

	passField, err := page.Timeout(10 * time.Second).Element(`input[name="password"]`)
	if err != nil {
		return nil, fmt.Errorf("password field: %w", err)
	}
	if err := passField.Input(password); err != nil {
		return nil, fmt.Errorf("type password: %w", err)
	}

	submit, err := page.Timeout(10 * time.Second).Element(`button[type="submit"]`)
	if err != nil {
		return nil, fmt.Errorf("submit button: %w", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("click submit: %w", err)
	}

	// Let the post-submit navigation settle before classifying the state.
	if err := page.Timeout(s.cfg.Session.PostLoginWait).WaitStable(time.Second); err != nil {
		s.logger.Debug("post-login stability timeout, continuing", "error", err)
	}

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("page info: %w", err)
	}

	if strings.Contains(info.URL, "/accounts/login") {
		return s.classifyLoginFailure(page), nil
	}

	s.dismissPopups(page)

	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()

	s.logger.Info("login successful", "user", username)
	return &types.LoginResult{Success: true, Message: "login successful"}, nil
}

// classifyLoginFailure inspects the stuck login page for the most specific
// failure signal, in order: generic alert, security challenge, field-level
// error, then a generic invalid-credentials fallback.
func (s *Session) classifyLoginFailure(page *rod.Page) *types.LoginResult {
	if el, err := page.Timeout(2 * time.Second).Element(`div[role="alert"]`); err == nil {
		if text, err := el.Text(); err == nil && strings.TrimSpace(text) != "" {
			s.logger.Warn("login rejected", "alert", text)
			return &types.LoginResult{Kind: types.FailureAlert, Message: strings.TrimSpace(text)}
		}
	}

	if el, err := page.Timeout(2 * time.Second).Element(`h2`); err == nil {
		if text, err := el.Text(); err == nil && isChallengeHeading(text) {
			s.logger.Warn("security challenge detected")
			return &types.LoginResult{
				Kind:    types.FailureSecurityChallenge,
				Message: "security challenge requested; complete verification manually",
			}
		}
	}

	if el, err := page.Timeout(2 * time.Second).Element(`#slfErrorAlert`); err == nil {
		if text, err := el.Text(); err == nil && strings.TrimSpace(text) != "" {
			return &types.LoginResult{Kind: types.FailureFieldError, Message: strings.TrimSpace(text)}
		}
	}

	return &types.LoginResult{
		Kind:    types.FailureInvalidCredentials,
		Message: "login failed; check the credentials",
	}
}

// challengeMarkers are heading fragments the challenge page is known to use
// across locales.
var challengeMarkers = []string{
	"güvenliğin için",
	"suspicious",
	"confirm it's you",
	"help us confirm",
}

func isChallengeHeading(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, m := range challengeMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// dismissLabels are the known texts of post-login consent/notification
// buttons across locales.
var dismissLabels = []string{
	"not now",
	"şimdi değil",
	"daha sonra",
	"dismiss",
}

// matchesDismissLabel reports whether a button's text identifies it as a
// popup dismissal control.
func matchesDismissLabel(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return false
	}
	for _, l := range dismissLabels {
		if t == l || strings.Contains(t, l) {
			return true
		}
	}
	return false
}

// dismissPopups clears the "save login info" / notification prompts that
// follow a successful login. Best effort with a bounded wait per round —
// popups not appearing is the normal case, never an error.
func (s *Session) dismissPopups(page *rod.Page) {
	for round := 0; round < 3; round++ {
		if _, err := page.Timeout(s.cfg.Session.PopupWait).Element(`div[role="button"], button`); err != nil {
			return
		}

		els, err := page.Elements(`div[role="button"], button`)
		if err != nil {
			s.logger.Debug("popup lookup failed", "error", err)
			return
		}

		clicked := false
		for _, el := range els {
			text, err := el.Text()
			if err != nil || !matchesDismissLabel(text) {
				continue
			}
			if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
				s.logger.Debug("popup click failed", "error", err)
				continue
			}
			s.logger.Debug("popup dismissed", "label", strings.TrimSpace(text), "round", round)
			clicked = true
			time.Sleep(2 * time.Second)
			break
		}
		if !clicked {
			return
		}
	}
}

// Close tears down the browser instance. Idempotent; teardown errors are
// logged and swallowed.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.authenticated = false

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.Warn("browser close failed", "error", err)
		}
	}
	s.browser = nil
	s.page = nil
	s.logger.Info("browser session closed")
}
