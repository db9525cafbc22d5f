package gramscout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/emreunal/gramscout/internal/api"
	"github.com/emreunal/gramscout/internal/config"
	"github.com/emreunal/gramscout/internal/storage"
	"github.com/emreunal/gramscout/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

type scriptedCore struct {
	loginResult *types.LoginResult
	outcome     *types.SearchOutcome
	searchErr   error
}

func (c *scriptedCore) Login(ctx context.Context, username, password string) (*types.LoginResult, error) {
	if c.loginResult != nil {
		return c.loginResult, nil
	}
	return &types.LoginResult{Success: true}, nil
}

func (c *scriptedCore) Search(ctx context.Context, req types.SearchRequest) (*types.SearchOutcome, error) {
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	return c.outcome, nil
}

func (c *scriptedCore) Close() error { return nil }

func newTestClient(t *testing.T, core api.Core) *Client {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), 10, testLogger)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	cfg := config.ServerConfig{RateLimit: 25, RateWindow: time.Hour}
	srv := httptest.NewServer(api.NewServer(cfg, core, store, testLogger).Handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestClientLoginAndSearch(t *testing.T) {
	core := &scriptedCore{outcome: &types.SearchOutcome{
		Accepted: []types.ProfileRecord{
			{Handle: "mehmet_kahve", FollowerCount: 1200, Hashtag: "kahve", DiscoveredAt: time.Now().UTC()},
		},
		TotalInspected: 4,
	}}
	client := newTestClient(t, core)
	ctx := context.Background()

	if err := client.Login(ctx, "emre", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	result, err := client.Search(ctx, SearchOptions{Hashtag: "kahve", MaxFollowers: 5000})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if result.TotalFound != 1 || result.NewFound != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.NewAccounts) != 1 || result.NewAccounts[0].Handle != "mehmet_kahve" {
		t.Errorf("unexpected accounts: %+v", result.NewAccounts)
	}

	accounts, err := client.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Errorf("expected 1 stored account, got %d", len(accounts))
	}

	history, err := client.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].Params.Hashtag != "kahve" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestClientSearchUnauthenticated(t *testing.T) {
	core := &scriptedCore{searchErr: types.ErrNotAuthenticated}
	client := newTestClient(t, core)

	_, err := client.Search(context.Background(), SearchOptions{Hashtag: "kahve", MaxFollowers: 5000})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 APIError, got %v", err)
	}
}

func TestClientLoginRejected(t *testing.T) {
	core := &scriptedCore{loginResult: &types.LoginResult{
		Success: false,
		Kind:    types.FailureSecurityChallenge,
		Message: "Confirm it's you",
	}}
	client := newTestClient(t, core)

	err := client.Login(context.Background(), "emre", "secret")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 APIError, got %v", err)
	}
}

func TestClientExportAndClear(t *testing.T) {
	core := &scriptedCore{outcome: &types.SearchOutcome{
		Accepted: []types.ProfileRecord{
			{Handle: "bir"},
			{Handle: "iki"},
		},
	}}
	client := newTestClient(t, core)
	ctx := context.Background()

	if _, err := client.Search(ctx, SearchOptions{Hashtag: "kahve", MaxFollowers: 5000}); err != nil {
		t.Fatalf("search: %v", err)
	}

	text, err := client.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if text != "bir\niki" {
		t.Errorf("export = %q", text)
	}

	if err := client.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	accounts, err := client.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("expected empty store, got %d", len(accounts))
	}
}
