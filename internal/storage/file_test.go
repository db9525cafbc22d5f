package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/emreunal/gramscout/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), 5, testLogger)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return store
}

func record(handle string) types.ProfileRecord {
	return types.ProfileRecord{
		Handle:        handle,
		FollowerCount: 500,
		Biography:     "bio for " + handle,
		Hashtag:       "kahve",
		DiscoveredAt:  time.Now().UTC(),
	}
}

func entry(id int64) types.SearchLogEntry {
	return types.SearchLogEntry{
		ID:   id,
		Date: time.Now().UTC(),
		Params: types.SearchParams{
			Hashtag:      "kahve",
			MaxFollowers: 5000,
		},
	}
}

func TestFileStoreAppendNewDiffs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	fresh, err := store.AppendNew(ctx, []types.ProfileRecord{record("bir"), record("iki")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh, got %d", len(fresh))
	}

	// Second append overlaps: only the unseen handle is stored.
	fresh, err = store.AppendNew(ctx, []types.ProfileRecord{record("iki"), record("uc")})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Handle != "uc" {
		t.Fatalf("expected only uc, got %+v", fresh)
	}

	accounts, err := store.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 3 {
		t.Errorf("expected 3 stored accounts, got %d", len(accounts))
	}
}

func TestFileStoreHistoryCap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := int64(1); i <= 8; i++ {
		if err := store.LogSearch(ctx, entry(i)); err != nil {
			t.Fatalf("log search %d: %v", i, err)
		}
	}

	history, err := store.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("expected history capped at 5, got %d", len(history))
	}
	// Newest first; the oldest three entries were trimmed.
	if history[0].ID != 8 || history[4].ID != 4 {
		t.Errorf("unexpected order: first=%d last=%d", history[0].ID, history[4].ID)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AppendNew(ctx, []types.ProfileRecord{record("bir")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.LogSearch(ctx, entry(1)); err != nil {
		t.Fatalf("log search: %v", err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	accounts, _ := store.Accounts(ctx)
	history, _ := store.History(ctx)
	if len(accounts) != 0 || len(history) != 0 {
		t.Errorf("expected empty store, got %d accounts, %d history", len(accounts), len(history))
	}
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFileStore(dir, 5, testLogger)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if _, err := first.AppendNew(ctx, []types.ProfileRecord{record("kalici")}); err != nil {
		t.Fatalf("append: %v", err)
	}

	second, err := NewFileStore(dir, 5, testLogger)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	accounts, err := second.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Handle != "kalici" {
		t.Fatalf("expected persisted record, got %+v", accounts)
	}

	// The data files are plain JSON arrays on disk.
	for _, name := range []string{"accounts.json", "history.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s on disk: %v", name, err)
		}
	}
}

func TestFileStoreManyAppends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		recs := []types.ProfileRecord{record(fmt.Sprintf("hesap%d", i))}
		if _, err := store.AppendNew(ctx, recs); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	accounts, err := store.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	if len(accounts) != 20 {
		t.Errorf("expected 20 accounts, got %d", len(accounts))
	}
}
