package storage

import (
	"context"

	"github.com/emreunal/gramscout/internal/types"
)

// Store persists accepted records and the search history.
type Store interface {
	// Accounts returns every stored record.
	Accounts(ctx context.Context) ([]types.ProfileRecord, error)

	// AppendNew stores the records whose handles are not yet known and
	// returns only those newly stored.
	AppendNew(ctx context.Context, records []types.ProfileRecord) ([]types.ProfileRecord, error)

	// History returns the search log, newest first.
	History(ctx context.Context) ([]types.SearchLogEntry, error)

	// LogSearch prepends an entry to the history, trimming it to the cap.
	LogSearch(ctx context.Context, entry types.SearchLogEntry) error

	// Clear removes all stored records and history.
	Clear(ctx context.Context) error

	// Close flushes pending writes and releases resources.
	Close(ctx context.Context) error

	// Name returns the storage backend identifier.
	Name() string
}
