package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/emreunal/gramscout/internal/types"
)

// FileStore keeps accounts and history as JSON files under a data directory.
type FileStore struct {
	accountsPath string
	historyPath  string
	historyCap   int
	mu           sync.Mutex
	logger       *slog.Logger
}

// NewFileStore creates the data directory and empty data files if missing.
func NewFileStore(dataDir string, historyCap int, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &FileStore{
		accountsPath: filepath.Join(dataDir, "accounts.json"),
		historyPath:  filepath.Join(dataDir, "history.json"),
		historyCap:   historyCap,
		logger:       logger.With("component", "file_store"),
	}

	for _, path := range []string{s.accountsPath, s.historyPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
				return nil, fmt.Errorf("initialize %s: %w", path, err)
			}
		}
	}

	return s, nil
}

func (s *FileStore) Name() string { return "file" }

func (s *FileStore) Accounts(ctx context.Context) ([]types.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAccounts()
}

func (s *FileStore) AppendNew(ctx context.Context, records []types.ProfileRecord) ([]types.ProfileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readAccounts()
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		known[rec.Handle] = struct{}{}
	}

	var fresh []types.ProfileRecord
	for _, rec := range records {
		if _, dup := known[rec.Handle]; dup {
			continue
		}
		known[rec.Handle] = struct{}{}
		fresh = append(fresh, rec)
	}

	if len(fresh) == 0 {
		return nil, nil
	}

	if err := writeJSON(s.accountsPath, append(existing, fresh...)); err != nil {
		return nil, err
	}

	s.logger.Info("accounts stored", "new", len(fresh), "total", len(existing)+len(fresh))
	return fresh, nil
}

func (s *FileStore) History(ctx context.Context) ([]types.SearchLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readHistory()
}

func (s *FileStore) LogSearch(ctx context.Context, entry types.SearchLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.readHistory()
	if err != nil {
		return err
	}

	history = append([]types.SearchLogEntry{entry}, history...)
	if len(history) > s.historyCap {
		history = history[:s.historyCap]
	}

	return writeJSON(s.historyPath, history)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(s.accountsPath, []types.ProfileRecord{}); err != nil {
		return err
	}
	if err := writeJSON(s.historyPath, []types.SearchLogEntry{}); err != nil {
		return err
	}
	s.logger.Info("data cleared")
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

func (s *FileStore) readAccounts() ([]types.ProfileRecord, error) {
	var out []types.ProfileRecord
	if err := readJSON(s.accountsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileStore) readHistory() ([]types.SearchLogEntry, error) {
	var out []types.SearchLogEntry
	if err := readJSON(s.historyPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
