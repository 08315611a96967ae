package monitor

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/retroharness/vicegrip/pkg/types"
)

// Store persists log entries to a durable, append-only sink.
type Store interface {
	// Append writes one entry. Implementations must be safe for concurrent
	// use; entries are never rewritten.
	Append(entry types.LogEntry) error
}

// Compile-time interface check.
var _ Store = (*FileStore)(nil)

// FileStore persists entries as one JSON object per line in a local file,
// human-inspectable with standard line tools. The file is created on first
// write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a FileStore writing to path. The parent directory
// must already exist; use [DefaultFileStore] for the conventional per-user
// location.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore returns a FileStore at ~/.vicegrip/reliability.jsonl,
// creating the directory if needed.
func DefaultFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("monitor: resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".vicegrip")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("monitor: create %s: %w", dir, err)
	}
	return NewFileStore(filepath.Join(dir, "reliability.jsonl")), nil
}

// Path returns the file the store writes to.
func (fs *FileStore) Path() string { return fs.path }

// Append writes entry as a single JSON line.
func (fs *FileStore) Append(entry types.LogEntry) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("monitor: marshal entry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(fs.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("monitor: open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("monitor: write log: %w", err)
	}
	return nil
}

// ReadLog parses a JSONL reliability log back into entries. Unparsable
// lines are skipped rather than failing the whole read, so a log with a
// truncated final line (e.g. after a crash mid-write) stays usable.
func ReadLog(path string) ([]types.LogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("monitor: open log: %w", err)
	}
	defer f.Close()

	var entries []types.LogEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var e types.LogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("monitor: read log: %w", err)
	}
	return entries, nil
}

var _ Store = (*TeeStore)(nil)

// TeeStore fans every entry out to multiple stores. Append returns the
// joined errors of all failed sinks; an entry is still delivered to the
// remaining sinks when one fails.
type TeeStore struct {
	stores []Store
}

// NewTeeStore combines stores into one. Nil entries are skipped.
func NewTeeStore(stores ...Store) *TeeStore {
	kept := make([]Store, 0, len(stores))
	for _, s := range stores {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &TeeStore{stores: kept}
}

// Append delivers entry to every underlying store.
func (t *TeeStore) Append(entry types.LogEntry) error {
	var errs []error
	for _, s := range t.stores {
		if err := s.Append(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every underlying store that holds resources.
func (t *TeeStore) Close() error {
	var errs []error
	for _, s := range t.stores {
		if closer, ok := s.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
