package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.uber.org/zap"

	"github.com/temirov/llm-recipes/internal/fsops"
)

const (
	// FileName is the JSON history document inside the storage directory.
	FileName = "recipe_history.json"

	historyFilePermissions   = 0o600
	encodeHistoryErrorFormat = "encode history: %w"
	writeHistoryErrorFormat  = "write history %s: %w"
	readHistoryErrorFormat   = "read history %s: %w"
	removeHistoryErrorFormat = "remove history %s: %w"
	historyJSONIndentation   = "  "
	historyJSONPrefix        = ""
)

// File stores the history as a JSON array in a single document.
type File struct {
	ops    fsops.Ops
	path   string
	limit  LimitFunc
	logger *zap.Logger
	mutex  sync.Mutex
}

// NewFile returns a JSON history at path on filesystem.
func NewFile(filesystem fsops.FS, path string, limit LimitFunc, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{ops: fsops.NewOps(filesystem), path: path, limit: limit, logger: logger}
}

// Path reports the history document location.
func (store *File) Path() string { return store.path }

func (store *File) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()

	entries, err := store.load()
	if err != nil {
		return err
	}
	entries = trimOldest(append(entries, entry), store.limit.resolve())

	encoded, err := json.MarshalIndent(entries, historyJSONPrefix, historyJSONIndentation)
	if err != nil {
		return fmt.Errorf(encodeHistoryErrorFormat, err)
	}
	if err := store.ops.WriteAtomic(store.path, encoded, historyFilePermissions); err != nil {
		return fmt.Errorf(writeHistoryErrorFormat, store.path, err)
	}
	return nil
}

func (store *File) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	return store.load()
}

func (store *File) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.mutex.Lock()
	defer store.mutex.Unlock()
	if err := store.ops.FS.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(removeHistoryErrorFormat, store.path, err)
	}
	return nil
}

// load treats an unparsable document as empty so one bad write cannot
// block future saves.
func (store *File) load() ([]Entry, error) {
	content, err := store.ops.FS.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(readHistoryErrorFormat, store.path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(content, &entries); err != nil {
		store.logger.Warn("history file unreadable, starting fresh", zap.String("path", store.path), zap.Error(err))
		return nil, nil
	}
	return entries, nil
}
