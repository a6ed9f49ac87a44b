package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// Pure-Go SQLite driver registered as "sqlite".
	_ "modernc.org/sqlite"
)

const (
	// DatabaseFileName is the SQLite history database inside the storage directory.
	DatabaseFileName = "recipe_history.db"

	sqliteDriverName = "sqlite"
	sqliteDSNFormat  = "file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	createHistoryTable = `CREATE TABLE IF NOT EXISTS recipe_history (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	recipe_id  TEXT NOT NULL,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	payload    TEXT NOT NULL
)`
	insertHistoryEntry  = `INSERT INTO recipe_history (recipe_id, title, created_at, payload) VALUES (?, ?, ?, ?)`
	evictHistoryEntries = `DELETE FROM recipe_history WHERE seq NOT IN (
	SELECT seq FROM recipe_history ORDER BY seq DESC LIMIT ?
)`
	selectHistoryEntries = `SELECT title, created_at, payload FROM recipe_history ORDER BY seq ASC`
	deleteHistoryEntries = `DELETE FROM recipe_history`

	openDatabaseErrorFormat = "open history database %s: %w"
	pingDatabaseErrorFormat = "ping history database %s: %w"
	createSchemaErrorFormat = "create history schema: %w"
	beginTxErrorFormat      = "begin history transaction: %w"
	insertEntryErrorFormat  = "insert history entry: %w"
	evictEntriesErrorFormat = "evict history entries: %w"
	commitTxErrorFormat     = "commit history transaction: %w"
	queryEntriesErrorFormat = "query history entries: %w"
	scanEntryErrorFormat    = "scan history entry: %w"
	decodeEntryErrorFormat  = "decode history entry: %w"
	clearEntriesErrorFormat = "clear history entries: %w"
	encodeRecipeErrorFormat = "encode history recipe: %w"
)

// SQLite stores the history in a SQLite database.
type SQLite struct {
	db    *sql.DB
	limit LimitFunc
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string, limit LimitFunc) (*SQLite, error) {
	db, err := sql.Open(sqliteDriverName, fmt.Sprintf(sqliteDSNFormat, path))
	if err != nil {
		return nil, fmt.Errorf(openDatabaseErrorFormat, path, err)
	}
	// Single writer.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(pingDatabaseErrorFormat, path, err)
	}
	if _, err := db.ExecContext(ctx, createHistoryTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(createSchemaErrorFormat, err)
	}
	return &SQLite{db: db, limit: limit}, nil
}

func (store *SQLite) Close() error { return store.db.Close() }

func (store *SQLite) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry.Recipe)
	if err != nil {
		return fmt.Errorf(encodeRecipeErrorFormat, err)
	}
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf(beginTxErrorFormat, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, insertHistoryEntry, entry.Recipe.ID, entry.Title, entry.Timestamp.UnixNano(), string(payload)); err != nil {
		return fmt.Errorf(insertEntryErrorFormat, err)
	}
	if _, err := tx.ExecContext(ctx, evictHistoryEntries, store.limit.resolve()); err != nil {
		return fmt.Errorf(evictEntriesErrorFormat, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf(commitTxErrorFormat, err)
	}
	return nil
}

func (store *SQLite) List(ctx context.Context) ([]Entry, error) {
	rows, err := store.db.QueryContext(ctx, selectHistoryEntries)
	if err != nil {
		return nil, fmt.Errorf(queryEntriesErrorFormat, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			createdAt int64
			payload   string
		)
		if err := rows.Scan(&entry.Title, &createdAt, &payload); err != nil {
			return nil, fmt.Errorf(scanEntryErrorFormat, err)
		}
		if err := json.Unmarshal([]byte(payload), &entry.Recipe); err != nil {
			return nil, fmt.Errorf(decodeEntryErrorFormat, err)
		}
		entry.Timestamp = time.Unix(0, createdAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(queryEntriesErrorFormat, err)
	}
	return entries, nil
}

func (store *SQLite) Clear(ctx context.Context) error {
	if _, err := store.db.ExecContext(ctx, deleteHistoryEntries); err != nil {
		return fmt.Errorf(clearEntriesErrorFormat, err)
	}
	return nil
}
