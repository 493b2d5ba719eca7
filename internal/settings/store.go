// Package settings persists the global style settings between runs. It is
// a namespaced key-value table in SQLite: each setting is stored as the
// string form accepted by compose.ParseSetting, so hand edits and older
// rows are validated on the way back in.
package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nugget/voicenote/internal/compose"
	"github.com/nugget/voicenote/internal/store"
)

// Namespace holds the composition settings.
const Namespace = "style"

// Store is a namespaced key-value store backed by SQLite. All public
// methods are safe for concurrent use (SQLite serializes writes).
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the settings database at dbPath.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened database. The schema is created
// automatically.
func New(db *sql.DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

const upsertSQL = `INSERT INTO settings (namespace, key, value, updated_at)
	 VALUES (?, ?, ?, ?)
	 ON CONFLICT (namespace, key) DO UPDATE
	 SET value = excluded.value, updated_at = excluded.updated_at`

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Value returns the effective value of one named setting: the stored
// string when a row exists (stored is true), otherwise the default.
func (s *Store) Value(key string) (value string, stored bool, err error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	err = s.db.QueryRow(
		`SELECT value FROM settings WHERE namespace = ? AND key = ?`,
		Namespace, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return compose.DefaultSettings().Values()[key], false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// put upserts a namespace/key/value triple without validation.
func (s *Store) put(namespace, key, value string) error {
	if _, err := s.db.Exec(upsertSQL, namespace, key, value, now()); err != nil {
		return fmt.Errorf("set %s/%s: %w", namespace, key, err)
	}
	return nil
}

// Unset removes the stored value of one setting so its default applies
// again. Unsetting a key with no stored value is not an error.
func (s *Store) Unset(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	_, err := s.db.Exec(
		`DELETE FROM settings WHERE namespace = ? AND key = ?`,
		Namespace, key,
	)
	if err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

func checkKey(key string) error {
	if !slices.Contains(compose.SettingKeys(), key) {
		return &store.ValidationError{Field: key, Reason: "unknown setting"}
	}
	return nil
}

// list returns all key/value pairs for a namespace. Returns an empty
// (non-nil) map if the namespace has no entries.
func (s *Store) list(namespace string) (map[string]string, error) {
	rows, err := s.db.Query(
		`SELECT key, value FROM settings WHERE namespace = ? ORDER BY key`,
		namespace,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", namespace, err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", namespace, err)
		}
		result[k] = v
	}
	return result, rows.Err()
}

// Load returns the stored settings layered over compose.DefaultSettings.
// Rows that no longer parse are skipped with a warning.
func (s *Store) Load() (compose.Settings, error) {
	cfg := compose.DefaultSettings()

	values, err := s.list(Namespace)
	if err != nil {
		return cfg, err
	}
	for _, key := range compose.SettingKeys() {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := compose.ParseSetting(&cfg, key, v); err != nil {
			s.logger.Warn("ignoring stored setting", "key", key, "error", err)
		}
	}
	return cfg, nil
}

// Save writes every setting in one transaction.
func (s *Store) Save(cfg compose.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	values := cfg.Values()
	for _, key := range compose.SettingKeys() {
		if _, err := tx.Exec(upsertSQL, Namespace, key, values[key], ts); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Set validates one named setting and stores it.
func (s *Store) Set(key, value string) error {
	var scratch compose.Settings
	if err := compose.ParseSetting(&scratch, key, value); err != nil {
		return err
	}
	return s.put(Namespace, key, value)
}

// Reset removes every stored setting so Load returns the defaults.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`DELETE FROM settings WHERE namespace = ?`, Namespace)
	if err != nil {
		return fmt.Errorf("reset %s: %w", Namespace, err)
	}
	return nil
}
