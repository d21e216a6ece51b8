package runstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"themesync/internal/config"
)

// Store persists the ordered list of not-yet-attempted work items between
// rate-limit interruptions, backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the run-state database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.StateDir, "runstate.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the slot with the given run identifier and the ordered list
// of remaining items, in one transaction. Only items whose download attempt
// has not begun belong here: a crash mid-download then simply redoes that one
// item on resume.
func (s *Store) Save(ctx context.Context, runID string, items []WorkItem) error {
	if runID == "" {
		return errors.New("run id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_items`); err != nil {
		return fmt.Errorf("clear work items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_slot`); err != nil {
		return fmt.Errorf("clear run slot: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO run_slot (id, run_id, created_at) VALUES (1, ?, ?)`,
		runID, now,
	); err != nil {
		return fmt.Errorf("insert run slot: %w", err)
	}

	for position, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO work_items (position, rating_key, folder_title, folder_year, folder_id, theme_path)
             VALUES (?, ?, ?, ?, ?, ?)`,
			position,
			item.RatingKey,
			item.FolderTitle,
			item.FolderYear,
			item.FolderID,
			item.ThemePath,
		); err != nil {
			return fmt.Errorf("insert work item %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load returns the persisted run identifier and remaining items in order.
// An empty slot returns an empty run id and a nil slice; its presence is the
// resume-versus-fresh-start signal.
func (s *Store) Load(ctx context.Context) (string, []WorkItem, error) {
	var runID string
	err := s.db.QueryRowContext(ctx, `SELECT run_id FROM run_slot WHERE id = 1`).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read run slot: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rating_key, folder_title, folder_year, folder_id, theme_path
         FROM work_items ORDER BY position`,
	)
	if err != nil {
		return "", nil, fmt.Errorf("read work items: %w", err)
	}
	defer rows.Close()

	var items []WorkItem
	for rows.Next() {
		var item WorkItem
		if err := rows.Scan(&item.RatingKey, &item.FolderTitle, &item.FolderYear, &item.FolderID, &item.ThemePath); err != nil {
			return "", nil, fmt.Errorf("scan work item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("iterate work items: %w", err)
	}
	return runID, items, nil
}

// Clear empties the slot. Called on clean completion.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM work_items`); err != nil {
		return fmt.Errorf("clear work items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_slot`); err != nil {
		return fmt.Errorf("clear run slot: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}
