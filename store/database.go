// Package store database for the photo media index, settings, and library access consent
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	// Create directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// the scanner and http handlers share the handle
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	database := &Database{db: db}

	// Create table if it doesn't exist
	if err := database.createTable(); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return database, nil
}

func (d *Database) createTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS photos (
		photo_id   TEXT NOT NULL,
		path       TEXT NOT NULL UNIQUE,
		source     INTEGER NOT NULL,
		date_added INTEGER NOT NULL,
		PRIMARY KEY (photo_id)
	);
	CREATE INDEX IF NOT EXISTS idx_photos_date_added ON photos(date_added DESC);
	CREATE TABLE IF NOT EXISTS app_settings (
		singleton INTEGER NOT NULL DEFAULT 1 CHECK (singleton = 1),
		effect                  TEXT    NOT NULL,
		effect_duration_seconds REAL    NOT NULL,
		photo_interval_seconds  REAL    NOT NULL,
		start_index             INTEGER NOT NULL,
		PRIMARY KEY (singleton)
	);
	CREATE TABLE IF NOT EXISTS access (
		singleton  INTEGER NOT NULL DEFAULT 1 CHECK (singleton = 1),
		granted    INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (singleton)
	);
	`
	_, err := d.db.Exec(query)
	return err
}

func (d *Database) UpsertPhoto(p Photo) error {
	const stmt = `
		INSERT INTO photos (photo_id, path, source, date_added)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(photo_id) DO UPDATE SET
			path       = excluded.path,
			source     = excluded.source,
			date_added = excluded.date_added
	`
	_, err := d.db.Exec(stmt, p.PhotoID, p.Path, p.Source, p.DateAdded.Unix())
	if err != nil {
		return fmt.Errorf("failed to upsert photo: %w", err)
	}
	return nil
}

// GetRecentPhotos returns up to limit photos, newest first.
func (d *Database) GetRecentPhotos(limit int) ([]Photo, error) {
	query := `
		SELECT photo_id, path, source, date_added
		FROM photos
		ORDER BY date_added DESC, photo_id ASC
		LIMIT ?
	`
	rows, err := d.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

func (d *Database) GetAllPhotos(source int) ([]Photo, error) {
	query := `
		SELECT photo_id, path, source, date_added
		FROM photos
		WHERE source = ?
		ORDER BY date_added DESC, photo_id ASC
	`
	rows, err := d.db.Query(query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

func scanPhotos(rows *sql.Rows) ([]Photo, error) {
	var photos []Photo
	for rows.Next() {
		var p Photo
		var dateAdded int64
		if err := rows.Scan(&p.PhotoID, &p.Path, &p.Source, &dateAdded); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		p.DateAdded = time.Unix(dateAdded, 0)
		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return photos, nil
}

func (d *Database) GetPhoto(photoID string) (*Photo, error) {
	query := `SELECT photo_id, path, source, date_added FROM photos WHERE photo_id = ?`
	var p Photo
	var dateAdded int64
	err := d.db.QueryRow(query, photoID).Scan(&p.PhotoID, &p.Path, &p.Source, &dateAdded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo %s: %w", photoID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	p.DateAdded = time.Unix(dateAdded, 0)
	return &p, nil
}

func (d *Database) GetPhotoCount() (int, error) {
	query := `SELECT COUNT(*) FROM photos`
	var count int
	err := d.db.QueryRow(query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get photo count: %w", err)
	}
	return count, nil
}

func (d *Database) DeletePhoto(photoID string) error {
	query := `DELETE FROM photos WHERE photo_id = ?`
	result, err := d.db.Exec(query, photoID)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("photo %s: %w", photoID, ErrNotFound)
	}

	return nil
}

// DefaultAppSettings mirror the settings screen's initial selections.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Effect:                "Fade",
		EffectDurationSeconds: 1.2,
		PhotoIntervalSeconds:  4,
		StartIndex:            0,
	}
}

func (d *Database) GetAppSettings() (*AppSettings, error) {
	const query = `
		SELECT effect,
		       effect_duration_seconds,
		       photo_interval_seconds,
		       start_index
		FROM app_settings
		WHERE singleton = 1
	`

	var s AppSettings
	err := d.db.QueryRow(query).Scan(&s.Effect, &s.EffectDurationSeconds, &s.PhotoIntervalSeconds, &s.StartIndex)
	if errors.Is(err, sql.ErrNoRows) {
		// Bootstrap defaults if no settings row exists yet
		defaults := DefaultAppSettings()
		if err := d.UpsertAppSettings(defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get app settings: %w", err)
	}
	return &s, nil
}

func (d *Database) UpsertAppSettings(s *AppSettings) error {
	const stmt = `
		INSERT INTO app_settings (
			singleton,
			effect,
			effect_duration_seconds,
			photo_interval_seconds,
			start_index
		) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			effect                  = excluded.effect,
			effect_duration_seconds = excluded.effect_duration_seconds,
			photo_interval_seconds  = excluded.photo_interval_seconds,
			start_index             = excluded.start_index
	`

	_, err := d.db.Exec(
		stmt,
		s.Effect,
		s.EffectDurationSeconds,
		s.PhotoIntervalSeconds,
		s.StartIndex,
	)
	if err != nil {
		return fmt.Errorf("upsert app settings: %w", err)
	}
	return nil
}

func (d *Database) GetAccess() (*Access, error) {
	const query = `SELECT granted, updated_at FROM access WHERE singleton = 1`

	var granted int
	var updatedAt int64
	err := d.db.QueryRow(query).Scan(&granted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// never asked
		return &Access{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get access: %w", err)
	}
	return &Access{Granted: granted != 0, UpdatedAt: time.Unix(updatedAt, 0)}, nil
}

func (d *Database) UpsertAccess(a *Access) error {
	const stmt = `
		INSERT INTO access (singleton, granted, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(singleton) DO UPDATE SET
			granted    = excluded.granted,
			updated_at = excluded.updated_at
	`
	if _, err := d.db.Exec(stmt, boolToInt(a.Granted), a.UpdatedAt.Unix()); err != nil {
		return fmt.Errorf("upsert access: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (d *Database) Close() error {
	return d.db.Close()
}
