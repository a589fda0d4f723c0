package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dnsveil/internal/steg"
)

// ErrProfileNotFound is returned when no profile has the requested name.
var ErrProfileNotFound = errors.New("database: profile not found")

// Profile is a named, persisted encoder configuration.
type Profile struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Strategy       string    `json:"strategy"`
	MaxTXTLength   int       `json:"max_txt_length"`
	MaxFragments   int       `json:"max_fragments"`
	UseCompression bool      `json:"use_compression"`
	RandomizeOrder bool      `json:"randomize_order"`
	NoiseRatio     float64   `json:"noise_ratio"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// EncoderSettings converts the stored profile into an engine config.
// An unknown strategy string falls back to multi-record.
func (p Profile) EncoderSettings() steg.Config {
	strategy, err := steg.ParseStrategy(p.Strategy)
	if err != nil {
		strategy = steg.StrategyMultiRecord
	}
	return steg.Config{
		Strategy:       strategy,
		MaxTXTLength:   p.MaxTXTLength,
		MaxFragments:   p.MaxFragments,
		UseCompression: p.UseCompression,
		RandomizeOrder: p.RandomizeOrder,
		NoiseRatio:     p.NoiseRatio,
	}
}

// SaveProfile inserts or updates a profile by name.
func (db *DB) SaveProfile(p Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO profiles (name, strategy, max_txt_length, max_fragments,
			use_compression, randomize_order, noise_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			strategy = excluded.strategy,
			max_txt_length = excluded.max_txt_length,
			max_fragments = excluded.max_fragments,
			use_compression = excluded.use_compression,
			randomize_order = excluded.randomize_order,
			noise_ratio = excluded.noise_ratio,
			updated_at = CURRENT_TIMESTAMP
	`, p.Name, p.Strategy, p.MaxTXTLength, p.MaxFragments,
		p.UseCompression, p.RandomizeOrder, p.NoiseRatio)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.Name, err)
	}
	return nil
}

// GetProfile fetches a profile by name.
func (db *DB) GetProfile(name string) (Profile, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	row := db.conn.QueryRow(`
		SELECT id, name, strategy, max_txt_length, max_fragments,
			use_compression, randomize_order, noise_ratio, created_at, updated_at
		FROM profiles WHERE name = ?
	`, name)

	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return p, err
}

// ListProfiles returns all profiles ordered by name.
func (db *DB) ListProfiles() ([]Profile, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, name, strategy, max_txt_length, max_fragments,
			use_compression, randomize_order, noise_ratio, created_at, updated_at
		FROM profiles ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile by name.
func (db *DB) DeleteProfile(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(`DELETE FROM profiles WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.Name, &p.Strategy, &p.MaxTXTLength, &p.MaxFragments,
		&p.UseCompression, &p.RandomizeOrder, &p.NoiseRatio, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("failed to scan profile: %w", err)
	}
	return p, nil
}
