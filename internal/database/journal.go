package database

import (
	"fmt"
	"time"
)

// TransferRecord is one journaled encode or decode run.
type TransferRecord struct {
	ID            int64         `json:"id"`
	Direction     string        `json:"direction"` // "encode" or "decode"
	Strategy      string        `json:"strategy"`
	PayloadBytes  int           `json:"payload_bytes"`
	FragmentCount int           `json:"fragment_count"`
	NoiseCount    int           `json:"noise_count"`
	Truncated     bool          `json:"truncated"`
	Duration      time.Duration `json:"-"`
	DurationUS    int64         `json:"duration_us"`
	CreatedAt     time.Time     `json:"created_at"`
}

// RecordTransfer appends a run to the journal.
func (db *DB) RecordTransfer(r TransferRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO transfer_journal
			(direction, strategy, payload_bytes, fragment_count, noise_count, truncated, duration_us)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Direction, r.Strategy, r.PayloadBytes, r.FragmentCount, r.NoiseCount,
		r.Truncated, r.Duration.Microseconds())
	if err != nil {
		return fmt.Errorf("failed to journal transfer: %w", err)
	}
	return nil
}

// RecentTransfers returns the newest limit journal entries.
func (db *DB) RecentTransfers(limit int) ([]TransferRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT id, direction, strategy, payload_bytes, fragment_count,
			noise_count, truncated, duration_us, created_at
		FROM transfer_journal ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	defer rows.Close()

	var records []TransferRecord
	for rows.Next() {
		var r TransferRecord
		if err := rows.Scan(&r.ID, &r.Direction, &r.Strategy, &r.PayloadBytes,
			&r.FragmentCount, &r.NoiseCount, &r.Truncated, &r.DurationUS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		r.Duration = time.Duration(r.DurationUS) * time.Microsecond
		records = append(records, r)
	}
	return records, rows.Err()
}
