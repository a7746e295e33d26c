package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveSchedule stores a validated schedule's raw JSON so it survives
// restarts and can be restored without the original file.
func (d *DB) SaveSchedule(version string, payload []byte) error {
	_, err := d.sql.Exec(
		"INSERT INTO schedules (version, loaded_at, payload) VALUES (?, ?, ?)",
		version, time.Now().UTC().Format(time.RFC3339), string(payload))
	if err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// LatestSchedule returns the most recently stored schedule payload and its
// version. ok is false when none has been stored yet.
func (d *DB) LatestSchedule() (payload []byte, version string, ok bool, err error) {
	var p string
	row := d.sql.QueryRow(
		"SELECT payload, version FROM schedules ORDER BY id DESC LIMIT 1")
	if err := row.Scan(&p, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", false, nil
		}
		return nil, "", false, fmt.Errorf("load schedule: %w", err)
	}
	return []byte(p), version, true, nil
}
