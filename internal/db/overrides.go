package db

import (
	"fmt"
	"time"

	"resale-radar/internal/engine"
)

// FieldStates loads the persisted override set for a product. A product
// with no stored overrides yields a set with every field Derived.
func (d *DB) FieldStates(productID string) (*engine.FieldStateSet, error) {
	rows, err := d.sql.Query(
		"SELECT field, value FROM field_overrides WHERE product_id = ?", productID)
	if err != nil {
		return nil, fmt.Errorf("load field states: %w", err)
	}
	defer rows.Close()

	set := engine.NewFieldStateSet()
	for rows.Next() {
		var field string
		var value float64
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("scan field state: %w", err)
		}
		if key, ok := engine.ParseFieldKey(field); ok {
			set.Override(key, value)
		}
	}
	return set, rows.Err()
}

// SaveFieldStates replaces a product's stored overrides with the given set.
// Derived fields are simply absent from the table.
func (d *DB) SaveFieldStates(productID string, set *engine.FieldStateSet) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM field_overrides WHERE product_id = ?", productID); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear field states: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO field_overrides (product_id, field, value, updated_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, st := range set.States() {
		if !st.Overridden {
			continue
		}
		if _, err := stmt.Exec(productID, string(key), st.Value, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("save field state %s: %w", key, err)
		}
	}
	return tx.Commit()
}
