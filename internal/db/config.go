package db

import (
	"fmt"
	"strconv"

	"resale-radar/internal/config"
)

// LoadConfig reads settings from SQLite. If empty, returns defaults.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if len(m) == 0 {
		return cfg
	}

	if v, ok := m["category"]; ok {
		cfg.Category = v
	}
	if v, ok := m["fulfillment_mode"]; ok {
		cfg.FulfillmentMode = v
	}
	if v, ok := m["season"]; ok {
		cfg.Season = v
	}
	if v, ok := m["storage_months"]; ok {
		cfg.StorageMonths, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["prep_cost_model"]; ok {
		cfg.PrepCostModel = v
	}
	if v, ok := m["additional_cost_model"]; ok {
		cfg.AdditionalCostModel = v
	}
	if v, ok := m["schedule_path"]; ok {
		cfg.SchedulePath = v
	}

	return cfg
}

// SaveConfig writes settings to SQLite (upsert all fields).
func (d *DB) SaveConfig(cfg *config.Config) error {
	pairs := map[string]string{
		"category":              cfg.Category,
		"fulfillment_mode":      cfg.FulfillmentMode,
		"season":                cfg.Season,
		"storage_months":        fmt.Sprintf("%g", cfg.StorageMonths),
		"prep_cost_model":       cfg.PrepCostModel,
		"additional_cost_model": cfg.AdditionalCostModel,
		"schedule_path":         cfg.SchedulePath,
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for k, v := range pairs {
		if _, err := stmt.Exec(k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
