package db

import (
	"strconv"

	"eve-routes/internal/config"
)

// LoadConfig reads the persisted search parameters from SQLite, layered
// over the given base (defaults plus env overrides). Connection settings
// are never persisted; only the last-used form values are.
func (d *DB) LoadConfig(base *config.Config) *config.Config {
	cfg := *base

	rows, err := d.sql.Query("SELECT key, value FROM config")
	if err != nil {
		return &cfg
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var k, v string
		rows.Scan(&k, &v)
		m[k] = v
	}

	if v, ok := m["from_station"]; ok {
		cfg.FromStation = v
	}
	if v, ok := m["to_station"]; ok {
		cfg.ToStation = v
	}
	if v, ok := m["cargo_capacity"]; ok {
		cfg.CargoCapacity, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["min_profit"]; ok {
		cfg.MinProfit, _ = strconv.ParseFloat(v, 64)
	}
	if v, ok := m["sales_tax"]; ok {
		cfg.SalesTax, _ = strconv.ParseFloat(v, 64)
	}
	return &cfg
}

// SaveConfig persists the last-used search parameters.
func (d *DB) SaveConfig(cfg *config.Config) error {
	kv := map[string]string{
		"from_station":   cfg.FromStation,
		"to_station":     cfg.ToStation,
		"cargo_capacity": strconv.FormatFloat(cfg.CargoCapacity, 'f', -1, 64),
		"min_profit":     strconv.FormatFloat(cfg.MinProfit, 'f', -1, 64),
		"sales_tax":      strconv.FormatFloat(cfg.SalesTax, 'f', -1, 64),
	}

	tx, err := d.sql.Begin()
	if err != nil {
		return err
	}
	for k, v := range kv {
		if _, err := tx.Exec("INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)", k, v); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
