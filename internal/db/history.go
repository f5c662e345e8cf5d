package db

import (
	"log"
	"time"

	"eve-routes/internal/routes"
)

// SearchRecord is one entry in the search history.
type SearchRecord struct {
	ID          int64
	Timestamp   string
	FromStation string
	ToStation   string
	TotalFound  int
	TopProfit   float64
	QueryTime   float64
	Cached      bool
}

// RecordSearch stores a completed search and its opportunities. Returns
// the new history ID, or 0 on failure (history is best-effort).
func (d *DB) RecordSearch(set *routes.ResultSet) int64 {
	if set == nil {
		return 0
	}
	topProfit := 0.0
	if len(set.Opportunities) > 0 {
		topProfit = set.Opportunities[0].TotalProfit
	}

	res, err := d.sql.Exec(`INSERT INTO search_history
		(timestamp, from_station, to_station, total_found, top_profit, query_time, cached)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().UTC().Format(time.RFC3339),
		set.Metadata.FromStation, set.Metadata.ToStation,
		set.Metadata.TotalFound, topProfit,
		set.Metadata.QueryTimeSeconds, set.Metadata.Cached)
	if err != nil {
		log.Printf("[DB] RecordSearch: %v", err)
		return 0
	}
	id, _ := res.LastInsertId()
	d.insertOpportunities(id, set.Opportunities)
	return id
}

func (d *DB) insertOpportunities(searchID int64, opps []routes.Opportunity) {
	if searchID == 0 || len(opps) == 0 {
		return
	}
	tx, err := d.sql.Begin()
	if err != nil {
		log.Printf("[DB] insertOpportunities begin tx: %v", err)
		return
	}
	stmt, err := tx.Prepare(`INSERT INTO search_opportunities (
		search_id, item_id, item_name, buy_price, sell_price,
		profit_per_unit, profit_margin, max_units, total_weight,
		total_profit, investment
	) VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		log.Printf("[DB] insertOpportunities prepare: %v", err)
		return
	}
	defer stmt.Close()

	for _, o := range opps {
		stmt.Exec(searchID, o.ItemID, o.ItemName, o.BuyPrice, o.SellPrice,
			o.ProfitPerUnit, o.ProfitMargin, o.MaxUnits, o.TotalWeight,
			o.TotalProfit, o.Investment)
	}
	if err := tx.Commit(); err != nil {
		log.Printf("[DB] insertOpportunities commit: %v", err)
	}
}

// GetHistory returns the most recent searches, newest first.
func (d *DB) GetHistory(limit int) []SearchRecord {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.Query(`SELECT id, timestamp, from_station, to_station,
		total_found, top_profit, query_time, cached
		FROM search_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var r SearchRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.FromStation, &r.ToStation,
			&r.TotalFound, &r.TopProfit, &r.QueryTime, &r.Cached); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records
}

// GetSearchOpportunities returns the stored opportunities for a search,
// in recorded (rank) order.
func (d *DB) GetSearchOpportunities(searchID int64) []routes.Opportunity {
	rows, err := d.sql.Query(`SELECT item_id, item_name, buy_price, sell_price,
		profit_per_unit, profit_margin, max_units, total_weight, total_profit, investment
		FROM search_opportunities WHERE search_id = ? ORDER BY id`, searchID)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var opps []routes.Opportunity
	for rows.Next() {
		var o routes.Opportunity
		if err := rows.Scan(&o.ItemID, &o.ItemName, &o.BuyPrice, &o.SellPrice,
			&o.ProfitPerUnit, &o.ProfitMargin, &o.MaxUnits, &o.TotalWeight,
			&o.TotalProfit, &o.Investment); err != nil {
			continue
		}
		opps = append(opps, o)
	}
	return opps
}

// ClearHistory deletes all recorded searches. Returns the number removed.
func (d *DB) ClearHistory() (int64, error) {
	if _, err := d.sql.Exec("DELETE FROM search_opportunities"); err != nil {
		return 0, err
	}
	res, err := d.sql.Exec("DELETE FROM search_history")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
