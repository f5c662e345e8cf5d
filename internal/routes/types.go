package routes

// Opportunity is one candidate trade (buy at one station, sell at another)
// with profit metrics precomputed by the aggregation server. The client
// only reads these values.
type Opportunity struct {
	ItemID        int32   `json:"item_id"`
	ItemName      string  `json:"item_name"`
	BuyPrice      float64 `json:"buy_price"`
	SellPrice     float64 `json:"sell_price"`
	ProfitPerUnit float64 `json:"profit_per_unit"`
	ProfitMargin  float64 `json:"profit_margin"` // percent
	Volume        float64 `json:"volume"`        // m³ per unit
	MaxUnits      int64   `json:"max_units"`
	TotalWeight   float64 `json:"total_weight"` // m³
	TotalProfit   float64 `json:"total_profit"`
	Investment    float64 `json:"investment"`
}

// Metadata describes a completed server-side query.
type Metadata struct {
	FromStation      string  `json:"from_station"`
	ToStation        string  `json:"to_station"`
	MaxCargo         float64 `json:"max_cargo"`
	MinProfit        float64 `json:"min_profit"`
	TotalFound       int     `json:"total_found"`
	Showing          int     `json:"showing"`
	QueryTimeSeconds float64 `json:"query_time_seconds"`
	Timestamp        string  `json:"timestamp"`
	Cached           bool    `json:"cached"`
}

// ResultSet is one response from /api/opportunities. Opportunities arrive
// pre-ranked by the server; the client preserves their order.
type ResultSet struct {
	Opportunities []Opportunity `json:"opportunities"`
	Metadata      Metadata      `json:"metadata"`
}
