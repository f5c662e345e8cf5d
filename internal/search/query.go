package search

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// MaxCargoCapacity is the server-side upper bound for cargo, in m³.
const MaxCargoCapacity = 1000000

// Validation failures, one per rule so the UI can surface a specific
// message before any network call is made.
var (
	ErrFromRequired   = errors.New("select a departure station")
	ErrToRequired     = errors.New("select a destination station")
	ErrSameStation    = errors.New("departure and destination stations cannot be the same")
	ErrCargoRange     = errors.New("cargo capacity must be between 1 and 1,000,000 m³")
	ErrNegativeProfit = errors.New("minimum profit cannot be negative")
)

// Query is a validated search for trade opportunities between two stations.
type Query struct {
	FromStation   string
	ToStation     string
	CargoCapacity float64
	MinProfit     float64
	SalesTax      float64 // percent
}

// Build validates raw form values and produces a Query. Rules are checked
// in order and the first failing rule wins. Station names are normalized
// to lower case, matching the server.
func Build(from, to string, cargo, minProfit, salesTax float64) (Query, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	if from == "" {
		return Query{}, ErrFromRequired
	}
	if to == "" {
		return Query{}, ErrToRequired
	}
	if from == to {
		return Query{}, ErrSameStation
	}
	if cargo <= 0 || cargo > MaxCargoCapacity {
		return Query{}, ErrCargoRange
	}
	if minProfit < 0 {
		return Query{}, ErrNegativeProfit
	}

	return Query{
		FromStation:   from,
		ToStation:     to,
		CargoCapacity: cargo,
		MinProfit:     minProfit,
		SalesTax:      salesTax,
	}, nil
}

// Values returns the canonical query-string encoding for /api/opportunities.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("from_station", q.FromStation)
	v.Set("to_station", q.ToStation)
	v.Set("max_cargo", strconv.FormatFloat(q.CargoCapacity, 'f', -1, 64))
	v.Set("min_profit", strconv.FormatFloat(q.MinProfit, 'f', -1, 64))
	v.Set("sales_tax", strconv.FormatFloat(q.SalesTax, 'f', -1, 64))
	return v
}

// Route renders the query as "jita → dodixie" for logs and headers.
func (q Query) Route() string {
	return q.FromStation + " → " + q.ToStation
}
