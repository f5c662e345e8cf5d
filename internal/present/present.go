package present

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"eve-routes/internal/routes"
)

// Margin classes, by fixed thresholds on profit margin percent.
const (
	MarginPositive = "positive" // >= 50
	MarginNeutral  = "neutral"  // 20 <= m < 50
	MarginNegative = "negative" // < 20
)

// EmptyGuidance is shown instead of the table when a search finds nothing.
// An empty result set is a normal outcome, never an error.
const EmptyGuidance = "No profitable trades found. Try lowering the minimum profit or increasing cargo capacity."

// Summary aggregates a result set into headline metrics. Zeroed when the
// opportunity sequence is empty.
type Summary struct {
	TotalProfit     float64
	TotalInvestment float64
	TotalWeight     float64
	AverageMargin   float64
	Count           int
}

// Summarize recomputes the summary for a set of opportunities.
func Summarize(opps []routes.Opportunity) Summary {
	var s Summary
	if len(opps) == 0 {
		return s
	}
	for _, o := range opps {
		s.TotalProfit += o.TotalProfit
		s.TotalInvestment += o.Investment
		s.TotalWeight += o.TotalWeight
		s.AverageMargin += o.ProfitMargin
	}
	s.Count = len(opps)
	s.AverageMargin /= float64(s.Count)
	return s
}

// Row is one ranked display row. Rank is the 1-based position in the
// sequence as received; ordering authority is the upstream server.
type Row struct {
	Rank        int
	Opportunity routes.Opportunity
	MarginClass string
}

// Rank assigns ranks and margin classes without re-sorting.
func Rank(opps []routes.Opportunity) []Row {
	rows := make([]Row, len(opps))
	for i, o := range opps {
		rows[i] = Row{Rank: i + 1, Opportunity: o, MarginClass: Classify(o.ProfitMargin)}
	}
	return rows
}

// Classify maps a profit margin percent to its display class.
func Classify(margin float64) string {
	switch {
	case margin >= 50:
		return MarginPositive
	case margin >= 20:
		return MarginNeutral
	default:
		return MarginNegative
	}
}

// FormatISK renders a monetary value with a magnitude suffix. The same
// rule applies to every monetary field.
func FormatISK(v float64) string {
	switch abs := math.Abs(v); {
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	default:
		return humanize.Comma(int64(math.Round(v)))
	}
}

// Table renders ranked rows as a plain-text table for console output.
func Table(rows []Row) string {
	if len(rows) == 0 {
		return EmptyGuidance
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %-32s %10s %10s %8s %8s %10s %10s\n",
		"#", "Item", "Buy", "Sell", "Margin", "Units", "Profit", "Invest")
	for _, r := range rows {
		o := r.Opportunity
		fmt.Fprintf(&b, "%4d  %-32s %10s %10s %7.1f%% %8d %10s %10s\n",
			r.Rank, truncate(o.ItemName, 32),
			FormatISK(o.BuyPrice), FormatISK(o.SellPrice),
			o.ProfitMargin, o.MaxUnits,
			FormatISK(o.TotalProfit), FormatISK(o.Investment))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
