package present

import (
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"eve-routes/internal/routes"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalProfit != 0 || s.TotalInvestment != 0 || s.TotalWeight != 0 || s.AverageMargin != 0 {
		t.Errorf("Summary = %+v, want zeroed", s)
	}
	if s.Count != 0 {
		t.Errorf("Count = %d, want 0", s.Count)
	}
}

func TestSummarize_Totals(t *testing.T) {
	opps := []routes.Opportunity{
		{TotalProfit: 100, Investment: 10, TotalWeight: 1, ProfitMargin: 10},
		{TotalProfit: 200, Investment: 20, TotalWeight: 2, ProfitMargin: 30},
		{TotalProfit: 300, Investment: 30, TotalWeight: 3, ProfitMargin: 80},
	}
	s := Summarize(opps)
	if s.TotalProfit != 600 {
		t.Errorf("TotalProfit = %v, want 600", s.TotalProfit)
	}
	if s.TotalInvestment != 60 {
		t.Errorf("TotalInvestment = %v, want 60", s.TotalInvestment)
	}
	if s.TotalWeight != 6 {
		t.Errorf("TotalWeight = %v, want 6", s.TotalWeight)
	}
	if math.Abs(s.AverageMargin-40.0) > 1e-9 {
		t.Errorf("AverageMargin = %v, want 40.0", s.AverageMargin)
	}
	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
}

func TestRank_PreservesOrder(t *testing.T) {
	opps := []routes.Opportunity{
		{ItemName: "B", TotalProfit: 50},
		{ItemName: "A", TotalProfit: 500},
	}
	rows := Rank(opps)
	if len(rows) != 2 {
		t.Fatalf("len = %d", len(rows))
	}
	// No re-sort: rank follows input order even when profit doesn't.
	if rows[0].Rank != 1 || rows[0].Opportunity.ItemName != "B" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Rank != 2 || rows[1].Opportunity.ItemName != "A" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
}

func TestClassify_Thresholds(t *testing.T) {
	cases := []struct {
		margin float64
		want   string
	}{
		{50, MarginPositive},
		{49.9, MarginNeutral},
		{20, MarginNeutral},
		{19.9, MarginNegative},
		{0, MarginNegative},
		{120, MarginPositive},
	}
	for _, c := range cases {
		if got := Classify(c.margin); got != c.want {
			t.Errorf("Classify(%v) = %q, want %q", c.margin, got, c.want)
		}
	}
}

func TestFormatISK_Magnitudes(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{1500000000, "1.50B"},
		{2500000, "2.5M"},
		{4200, "4k"},
		{999, "999"},
		{1234, "1k"},
		{12345678, "12.3M"},
		{0, "0"},
	}
	for _, c := range cases {
		if got := FormatISK(c.v); got != c.want {
			t.Errorf("FormatISK(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestFormatISK_GroupingBelowThousand(t *testing.T) {
	// Grouping kicks in for plain integers once rendered via humanize.
	if got := FormatISK(999.4); got != "999" {
		t.Errorf("FormatISK(999.4) = %q, want 999", got)
	}
}

func TestTable_Empty(t *testing.T) {
	if got := Table(nil); got != EmptyGuidance {
		t.Errorf("Table(nil) = %q", got)
	}
}

func TestTruncate_MultibyteName(t *testing.T) {
	// Item names can carry multibyte runes; cutting must never split one.
	name := "Ragnarök " + strings.Repeat("ö", 40)
	got := truncate(name, 32)
	if !utf8.ValidString(got) {
		t.Fatalf("truncate produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 32 {
		t.Errorf("rune count = %d, want 32", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncate(%q, 32) = %q, want ellipsis suffix", name, got)
	}
	if got := truncate("PLEX", 32); got != "PLEX" {
		t.Errorf("truncate(PLEX, 32) = %q, want unchanged", got)
	}
}

func TestTable_Rows(t *testing.T) {
	rows := Rank([]routes.Opportunity{
		{ItemName: "PLEX", BuyPrice: 3000000, SellPrice: 3500000, ProfitMargin: 16.7, MaxUnits: 10, TotalProfit: 5000000, Investment: 30000000},
	})
	out := Table(rows)
	if !strings.Contains(out, "PLEX") {
		t.Errorf("table missing item name:\n%s", out)
	}
	if !strings.Contains(out, "3.0M") || !strings.Contains(out, "5.0M") {
		t.Errorf("table missing formatted prices:\n%s", out)
	}
}
