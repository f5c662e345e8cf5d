package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"eve-routes/internal/config"
	"eve-routes/internal/db"
	"eve-routes/internal/logger"
	"eve-routes/internal/present"
	"eve-routes/internal/routes"
	"eve-routes/internal/search"
	"eve-routes/internal/tui"
)

var version = "dev"

func main() {
	server := flag.String("server", "", "aggregation server URL (overrides env/config)")
	from := flag.String("from", "", "one-shot mode: departure station")
	to := flag.String("to", "", "one-shot mode: destination station")
	cargo := flag.Float64("cargo", 0, "one-shot mode: cargo capacity in m³ (0 = last used)")
	minProfit := flag.Float64("min-profit", -1, "one-shot mode: minimum profit in ISK (-1 = last used)")
	salesTax := flag.Float64("tax", -1, "one-shot mode: sales tax percent (-1 = last used)")
	health := flag.Bool("health", false, "check server connectivity and exit")
	history := flag.Bool("history", false, "list recent searches and exit")
	clearHistory := flag.Bool("clear-history", false, "delete all recorded searches and exit")
	flag.Parse()

	logger.Banner(version)

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Error("Config", err.Error())
		os.Exit(1)
	}

	// History and last-used parameters are best-effort: the client stays
	// usable without local persistence.
	database, err := db.Open()
	if err != nil {
		logger.Warn("DB", fmt.Sprintf("%v. Running without history.", err))
		database = nil
	} else {
		defer database.Close()
		cfg = database.LoadConfig(cfg)
	}

	if *server != "" {
		cfg.ServerURL = *server
	}
	client := routes.NewClient(cfg.ServerURL, cfg.HTTPTimeout, cfg.CacheTTL)
	logger.Server(cfg.ServerURL)

	switch {
	case *health:
		os.Exit(runHealth(client))

	case *history:
		os.Exit(runHistory(database))

	case *clearHistory:
		os.Exit(runClearHistory(database))

	case *from != "" || *to != "":
		os.Exit(runOneShot(cfg, client, database, *from, *to, *cargo, *minProfit, *salesTax))
	}

	if err := tui.Run(context.Background(), cfg, client, database, version); err != nil {
		logger.Error("UI", err.Error())
		os.Exit(1)
	}
}

func runHealth(client *routes.Client) int {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if !client.HealthCheck(ctx) {
		logger.Error("Health", "Server unreachable")
		return 1
	}
	logger.Success("Health", "Server online")
	return 0
}

func runHistory(database *db.DB) int {
	if database == nil {
		logger.Error("History", "No database available")
		return 1
	}
	records := database.GetHistory(20)
	if len(records) == 0 {
		logger.Info("History", "No searches recorded yet")
		return 0
	}
	logger.Section("Recent searches")
	for _, r := range records {
		cached := ""
		if r.Cached {
			cached = " (cached)"
		}
		fmt.Printf("  #%-4d %s  %s → %s  %d found, top %s%s\n",
			r.ID, r.Timestamp, r.FromStation, r.ToStation,
			r.TotalFound, present.FormatISK(r.TopProfit), cached)
	}
	return 0
}

func runClearHistory(database *db.DB) int {
	if database == nil {
		logger.Error("History", "No database available")
		return 1
	}
	n, err := database.ClearHistory()
	if err != nil {
		logger.Error("History", err.Error())
		return 1
	}
	logger.Success("History", fmt.Sprintf("Cleared %d searches", n))
	return 0
}

// runOneShot runs a single search without the TUI, with progress printed
// as console lines.
func runOneShot(cfg *config.Config, client *routes.Client, database *db.DB,
	from, to string, cargo, minProfit, salesTax float64) int {

	if cargo <= 0 {
		cargo = cfg.CargoCapacity
	}
	if minProfit < 0 {
		minProfit = cfg.MinProfit
	}
	if salesTax < 0 {
		salesTax = cfg.SalesTax
	}

	q, err := search.Build(from, to, cargo, minProfit, salesTax)
	if err != nil {
		logger.Error("Search", err.Error())
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Section("Search")
	logger.Info("Search", fmt.Sprintf("%s, cargo %.0f m³, min profit %s ISK",
		q.Route(), q.CargoCapacity, present.FormatISK(q.MinProfit)))

	mgr := search.NewManager(client.Opportunities, cfg.MaxAttempts)
	_, results := mgr.Start(ctx, q)

	var prog search.Progress
	ticker := time.NewTicker(search.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			prog.Advance(search.RandomStep())
			fmt.Printf("\r  %3d%% %-40s", prog.Percent(), prog.Message())

		case r := <-results:
			prog.Finish()
			fmt.Printf("\r  100%%%s\n", strings.Repeat(" ", 44))

			switch r.Status {
			case search.StatusCancelled:
				logger.Warn("Search", "Cancelled")
				return 130
			case search.StatusFailed:
				logger.Error("Search", r.Err.Error())
				return 1
			}

			return printResults(cfg, database, q, r.Set)
		}
	}
}

func printResults(cfg *config.Config, database *db.DB, q search.Query, set *routes.ResultSet) int {
	md := set.Metadata
	suffix := ""
	if md.Cached {
		suffix = " (cached)"
	}
	logger.Success("Search", fmt.Sprintf("%d opportunities in %.2fs%s",
		md.TotalFound, md.QueryTimeSeconds, suffix))

	s := present.Summarize(set.Opportunities)
	logger.Section("Summary")
	logger.Stats("Total profit", present.FormatISK(s.TotalProfit)+" ISK")
	logger.Stats("Total investment", present.FormatISK(s.TotalInvestment)+" ISK")
	logger.Stats("Total cargo", fmt.Sprintf("%.0f m³", s.TotalWeight))
	logger.Stats("Average margin", fmt.Sprintf("%.1f%%", s.AverageMargin))

	fmt.Println()
	fmt.Println(present.Table(present.Rank(set.Opportunities)))

	if database != nil {
		cfg.FromStation = q.FromStation
		cfg.ToStation = q.ToStation
		cfg.CargoCapacity = q.CargoCapacity
		cfg.MinProfit = q.MinProfit
		cfg.SalesTax = q.SalesTax
		database.SaveConfig(cfg)
		database.RecordSearch(set)
	}
	return 0
}
