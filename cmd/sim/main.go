package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"trading-sim/internal/engine"
	"trading-sim/internal/interfaces"
	"trading-sim/internal/leaderboard"
	"trading-sim/internal/logger"
	"trading-sim/internal/marketdata"
	"trading-sim/internal/news"
	"trading-sim/internal/store"
	"trading-sim/internal/ta"
	"trading-sim/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()
	must(logger.Init())
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer trace.Shutdown(context.Background())

	cfg, err := store.LoadConfig("config.yaml")
	must(err)

	start, _ := cfg.Start()
	end, _ := cfg.End()

	src := marketdata.NewBinance(cfg.CacheDir)
	eng := engine.New(src, engine.Config{
		Symbols:         cfg.Symbols,
		WarmupDays:      cfg.WarmupDays,
		GoodTilCanceled: cfg.GoodTilCanceled,
	})
	gen := newsGenerator(cfg)

	eng.Subscribe(func() {
		logger.Debug(ctx, "State changed",
			"date", eng.CurrentDate().Format("2006-01-02"),
			"cash", eng.Cash(),
			"finished", eng.Finished())
	})

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	logger.Info(ctx, "Loading price history", "symbols", cfg.Symbols,
		"start", cfg.StartDate, "end", cfg.EndDate, "warmup_days", cfg.WarmupDays)
	eng.StartGame(ctx, cfg.Player, start, end, cfg.InitialCash, cfg.TradingFee)

	tick := time.NewTicker(time.Duration(cfg.StepSeconds) * time.Second)
	defer tick.Stop()

	for !eng.Finished() {
		select {
		case <-tick.C:
			eng.NextDay(ctx)
			logDaySummary(ctx, cfg, eng)
			if blurb, err := gen.Generate(ctx, eng.CurrentDate()); err == nil && blurb != "" {
				logger.Info(ctx, "Daily news", "news", blurb)
			}
		case <-sigc:
			logger.Warn(ctx, "Interrupted before game end")
			return
		case <-ctx.Done():
			return
		}
	}

	finishGame(ctx, cfg, eng)
}

func newsGenerator(cfg *store.Config) interfaces.NewsGenerator {
	if cfg.News.Provider == "OPENAI" {
		return news.NewOpenAIGenerator(cfg.News.Model, cfg.News.MaxTokens, cfg.News.Temperature)
	}
	var scraper *news.Scraper
	if cfg.News.Headlines {
		scraper = news.NewScraper(30 * time.Second)
	}
	return news.NewService(scraper)
}

// logDaySummary prints balances and an indicator snapshot for the active
// symbol, bounded by the engine's current date via the full history.
func logDaySummary(ctx context.Context, cfg *store.Config, eng *engine.Engine) {
	sym := eng.ActiveSymbol()
	bars := eng.FullHistory(sym)
	rsi := ta.RSI(bars, cfg.Indicators.RSIPeriod)
	bb := ta.Bollinger(bars, cfg.Indicators.BBWindow, cfg.Indicators.BBStdDev)
	atrPct := ta.ATRPercent(bars, cfg.Indicators.ATRPeriod)

	logger.Info(ctx, "Day summary",
		"date", eng.CurrentDate().Format("2006-01-02"),
		"symbol", sym,
		"cash", eng.Cash(),
		"balances", eng.Balances(),
		"open_orders", len(eng.OpenOrders(sym)),
		"rsi", rsi.Value,
		"rsi_valid", rsi.Valid,
		"bb_middle", bb.Middle,
		"bb_upper", bb.Upper,
		"bb_lower", bb.Lower,
		"atr_pct", atrPct,
	)
}

func finishGame(ctx context.Context, cfg *store.Config, eng *engine.Engine) {
	valuation := eng.Valuation()
	pnl := valuation - eng.InitialCash()

	entry := leaderboard.Entry{
		Player:         eng.Player(),
		InitialCash:    eng.InitialCash(),
		FinalValuation: valuation,
		PnL:            pnl,
	}
	if err := leaderboard.Append(cfg.LeaderboardFile, entry); err != nil {
		logger.ErrorWithErr(ctx, "Failed to record leaderboard entry", err)
	}

	entries, err := leaderboard.Read(cfg.LeaderboardFile)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to read leaderboard", err)
		return
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].PnL > entries[j].PnL })

	logger.Info(ctx, "Game over", "player", entry.Player,
		"initial_cash", entry.InitialCash, "final_valuation", valuation, "pnl", pnl)
	for i, e := range entries {
		logger.Info(ctx, "Leaderboard", "rank", i+1, "player", e.Player,
			"final_valuation", e.FinalValuation, "pnl", e.PnL)
	}
}
