package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
player: alice
start_date: "2024-01-01"
end_date: "2024-01-31"
initial_cash: 10000
symbols:
  - BTCUSDC
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.TradingFee != 0.001 {
		t.Errorf("Expected default fee 0.001, got %f", cfg.TradingFee)
	}
	if cfg.WarmupDays != 20 {
		t.Errorf("Expected default warmup 20, got %d", cfg.WarmupDays)
	}
	if cfg.Indicators.RSIPeriod != 14 || cfg.Indicators.BBWindow != 20 || cfg.Indicators.BBStdDev != 2.0 {
		t.Errorf("Unexpected indicator defaults: %+v", cfg.Indicators)
	}
	if cfg.News.Provider != "TEMPLATE" {
		t.Errorf("Expected default news provider TEMPLATE, got %s", cfg.News.Provider)
	}
	if cfg.LeaderboardFile != "leaderboard.txt" {
		t.Errorf("Expected default leaderboard file, got %s", cfg.LeaderboardFile)
	}

	start, err := cfg.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !start.Equal(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start date: %v", start)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	cases := map[string]string{
		"missing player": `
start_date: "2024-01-01"
end_date: "2024-01-31"
initial_cash: 10000
symbols: [BTCUSDC]
`,
		"bad date": `
player: alice
start_date: "01/01/2024"
end_date: "2024-01-31"
initial_cash: 10000
symbols: [BTCUSDC]
`,
		"start after end": `
player: alice
start_date: "2024-02-01"
end_date: "2024-01-01"
initial_cash: 10000
symbols: [BTCUSDC]
`,
		"negative cash": `
player: alice
start_date: "2024-01-01"
end_date: "2024-01-31"
initial_cash: -5
symbols: [BTCUSDC]
`,
		"fee above one": `
player: alice
start_date: "2024-01-01"
end_date: "2024-01-31"
initial_cash: 10000
trading_fee: 1.5
symbols: [BTCUSDC]
`,
		"no symbols": `
player: alice
start_date: "2024-01-01"
end_date: "2024-01-31"
initial_cash: 10000
symbols: []
`,
		"bad news provider": `
player: alice
start_date: "2024-01-01"
end_date: "2024-01-31"
initial_cash: 10000
symbols: [BTCUSDC]
news:
  provider: CARRIER_PIGEON
`,
	}

	for name, body := range cases {
		if _, err := LoadConfig(writeConfig(t, body)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
