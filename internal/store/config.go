package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Player      string   `yaml:"player"`
	StartDate   string   `yaml:"start_date"` // YYYY-MM-DD
	EndDate     string   `yaml:"end_date"`   // YYYY-MM-DD
	InitialCash float64  `yaml:"initial_cash"`
	TradingFee  float64  `yaml:"trading_fee"` // fraction, e.g. 0.001
	Symbols     []string `yaml:"symbols"`

	GoodTilCanceled bool   `yaml:"good_til_canceled"`
	WarmupDays      int    `yaml:"warmup_days"`
	CacheDir        string `yaml:"cache_dir"`
	LeaderboardFile string `yaml:"leaderboard_file"`
	StepSeconds     int    `yaml:"step_seconds"`

	Indicators struct {
		RSIPeriod int     `yaml:"rsi_period"`
		BBWindow  int     `yaml:"bb_window"`
		BBStdDev  float64 `yaml:"bb_stddev"`
		ATRPeriod int     `yaml:"atr_period"`
	} `yaml:"indicators"`

	News struct {
		Provider    string  `yaml:"provider"` // TEMPLATE or OPENAI
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		Headlines   bool    `yaml:"headlines"` // scrape real headlines into template news
	} `yaml:"news"`
}

func (c *Config) Validate() error {
	if c.Player == "" {
		return errors.New("player cannot be empty")
	}
	start, err := c.Start()
	if err != nil {
		return fmt.Errorf("invalid start_date '%s': %w", c.StartDate, err)
	}
	end, err := c.End()
	if err != nil {
		return fmt.Errorf("invalid end_date '%s': %w", c.EndDate, err)
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s is after end_date %s", c.StartDate, c.EndDate)
	}
	if c.InitialCash <= 0 {
		return fmt.Errorf("initial_cash must be positive, got %.2f", c.InitialCash)
	}
	if c.TradingFee < 0 || c.TradingFee > 1 {
		return fmt.Errorf("trading_fee must be a fraction between 0 and 1, got %f", c.TradingFee)
	}
	if len(c.Symbols) == 0 {
		return errors.New("symbols cannot be empty")
	}
	if c.News.Provider != "" && c.News.Provider != "TEMPLATE" && c.News.Provider != "OPENAI" {
		return fmt.Errorf("news.provider must be 'TEMPLATE' or 'OPENAI', got '%s'", c.News.Provider)
	}
	return nil
}

// Start parses the configured start date as a UTC day.
func (c *Config) Start() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.StartDate, time.UTC)
}

// End parses the configured end date as a UTC day.
func (c *Config) End() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.EndDate, time.UTC)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.TradingFee == 0 {
		c.TradingFee = 0.001
	}
	if c.WarmupDays == 0 {
		c.WarmupDays = 20
	}
	if c.CacheDir == "" {
		c.CacheDir = "cache"
	}
	if c.LeaderboardFile == "" {
		c.LeaderboardFile = "leaderboard.txt"
	}
	if c.StepSeconds == 0 {
		c.StepSeconds = 1
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.BBWindow == 0 {
		c.Indicators.BBWindow = 20
	}
	if c.Indicators.BBStdDev == 0 {
		c.Indicators.BBStdDev = 2.0
	}
	if c.Indicators.ATRPeriod == 0 {
		c.Indicators.ATRPeriod = 14
	}
	if c.News.Provider == "" {
		c.News.Provider = "TEMPLATE"
	}
	if c.News.Model == "" {
		c.News.Model = "gpt-3.5-turbo"
	}
	if c.News.MaxTokens == 0 {
		c.News.MaxTokens = 500
	}
	if c.News.Temperature == 0 {
		c.News.Temperature = 0.7
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
