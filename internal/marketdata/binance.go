package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"trading-sim/internal/interfaces"
	"trading-sim/internal/logger"
	"trading-sim/internal/trace"
	"trading-sim/internal/types"
)

const (
	defaultBaseURL = "https://api.binance.com/api/v3"
	klineInterval  = "4h"
	barsPerDay     = 6
)

// BinanceClient fetches daily kline batches from Binance's public REST API
// and caches the raw payload per (symbol, day).
type BinanceClient struct {
	baseURL string
	httpc   *http.Client
	cache   *FileCache
}

var _ interfaces.PriceSource = (*BinanceClient)(nil)

// NewBinance creates a client with a file cache rooted at cacheDir.
func NewBinance(cacheDir string) *BinanceClient {
	return &BinanceClient{
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		cache:   NewFileCache(cacheDir),
	}
}

// NewBinanceWithBaseURL is NewBinance pointed at a different endpoint.
func NewBinanceWithBaseURL(baseURL, cacheDir string) *BinanceClient {
	c := NewBinance(cacheDir)
	c.baseURL = baseURL
	return c
}

// DayBars returns the 4h bars covering one UTC calendar day. Cached days
// are served from disk without touching the network.
func (b *BinanceClient) DayBars(ctx context.Context, symbol string, day time.Time) ([]types.Candle, error) {
	ctx, span := trace.StartSpan(ctx, "binance-day-bars")
	defer span.End()

	day = types.DayOf(day)
	if raw, ok := b.cache.Get(symbol, day); ok {
		bars, err := parseKlines(raw)
		if err == nil {
			return bars, nil
		}
		logger.Warn(ctx, "Discarding corrupt cache entry", "symbol", symbol, "day", day.Format("2006-01-02"), "error", err)
	}

	raw, err := b.fetch(ctx, symbol, day)
	if err != nil {
		return nil, err
	}
	bars, err := parseKlines(raw)
	if err != nil {
		return nil, err
	}
	if err := b.cache.Put(symbol, day, raw); err != nil {
		logger.Warn(ctx, "Failed to cache klines", "symbol", symbol, "day", day.Format("2006-01-02"), "error", err)
	}
	return bars, nil
}

func (b *BinanceClient) fetch(ctx context.Context, symbol string, day time.Time) ([]byte, error) {
	start := day.UnixMilli()
	end := day.AddDate(0, 0, 1).UnixMilli()
	url := fmt.Sprintf("%s/klines?symbol=%s&interval=%s&startTime=%d&endTime=%d&limit=%d",
		b.baseURL, symbol, klineInterval, start, end, barsPerDay)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance http %d for %s", resp.StatusCode, symbol)
	}
	return io.ReadAll(resp.Body)
}

// parseKlines decodes the Binance kline payload: a JSON array of arrays,
// open time as a number and OHLCV as strings.
func parseKlines(raw []byte) ([]types.Candle, error) {
	var klines [][]any
	if err := json.Unmarshal(raw, &klines); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}
	bars := make([]types.Candle, 0, len(klines))
	for _, k := range klines {
		if len(k) < 6 {
			return nil, fmt.Errorf("kline row has %d fields, want at least 6", len(k))
		}
		ts, ok := k[0].(float64)
		if !ok {
			return nil, fmt.Errorf("kline open time is %T, want number", k[0])
		}
		vals := make([]float64, 5)
		for i := 1; i <= 5; i++ {
			s, ok := k[i].(string)
			if !ok {
				return nil, fmt.Errorf("kline field %d is %T, want string", i, k[i])
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("parse kline field %d: %w", i, err)
			}
			vals[i-1] = v
		}
		bars = append(bars, types.Candle{
			Ts:    int64(ts),
			Open:  vals[0],
			High:  vals[1],
			Low:   vals[2],
			Close: vals[3],
			Vol:   vals[4],
		})
	}
	return bars, nil
}
