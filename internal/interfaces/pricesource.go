package interfaces

import (
	"context"
	"time"

	"trading-sim/internal/types"
)

// PriceSource supplies one UTC calendar day of OHLCV bars at the fixed
// sampling interval. Implementations must be safe to call repeatedly for
// the same (symbol, day).
type PriceSource interface {
	DayBars(ctx context.Context, symbol string, day time.Time) ([]types.Candle, error)
}
