package engine

import (
	"math/rand"
	"time"

	"trading-sim/internal/types"
)

// syntheticDayBars fabricates a day of 4h bars when the provider fails:
// a random base in the 45k-55k band with bounded jitter per bar.
func syntheticDayBars(day time.Time) []types.Candle {
	base := 45000 + rand.Float64()*10000
	bars := make([]types.Candle, 0, 6)
	for hour := 0; hour < 24; hour += 4 {
		price := base + (rand.Float64()-0.5)*2000
		bars = append(bars, types.Candle{
			Ts:    day.Add(time.Duration(hour) * time.Hour).UnixMilli(),
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
			Vol:   1000 + rand.Float64()*5000,
		})
	}
	return bars
}
