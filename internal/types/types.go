package types

import "time"

// Side of an order.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Candle is one OHLCV bar at the fixed 4h sampling interval.
// Ts is unix milliseconds, UTC. Bars are immutable once constructed.
type Candle struct {
	Ts                          int64
	Open, High, Low, Close, Vol float64
}

// Day returns the UTC calendar day the bar belongs to.
func (c Candle) Day() time.Time {
	return time.UnixMilli(c.Ts).UTC().Truncate(24 * time.Hour)
}

// Order is a limit-style order against a single symbol. The engine assigns
// the ID at placement and mutates the order exactly once, on execution;
// an executed order is never touched again.
type Order struct {
	ID             int64
	Side           Side
	Price          float64 // limit price in the settlement currency
	Qty            float64 // quantity of the traded asset
	OrderDate      time.Time
	Executed       bool
	ExecutionDate  time.Time
	ExecutionPrice float64
}

// DayOf normalizes t to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// Date builds a UTC calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
