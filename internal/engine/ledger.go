package engine

import (
	"strings"
	"time"

	"trading-sim/internal/types"
)

// Ledger is the per-symbol mutable state: fee, order lists and the two
// price histories (trimmed to the game range, and full including the
// indicator warm-up window). The Engine is the sole mutator; every method
// here assumes the engine mutex is held.
type Ledger struct {
	symbol      string
	fee         float64
	open        []*types.Order
	executed    []*types.Order
	history     []types.Candle
	fullHistory []types.Candle
}

func newLedger(symbol string, fee float64) *Ledger {
	return &Ledger{symbol: symbol, fee: fee}
}

// asset is the traded-asset ticker, the symbol minus the settlement-currency
// suffix (BTCUSDC -> BTC).
func (l *Ledger) asset() string {
	return strings.TrimSuffix(l.symbol, "USDC")
}

// reset clears orders and histories and applies the game fee.
func (l *Ledger) reset(fee float64) {
	l.fee = fee
	l.open = nil
	l.executed = nil
	l.history = nil
	l.fullHistory = nil
}

// appendBars adds a day of bars to the full history, and to the trimmed
// history when the day is inside the game range.
func (l *Ledger) appendBars(bars []types.Candle, day, gameStart time.Time) {
	l.fullHistory = append(l.fullHistory, bars...)
	if !day.Before(gameStart) {
		l.history = append(l.history, bars...)
	}
}

// hasLoaded reports whether the day's bars are already in the full
// history. Days are always loaded in ascending order, so comparing
// against the last bar is sufficient.
func (l *Ledger) hasLoaded(day time.Time) bool {
	if len(l.fullHistory) == 0 {
		return false
	}
	return !l.fullHistory[len(l.fullHistory)-1].Day().Before(day)
}

// barsForDate returns the trimmed-history bars belonging to one day.
func (l *Ledger) barsForDate(day time.Time) []types.Candle {
	var out []types.Candle
	for _, b := range l.history {
		if b.Day().Equal(day) {
			out = append(out, b)
		}
	}
	return out
}

// lastClose is the most recent trimmed close, or the documented default
// when no history has loaded yet.
func (l *Ledger) lastClose() float64 {
	if len(l.history) == 0 {
		return defaultMarkPrice
	}
	return l.history[len(l.history)-1].Close
}

// removeOpen drops the order with the given ID from the open list,
// reporting whether it was present.
func (l *Ledger) removeOpen(id int64) bool {
	for i, o := range l.open {
		if o.ID == id {
			l.open = append(l.open[:i], l.open[i+1:]...)
			return true
		}
	}
	return false
}

func copyOrders(src []*types.Order) []types.Order {
	out := make([]types.Order, len(src))
	for i, o := range src {
		out[i] = *o
	}
	return out
}
