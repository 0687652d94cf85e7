package engine

import (
	"context"
	"sync"
	"time"

	"trading-sim/internal/interfaces"
	"trading-sim/internal/logger"
	"trading-sim/internal/trace"
	"trading-sim/internal/types"
)

const (
	// defaultWarmupDays is the longest indicator lookback in use
	// (Bollinger window), loaded before the game range so indicators are
	// defined on day one.
	defaultWarmupDays = 20
	// defaultFee applies to ledgers created before StartGame configures
	// the game fee.
	defaultFee = 0.001
	// defaultMarkPrice values a holding whose ledger has no bars yet.
	defaultMarkPrice = 50000.0
)

// Config controls engine behavior.
type Config struct {
	Symbols    []string // ledgers seeded at construction
	WarmupDays int      // 0 means defaultWarmupDays
	DefaultFee float64  // 0 means defaultFee
	// GoodTilCanceled keeps unmatched orders eligible on every later day.
	// Off, the reference behavior, matches an order only on the exact day
	// it is dated for.
	GoodTilCanceled bool
}

// Engine owns the simulation clock, the per-symbol ledgers and the shared
// account (cash plus per-asset balances), and drives the day-step
// transition. All mutations run behind one mutex; accessors hand out
// defensive copies. Listeners fire synchronously after each mutation, with
// the mutex released so they can re-read state.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	src interfaces.PriceSource

	player      string
	startDate   time.Time
	endDate     time.Time
	currentDate time.Time
	started     bool
	finished    bool

	initialCash float64
	cash        float64
	gameFee     float64
	assets      map[string]float64

	ledgers      map[string]*Ledger
	activeSymbol string

	listeners   []func()
	nextOrderID int64
}

// New creates an engine with one ledger per configured symbol, each at the
// default fee until StartGame sets the game fee.
func New(src interfaces.PriceSource, cfg Config) *Engine {
	if cfg.WarmupDays <= 0 {
		cfg.WarmupDays = defaultWarmupDays
	}
	if cfg.DefaultFee <= 0 {
		cfg.DefaultFee = defaultFee
	}
	e := &Engine{
		cfg:     cfg,
		src:     src,
		assets:  map[string]float64{},
		ledgers: map[string]*Ledger{},
	}
	for _, sym := range cfg.Symbols {
		e.ledgers[sym] = newLedger(sym, cfg.DefaultFee)
		if e.activeSymbol == "" {
			e.activeSymbol = sym
		}
	}
	if e.activeSymbol == "" {
		e.activeSymbol = "BTCUSDC"
		e.ledgers[e.activeSymbol] = newLedger(e.activeSymbol, cfg.DefaultFee)
	}
	return e
}

// Subscribe registers a change listener, invoked synchronously after every
// state-mutating operation in registration order. No payload is passed;
// listeners re-read state through the accessors.
func (e *Engine) Subscribe(fn func()) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

func (e *Engine) notify() {
	e.mu.Lock()
	ls := make([]func(), len(e.listeners))
	copy(ls, e.listeners)
	e.mu.Unlock()
	for _, fn := range ls {
		fn()
	}
}

// StartGame resets the clock and account, reconfigures every ledger with
// the game fee and loads history for [startDate-warmup, endDate] per
// symbol. startDate <= endDate and fee in [0,1] are caller-validated.
func (e *Engine) StartGame(ctx context.Context, player string, startDate, endDate time.Time, initialCash, fee float64) {
	ctx, span := trace.StartSpan(ctx, "start-game")
	defer span.End()

	e.mu.Lock()
	e.player = player
	e.startDate = types.DayOf(startDate)
	e.endDate = types.DayOf(endDate)
	e.currentDate = e.startDate
	e.started = true
	e.finished = false
	e.initialCash = initialCash
	e.cash = initialCash
	e.gameFee = fee
	e.assets = map[string]float64{}

	warmupStart := e.startDate.AddDate(0, 0, -e.cfg.WarmupDays)
	for _, l := range e.ledgers {
		l.reset(fee)
		e.loadRangeLocked(ctx, l, warmupStart, e.endDate)
	}
	e.mu.Unlock()

	logger.Game(ctx, "started", "player", player,
		"start", e.startDate.Format("2006-01-02"),
		"end", e.endDate.Format("2006-01-02"),
		"cash", initialCash, "fee", fee)
	e.notify()
}

// NextDay matches open orders against the current day, advances the clock
// and loads the new day's bars for the active ledger. A no-op before
// StartGame or after the game finished.
func (e *Engine) NextDay(ctx context.Context) {
	ctx, span := trace.StartSpan(ctx, "next-day")
	defer span.End()

	e.mu.Lock()
	if !e.started || e.finished {
		e.mu.Unlock()
		return
	}

	e.matchOrdersLocked(ctx)

	e.currentDate = e.currentDate.AddDate(0, 0, 1)
	if e.currentDate.After(e.endDate) {
		e.finished = true
		logger.Game(ctx, "finished", "player", e.player, "valuation", e.valuationLocked())
	} else {
		l := e.ledgers[e.activeSymbol]
		e.loadDayLocked(ctx, l, e.currentDate)
	}
	e.mu.Unlock()

	e.notify()
}

// PlaceOrder appends a new open order against the symbol, creating the
// ledger on first reference, and returns the assigned ID. Returns 0 with
// no state change when the game is inactive or the order is past-dated.
// Balance is checked only at execution time.
func (e *Engine) PlaceOrder(side types.Side, price, qty float64, orderDate time.Time, symbol string) int64 {
	e.mu.Lock()
	if !e.started || e.finished {
		e.mu.Unlock()
		return 0
	}
	day := types.DayOf(orderDate)
	if day.Before(e.currentDate) {
		e.mu.Unlock()
		return 0
	}
	l := e.getOrCreateLedgerLocked(symbol)
	e.nextOrderID++
	o := &types.Order{
		ID:        e.nextOrderID,
		Side:      side,
		Price:     price,
		Qty:       qty,
		OrderDate: day,
	}
	l.open = append(l.open, o)
	id := o.ID
	e.mu.Unlock()

	e.notify()
	return id
}

// CancelOrder removes an open order by ID. A no-op when the game is
// inactive or the order is absent (already executed or removed).
func (e *Engine) CancelOrder(symbol string, id int64) {
	e.mu.Lock()
	if !e.started || e.finished {
		e.mu.Unlock()
		return
	}
	l, ok := e.ledgers[symbol]
	removed := ok && l.removeOpen(id)
	e.mu.Unlock()

	if removed {
		e.notify()
	}
}

// SetActiveSymbol switches the symbol whose ledger NextDay keeps loading,
// creating the ledger and loading its history range if empty.
func (e *Engine) SetActiveSymbol(ctx context.Context, symbol string) {
	e.mu.Lock()
	l := e.getOrCreateLedgerLocked(symbol)
	e.activeSymbol = symbol
	if e.started && len(l.fullHistory) == 0 {
		warmupStart := e.startDate.AddDate(0, 0, -e.cfg.WarmupDays)
		e.loadRangeLocked(ctx, l, warmupStart, e.endDate)
	}
	e.mu.Unlock()

	e.notify()
}

// matchOrdersLocked runs the two-pass match: first collect the open orders
// eligible against today's bars, then execute, so the scan never mutates
// the list it iterates.
func (e *Engine) matchOrdersLocked(ctx context.Context) {
	for _, l := range e.ledgers {
		var eligible []*types.Order
		for _, o := range l.open {
			if !e.orderDueLocked(o) {
				continue
			}
			for _, bar := range l.barsForDate(e.currentDate) {
				if fillReached(o, bar) {
					eligible = append(eligible, o)
					break
				}
			}
		}
		for _, o := range eligible {
			e.executeLocked(ctx, o, l)
		}
	}
}

// orderDueLocked reports whether the order is considered for matching
// today. The reference behavior checks the exact order date only; an order
// that misses its day stays open but is never retried. GoodTilCanceled
// keeps it eligible on every later day instead.
func (e *Engine) orderDueLocked(o *types.Order) bool {
	if e.cfg.GoodTilCanceled {
		return !o.OrderDate.After(e.currentDate)
	}
	return o.OrderDate.Equal(e.currentDate)
}

// fillReached is the per-bar fill condition: a BUY fills when the bar
// close is at or under the limit, a SELL at or over it.
func fillReached(o *types.Order, bar types.Candle) bool {
	if o.Side == types.Buy {
		return bar.Close <= o.Price
	}
	return bar.Close >= o.Price
}

// executeLocked fills an eligible order at its limit price, applying the
// ledger fee. Insufficient cash or asset balance leaves the order open
// with no state change.
func (e *Engine) executeLocked(ctx context.Context, o *types.Order, l *Ledger) {
	price := o.Price
	asset := l.asset()
	fee := price * o.Qty * l.fee

	if o.Side == types.Buy {
		totalCost := price*o.Qty + fee
		if e.cash < totalCost {
			logger.Warn(ctx, "BUY skipped, insufficient cash",
				"symbol", l.symbol, "order_id", o.ID, "needed", totalCost, "available", e.cash)
			return
		}
		e.cash -= totalCost
		e.assets[asset] += o.Qty
	} else {
		if e.assets[asset] < o.Qty {
			logger.Warn(ctx, "SELL skipped, insufficient balance",
				"symbol", l.symbol, "order_id", o.ID, "needed", o.Qty, "available", e.assets[asset])
			return
		}
		e.cash += price*o.Qty - fee
		e.assets[asset] -= o.Qty
	}

	o.Executed = true
	o.ExecutionDate = e.currentDate
	o.ExecutionPrice = price
	l.removeOpen(o.ID)
	l.executed = append(l.executed, o)

	logger.Fill(ctx, l.symbol, string(o.Side), o.Qty, price, fee,
		"order_id", o.ID, "cash", e.cash, "asset_balance", e.assets[asset])
}

// loadRangeLocked loads bars for every day in [from, to] inclusive.
func (e *Engine) loadRangeLocked(ctx context.Context, l *Ledger, from, to time.Time) {
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		e.loadDayLocked(ctx, l, day)
	}
}

// loadDayLocked fetches one day of bars, substituting synthetic bars when
// the provider fails so the clock always has data to operate on. A day
// already in the history is not loaded twice.
func (e *Engine) loadDayLocked(ctx context.Context, l *Ledger, day time.Time) {
	if l.hasLoaded(day) {
		return
	}
	bars, err := e.src.DayBars(ctx, l.symbol, day)
	if err != nil {
		logger.ErrorWithErr(ctx, "Price load failed, using synthetic bars", err,
			"symbol", l.symbol, "day", day.Format("2006-01-02"))
		bars = syntheticDayBars(day)
	}
	l.appendBars(bars, day, e.startDate)
}

func (e *Engine) getOrCreateLedgerLocked(symbol string) *Ledger {
	l, ok := e.ledgers[symbol]
	if !ok {
		fee := e.cfg.DefaultFee
		if e.started {
			fee = e.gameFee
		}
		l = newLedger(symbol, fee)
		e.ledgers[symbol] = l
	}
	return l
}

// valuationLocked marks every holding at its ledger's last close and adds
// cash.
func (e *Engine) valuationLocked() float64 {
	total := e.cash
	for _, l := range e.ledgers {
		if bal := e.assets[l.asset()]; bal > 0 {
			total += bal * l.lastClose()
		}
	}
	return total
}

// --- accessors (defensive copies) ---

func (e *Engine) Player() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player
}

func (e *Engine) Started() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.started
}

func (e *Engine) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

func (e *Engine) CurrentDate() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentDate
}

func (e *Engine) InitialCash() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialCash
}

func (e *Engine) Cash() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cash
}

// AssetBalance returns the held quantity of one asset ticker (e.g. "BTC").
func (e *Engine) AssetBalance(asset string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.assets[asset]
}

// Balances returns a copy of all non-zero asset balances.
func (e *Engine) Balances() map[string]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]float64, len(e.assets))
	for k, v := range e.assets {
		out[k] = v
	}
	return out
}

func (e *Engine) ActiveSymbol() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeSymbol
}

// Symbols lists every symbol with a ledger.
func (e *Engine) Symbols() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.ledgers))
	for sym := range e.ledgers {
		out = append(out, sym)
	}
	return out
}

// OpenOrders returns copies of the symbol's open orders.
func (e *Engine) OpenOrders(symbol string) []types.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.ledgers[symbol]
	if !ok {
		return nil
	}
	return copyOrders(l.open)
}

// ExecutedOrders returns copies of the symbol's executed orders.
func (e *Engine) ExecutedOrders(symbol string) []types.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.ledgers[symbol]
	if !ok {
		return nil
	}
	return copyOrders(l.executed)
}

// History returns a copy of the symbol's trimmed price history, restricted
// to the game range.
func (e *Engine) History(symbol string) []types.Candle {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.ledgers[symbol]
	if !ok {
		return nil
	}
	return append([]types.Candle(nil), l.history...)
}

// FullHistory returns a copy including the indicator warm-up window.
func (e *Engine) FullHistory(symbol string) []types.Candle {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.ledgers[symbol]
	if !ok {
		return nil
	}
	return append([]types.Candle(nil), l.fullHistory...)
}

// Fee returns the symbol's trading fee fraction.
func (e *Engine) Fee(symbol string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l, ok := e.ledgers[symbol]; ok {
		return l.fee
	}
	return e.cfg.DefaultFee
}

// Valuation is cash plus every holding marked at its ledger's last close.
func (e *Engine) Valuation() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.valuationLocked()
}
