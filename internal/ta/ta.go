package ta

import (
	"math"

	"trading-sim/internal/types"
)

// RSIResult carries the RSI value together with a validity flag, so an
// insufficient-data default can never be mistaken for a computed value.
type RSIResult struct {
	Value float64
	Valid bool
}

// Bands are Bollinger Bands for the trailing window.
type Bands struct {
	Upper, Middle, Lower float64
}

// Cloud holds the Ichimoku component series, index-aligned to the input
// bars. Undefined positions are NaN and must be skipped, not read as zero.
type Cloud struct {
	Tenkan, Kijun, SenkouA, SenkouB, Chikou []float64
}

func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// RSI computes the Relative Strength Index over period close-to-close
// deltas. The averages are plain means over the first period deltas, not
// Wilder's smoothing. With fewer than period+1 bars it returns the neutral
// 50 flagged invalid; with no losses in the window it returns 100.
func RSI(bars []types.Candle, period int) RSIResult {
	if period <= 0 || len(bars) < period+1 {
		return RSIResult{Value: 50.0}
	}
	avgGain, avgLoss := 0.0, 0.0
	for i := 1; i <= period; i++ {
		d := bars[i].Close - bars[i-1].Close
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	if avgLoss == 0 {
		return RSIResult{Value: 100.0, Valid: true}
	}
	rs := avgGain / avgLoss
	return RSIResult{Value: 100.0 - 100.0/(1.0+rs), Valid: true}
}

// Bollinger computes bands over the trailing n closes. The deviation is the
// sample standard deviation (Bessel's correction), matching descriptive
// statistics conventions. With fewer than n bars all bands are zero.
func Bollinger(bars []types.Candle, n int, k float64) Bands {
	if n <= 0 || len(bars) < n {
		return Bands{}
	}
	mean := 0.0
	for i := len(bars) - n; i < len(bars); i++ {
		mean += bars[i].Close
	}
	mean /= float64(n)
	sd := 0.0
	if n > 1 {
		s := 0.0
		for i := len(bars) - n; i < len(bars); i++ {
			d := bars[i].Close - mean
			s += d * d
		}
		sd = math.Sqrt(s / float64(n-1))
	}
	return Bands{Upper: mean + k*sd, Middle: mean, Lower: mean - k*sd}
}

// ATR is the mean true range over the trailing period bars, 0 with
// insufficient data.
func ATR(bars []types.Candle, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 0
	}
	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		tr1 := bars[i].High - bars[i].Low
		tr2 := math.Abs(bars[i].High - prevClose)
		tr3 := math.Abs(bars[i].Low - prevClose)
		sum += math.Max(tr1, math.Max(tr2, tr3))
	}
	return sum / float64(period)
}

// ATRPercent is ATR as a percentage of the last close, 0 with insufficient
// data or a zero close.
func ATRPercent(bars []types.Candle, period int) float64 {
	if period <= 0 || len(bars) < period+1 {
		return 0
	}
	last := bars[len(bars)-1].Close
	if last == 0 {
		return 0
	}
	return ATR(bars, period) * 100.0 / last
}

// Ichimoku computes the five cloud series with the standard 9/26/52
// lookbacks. Senkou spans A and B are plotted 26 bars forward, the Chikou
// span 26 bars backward.
func Ichimoku(bars []types.Candle) Cloud {
	n := len(bars)
	cl := Cloud{
		Tenkan:  nans(n),
		Kijun:   nans(n),
		SenkouA: nans(n),
		SenkouB: nans(n),
		Chikou:  nans(n),
	}
	for i := 0; i < n; i++ {
		if i >= 8 {
			cl.Tenkan[i] = midRange(bars[i-8 : i+1])
		}
		if i >= 25 {
			cl.Kijun[i] = midRange(bars[i-25 : i+1])
		}
		if i+26 < n {
			cl.Chikou[i] = bars[i+26].Close
		}
	}
	for i := 25; i < n; i++ {
		if i+26 < n && !math.IsNaN(cl.Tenkan[i]) && !math.IsNaN(cl.Kijun[i]) {
			cl.SenkouA[i+26] = (cl.Tenkan[i] + cl.Kijun[i]) / 2.0
		}
	}
	for i := 51; i < n; i++ {
		if i+26 < n {
			cl.SenkouB[i+26] = midRange(bars[i-51 : i+1])
		}
	}
	return cl
}

// midRange is (max high + min low) / 2 over the given bars.
func midRange(bars []types.Candle) float64 {
	maxHigh := math.Inf(-1)
	minLow := math.Inf(1)
	for _, b := range bars {
		maxHigh = math.Max(maxHigh, b.High)
		minLow = math.Min(minLow, b.Low)
	}
	return (maxHigh + minLow) / 2.0
}

func nans(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
