package ta

import (
	"math"
	"sort"

	"cryptopulse/internal/types"
)

// swingPoints finds swing highs and lows: a candle whose high (low) is
// strictly above (below) every high (low) within lookback candles on both
// sides. Results are in series order.
func swingPoints(series []types.PricePoint, lookback int) (highs, lows []float64) {
	for i := lookback; i < len(series)-lookback; i++ {
		isHigh, isLow := true, true
		for j := i - lookback; j <= i+lookback; j++ {
			if j == i {
				continue
			}
			if series[j].High >= series[i].High {
				isHigh = false
			}
			if series[j].Low <= series[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			highs = append(highs, series[i].High)
		}
		if isLow {
			lows = append(lows, series[i].Low)
		}
	}
	return highs, lows
}

// FindLevels derives support/resistance, ATR and VWAP for the series around
// the current price. An empty series falls back to fixed bands around the
// price with a zero ATR and NaN VWAP.
func FindLevels(price float64, series []types.PricePoint, lookback, atrPeriod int) types.TechnicalLevels {
	if len(series) == 0 {
		return types.TechnicalLevels{
			NearestSupport:    price * 0.98,
			NearestResistance: price * 1.02,
			ATR:               0,
			VWAP:              math.NaN(),
		}
	}

	vwap := VWAP(series)
	swingHighs, swingLows := swingPoints(series, lookback)

	// Most recent three swings; lows sorted descending (closest below price
	// first), highs ascending.
	recentLows := lastN(swingLows, 3)
	sort.Sort(sort.Reverse(sort.Float64Slice(recentLows)))
	recentHighs := lastN(swingHighs, 3)
	sort.Float64s(recentHighs)

	supports := append([]float64{}, recentLows...)
	resistances := append([]float64{}, recentHighs...)
	if !math.IsNaN(vwap) {
		supports = append(supports, vwap*0.985)
		resistances = append(resistances, vwap*1.015)
	}
	supports = append(supports, price*0.95)
	resistances = append(resistances, price*1.05)

	nearestSupport := price * 0.95
	if below := filterBelow(supports, price); len(below) > 0 {
		nearestSupport = maxOf(below)
	}
	nearestResistance := price * 1.05
	if above := filterAbove(resistances, price); len(above) > 0 {
		nearestResistance = minOf(above)
	}

	return types.TechnicalLevels{
		NearestSupport:    nearestSupport,
		NearestResistance: nearestResistance,
		ATR:               ATR(series, atrPeriod),
		VWAP:              vwap,
	}
}

func lastN(vals []float64, n int) []float64 {
	if len(vals) <= n {
		return append([]float64{}, vals...)
	}
	return append([]float64{}, vals[len(vals)-n:]...)
}

func filterBelow(vals []float64, limit float64) []float64 {
	out := vals[:0:0]
	for _, v := range vals {
		if v < limit {
			out = append(out, v)
		}
	}
	return out
}

func filterAbove(vals []float64, limit float64) []float64 {
	out := vals[:0:0]
	for _, v := range vals {
		if v > limit {
			out = append(out, v)
		}
	}
	return out
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
