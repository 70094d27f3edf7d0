package ta

import (
	"math"

	"cryptopulse/internal/types"
)

// DefaultVolatility is assumed when the series is too short to measure.
const DefaultVolatility = 0.02

// Bands holds volatility bands around the last price. Upper and Lower are
// NaN when the series has fewer than two points.
type Bands struct {
	Volatility float64
	Upper      float64
	Lower      float64
}

// Returns computes simple returns over the series closes.
func Returns(series []types.PricePoint) []float64 {
	if len(series) < 2 {
		return nil
	}
	rs := make([]float64, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Price
		if prev == 0 {
			rs = append(rs, 0)
			continue
		}
		rs = append(rs, (series[i].Price-prev)/prev)
	}
	return rs
}

// VolatilityBands returns the stddev of simple returns and the bands around
// the last price.
func VolatilityBands(series []types.PricePoint) Bands {
	if len(series) < 2 {
		return Bands{Volatility: DefaultVolatility, Upper: math.NaN(), Lower: math.NaN()}
	}

	rs := Returns(series)
	mean := 0.0
	for _, r := range rs {
		mean += r
	}
	mean /= float64(len(rs))

	variance := 0.0
	for _, r := range rs {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(rs))
	vol := math.Sqrt(variance)

	last := series[len(series)-1].Price
	return Bands{
		Volatility: vol,
		Upper:      last * (1 + vol),
		Lower:      last * (1 - vol),
	}
}

// ATR averages the true range over the last period candles. The first
// candle's true range is high-low; later candles use the previous close.
// Returns 0 when the series is shorter than period.
func ATR(series []types.PricePoint, period int) float64 {
	if period <= 0 || len(series) < period {
		return 0
	}

	trs := make([]float64, len(series))
	for i, c := range series {
		if i == 0 {
			trs[i] = c.High - c.Low
			continue
		}
		prevClose := series[i-1].Price
		trs[i] = math.Max(c.High-c.Low,
			math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
	}

	sum := 0.0
	for _, tr := range trs[len(trs)-period:] {
		sum += tr
	}
	return sum / float64(period)
}

// VWAP is the volume-weighted average close over the series. NaN when the
// series is empty or carries no volume.
func VWAP(series []types.PricePoint) float64 {
	var pv, vol float64
	for _, c := range series {
		pv += c.Price * c.Volume
		vol += c.Volume
	}
	if vol == 0 {
		return math.NaN()
	}
	return pv / vol
}
