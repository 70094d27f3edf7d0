package ta

import (
	"math"
	"testing"

	"cryptopulse/internal/types"
)

func closes(prices ...float64) []types.PricePoint {
	series := make([]types.PricePoint, len(prices))
	for i, p := range prices {
		series[i] = types.PricePoint{Price: p, High: p, Low: p}
	}
	return series
}

func TestVolatilityBandsShortSeries(t *testing.T) {
	for _, series := range [][]types.PricePoint{nil, closes(100)} {
		b := VolatilityBands(series)
		if b.Volatility != DefaultVolatility {
			t.Fatalf("expected default volatility %v, got %v", DefaultVolatility, b.Volatility)
		}
		if !math.IsNaN(b.Upper) || !math.IsNaN(b.Lower) {
			t.Fatalf("expected NaN bands for short series, got %v / %v", b.Upper, b.Lower)
		}
	}
}

func TestVolatilityBandsConstantSeries(t *testing.T) {
	b := VolatilityBands(closes(100, 100, 100, 100))
	if b.Volatility != 0 {
		t.Fatalf("constant series should have zero volatility, got %v", b.Volatility)
	}
	if b.Upper != 100 || b.Lower != 100 {
		t.Fatalf("bands should collapse to last price, got %v / %v", b.Upper, b.Lower)
	}
}

func TestVolatilityBandsBracketLastPrice(t *testing.T) {
	b := VolatilityBands(closes(100, 102, 99, 103, 101))
	if b.Volatility <= 0 {
		t.Fatalf("expected positive volatility, got %v", b.Volatility)
	}
	if !(b.Lower < 101 && 101 < b.Upper) {
		t.Fatalf("bands should bracket last price: %v < 101 < %v", b.Lower, b.Upper)
	}
}

func TestReturnsZeroPrevGuard(t *testing.T) {
	rs := Returns(closes(0, 100))
	if len(rs) != 1 || rs[0] != 0 {
		t.Fatalf("zero previous close should yield zero return, got %v", rs)
	}
}

func TestATRShortSeries(t *testing.T) {
	series := []types.PricePoint{
		{High: 10, Low: 9, Price: 9.5},
		{High: 11, Low: 10, Price: 10.5},
	}
	if got := ATR(series, 14); got != 0 {
		t.Fatalf("expected 0 for short series, got %v", got)
	}
}

func TestATRUsesPrevClose(t *testing.T) {
	// Second candle gaps above the first close: TR = high - prevClose.
	series := []types.PricePoint{
		{High: 10, Low: 9, Price: 9.5},  // TR = 1
		{High: 14, Low: 13, Price: 13.5}, // TR = max(1, 14-9.5, |13-9.5|) = 4.5
	}
	got := ATR(series, 2)
	want := (1.0 + 4.5) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected ATR %v, got %v", want, got)
	}
}

func TestVWAP(t *testing.T) {
	series := []types.PricePoint{
		{Price: 100, Volume: 1},
		{Price: 200, Volume: 3},
	}
	got := VWAP(series)
	want := (100.0 + 600.0) / 4.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected VWAP %v, got %v", want, got)
	}
}

func TestVWAPNoVolume(t *testing.T) {
	if got := VWAP(closes(100, 101)); !math.IsNaN(got) {
		t.Fatalf("expected NaN VWAP without volume, got %v", got)
	}
	if got := VWAP(nil); !math.IsNaN(got) {
		t.Fatalf("expected NaN VWAP for empty series, got %v", got)
	}
}
