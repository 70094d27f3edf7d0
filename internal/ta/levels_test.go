package ta

import (
	"math"
	"testing"

	"cryptopulse/internal/types"
)

func TestFindLevelsEmptySeriesFallback(t *testing.T) {
	price := 250.0
	levels := FindLevels(price, nil, 5, 14)

	if levels.NearestSupport != price*0.98 {
		t.Fatalf("expected support %v, got %v", price*0.98, levels.NearestSupport)
	}
	if levels.NearestResistance != price*1.02 {
		t.Fatalf("expected resistance %v, got %v", price*1.02, levels.NearestResistance)
	}
	if !(levels.NearestSupport < price && price < levels.NearestResistance) {
		t.Fatalf("fallback levels must bracket price: %v < %v < %v",
			levels.NearestSupport, price, levels.NearestResistance)
	}
	if levels.ATR != 0 {
		t.Fatalf("expected zero ATR, got %v", levels.ATR)
	}
	if !math.IsNaN(levels.VWAP) {
		t.Fatalf("expected NaN VWAP, got %v", levels.VWAP)
	}
}

func TestFindLevelsBracketPriceWithoutSwings(t *testing.T) {
	// Monotonic series has no swing points; only vwap and percentage
	// candidates remain, and levels must still bracket the price.
	series := make([]types.PricePoint, 20)
	for i := range series {
		p := 100.0 + float64(i)
		series[i] = types.PricePoint{Price: p, High: p + 0.5, Low: p - 0.5, Volume: 10}
	}
	price := 119.0

	levels := FindLevels(price, series, 5, 14)
	if !(levels.NearestSupport < price && price < levels.NearestResistance) {
		t.Fatalf("levels must bracket price: %v < %v < %v",
			levels.NearestSupport, price, levels.NearestResistance)
	}
	if levels.ATR <= 0 {
		t.Fatalf("expected positive ATR, got %v", levels.ATR)
	}
	if math.IsNaN(levels.VWAP) {
		t.Fatalf("expected real VWAP with volume, got NaN")
	}
}

func TestFindLevelsUsesNearestSwings(t *testing.T) {
	// Flat series with one pronounced dip and one spike inside the window.
	series := make([]types.PricePoint, 25)
	for i := range series {
		series[i] = types.PricePoint{Price: 100, High: 100.5, Low: 99.5, Volume: 1}
	}
	series[10] = types.PricePoint{Price: 96, High: 96.5, Low: 95, Volume: 1}   // swing low at 95
	series[16] = types.PricePoint{Price: 104, High: 105, Low: 103.5, Volume: 1} // swing high at 105

	levels := FindLevels(100, series, 5, 14)

	// Swing low 95 equals the 0.95 floor; nearest support is the vwap band.
	if levels.NearestSupport <= 95 || levels.NearestSupport >= 100 {
		t.Fatalf("support out of range: %v", levels.NearestSupport)
	}
	if levels.NearestResistance <= 100 || levels.NearestResistance > 105 {
		t.Fatalf("resistance out of range: %v", levels.NearestResistance)
	}
}

func TestSwingPointsStrict(t *testing.T) {
	// A plateau is not a swing: equal highs on either side disqualify it.
	series := make([]types.PricePoint, 11)
	for i := range series {
		series[i] = types.PricePoint{High: 100, Low: 90}
	}
	highs, lows := swingPoints(series, 5)
	if len(highs) != 0 || len(lows) != 0 {
		t.Fatalf("flat series should have no swings, got %d highs %d lows", len(highs), len(lows))
	}

	series[5] = types.PricePoint{High: 110, Low: 80}
	highs, lows = swingPoints(series, 5)
	if len(highs) != 1 || highs[0] != 110 {
		t.Fatalf("expected single swing high 110, got %v", highs)
	}
	if len(lows) != 1 || lows[0] != 80 {
		t.Fatalf("expected single swing low 80, got %v", lows)
	}
}
