package engine

import (
	"github.com/markcheno/go-talib"

	"cryptopulse/internal/types"
)

// signalEvaluator turns indicator values and the news trend into a discrete
// directional signal.
type signalEvaluator struct {
	rsiPeriod int
	smaWindow int
}

func newSignalEvaluator(rsiPeriod, smaWindow int) *signalEvaluator {
	return &signalEvaluator{rsiPeriod: rsiPeriod, smaWindow: smaWindow}
}

const (
	rsiOversold   = 30
	rsiOverbought = 70
	// Sentiment thresholds for strong directional calls and the weaker
	// SELL call, aligned with the POSITIVE/NEGATIVE label cutoffs.
	strongSentiment = 0.5
	weakSentiment   = 0.2
)

// evaluate derives the signal. Strong calls need news sentiment and the
// price trend to agree; RSI extremes are reported when sentiment is
// inconclusive. Insufficient candle data degrades to sentiment-only rules.
func (se *signalEvaluator) evaluate(series []types.PricePoint, price float64, trend types.TrendSummary) types.Signal {
	closes := make([]float64, len(series))
	for i, c := range series {
		closes[i] = c.Price
	}

	rsi := 50.0
	if len(closes) > se.rsiPeriod {
		if vals := talib.Rsi(closes, se.rsiPeriod); len(vals) > 0 {
			rsi = vals[len(vals)-1]
		}
	}

	aboveSMA := true
	if len(closes) >= se.smaWindow {
		if vals := talib.Sma(closes, se.smaWindow); len(vals) > 0 {
			aboveSMA = price > vals[len(vals)-1]
		}
	}

	sentiment := trend.OverallSentiment

	switch {
	case sentiment > strongSentiment && aboveSMA:
		return types.SignalStrongBuy
	case sentiment < -strongSentiment && !aboveSMA:
		return types.SignalStrongSell
	case rsi <= rsiOversold:
		return types.SignalOversold
	case rsi >= rsiOverbought:
		return types.SignalOverbought
	case sentiment < -weakSentiment:
		return types.SignalSell
	default:
		return types.SignalNeutral
	}
}
