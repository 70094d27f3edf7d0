package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"cryptopulse/internal/types"
)

// riskCalculator derives stop-loss, price targets and risk/reward from a
// signal, the current price and the technical levels.
type riskCalculator struct {
	atrMultDefault float64
	atrMult24H     float64
}

func newRiskCalculator(atrMultDefault, atrMult24H float64) *riskCalculator {
	return &riskCalculator{atrMultDefault: atrMultDefault, atrMult24H: atrMult24H}
}

// calculate never fails: a NaN VWAP is substituted with the current price so
// the default branch stays defined when the series carried no volume data.
func (rc *riskCalculator) calculate(signal types.Signal, price float64, levels types.TechnicalLevels, volatility float64, timeframe string) types.RiskAnalysis {
	support := levels.NearestSupport
	resistance := levels.NearestResistance
	atr := levels.ATR
	vwap := levels.VWAP
	if math.IsNaN(vwap) {
		vwap = price
	}

	priceRange := math.Abs(resistance - support)
	atrMult := rc.atrMultDefault
	if timeframe == "24H" {
		atrMult = rc.atrMult24H
	}

	var stopLoss float64
	var targets types.PriceTargets
	var rr types.RiskReward

	switch signal {
	case types.SignalStrongBuy:
		buffer := math.Max(atr*1.5, priceRange*0.1)
		stopLoss = math.Min(support-buffer, price-atr*atrMult)
		targets = types.PriceTargets{
			Target1: price + atr*2,
			Target2: resistance + priceRange*0.5,
			Target3: resistance + priceRange,
		}
		rr = types.RiskReward{
			Ratio: "1:3",
			Potential: types.RiskPotential{
				Reward: targets.Target2 - price,
				Risk:   price - stopLoss,
			},
		}

	case types.SignalStrongSell:
		buffer := math.Max(atr*1.5, priceRange*0.1)
		stopLoss = math.Max(resistance+buffer, price+atr*atrMult)
		targets = types.PriceTargets{
			Target1: price - atr*2,
			Target2: support - priceRange*0.5,
			Target3: support - priceRange,
		}
		rr = types.RiskReward{
			Ratio: "1:3",
			Potential: types.RiskPotential{
				Reward: price - targets.Target2,
				Risk:   stopLoss - price,
			},
		}

	default:
		volatilityStop := price * (1 - volatility*2)
		stopLoss = math.Max(volatilityStop, support-atr*1.5)
		targets = types.PriceTargets{
			Target1: price + atr*1.5,
			Target2: vwap + priceRange*0.3,
			Target3: resistance,
		}
		rr = types.RiskReward{
			Ratio: "1:2",
			Potential: types.RiskPotential{
				Reward: priceRange * 0.8,
				Risk:   price - stopLoss,
			},
		}
	}

	return types.RiskAnalysis{
		StopLoss: round2(stopLoss),
		PriceTargets: types.PriceTargets{
			Target1: round2(targets.Target1),
			Target2: round2(targets.Target2),
			Target3: round2(targets.Target3),
		},
		RiskReward: types.RiskReward{
			Ratio: rr.Ratio,
			Potential: types.RiskPotential{
				Reward: round2(rr.Potential.Reward),
				Risk:   round2(rr.Potential.Risk),
			},
		},
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
