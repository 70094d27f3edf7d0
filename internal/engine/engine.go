package engine

import (
	"errors"
	"math"
	"time"

	"context"

	"github.com/google/uuid"

	"cryptopulse/internal/analysis"
	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/news"
	"cryptopulse/internal/reportlog"
	"cryptopulse/internal/store"
	"cryptopulse/internal/ta"
	"cryptopulse/internal/types"
)

// Engine runs one full analysis pass per asset: stories and prices in,
// AnalysisReport out. It holds no mutable market state; every Step works on
// a fresh snapshot of its inputs.
type Engine struct {
	cfg     *store.Config
	stories interfaces.StoryProvider
	prices  interfaces.PriceProvider
	agg     *analysis.Aggregator
	signals *signalEvaluator
	risk    *riskCalculator
}

func New(cfg *store.Config, stories interfaces.StoryProvider, prices interfaces.PriceProvider) *Engine {
	scorer := analysis.NewLexiconScorer()
	impact := analysis.NewImpactScorer(time.Duration(cfg.Analysis.RecencyWindowHours * float64(time.Hour)))
	aggCfg := analysis.AggregatorConfig{
		TopTopics:         cfg.Analysis.TopTopics,
		TopicCountCap:     cfg.Analysis.TopicCountCap,
		RecentWeightBoost: cfg.Analysis.RecentWeightBoost,
	}

	return &Engine{
		cfg:     cfg,
		stories: stories,
		prices:  prices,
		agg:     analysis.NewAggregator(scorer, impact, aggCfg),
		signals: newSignalEvaluator(cfg.Indicators.RSIPeriod, cfg.Indicators.SMAWindow),
		risk:    newRiskCalculator(cfg.Risk.ATRMultDefault, cfg.Risk.ATRMult24H),
	}
}

// Step analyzes a single asset. Missing stories or candles degrade to
// neutral/fallback results; only a total absence of price data is an error.
func (e *Engine) Step(ctx context.Context, asset types.Asset) (*types.AnalysisReport, error) {
	logger.Debug(ctx, "Starting analysis step", "asset", asset.ID, "symbol", asset.Symbol)

	stories, err := e.stories.FetchStories(ctx, e.cfg.News.MaxStories)
	if err != nil {
		logger.Warn(ctx, "Story fetch failed, continuing with empty batch", "asset", asset.ID, "error", err)
		stories = nil
	}
	assetStories := news.FilterByAsset(stories, asset)
	logger.Debug(ctx, "Stories selected", "asset", asset.ID, "fetched", len(stories), "matched", len(assetStories))

	candles, err := e.prices.RecentCandles(ctx, asset.Symbol, e.cfg.Timeframe)
	if err != nil {
		logger.Warn(ctx, "Candle fetch failed, falling back to default levels", "symbol", asset.Symbol, "error", err)
		candles = nil
	}

	price, err := e.prices.CurrentPrice(ctx, asset.Symbol)
	if err != nil {
		if len(candles) == 0 {
			logger.ErrorWithErr(ctx, "No price data available", err, "symbol", asset.Symbol)
			return nil, errors.New("no price data available")
		}
		price = candles[len(candles)-1].Price
		logger.Warn(ctx, "Real-time price unavailable, using last close", "symbol", asset.Symbol, "price", price)
	}

	now := time.Now()
	trend := e.agg.Aggregate(ctx, assetStories, now)
	logger.Sentiment(ctx, asset.ID, trend.OverallSentiment, len(assetStories), "momentum", trend.Momentum)

	levels := ta.FindLevels(price, candles, e.cfg.Indicators.SwingLookback, e.cfg.Indicators.ATRPeriod)
	bands := ta.VolatilityBands(candles)

	signal := e.signals.evaluate(candles, price, trend)
	logger.Signal(ctx, asset.Symbol, string(signal), price,
		"support", levels.NearestSupport,
		"resistance", levels.NearestResistance,
		"atr", levels.ATR,
		"volatility", bands.Volatility,
	)

	riskAnalysis := e.risk.calculate(signal, price, levels, bands.Volatility, e.cfg.Timeframe)
	if signal == types.SignalStrongBuy || signal == types.SignalStrongSell {
		logger.Risk(ctx, asset.Symbol, "STOP_LOSS_SET",
			"signal", string(signal),
			"stop_loss", riskAnalysis.StopLoss,
			"ratio", riskAnalysis.RiskReward.Ratio,
		)
	}

	// JSON cannot carry NaN; an undefined VWAP becomes the current price in
	// the report, matching the risk calculation.
	reportLevels := levels
	if math.IsNaN(reportLevels.VWAP) {
		reportLevels.VWAP = price
	}

	report := &types.AnalysisReport{
		ID:        uuid.NewString(),
		AssetID:   asset.ID,
		Symbol:    asset.Symbol,
		Timeframe: e.cfg.Timeframe,
		Price:     price,
		Trend:     trend,
		Levels:    reportLevels,
		Signal:    signal,
		Risk:      riskAnalysis,
		Time:      now.Unix(),
	}

	_ = reportlog.Append(reportlog.Entry{
		ReportID:  report.ID,
		Asset:     asset.ID,
		Symbol:    asset.Symbol,
		Signal:    string(signal),
		Price:     price,
		StopLoss:  riskAnalysis.StopLoss,
		Sentiment: trend.OverallSentiment,
		Stories:   len(assetStories),
	})

	return report, nil
}
