package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopulse/internal/store"
	"cryptopulse/internal/types"
)

type fakeStories struct {
	stories []types.Story
	err     error
}

func (f *fakeStories) FetchStories(ctx context.Context, limit int) ([]types.Story, error) {
	return f.stories, f.err
}

type fakePrices struct {
	price    float64
	priceErr error
	candles  []types.PricePoint
	err      error
}

func (f *fakePrices) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	return f.price, f.priceErr
}

func (f *fakePrices) RecentCandles(ctx context.Context, symbol, timeframe string) ([]types.PricePoint, error) {
	return f.candles, f.err
}

func testConfig() *store.Config {
	cfg := &store.Config{
		PollSeconds: 120,
		Timeframe:   "24H",
		Assets: []types.Asset{
			{ID: "bitcoin", Symbol: "BTC", Keywords: []string{"bitcoin", "btc"}},
		},
	}
	cfg.News.MaxStories = 100
	cfg.Analysis.RecencyWindowHours = 24
	cfg.Analysis.RecentWeightBoost = 1.5
	cfg.Analysis.TopTopics = 5
	cfg.Analysis.TopicCountCap = 99
	cfg.Indicators.ATRPeriod = 14
	cfg.Indicators.SwingLookback = 5
	cfg.Indicators.RSIPeriod = 14
	cfg.Indicators.SMAWindow = 20
	cfg.Risk.ATRMultDefault = 2
	cfg.Risk.ATRMult24H = 2.5
	return cfg
}

func testCandles(n int) []types.PricePoint {
	series := make([]types.PricePoint, n)
	for i := range series {
		p := 100.0 + float64(i%2)
		series[i] = types.PricePoint{
			Ts:     int64(i),
			Price:  p,
			Open:   p,
			High:   p + 0.5,
			Low:    p - 0.5,
			Volume: 10,
		}
	}
	return series
}

func TestStepProducesReport(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	cfg := testConfig()
	stories := &fakeStories{stories: []types.Story{
		{ID: "1", Title: "bitcoin adoption surge continues", Points: 100, NumComments: 50, CreatedAt: time.Now()},
	}}
	prices := &fakePrices{price: 101.5, candles: testCandles(30)}

	eng := New(cfg, stories, prices)
	report, err := eng.Step(context.Background(), cfg.Assets[0])
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "bitcoin", report.AssetID)
	assert.Equal(t, "BTC", report.Symbol)
	assert.Equal(t, "24H", report.Timeframe)
	assert.Equal(t, 101.5, report.Price)
	assert.NotEmpty(t, report.Trend.Sentiments)
	assert.Positive(t, report.Trend.OverallSentiment)
	assert.Less(t, report.Levels.NearestSupport, report.Price)
	assert.Greater(t, report.Levels.NearestResistance, report.Price)
	assert.NotEmpty(t, report.Signal)
	assert.NotZero(t, report.Risk.StopLoss)
}

func TestStepDegradesWithoutStories(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	cfg := testConfig()
	stories := &fakeStories{err: errors.New("all sources down")}
	prices := &fakePrices{price: 101.5, candles: testCandles(30)}

	eng := New(cfg, stories, prices)
	report, err := eng.Step(context.Background(), cfg.Assets[0])
	require.NoError(t, err)

	assert.Empty(t, report.Trend.Sentiments)
	assert.Zero(t, report.Trend.OverallSentiment)
	assert.NotEmpty(t, report.Signal)
}

func TestStepFallsBackToLastClose(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	cfg := testConfig()
	stories := &fakeStories{}
	candles := testCandles(30)
	prices := &fakePrices{priceErr: errors.New("ticker down"), candles: candles}

	eng := New(cfg, stories, prices)
	report, err := eng.Step(context.Background(), cfg.Assets[0])
	require.NoError(t, err)

	assert.Equal(t, candles[len(candles)-1].Price, report.Price)
}

func TestStepFailsWithoutAnyPriceData(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	cfg := testConfig()
	stories := &fakeStories{}
	prices := &fakePrices{priceErr: errors.New("ticker down"), err: errors.New("klines down")}

	eng := New(cfg, stories, prices)
	report, err := eng.Step(context.Background(), cfg.Assets[0])
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestStepFiltersStoriesByAsset(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	cfg := testConfig()
	stories := &fakeStories{stories: []types.Story{
		{ID: "1", Title: "bitcoin rally extends", Points: 10, CreatedAt: time.Now()},
		{ID: "2", Title: "solana outage investigation", Points: 10, CreatedAt: time.Now()},
	}}
	prices := &fakePrices{price: 101.5, candles: testCandles(30)}

	eng := New(cfg, stories, prices)
	report, err := eng.Step(context.Background(), cfg.Assets[0])
	require.NoError(t, err)

	require.Len(t, report.Trend.Sentiments, 1)
	assert.Equal(t, "bitcoin rally extends", report.Trend.Sentiments[0].Title)
}
