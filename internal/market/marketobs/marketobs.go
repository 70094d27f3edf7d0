package marketobs

import (
	"context"
	"time"

	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/trace"
	"cryptopulse/internal/types"
)

// obsProvider wraps a PriceProvider with tracing and timing logs.
type obsProvider struct {
	inner interfaces.PriceProvider
}

// Wrap decorates a PriceProvider with observability.
func Wrap(inner interfaces.PriceProvider) interfaces.PriceProvider {
	return &obsProvider{inner: inner}
}

func (o *obsProvider) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, span := trace.StartSpan(ctx, "market.CurrentPrice")
	defer span.End()

	start := time.Now()
	price, err := o.inner.CurrentPrice(ctx, symbol)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Price fetch failed", err, "symbol", symbol)
		return 0, err
	}
	logger.InfoSkip(ctx, 1, "Price fetched",
		"symbol", symbol,
		"price", price,
		"duration_ms", time.Since(start).Milliseconds())
	return price, nil
}

func (o *obsProvider) RecentCandles(ctx context.Context, symbol, timeframe string) ([]types.PricePoint, error) {
	ctx, span := trace.StartSpan(ctx, "market.RecentCandles")
	defer span.End()

	start := time.Now()
	candles, err := o.inner.RecentCandles(ctx, symbol, timeframe)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Candle fetch failed", err,
			"symbol", symbol, "timeframe", timeframe)
		return nil, err
	}
	logger.InfoSkip(ctx, 1, "Candles fetched",
		"symbol", symbol,
		"timeframe", timeframe,
		"count", len(candles),
		"duration_ms", time.Since(start).Milliseconds())
	return candles, nil
}
