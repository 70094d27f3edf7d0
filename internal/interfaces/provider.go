package interfaces

import (
	"context"

	"cryptopulse/internal/types"
)

// StoryProvider fetches crypto-related news stories from an upstream source.
type StoryProvider interface {
	FetchStories(ctx context.Context, limit int) ([]types.Story, error)
}

// PriceProvider supplies real-time prices and historical candles.
type PriceProvider interface {
	CurrentPrice(ctx context.Context, symbol string) (float64, error)
	RecentCandles(ctx context.Context, symbol, timeframe string) ([]types.PricePoint, error)
}
