package market

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"context"

	"golang.org/x/time/rate"

	"cryptopulse/internal/api"
	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/types"
)

const defaultBaseURL = "https://api.binance.com"

// BinanceClient fetches real-time prices and historical klines from the
// Binance public REST API. Symbols are quoted against USDT.
type BinanceClient struct {
	api     *api.Client
	limiter *rate.Limiter
}

var _ interfaces.PriceProvider = (*BinanceClient)(nil)

// NewBinanceClient creates a client. baseURL is overridable for tests.
func NewBinanceClient(baseURL string) *BinanceClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &BinanceClient{
		api: api.NewClient(
			api.WithBaseURL(baseURL),
			api.WithTimeout(15*time.Second),
			api.WithLogging(true),
		),
		// Public REST weight limits are per minute; stay far below them.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 5),
	}
}

type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// CurrentPrice returns the latest traded price for symbol (e.g. "BTC").
func (c *BinanceClient) CurrentPrice(ctx context.Context, symbol string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	resp, err := c.api.GET(ctx, fmt.Sprintf("/api/v3/ticker/price?symbol=%sUSDT", symbol))
	if err != nil {
		return 0, fmt.Errorf("ticker fetch for %s: %w", symbol, err)
	}

	var ticker tickerResponse
	if err := json.Unmarshal(resp.Body, &ticker); err != nil {
		return 0, fmt.Errorf("ticker decode for %s: %w", symbol, err)
	}

	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric ticker price %q for %s: %w", ticker.Price, symbol, err)
	}
	return price, nil
}

// TimeframeParams maps a dashboard timeframe to a kline interval and count.
func TimeframeParams(timeframe string) (interval string, limit int) {
	switch timeframe {
	case "1H":
		return "1m", 60
	case "24H":
		return "1h", 24
	case "7D":
		return "4h", 42
	case "30D":
		return "1d", 30
	default:
		return "1h", 24
	}
}

// RecentCandles fetches the kline series for the timeframe, oldest first.
// Malformed rows are skipped with a log rather than failing the batch.
func (c *BinanceClient) RecentCandles(ctx context.Context, symbol, timeframe string) ([]types.PricePoint, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	interval, limit := TimeframeParams(timeframe)
	url := fmt.Sprintf("/api/v3/klines?symbol=%sUSDT&interval=%s&limit=%d", symbol, interval, limit)

	// Klines back the whole analysis step, so retry transient failures.
	req := api.NewRequest("GET", url).WithContext(ctx)
	resp, err := c.api.DoWithRetry(req, nil)
	if err != nil {
		return nil, fmt.Errorf("klines fetch for %s: %w", symbol, err)
	}

	var raw [][]json.RawMessage
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, fmt.Errorf("klines decode for %s: %w", symbol, err)
	}

	candles := make([]types.PricePoint, 0, len(raw))
	for _, row := range raw {
		candle, err := parseKline(row)
		if err != nil {
			logger.Warn(ctx, "Skipping malformed kline", "symbol", symbol, "error", err)
			continue
		}
		candles = append(candles, candle)
	}
	return candles, nil
}

// parseKline decodes one Binance kline row:
// [openTime, open, high, low, close, volume, ...]
func parseKline(row []json.RawMessage) (types.PricePoint, error) {
	if len(row) < 6 {
		return types.PricePoint{}, fmt.Errorf("kline row has %d fields, want at least 6", len(row))
	}

	var openTime int64
	if err := json.Unmarshal(row[0], &openTime); err != nil {
		return types.PricePoint{}, fmt.Errorf("open time: %w", err)
	}

	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		var s string
		if err := json.Unmarshal(row[i], &s); err != nil {
			return types.PricePoint{}, fmt.Errorf("field %d: %w", i, err)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.PricePoint{}, fmt.Errorf("field %d %q: %w", i, s, err)
		}
		vals[i-1] = v
	}

	return types.PricePoint{
		Ts:     openTime,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Price:  vals[3],
		Volume: vals[4],
	}, nil
}
