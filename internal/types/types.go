package types

import "time"

// Story is a single news item as fetched from a news source. Immutable once
// fetched; identity is the ID. URL, Source, BodyText and NumComments may be
// missing upstream and default to their zero values.
type Story struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	BodyText    string    `json:"body_text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Points      int       `json:"points"`
	NumComments int       `json:"num_comments"`
}

// Content returns the text blob used for keyword matching and sentiment
// scoring: title plus URL plus body.
func (s Story) Content() string {
	return s.Title + " " + s.URL + " " + s.BodyText
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

// SentimentResult is the outcome of scoring one text blob.
// Score is typically in [-1, 1]; Confidence is 0-100.
type SentimentResult struct {
	Label      SentimentLabel `json:"label"`
	Score      float64        `json:"score"`
	Confidence int            `json:"confidence"`
}

// StorySentiment carries a story's sentiment plus its impact weight.
type StorySentiment struct {
	Title       string         `json:"title"`
	Label       SentimentLabel `json:"sentiment"`
	Score       float64        `json:"score"`
	Confidence  int            `json:"confidence"`
	ImpactScore float64        `json:"impact_score"`
}

// TopicCount is one trending keyword with its display count.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// TrendSummary aggregates a batch of stories. TrendingTopics is ordered by
// descending count, Sentiments by descending impact score.
type TrendSummary struct {
	TrendingTopics   []TopicCount     `json:"trending_topics"`
	OverallSentiment float64          `json:"overall_sentiment"`
	Sentiments       []StorySentiment `json:"sentiments"`
	Momentum         float64          `json:"momentum"`
}

// PricePoint is one OHLCV candle. Price is the close. A time-ordered,
// ascending slice of these per asset/timeframe forms a price series.
type PricePoint struct {
	Ts     int64   `json:"ts"`
	Price  float64 `json:"price"`
	Open   float64 `json:"open,omitempty"`
	High   float64 `json:"high,omitempty"`
	Low    float64 `json:"low,omitempty"`
	Volume float64 `json:"volume,omitempty"`
}

// TechnicalLevels is a per-series snapshot of derived levels. VWAP is NaN
// when the series carries no volume data; consumers must tolerate that.
type TechnicalLevels struct {
	NearestSupport    float64 `json:"nearest_support"`
	NearestResistance float64 `json:"nearest_resistance"`
	ATR               float64 `json:"atr"`
	VWAP              float64 `json:"vwap"`
}

type Signal string

const (
	SignalStrongBuy  Signal = "STRONG_BUY"
	SignalStrongSell Signal = "STRONG_SELL"
	SignalSell       Signal = "SELL"
	SignalNeutral    Signal = "NEUTRAL"
	SignalOversold   Signal = "OVERSOLD"
	SignalOverbought Signal = "OVERBOUGHT"
)

// PriceTargets are the three staged objectives for a signal.
type PriceTargets struct {
	Target1 float64 `json:"target1"`
	Target2 float64 `json:"target2"`
	Target3 float64 `json:"target3"`
}

type RiskPotential struct {
	Reward float64 `json:"reward"`
	Risk   float64 `json:"risk"`
}

type RiskReward struct {
	Ratio     string        `json:"ratio"`
	Potential RiskPotential `json:"potential"`
}

// RiskAnalysis is the stop-loss summary derived from a signal, the current
// price and the technical levels. Monetary fields are rounded to 2 decimals.
type RiskAnalysis struct {
	StopLoss     float64      `json:"stop_loss"`
	PriceTargets PriceTargets `json:"price_targets"`
	RiskReward   RiskReward   `json:"risk_reward"`
}

// Asset is one tracked cryptocurrency with the keywords that tag a story as
// belonging to it.
type Asset struct {
	ID       string   `json:"id" yaml:"id"`
	Symbol   string   `json:"symbol" yaml:"symbol"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// AnalysisReport is one full analysis pass for a single asset, marshaled as
// JSON for the presentation layer.
type AnalysisReport struct {
	ID        string          `json:"id"`
	AssetID   string          `json:"asset_id"`
	Symbol    string          `json:"symbol"`
	Timeframe string          `json:"timeframe"`
	Price     float64         `json:"price"`
	Trend     TrendSummary    `json:"trend"`
	Levels    TechnicalLevels `json:"levels"`
	Signal    Signal          `json:"signal"`
	Risk      RiskAnalysis    `json:"risk"`
	Time      int64           `json:"time"`
}
