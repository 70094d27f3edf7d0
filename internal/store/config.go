package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cryptopulse/internal/types"
)

type Config struct {
	PollSeconds int    `yaml:"poll_seconds"`
	Timeframe   string `yaml:"timeframe"` // 1H, 24H, 7D or 30D

	Assets []types.Asset `yaml:"assets"`

	News struct {
		Sources        []string `yaml:"sources"`         // HN Algolia search endpoints
		Keywords       []string `yaml:"keywords"`        // relevance filter for fetched stories
		MaxStories     int      `yaml:"max_stories"`     // per fetch, after relevance filter
		DisplayLimit   int      `yaml:"display_limit"`   // cap for filtered/sorted story lists
		CacheMinutes   int      `yaml:"cache_minutes"`   // trend summary cache TTL
		ScrapeFallback bool     `yaml:"scrape_fallback"` // scrape publisher sites when the API yields nothing
	} `yaml:"news"`

	Analysis struct {
		RecencyWindowHours float64 `yaml:"recency_window_hours"` // impact recency window
		RecentWeightBoost  float64 `yaml:"recent_weight_boost"`  // momentum multiplier for recent stories
		TopTopics          int     `yaml:"top_topics"`
		TopicCountCap      int     `yaml:"topic_count_cap"`
	} `yaml:"analysis"`

	Indicators struct {
		ATRPeriod     int `yaml:"atr_period"`
		SwingLookback int `yaml:"swing_lookback"`
		RSIPeriod     int `yaml:"rsi_period"`
		SMAWindow     int `yaml:"sma_window"`
	} `yaml:"indicators"`

	Risk struct {
		ATRMultDefault float64 `yaml:"atr_mult_default"`
		ATRMult24H     float64 `yaml:"atr_mult_24h"`
	} `yaml:"risk"`
}

func (c *Config) Validate() error {
	switch c.Timeframe {
	case "1H", "24H", "7D", "30D":
	default:
		return fmt.Errorf("invalid timeframe '%s': must be one of 1H, 24H, 7D, 30D", c.Timeframe)
	}
	if len(c.Assets) == 0 {
		return errors.New("assets cannot be empty")
	}
	for _, a := range c.Assets {
		if a.ID == "" || a.Symbol == "" {
			return fmt.Errorf("asset %+v: id and symbol are required", a)
		}
	}
	if len(c.News.Sources) == 0 {
		return errors.New("news.sources cannot be empty")
	}
	if c.Analysis.RecencyWindowHours <= 0 {
		return fmt.Errorf("analysis.recency_window_hours must be positive, got %.1f", c.Analysis.RecencyWindowHours)
	}
	if c.Risk.ATRMultDefault <= 0 || c.Risk.ATRMult24H <= 0 {
		return errors.New("risk ATR multipliers must be positive")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.PollSeconds == 0 {
		c.PollSeconds = 120
	}
	if c.Timeframe == "" {
		c.Timeframe = "24H"
	}
	if c.News.MaxStories == 0 {
		c.News.MaxStories = 100
	}
	if c.News.DisplayLimit == 0 {
		c.News.DisplayLimit = 12
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 5
	}
	if c.Analysis.RecencyWindowHours == 0 {
		c.Analysis.RecencyWindowHours = 24
	}
	if c.Analysis.RecentWeightBoost == 0 {
		c.Analysis.RecentWeightBoost = 1.5
	}
	if c.Analysis.TopTopics == 0 {
		c.Analysis.TopTopics = 5
	}
	if c.Analysis.TopicCountCap == 0 {
		c.Analysis.TopicCountCap = 99
	}
	if c.Indicators.ATRPeriod == 0 {
		c.Indicators.ATRPeriod = 14
	}
	if c.Indicators.SwingLookback == 0 {
		c.Indicators.SwingLookback = 5
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Indicators.SMAWindow == 0 {
		c.Indicators.SMAWindow = 20
	}
	if c.Risk.ATRMultDefault == 0 {
		c.Risk.ATRMultDefault = 2
	}
	if c.Risk.ATRMult24H == 0 {
		c.Risk.ATRMult24H = 2.5
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
