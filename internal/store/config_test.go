package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const minimalConfig = `
timeframe: 24H
assets:
  - id: bitcoin
    symbol: BTC
    keywords: [bitcoin, btc]
news:
  sources:
    - https://hn.algolia.com/api/v1/search?query=crypto
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.PollSeconds != 120 {
		t.Fatalf("default poll_seconds = %d", cfg.PollSeconds)
	}
	if cfg.News.DisplayLimit != 12 {
		t.Fatalf("default display_limit = %d", cfg.News.DisplayLimit)
	}
	if cfg.Analysis.RecencyWindowHours != 24 {
		t.Fatalf("default recency window = %v", cfg.Analysis.RecencyWindowHours)
	}
	if cfg.Analysis.RecentWeightBoost != 1.5 {
		t.Fatalf("default recent boost = %v", cfg.Analysis.RecentWeightBoost)
	}
	if cfg.Indicators.ATRPeriod != 14 || cfg.Indicators.SwingLookback != 5 {
		t.Fatalf("default indicators = %+v", cfg.Indicators)
	}
	if cfg.Risk.ATRMultDefault != 2 || cfg.Risk.ATRMult24H != 2.5 {
		t.Fatalf("default risk multipliers = %+v", cfg.Risk)
	}
}

func TestLoadConfigParsesAssets(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(cfg.Assets))
	}
	a := cfg.Assets[0]
	if a.ID != "bitcoin" || a.Symbol != "BTC" || len(a.Keywords) != 2 {
		t.Fatalf("bad asset: %+v", a)
	}
}

func TestLoadConfigRejectsBadTimeframe(t *testing.T) {
	bad := `
timeframe: 3H
assets:
  - id: bitcoin
    symbol: BTC
news:
  sources: [https://example.com]
`
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for timeframe 3H")
	}
}

func TestLoadConfigRejectsEmptyAssets(t *testing.T) {
	bad := `
timeframe: 24H
news:
  sources: [https://example.com]
`
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for missing assets")
	}
}

func TestLoadConfigRejectsMissingSources(t *testing.T) {
	bad := `
timeframe: 24H
assets:
  - id: bitcoin
    symbol: BTC
`
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Fatal("expected validation error for missing news sources")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
