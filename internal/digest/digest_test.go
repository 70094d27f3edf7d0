package digest

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"cryptopulse/internal/reportlog"
)

func TestSummarizeDayAggregatesPerAsset(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	entries := []reportlog.Entry{
		{ReportID: "r1", Asset: "bitcoin", Symbol: "BTC", Signal: "NEUTRAL", Price: 100, StopLoss: 96, Sentiment: 0.2, Stories: 3},
		{ReportID: "r2", Asset: "bitcoin", Symbol: "BTC", Signal: "STRONG_BUY", Price: 110, StopLoss: 101.2, Sentiment: 0.6, Stories: 5},
		{ReportID: "r3", Asset: "ethereum", Symbol: "ETH", Signal: "SELL", Price: 50, StopLoss: 52, Sentiment: -0.4, Stories: 2},
	}
	for _, e := range entries {
		if err := reportlog.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	path, err := SummarizeDay(time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("expected digest path")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 3 { // header + 2 assets
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	btc := rows[1]
	if btc[0] != "bitcoin" || btc[1] != "BTC" || btc[2] != "2" {
		t.Fatalf("bad bitcoin row: %v", btc)
	}
	if btc[3] != "0.4000" { // (0.2 + 0.6) / 2
		t.Fatalf("avg sentiment = %s", btc[3])
	}
	if btc[4] != "100.00" || btc[5] != "110.00" {
		t.Fatalf("price range = %s..%s", btc[4], btc[5])
	}
	if btc[6] != "STRONG_BUY" || btc[7] != "101.20" {
		t.Fatalf("last signal/stop = %s/%s", btc[6], btc[7])
	}

	eth := rows[2]
	if eth[0] != "ethereum" || eth[2] != "1" {
		t.Fatalf("bad ethereum row: %v", eth)
	}
}

func TestSummarizeDayNoReports(t *testing.T) {
	t.Setenv("PULSE_LOG_DIR", t.TempDir())

	path, err := SummarizeDay(time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Fatalf("expected empty path without reports, got %q", path)
	}
}
