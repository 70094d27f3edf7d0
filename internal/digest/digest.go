package digest

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

// reportLine matches the JSON format written by the reportlog package.
type reportLine struct {
	Time      string
	ReportID  string
	Asset     string
	Symbol    string
	Signal    string
	Price     float64
	StopLoss  float64
	Sentiment float64
	Stories   int
}

// aggRow holds per-asset daily aggregates.
type aggRow struct {
	Asset        string
	Symbol       string
	Reports      int
	SentimentSum float64
	MinPrice     float64
	MaxPrice     float64
	LastSignal   string
	LastStopLoss float64
}

func logDir() string {
	if v := os.Getenv("PULSE_LOG_DIR"); v != "" {
		return v
	}
	return "logs"
}

func todaysReportFile(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), d+".txt")
}

func digestCSVPath(t time.Time) string {
	d := t.UTC().Format("2006-01-02")
	return filepath.Join(logDir(), "digest", d+".csv")
}

// SummarizeDay aggregates the day's report log into a per-asset CSV digest.
// Returns an empty path when there is nothing to summarize.
func SummarizeDay(t time.Time) (string, error) {
	inPath := todaysReportFile(t)
	if _, err := os.Stat(inPath); err != nil {
		return "", nil
	}
	f, err := os.Open(inPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	aggs := map[string]*aggRow{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rl reportLine
		if err := json.Unmarshal(sc.Bytes(), &rl); err != nil {
			continue
		}
		row := aggs[rl.Asset]
		if row == nil {
			row = &aggRow{Asset: rl.Asset, Symbol: rl.Symbol, MinPrice: rl.Price, MaxPrice: rl.Price}
			aggs[rl.Asset] = row
		}
		row.Reports++
		row.SentimentSum += rl.Sentiment
		if rl.Price < row.MinPrice {
			row.MinPrice = rl.Price
		}
		if rl.Price > row.MaxPrice {
			row.MaxPrice = rl.Price
		}
		row.LastSignal = rl.Signal
		row.LastStopLoss = rl.StopLoss
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if len(aggs) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(aggs))
	for k := range aggs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	outPath := digestCSVPath(t)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	defer w.Flush()
	headers := []string{"asset", "symbol", "reports", "avg_sentiment", "min_price", "max_price", "last_signal", "last_stop_loss"}
	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, k := range keys {
		r := aggs[k]
		avg := r.SentimentSum / float64(r.Reports)
		rec := []string{
			r.Asset,
			r.Symbol,
			strconv.Itoa(r.Reports),
			fmt.Sprintf("%.4f", avg),
			fmt.Sprintf("%.2f", r.MinPrice),
			fmt.Sprintf("%.2f", r.MaxPrice),
			r.LastSignal,
			fmt.Sprintf("%.2f", r.LastStopLoss),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	return outPath, nil
}

func SummarizeToday() (string, error) { return SummarizeDay(time.Now().UTC()) }

// ShouldRunNow reports whether the daily digest is due: past the cutoff and
// not yet written. Crypto markets have no close, so the cutoff is late UTC.
func ShouldRunNow() (bool, string) {
	now := time.Now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 23, 45, 0, 0, time.UTC)
	outPath := digestCSVPath(now)
	if now.After(cutoff) {
		if _, err := os.Stat(outPath); errors.Is(err, os.ErrNotExist) {
			return true, outPath
		}
	}
	return false, outPath
}
