package analysis

import (
	"math"
	"strings"

	"cryptopulse/internal/types"
)

// Market indicator lexicons. Matching is exact per whitespace token, not
// substring, so "gains" does not count as "gain".
var bullishTerms = map[string]struct{}{
	"surge": {}, "rally": {}, "breakthrough": {}, "adoption": {},
	"partnership": {}, "growth": {}, "launch": {}, "upgrade": {},
	"innovation": {}, "success": {}, "bullish": {}, "gain": {},
	"support": {}, "potential": {}, "opportunity": {}, "expand": {},
	"develop": {}, "integrate": {},
}

var bearishTerms = map[string]struct{}{
	"crash": {}, "decline": {}, "sell": {}, "bearish": {}, "risk": {},
	"concern": {}, "drop": {}, "vulnerability": {}, "hack": {}, "scam": {},
	"regulation": {}, "ban": {}, "issue": {}, "problem": {}, "delay": {},
	"suspend": {}, "halt": {}, "investigation": {},
}

// LexiconScorer scores text by counting bullish and bearish lexicon hits.
type LexiconScorer struct{}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

// Score tokenizes the text on whitespace (case-folded) and returns the
// sentiment. Empty text yields a neutral result with zero confidence.
func (s *LexiconScorer) Score(text string) types.SentimentResult {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return types.SentimentResult{Label: types.SentimentNeutral}
	}

	bullish, bearish := 0, 0
	for _, w := range words {
		if _, ok := bullishTerms[w]; ok {
			bullish++
		}
		if _, ok := bearishTerms[w]; ok {
			bearish++
		}
	}

	hits := bullish + bearish
	denom := hits
	if denom == 0 {
		denom = 1
	}
	score := float64(bullish-bearish) / float64(denom)

	label := types.SentimentNeutral
	if score > 0.2 {
		label = types.SentimentPositive
	} else if score < -0.2 {
		label = types.SentimentNegative
	}

	// Confidence is keyword density scaled up for display, capped at 100.
	confidence := int(math.Round(float64(hits) / float64(len(words)) * 300))
	if confidence > 100 {
		confidence = 100
	}

	return types.SentimentResult{Label: label, Score: score, Confidence: confidence}
}
