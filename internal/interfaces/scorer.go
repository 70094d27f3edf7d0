package interfaces

import "cryptopulse/internal/types"

// SentimentScorer scores a single text blob for bullish/bearish content.
// The default implementation is lexicon based; a model-backed scorer can be
// swapped in behind the same interface.
type SentimentScorer interface {
	Score(text string) types.SentimentResult
}
