package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cryptopulse/internal/types"
)

func TestLexiconScorerNoHitsIsNeutral(t *testing.T) {
	s := NewLexiconScorer()

	for _, text := range []string{
		"quarterly report published today",
		"exchange lists new token pair",
		"the and for that this with",
	} {
		res := s.Score(text)
		assert.Equal(t, types.SentimentNeutral, res.Label, "text: %q", text)
		assert.Zero(t, res.Score, "text: %q", text)
		assert.Zero(t, res.Confidence, "text: %q", text)
	}
}

func TestLexiconScorerEmptyText(t *testing.T) {
	s := NewLexiconScorer()

	res := s.Score("")
	assert.Equal(t, types.SentimentNeutral, res.Label)
	assert.Zero(t, res.Score)
	assert.Zero(t, res.Confidence)
}

func TestLexiconScorerBullish(t *testing.T) {
	s := NewLexiconScorer()

	res := s.Score("Bitcoin surge breakthrough")
	assert.Equal(t, types.SentimentPositive, res.Label)
	assert.Greater(t, res.Score, 0.2)
}

func TestLexiconScorerBearish(t *testing.T) {
	s := NewLexiconScorer()

	res := s.Score("exchange hack triggers crash and investigation")
	assert.Equal(t, types.SentimentNegative, res.Label)
	assert.Less(t, res.Score, -0.2)
}

func TestLexiconScorerMixedTermsCancel(t *testing.T) {
	s := NewLexiconScorer()

	// One bullish, one bearish hit: score 0, neutral.
	res := s.Score("rally stalls on regulation fears")
	assert.Equal(t, types.SentimentNeutral, res.Label)
	assert.Zero(t, res.Score)
	assert.Positive(t, res.Confidence)
}

func TestLexiconScorerExactTokenMatch(t *testing.T) {
	s := NewLexiconScorer()

	// "gains" and "surges" are not lexicon entries; only exact tokens count.
	res := s.Score("token gains as market surges")
	assert.Equal(t, types.SentimentNeutral, res.Label)
	assert.Zero(t, res.Score)
}

func TestLexiconScorerConfidenceCapped(t *testing.T) {
	s := NewLexiconScorer()

	res := s.Score("surge rally growth")
	assert.Equal(t, 100, res.Confidence)
}
