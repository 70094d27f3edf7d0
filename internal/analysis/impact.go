package analysis

import (
	"time"

	"cryptopulse/internal/types"
)

// ImpactScorer combines engagement metrics and recency into a per-story
// impact weight used for ranking. Higher means more market-relevant.
type ImpactScorer struct {
	// RecencyWindow is how far back a story still earns a recency boost.
	// Fixed at 24h by default; anything older contributes zero recency.
	RecencyWindow time.Duration
}

func NewImpactScorer(window time.Duration) *ImpactScorer {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &ImpactScorer{RecencyWindow: window}
}

// Score returns a non-negative impact weight. Monotonic non-decreasing in
// points and comments when recency is held fixed.
func (s *ImpactScorer) Score(story types.Story, now time.Time) float64 {
	recency := s.recencyScore(story.CreatedAt, now)
	return ((float64(story.Points) * 0.4) + (float64(story.NumComments) * 0.3) + (recency * 0.3)) * 100
}

// IsRecent reports whether the story falls inside the recency window.
func (s *ImpactScorer) IsRecent(story types.Story, now time.Time) bool {
	return story.CreatedAt.After(now.Add(-s.RecencyWindow))
}

func (s *ImpactScorer) recencyScore(createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	r := 1 - ageHours/s.RecencyWindow.Hours()
	if r < 0 {
		return 0
	}
	return r
}
