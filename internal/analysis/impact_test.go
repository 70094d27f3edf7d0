package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cryptopulse/internal/types"
)

func TestImpactScoreMonotonicInPoints(t *testing.T) {
	s := NewImpactScorer(0)
	now := time.Now()
	created := now.Add(-2 * time.Hour)

	prev := -1.0
	for points := 0; points <= 200; points += 10 {
		story := types.Story{Points: points, NumComments: 25, CreatedAt: created}
		score := s.Score(story, now)
		assert.GreaterOrEqual(t, score, prev, "points=%d", points)
		prev = score
	}
}

func TestImpactScoreMonotonicInComments(t *testing.T) {
	s := NewImpactScorer(0)
	now := time.Now()
	created := now.Add(-2 * time.Hour)

	prev := -1.0
	for comments := 0; comments <= 200; comments += 10 {
		story := types.Story{Points: 50, NumComments: comments, CreatedAt: created}
		score := s.Score(story, now)
		assert.GreaterOrEqual(t, score, prev, "comments=%d", comments)
		prev = score
	}
}

func TestImpactScoreRecencyClampedAtZero(t *testing.T) {
	s := NewImpactScorer(0)
	now := time.Now()

	fresh := types.Story{Points: 10, NumComments: 10, CreatedAt: now}
	stale := types.Story{Points: 10, NumComments: 10, CreatedAt: now.Add(-48 * time.Hour)}
	ancient := types.Story{Points: 10, NumComments: 10, CreatedAt: now.Add(-400 * time.Hour)}

	assert.Greater(t, s.Score(fresh, now), s.Score(stale, now))
	// Past the window, recency bottoms out: no further decay.
	assert.Equal(t, s.Score(stale, now), s.Score(ancient, now))
}

func TestImpactScoreFormula(t *testing.T) {
	s := NewImpactScorer(24 * time.Hour)
	now := time.Now()

	// 12h old: recency 0.5. (100*0.4 + 50*0.3 + 0.5*0.3) * 100 = 5515.
	story := types.Story{Points: 100, NumComments: 50, CreatedAt: now.Add(-12 * time.Hour)}
	assert.InDelta(t, 5515.0, s.Score(story, now), 0.5)
}

func TestIsRecent(t *testing.T) {
	s := NewImpactScorer(24 * time.Hour)
	now := time.Now()

	assert.True(t, s.IsRecent(types.Story{CreatedAt: now.Add(-1 * time.Hour)}, now))
	assert.False(t, s.IsRecent(types.Story{CreatedAt: now.Add(-25 * time.Hour)}, now))
}
