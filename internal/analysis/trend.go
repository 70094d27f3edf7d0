package analysis

import (
	"context"
	"sort"
	"strings"
	"time"

	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/types"
)

// Stopwords excluded from trending topic extraction.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
	"news": {},
}

// AggregatorConfig tunes trend aggregation.
type AggregatorConfig struct {
	TopTopics         int     // trending topics to keep
	TopicCountCap     int     // display cap per topic count
	RecentWeightBoost float64 // momentum multiplier for recent stories
}

func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		TopTopics:         5,
		TopicCountCap:     99,
		RecentWeightBoost: 1.5,
	}
}

type topicStat struct {
	count     int
	firstSeen int
}

// Aggregator runs the sentiment and impact scorers over a story batch and
// produces a TrendSummary.
type Aggregator struct {
	scorer interfaces.SentimentScorer
	impact *ImpactScorer
	cfg    AggregatorConfig
}

func NewAggregator(scorer interfaces.SentimentScorer, impact *ImpactScorer, cfg AggregatorConfig) *Aggregator {
	return &Aggregator{scorer: scorer, impact: impact, cfg: cfg}
}

// Aggregate computes the trend summary for a batch of stories. An empty
// batch yields a well-formed empty summary, never an error.
func (a *Aggregator) Aggregate(ctx context.Context, stories []types.Story, now time.Time) types.TrendSummary {
	summary := types.TrendSummary{
		TrendingTopics: []types.TopicCount{},
		Sentiments:     []types.StorySentiment{},
	}
	if len(stories) == 0 {
		return summary
	}

	topics := map[string]*topicStat{}
	tokenOrder := 0

	var totalWeight, weightedScore, momentum float64

	for _, story := range stories {
		content := strings.ToLower(story.Content())

		for _, word := range strings.Fields(content) {
			if len(word) <= 2 {
				continue
			}
			if _, ok := stopwords[word]; ok {
				continue
			}
			st, ok := topics[word]
			if !ok {
				st = &topicStat{firstSeen: tokenOrder}
				tokenOrder++
				topics[word] = st
			}
			st.count++
		}

		sentiment := a.scorer.Score(content)
		impactScore := a.impact.Score(story, now)

		summary.Sentiments = append(summary.Sentiments, types.StorySentiment{
			Title:       story.Title,
			Label:       sentiment.Label,
			Score:       sentiment.Score,
			Confidence:  sentiment.Confidence,
			ImpactScore: impactScore,
		})

		weight := impactScore / 100
		totalWeight += weight
		weightedScore += sentiment.Score * weight
		if a.impact.IsRecent(story, now) {
			momentum += sentiment.Score * weight * a.cfg.RecentWeightBoost
		}
	}

	if totalWeight > 0 {
		summary.OverallSentiment = weightedScore / totalWeight
		summary.Momentum = momentum / totalWeight
	}

	// Sentiments ranked by impact score.
	sort.SliceStable(summary.Sentiments, func(i, j int) bool {
		return summary.Sentiments[i].ImpactScore > summary.Sentiments[j].ImpactScore
	})

	summary.TrendingTopics = a.topTopics(topics)

	logger.Debug(ctx, "Trend aggregation complete",
		"stories", len(stories),
		"overall_sentiment", summary.OverallSentiment,
		"momentum", summary.Momentum,
		"topics", len(summary.TrendingTopics),
	)

	return summary
}

// topTopics picks the most frequent tokens, ties broken by first-seen order.
func (a *Aggregator) topTopics(topics map[string]*topicStat) []types.TopicCount {
	type entry struct {
		topic string
		stat  *topicStat
	}
	entries := make([]entry, 0, len(topics))
	for t, st := range topics {
		entries = append(entries, entry{topic: t, stat: st})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].stat.count != entries[j].stat.count {
			return entries[i].stat.count > entries[j].stat.count
		}
		return entries[i].stat.firstSeen < entries[j].stat.firstSeen
	})

	n := a.cfg.TopTopics
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]types.TopicCount, 0, n)
	for _, e := range entries[:n] {
		count := e.stat.count
		if count > a.cfg.TopicCountCap {
			count = a.cfg.TopicCountCap
		}
		out = append(out, types.TopicCount{Topic: e.topic, Count: count})
	}
	return out
}
