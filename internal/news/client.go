package news

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"context"

	"golang.org/x/time/rate"

	"cryptopulse/internal/api"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/types"
)

// AlgoliaClient fetches crypto stories from the HN Algolia search API.
type AlgoliaClient struct {
	api      *api.Client
	sources  []string
	keywords []string
	limiter  *rate.Limiter
}

// NewAlgoliaClient creates a client over the configured search endpoints.
// Keywords gate relevance: a story must mention at least one to be kept.
func NewAlgoliaClient(sources, keywords []string) *AlgoliaClient {
	return &AlgoliaClient{
		api:      api.NewClient(api.WithTimeout(20*time.Second), api.WithLogging(true)),
		sources:  sources,
		keywords: keywords,
		// Algolia's public endpoint allows a generous rate, but the poll
		// loop hits several queries back to back.
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
	}
}

type searchHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	StoryText   string `json:"story_text"`
	CreatedAt   string `json:"created_at"`
	CreatedAtI  int64  `json:"created_at_i"`
	Points      *int   `json:"points"`
	NumComments *int   `json:"num_comments"`
}

type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

// FetchStories queries every configured source, deduplicates by story ID and
// keeps only keyword-relevant stories, up to limit. Individual source
// failures are logged and skipped; it is an error only when every source
// fails.
func (c *AlgoliaClient) FetchStories(ctx context.Context, limit int) ([]types.Story, error) {
	seen := map[string]struct{}{}
	stories := []types.Story{}
	okSources := 0

	for _, src := range c.sources {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.api.GET(ctx, src)
		if err != nil {
			logger.Warn(ctx, "News source fetch failed", "source", src, "error", err)
			continue
		}
		okSources++

		var payload searchResponse
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			logger.Warn(ctx, "News source returned malformed payload", "source", src, "error", err)
			continue
		}

		for _, hit := range payload.Hits {
			story := hit.toStory()
			if story.Title == "" {
				continue
			}
			if _, dup := seen[story.ID]; dup {
				continue
			}
			if !c.relevant(story) {
				continue
			}
			seen[story.ID] = struct{}{}
			stories = append(stories, story)
			if limit > 0 && len(stories) >= limit {
				logger.Info(ctx, "Story fetch complete", "stories", len(stories), "sources_ok", okSources)
				return stories, nil
			}
		}
	}

	if okSources == 0 {
		return nil, fmt.Errorf("all %d news sources failed", len(c.sources))
	}

	logger.Info(ctx, "Story fetch complete", "stories", len(stories), "sources_ok", okSources)
	return stories, nil
}

func (c *AlgoliaClient) relevant(story types.Story) bool {
	if len(c.keywords) == 0 {
		return true
	}
	content := strings.ToLower(story.Content())
	for _, kw := range c.keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func (h searchHit) toStory() types.Story {
	createdAt := time.Time{}
	if h.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, h.CreatedAt); err == nil {
			createdAt = t
		}
	}
	if createdAt.IsZero() && h.CreatedAtI > 0 {
		createdAt = time.Unix(h.CreatedAtI, 0).UTC()
	}

	points, comments := 0, 0
	if h.Points != nil {
		points = *h.Points
	}
	if h.NumComments != nil {
		comments = *h.NumComments
	}

	return types.Story{
		ID:          h.ObjectID,
		Title:       h.Title,
		URL:         h.URL,
		Source:      hostnameOf(h.URL),
		BodyText:    h.StoryText,
		CreatedAt:   createdAt,
		Points:      points,
		NumComments: comments,
	}
}

func hostnameOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
