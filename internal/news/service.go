package news

import (
	"sync"
	"time"

	"context"

	"cryptopulse/internal/interfaces"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/types"
)

// Service provides cached story batches. One fetch per cache window serves
// every asset in the poll loop.
type Service struct {
	client  *AlgoliaClient
	scraper *Scraper
	cache   *storyCache
	cfg     *ServiceConfig
}

var _ interfaces.StoryProvider = (*Service)(nil)

// ServiceConfig configures the story service
type ServiceConfig struct {
	CacheDuration  time.Duration // how long a fetched batch stays fresh
	ScraperTimeout time.Duration // timeout for publisher scraping
	ScrapeFallback bool          // scrape publishers when the API yields nothing
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		CacheDuration:  5 * time.Minute,
		ScraperTimeout: 30 * time.Second,
		ScrapeFallback: true,
	}
}

// storyCache holds the last fetched batch with a TTL.
type storyCache struct {
	mu        sync.RWMutex
	stories   []types.Story
	timestamp time.Time
	ttl       time.Duration
}

func newStoryCache(ttl time.Duration) *storyCache {
	return &storyCache{ttl: ttl}
}

func (c *storyCache) get() ([]types.Story, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stories == nil || time.Since(c.timestamp) > c.ttl {
		return nil, false
	}
	return c.stories, true
}

func (c *storyCache) set(stories []types.Story) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stories = stories
	c.timestamp = time.Now()
}

func (c *storyCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stories = nil
}

// NewService creates a story service over the given client.
func NewService(client *AlgoliaClient, serviceCfg *ServiceConfig) *Service {
	if serviceCfg == nil {
		serviceCfg = DefaultServiceConfig()
	}

	return &Service{
		client:  client,
		scraper: NewScraper(serviceCfg.ScraperTimeout),
		cache:   newStoryCache(serviceCfg.CacheDuration),
		cfg:     serviceCfg,
	}
}

// FetchStories returns the cached batch when fresh, otherwise fetches from
// the search API, falling back to publisher scraping when configured and the
// API comes back empty.
func (s *Service) FetchStories(ctx context.Context, limit int) ([]types.Story, error) {
	if cached, ok := s.cache.get(); ok {
		logger.Debug(ctx, "Using cached story batch", "stories", len(cached))
		return cached, nil
	}

	stories, err := s.client.FetchStories(ctx, limit)
	if err != nil {
		logger.ErrorWithErr(ctx, "Story fetch failed", err)
		stories = nil
	}

	if len(stories) == 0 && s.cfg.ScrapeFallback {
		logger.Info(ctx, "No stories from search API, scraping publishers")
		scraped, serr := s.scraper.ScrapeStories(ctx, limit)
		if serr != nil {
			logger.ErrorWithErr(ctx, "Publisher scrape fallback failed", serr)
		} else {
			stories = scraped
		}
	}

	if len(stories) == 0 && err != nil {
		return nil, err
	}

	s.cache.set(stories)
	return stories, nil
}

// Refresh forces a fresh fetch on the next FetchStories call.
func (s *Service) Refresh() {
	s.cache.clear()
}
