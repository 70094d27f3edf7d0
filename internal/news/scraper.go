package news

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"time"

	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"cryptopulse/internal/api"
	"cryptopulse/internal/logger"
	"cryptopulse/internal/types"
)

// Scraper pulls headlines directly from crypto news publishers. It backs up
// the search API: slower, no engagement metrics, but keeps the dashboard
// alive when the API yields nothing.
type Scraper struct {
	sources []ScrapeSource
	api     *api.Client
	timeout time.Duration
}

// ScrapeSource defines a publisher listing page and its CSS selectors.
type ScrapeSource struct {
	Name      string
	BaseURL   string
	ListPath  string
	Selectors ArticleSelectors
	RateLimit time.Duration
}

// ArticleSelectors defines CSS selectors for extracting article data.
type ArticleSelectors struct {
	ArticleContainer string
	Title            string
	URL              string
	Summary          string
}

// NewScraper creates a scraper with the default publisher set.
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultScrapeSources(),
		api:     api.NewClient(api.WithTimeout(timeout)),
		timeout: timeout,
	}
}

func defaultScrapeSources() []ScrapeSource {
	return []ScrapeSource{
		{
			Name:     "CoinDesk",
			BaseURL:  "https://www.coindesk.com",
			ListPath: "/markets",
			Selectors: ArticleSelectors{
				ArticleContainer: "div.article-card",
				Title:            "h2 a, h3 a",
				URL:              "h2 a, h3 a",
				Summary:          "p",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:     "Cointelegraph",
			BaseURL:  "https://cointelegraph.com",
			ListPath: "/tags/markets",
			Selectors: ArticleSelectors{
				ArticleContainer: "article",
				Title:            "a span",
				URL:              "a",
				Summary:          "p",
			},
			RateLimit: 2 * time.Second,
		},
		{
			Name:     "Decrypt",
			BaseURL:  "https://decrypt.co",
			ListPath: "/news",
			Selectors: ArticleSelectors{
				ArticleContainer: "article",
				Title:            "h3 a, h4 a",
				URL:              "h3 a, h4 a",
				Summary:          "p",
			},
			RateLimit: 2 * time.Second,
		},
	}
}

// ScrapeStories fetches headlines from all publishers, up to maxStories.
func (s *Scraper) ScrapeStories(ctx context.Context, maxStories int) ([]types.Story, error) {
	logger.Info(ctx, "Starting publisher scrape", "sources", len(s.sources))

	perSource := maxStories / len(s.sources)
	if perSource < 1 {
		perSource = 1
	}

	all := []types.Story{}
	for _, source := range s.sources {
		stories, err := s.scrapeSource(ctx, source, perSource)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape publisher", err, "source", source.Name)
			continue
		}
		all = append(all, stories...)

		time.Sleep(source.RateLimit)
	}

	logger.Info(ctx, "Publisher scrape completed", "stories", len(all))
	return all, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, source ScrapeSource, maxStories int) ([]types.Story, error) {
	stories := []types.Story{}
	fetchedAt := time.Now().UTC()

	c := colly.NewCollector(
		colly.AllowedDomains(domainOf(source.BaseURL)),
		colly.MaxDepth(1),
		colly.Async(false),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnHTML(source.Selectors.ArticleContainer, func(e *colly.HTMLElement) {
		if len(stories) >= maxStories {
			return
		}

		title := strings.TrimSpace(e.ChildText(source.Selectors.Title))
		if title == "" {
			return
		}

		articleURL := e.ChildAttr(source.Selectors.URL, "href")
		if articleURL == "" {
			return
		}
		if !strings.HasPrefix(articleURL, "http") {
			articleURL = source.BaseURL + articleURL
		}

		summary := strings.TrimSpace(e.ChildText(source.Selectors.Summary))

		// Scraped stories carry no engagement metrics; impact ranking then
		// rests on recency alone.
		stories = append(stories, types.Story{
			ID:        source.Name + ":" + articleURL,
			Title:     title,
			URL:       articleURL,
			Source:    source.Name,
			BodyText:  summary,
			CreatedAt: fetchedAt,
		})
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Scraping error", err, "source", source.Name, "url", r.Request.URL.String())
	})

	listURL := source.BaseURL + source.ListPath
	if err := c.Visit(listURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", listURL, err)
	}
	c.Wait()

	return s.enrichStories(ctx, stories), nil
}

// enrichStories fetches the article body for stories whose summary is too
// short for sentiment scoring to have anything to work with.
func (s *Scraper) enrichStories(ctx context.Context, stories []types.Story) []types.Story {
	enriched := make([]types.Story, len(stories))
	copy(enriched, stories)

	for i := range enriched {
		if len(enriched[i].BodyText) >= 100 {
			continue
		}
		if body := s.fetchArticleBody(ctx, enriched[i].URL); body != "" {
			enriched[i].BodyText = body
		}

		time.Sleep(500 * time.Millisecond)
	}

	return enriched
}

// fetchArticleBody pulls the article page and extracts paragraph text.
func (s *Scraper) fetchArticleBody(ctx context.Context, articleURL string) string {
	resp, err := s.api.GET(ctx, articleURL, map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	})
	if err != nil {
		logger.Debug(ctx, "Failed to fetch article body", "url", articleURL, "error", err)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return ""
	}

	paragraphs := []string{}
	doc.Find("article p, div.article-body p, div.post-content p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
