package news

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"trading-sim/internal/logger"
)

// Scraper pulls crypto headlines from public news sites. Results are
// cached for the TTL so the simulation never hammers the sources while
// stepping days.
type Scraper struct {
	sources []headlineSource
	timeout time.Duration

	mu        sync.Mutex
	cached    []string
	fetchedAt time.Time
	ttl       time.Duration
}

type headlineSource struct {
	Name     string
	URL      string
	Selector string
}

func defaultSources() []headlineSource {
	return []headlineSource{
		{
			Name:     "CoinDesk",
			URL:      "https://www.coindesk.com/markets/",
			Selector: "h2 a, h3 a",
		},
		{
			Name:     "Cointelegraph",
			URL:      "https://cointelegraph.com/tags/bitcoin",
			Selector: "article a span",
		},
	}
}

// NewScraper creates a headline scraper with the default sources.
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
		ttl:     1 * time.Hour,
	}
}

// Headlines returns up to max recent headlines, served from cache when
// fresh.
func (s *Scraper) Headlines(ctx context.Context, max int) ([]string, error) {
	s.mu.Lock()
	if time.Since(s.fetchedAt) < s.ttl && len(s.cached) > 0 {
		out := capped(s.cached, max)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	headlines, err := s.scrape(ctx, max)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = headlines
	s.fetchedAt = time.Now()
	s.mu.Unlock()
	return headlines, nil
}

func (s *Scraper) scrape(ctx context.Context, max int) ([]string, error) {
	var (
		mu        sync.Mutex
		headlines []string
		lastErr   error
	)

	for _, src := range s.sources {
		c := colly.NewCollector(colly.MaxDepth(1))
		c.SetRequestTimeout(s.timeout)

		c.OnHTML(src.Selector, func(e *colly.HTMLElement) {
			title := headlineText(e.DOM)
			if title == "" {
				return
			}
			mu.Lock()
			if len(headlines) < max {
				headlines = append(headlines, title)
			}
			mu.Unlock()
		})
		c.OnError(func(_ *colly.Response, err error) {
			lastErr = err
		})

		if err := c.Visit(src.URL); err != nil {
			logger.Warn(ctx, "Headline source unreachable", "source", src.Name, "error", err)
			lastErr = err
			continue
		}
		c.Wait()

		mu.Lock()
		enough := len(headlines) >= max
		mu.Unlock()
		if enough {
			break
		}
	}

	if len(headlines) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return headlines, nil
}

// headlineText extracts and normalizes the headline from a matched node.
func headlineText(sel *goquery.Selection) string {
	title := strings.TrimSpace(sel.Text())
	title = strings.Join(strings.Fields(title), " ")
	if len(title) < 20 {
		// Nav links and section labels match the same selectors.
		return ""
	}
	return title
}

func capped(in []string, max int) []string {
	if len(in) <= max {
		return append([]string(nil), in...)
	}
	return append([]string(nil), in[:max]...)
}
