// Package news generates market-news blurbs for the simulation: canned
// templates by default, real scraped headlines mixed in when reachable,
// and an optional OpenAI-backed generator.
package news

import (
	"context"
	"math/rand"
	"time"

	"trading-sim/internal/interfaces"
	"trading-sim/internal/logger"
)

// Service is the template-based generator.
type Service struct {
	rng     *rand.Rand
	scraper *Scraper
}

var _ interfaces.NewsGenerator = (*Service)(nil)

// NewService creates a generator seeded from the clock. A non-nil scraper
// contributes real headlines when its sources are reachable.
func NewService(scraper *Scraper) *Service {
	return &Service{
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		scraper: scraper,
	}
}

// NewServiceWithSeed is NewService with a fixed seed.
func NewServiceWithSeed(seed int64, scraper *Scraper) *Service {
	return &Service{
		rng:     rand.New(rand.NewSource(seed)),
		scraper: scraper,
	}
}

// Random returns a news blurb: a random template plus a sentiment line.
func (s *Service) Random() string {
	base := newsTemplates[s.rng.Intn(len(newsTemplates))]
	sentiment := marketSentiments[s.rng.Intn(len(marketSentiments))]
	return base + "\n\n" + sentiment
}

// MarketUpdate prefixes Random with a market-update header.
func (s *Service) MarketUpdate() string {
	return "Market Update: " + s.Random()
}

// TechnicalAnalysis returns a random technical-analysis note.
func (s *Service) TechnicalAnalysis() string {
	return "Technical Analysis: " + technicalNotes[s.rng.Intn(len(technicalNotes))]
}

// Generate produces the day's blurb. When a scraper is configured and a
// headline is available, it leads the blurb; failures fall back to the
// pure template output.
func (s *Service) Generate(ctx context.Context, day time.Time) (string, error) {
	body := s.Random()
	if s.scraper != nil {
		headlines, err := s.scraper.Headlines(ctx, 3)
		if err != nil {
			logger.Warn(ctx, "Headline scrape failed, using templates only", "error", err)
		} else if len(headlines) > 0 {
			body = "In the news: " + headlines[s.rng.Intn(len(headlines))] + "\n\n" + body
		}
	}
	return body, nil
}
