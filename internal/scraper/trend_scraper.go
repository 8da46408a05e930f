package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"skillpath/internal/config"
	"skillpath/internal/domain/trend"
	"skillpath/internal/pkg/logger"

	"github.com/gocolly/colly/v2"
)

var ErrNoSignals = errors.New("no trend signals found")

const maxHotSkills = 8

// TrendScraper collects hot skills from a tag index and an industry tag page,
// both rendered as static HTML with tag links under /t/<slug>.
type TrendScraper struct {
	baseURL string
	workers int
	rps     int
	delay   time.Duration
	log     *logger.Logger
}

func NewTrendScraper(cfg config.TrendsConfig, log *logger.Logger) *TrendScraper {
	return &TrendScraper{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.ScrapeBaseURL), "/"),
		workers: cfg.ScrapeWorkers,
		rps:     2,
		delay:   250 * time.Millisecond,
		log:     logger.OrNop(log),
	}
}

// Scrape returns a snapshot whose hot skills come from the site. Roles,
// certifications and growth are not published there and keep static values.
func (s *TrendScraper) Scrape(ctx context.Context, industry string) (trend.Trends, error) {
	if s == nil || s.baseURL == "" {
		return trend.Trends{}, fmt.Errorf("trend scraper: no base url")
	}

	pages := []string{s.baseURL + "/tags"}
	if slug := trend.Slug(industry); slug != "" {
		pages = append([]string{s.baseURL + "/t/" + slug}, pages...)
	}

	var mu sync.Mutex
	found := make(map[string][]string, len(pages))
	tasks := make([]Task, 0, len(pages))
	for _, page := range pages {
		page := page
		tasks = append(tasks, Task{Name: page, Run: func(ctx context.Context) error {
			tags, err := s.scrapeTags(ctx, page)
			if err != nil {
				return err
			}
			mu.Lock()
			found[page] = tags
			mu.Unlock()
			return nil
		}})
	}

	for _, r := range RunAll(ctx, s.workers, s.rps, tasks) {
		if r.Err != nil {
			s.log.Warn("trend page scrape failed", "url", r.Name, "error", r.Err)
		}
	}

	var ordered [][]string
	for _, page := range pages {
		ordered = append(ordered, found[page])
	}
	skills := mergeTags(maxHotSkills, ordered...)
	if len(skills) == 0 {
		return trend.Trends{}, ErrNoSignals
	}

	out := trend.Static()
	out.HotSkills = skills
	out.Source = trend.SourceScraped
	return out, nil
}

func (s *TrendScraper) scrapeTags(ctx context.Context, pageURL string) ([]string, error) {
	c := colly.NewCollector()
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: s.delay})

	c.OnRequest(func(r *colly.Request) {
		for k, v := range requestHeaders() {
			r.Headers.Set(k, v)
		}
	})

	tags := make([]string, 0)
	c.OnHTML(`a[href^="/t/"]`, func(e *colly.HTMLElement) {
		name := tagName(e.Text, e.Attr("href"))
		if name != "" {
			tags = append(tags, name)
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(pageURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return tags, nil
}

func requestHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "SkillPathTrends/0.1",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

// tagName prefers the link text and falls back to the slug in href.
func tagName(text, href string) string {
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "#"))
	if name == "" {
		name = strings.Trim(strings.TrimPrefix(href, "/t/"), "/")
	}
	return strings.Join(strings.Fields(name), " ")
}

func mergeTags(limit int, lists ...[]string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, limit)
	for _, l := range lists {
		for _, t := range l {
			k := strings.ToLower(t)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, t)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
