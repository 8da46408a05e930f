package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillpath/internal/domain/trend"
	"skillpath/internal/pkg/logger"

	"github.com/google/uuid"
)

const defaultSimulatedIndustry = "Technology"

type TrendUsecase interface {
	Simulate(ctx context.Context, industry string) (trend.Snapshot, error)
	Latest(ctx context.Context, industry string) (trend.Snapshot, error)
}

type Trends struct {
	trends  trend.Repository
	scraper TrendScraper
	logger  *logger.Logger
	now     func() time.Time
}

// NewTrendUsecase builds the trend usecase. A nil scraper records the
// built-in snapshot.
func NewTrendUsecase(trends trend.Repository, scraper TrendScraper, log *logger.Logger) *Trends {
	return &Trends{trends: trends, scraper: scraper, logger: logger.OrNop(log), now: time.Now}
}

func (u *Trends) Simulate(ctx context.Context, industry string) (trend.Snapshot, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		industry = defaultSimulatedIndustry
	}

	data := trend.Static()
	if u.scraper != nil {
		scraped, err := u.scraper.Scrape(ctx, industry)
		if err != nil {
			u.logger.Warn("trend scrape failed, using static snapshot", "industry", industry, "error", err)
		} else {
			data = scraped
		}
	}

	s, err := u.trends.Create(ctx, trend.Snapshot{
		ID:          uuid.New(),
		Industry:    industry,
		Trends:      data,
		GeneratedAt: u.now().UTC(),
	})
	if err != nil {
		return trend.Snapshot{}, fmt.Errorf("store trend snapshot: %w", err)
	}
	return s, nil
}

func (u *Trends) Latest(ctx context.Context, industry string) (trend.Snapshot, error) {
	if strings.TrimSpace(industry) == "" {
		return trend.Snapshot{}, fmt.Errorf("%w: industry is required", ErrInvalidInput)
	}
	s, err := u.trends.Latest(ctx, industry)
	if err != nil {
		if errors.Is(err, trend.ErrNotFound) {
			return trend.Snapshot{}, ErrTrendNotFound
		}
		return trend.Snapshot{}, fmt.Errorf("load trend snapshot: %w", err)
	}
	return s, nil
}
