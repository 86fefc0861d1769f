package services

import (
	"context"
	"regexp"
	"time"

	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
)

// botUARe matches the crawlers we do not want inflating visit counters.
var botUARe = regexp.MustCompile(`(?i)bot|crawl|spider|slurp|google|bing|yandex`)

// AnalyticsServiceRepository defines the repository methods needed by
// AnalyticsService
type AnalyticsServiceRepository interface {
	repository.AnalyticsRepository
	GetPlayer(ctx context.Context, id string) (*models.PlayerProfile, error)
}

// AnalyticsService records site visits and sponsor-link clicks
type AnalyticsService struct {
	log  logger.Logger
	repo AnalyticsServiceRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(log logger.Logger, repo AnalyticsServiceRepository) *AnalyticsService {
	return &AnalyticsService{log: log, repo: repo}
}

// LogVisit records one page visit unless the user agent looks like a crawler
func (s *AnalyticsService) LogVisit(ctx context.Context, userAgent string) error {
	if botUARe.MatchString(userAgent) {
		return nil
	}
	return s.repo.LogVisit(ctx)
}

// LogSponsorClick records one click on a player's sponsor link. Unknown
// player ids are still counted so old cached cards keep working.
func (s *AnalyticsService) LogSponsorClick(ctx context.Context, playerID, sponsorName string) error {
	playerName := playerID
	if player, err := s.repo.GetPlayer(ctx, playerID); err == nil {
		playerName = player.Name
	}
	return s.repo.LogSponsorClick(ctx, playerID, playerName, sponsorName)
}

// GetStats returns rolling visit counters plus per-sponsor click totals
func (s *AnalyticsService) GetStats(ctx context.Context) (*VisitStats, error) {
	now := time.Now()
	day, err := s.repo.CountVisitsSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	week, err := s.repo.CountVisitsSince(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, err
	}
	year, err := s.repo.CountVisitsSince(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountVisits(ctx)
	if err != nil {
		return nil, err
	}
	clicks, err := s.repo.ListSponsorClickCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &VisitStats{Day: day, Week: week, Year: year, Total: total, SponsorClicks: clicks}, nil
}
