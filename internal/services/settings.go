package services

import (
	"context"
	"encoding/json"

	"github.com/dartbrigade/dartrank/internal/errors"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
	"github.com/dartbrigade/dartrank/internal/scoring"
)

// Settings keys in the app_settings table
const (
	settingBaseURL       = "base_url"
	settingBackgroundURL = "background_url"
	settingSponsorship   = "sponsorship"
)

// SettingsService resolves scoring and league configuration: build-time
// defaults merged with persisted overrides.
type SettingsService struct {
	log         logger.Logger
	repo        repository.ConfigRepository
	invalidator Invalidator
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.ConfigRepository) *SettingsService {
	return &SettingsService{log: log, repo: repo}
}

// SetInvalidator sets the ranking-cache invalidation hook
func (s *SettingsService) SetInvalidator(inv Invalidator) {
	s.invalidator = inv
}

func (s *SettingsService) invalidate() {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
}

// GetScoringSettings resolves the scoring configuration for one league:
// the stored override (if any) merged field-wise over the defaults.
func (s *SettingsService) GetScoringSettings(ctx context.Context, league models.LeagueID) (models.ScoringSettings, error) {
	if !models.ValidLeagueID(league) {
		return models.ScoringSettings{}, errors.InvalidInputf("unknown league %q", league)
	}

	override, err := s.repo.GetScoringOverride(ctx, league)
	if err != nil && err != repository.ErrNotFound {
		return models.ScoringSettings{}, err
	}
	merged, err := scoring.ResolveSettings(league, override)
	if err != nil {
		// A corrupt override should not take the leaderboard down; fall
		// back to the defaults and leave a trace for the admin.
		s.log.Error("Corrupt scoring override, using defaults", "league", league, "error", err)
		return scoring.DefaultSettings(league), nil
	}
	return merged, nil
}

// GetAllScoringSettings resolves the scoring configuration for every league
func (s *SettingsService) GetAllScoringSettings(ctx context.Context) (map[models.LeagueID]models.ScoringSettings, error) {
	overrides, err := s.repo.ListScoringOverrides(ctx)
	if err != nil {
		return nil, err
	}

	all := make(map[models.LeagueID]models.ScoringSettings, len(models.AllLeagueIDs))
	for _, league := range models.AllLeagueIDs {
		merged, err := scoring.ResolveSettings(league, overrides[league])
		if err != nil {
			s.log.Error("Corrupt scoring override, using defaults", "league", league, "error", err)
			merged = scoring.DefaultSettings(league)
		}
		all[league] = merged
	}
	return all, nil
}

// UpdateScoringSettings validates and stores a league's scoring
// configuration, then invalidates all cached rankings.
func (s *SettingsService) UpdateScoringSettings(ctx context.Context, league models.LeagueID, settings models.ScoringSettings) error {
	if !models.ValidLeagueID(league) {
		return errors.InvalidInputf("unknown league %q", league)
	}
	if err := validateScoringSettings(settings); err != nil {
		return err
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := s.repo.SetScoringOverride(ctx, league, data); err != nil {
		return err
	}

	s.log.Info("Scoring settings updated", "league", league)
	s.invalidate()
	return nil
}

func validateScoringSettings(settings models.ScoringSettings) error {
	nonNegative := map[string]int{
		"points_for_1st":       settings.PointsFor1st,
		"points_for_2nd":       settings.PointsFor2nd,
		"points_for_3rd_4th":   settings.PointsFor3rd4th,
		"points_for_5th_8th":   settings.PointsFor5th8th,
		"points_for_9th_16th":  settings.PointsFor9th16th,
		"participation_points": settings.ParticipationPoints,
		"bonus_per_180":        settings.BonusPer180,
		"hi_out_threshold":     settings.HiOutThreshold,
		"hi_out_bonus":         settings.HiOutBonus,
		"avg_bonus":            settings.AvgBonus,
		"short_leg_threshold":  settings.ShortLegThreshold,
		"short_leg_bonus":      settings.ShortLegBonus,
		"bonus_for_9_darter":   settings.BonusFor9Darter,
	}
	for field, value := range nonNegative {
		if value < 0 {
			return errors.Validationf("%s must not be negative", field)
		}
	}
	if settings.AvgThreshold < 0 {
		return errors.Validation("avg_threshold must not be negative")
	}
	return nil
}

// GetLeagueSettings returns the metadata for every league, stored
// overrides merged over the defaults.
func (s *SettingsService) GetLeagueSettings(ctx context.Context) (map[models.LeagueID]models.League, error) {
	overrides, err := s.repo.ListLeagueOverrides(ctx)
	if err != nil {
		return nil, err
	}

	leagues := make(map[models.LeagueID]models.League, len(models.AllLeagueIDs))
	for _, id := range models.AllLeagueIDs {
		if override, ok := overrides[id]; ok {
			leagues[id] = override
		} else {
			leagues[id] = scoring.DefaultLeague(id)
		}
	}
	return leagues, nil
}

// GetEnabledLeagues returns the leagues visible on the public site, in
// display order. The general ranking is always first and always present:
// it is the union scope, not a filter, so its enabled flag only controls
// whether it is listed prominently, never whether it resolves.
func (s *SettingsService) GetEnabledLeagues(ctx context.Context) ([]models.League, error) {
	all, err := s.GetLeagueSettings(ctx)
	if err != nil {
		return nil, err
	}

	var enabled []models.League
	for _, id := range models.AllLeagueIDs {
		league := all[id]
		if id == models.LeagueGeneral || league.Enabled {
			enabled = append(enabled, league)
		}
	}
	return enabled, nil
}

// UpdateLeagueSettings stores league metadata overrides and invalidates
// all cached rankings.
func (s *SettingsService) UpdateLeagueSettings(ctx context.Context, leagues []models.League) error {
	for _, league := range leagues {
		if !models.ValidLeagueID(league.ID) {
			return errors.InvalidInputf("unknown league %q", league.ID)
		}
		if league.Name == "" {
			return errors.Validationf("league %q needs a display name", league.ID)
		}
	}
	for _, league := range leagues {
		if err := s.repo.SetLeagueOverride(ctx, league); err != nil {
			return err
		}
	}

	s.log.Info("League settings updated", "count", len(leagues))
	s.invalidate()
	return nil
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, settingBaseURL)
	if err == repository.ErrNotFound {
		return "", nil // Not yet configured; app startup sets a default
	}
	return value, err
}

// SetBaseURL saves the application base URL
func (s *SettingsService) SetBaseURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, settingBaseURL, url)
}

// GetBackgroundURL returns the site background image URL
func (s *SettingsService) GetBackgroundURL(ctx context.Context) (string, error) {
	value, err := s.repo.GetSetting(ctx, settingBackgroundURL)
	if err == repository.ErrNotFound {
		return "", nil
	}
	return value, err
}

// SetBackgroundURL saves the site background image URL. An empty string
// resets to the built-in background.
func (s *SettingsService) SetBackgroundURL(ctx context.Context, url string) error {
	return s.repo.SetSetting(ctx, settingBackgroundURL, url)
}

// defaultSponsorship is returned until an admin saves custom links.
var defaultSponsorship = models.SponsorshipSettings{
	AdminTelegramLink:    "https://t.me/dartrank_admin",
	GroupTelegramLink:    "https://t.me/dartrank",
	AdminVkLink:          "https://vk.com/dartrank",
	GroupVkLink:          "https://vk.com/dartrank",
	ShowGlobalSponsorCTA: true,
}

// GetSponsorshipSettings returns the sponsorship contact configuration
func (s *SettingsService) GetSponsorshipSettings(ctx context.Context) (models.SponsorshipSettings, error) {
	value, err := s.repo.GetSetting(ctx, settingSponsorship)
	if err == repository.ErrNotFound {
		return defaultSponsorship, nil
	}
	if err != nil {
		return models.SponsorshipSettings{}, err
	}

	settings := defaultSponsorship
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		s.log.Error("Corrupt sponsorship settings, using defaults", "error", err)
		return defaultSponsorship, nil
	}
	return settings, nil
}

// UpdateSponsorshipSettings stores the sponsorship contact configuration
func (s *SettingsService) UpdateSponsorshipSettings(ctx context.Context, settings models.SponsorshipSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.repo.SetSetting(ctx, settingSponsorship, string(data))
}
