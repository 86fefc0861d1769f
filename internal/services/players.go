package services

import (
	"context"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/dartbrigade/dartrank/internal/errors"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
)

// PlayerServiceRepository defines the repository methods needed by PlayerService
type PlayerServiceRepository interface {
	repository.PlayerRepository
	repository.TournamentRepository
}

// PlayerService handles player profile management
type PlayerService struct {
	log         logger.Logger
	repo        PlayerServiceRepository
	settings    SettingsServicer
	invalidator Invalidator
}

// NewPlayerService creates a new PlayerService
func NewPlayerService(log logger.Logger, repo PlayerServiceRepository, settings SettingsServicer) *PlayerService {
	return &PlayerService{log: log, repo: repo, settings: settings}
}

// SetInvalidator sets the ranking-cache invalidation hook
func (s *PlayerService) SetInvalidator(inv Invalidator) {
	s.invalidator = inv
}

func (s *PlayerService) invalidate() {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
}

// ListPlayers returns every known profile
func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.PlayerProfile, error) {
	return s.repo.ListPlayers(ctx)
}

// GetPlayer returns one profile by id
func (s *PlayerService) GetPlayer(ctx context.Context, id string) (*models.PlayerProfile, error) {
	player, err := s.repo.GetPlayer(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("player %q not found", id)
	}
	return player, err
}

// UpdatePlayer saves an edited profile. The id must already exist; new
// profiles only appear through tournament import.
func (s *PlayerService) UpdatePlayer(ctx context.Context, player models.PlayerProfile) error {
	if strings.TrimSpace(player.ID) == "" {
		return errors.InvalidInput("player id is required")
	}
	if strings.TrimSpace(player.Name) == "" {
		return errors.Validation("player name cannot be empty")
	}
	if _, err := s.GetPlayer(ctx, player.ID); err != nil {
		return err
	}
	if err := s.repo.UpsertPlayers(ctx, []models.PlayerProfile{player}); err != nil {
		return err
	}
	s.log.Info("Player profile updated", "id", player.ID)
	s.invalidate()
	return nil
}

// UpdateAvatar replaces just the avatar URL of one profile. An empty URL
// resets the profile back to its seeded placeholder avatar.
func (s *PlayerService) UpdateAvatar(ctx context.Context, playerID, avatarURL string) error {
	player, err := s.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	if avatarURL == "" {
		avatarURL = seededAvatarURL(player.Name)
	}
	player.AvatarURL = avatarURL
	if err := s.repo.UpsertPlayers(ctx, []models.PlayerProfile{*player}); err != nil {
		return err
	}
	s.log.Info("Player avatar updated", "id", playerID)
	s.invalidate()
	return nil
}

// DeletePlayer removes a profile. Tournament rows referencing the id are
// left in place and the aggregator simply skips them.
func (s *PlayerService) DeletePlayer(ctx context.Context, id string) error {
	err := s.repo.DeletePlayer(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("player %q not found", id)
	}
	if err != nil {
		return err
	}
	s.log.Info("Player deleted", "id", id)
	s.invalidate()
	return nil
}

// ClearAllData wipes both players and tournaments. Configuration is kept.
func (s *PlayerService) ClearAllData(ctx context.Context) error {
	if err := s.repo.ClearTournaments(ctx); err != nil {
		return err
	}
	if err := s.repo.ClearPlayers(ctx); err != nil {
		return err
	}
	s.log.Warn("All player and tournament data cleared")
	s.invalidate()
	return nil
}

// PlayerCardQR renders a QR code PNG pointing at the player's public card,
// using the configured base URL so codes work for phones on the same LAN.
func (s *PlayerService) PlayerCardQR(ctx context.Context, playerID string) ([]byte, error) {
	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	cardURL := strings.TrimRight(baseURL, "/") + "/player/" + playerID
	png, err := qrcode.Encode(cardURL, qrcode.Medium, 256)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to generate QR code")
	}
	return png, nil
}
