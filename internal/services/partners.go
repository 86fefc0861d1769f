package services

import (
	"context"
	"strings"

	"github.com/dartbrigade/dartrank/internal/errors"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
)

// PartnerService manages the partner directory shown on the public site
type PartnerService struct {
	log  logger.Logger
	repo repository.PartnerRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(log logger.Logger, repo repository.PartnerRepository) *PartnerService {
	return &PartnerService{log: log, repo: repo}
}

// ListPartners returns all partners in display order
func (s *PartnerService) ListPartners(ctx context.Context) ([]models.Partner, error) {
	return s.repo.ListPartners(ctx)
}

// GetPartner returns one partner by id
func (s *PartnerService) GetPartner(ctx context.Context, id string) (*models.Partner, error) {
	partner, err := s.repo.GetPartner(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("partner %q not found", id)
	}
	return partner, err
}

var validCategories = map[models.PartnerCategory]bool{
	models.PartnerShop:     true,
	models.PartnerPlatform: true,
	models.PartnerMedia:    true,
	models.PartnerOther:    true,
}

// SavePartner creates or updates a partner entry
func (s *PartnerService) SavePartner(ctx context.Context, partner models.Partner) error {
	if strings.TrimSpace(partner.ID) == "" {
		return errors.InvalidInput("partner id is required")
	}
	if strings.TrimSpace(partner.Name) == "" {
		return errors.Validation("partner name cannot be empty")
	}
	if !validCategories[partner.Category] {
		return errors.Validationf("unknown partner category %q", partner.Category)
	}
	if err := s.repo.UpsertPartner(ctx, partner); err != nil {
		return err
	}
	s.log.Info("Partner saved", "id", partner.ID, "category", partner.Category)
	return nil
}

// DeletePartner removes a partner entry
func (s *PartnerService) DeletePartner(ctx context.Context, id string) error {
	err := s.repo.DeletePartner(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("partner %q not found", id)
	}
	if err != nil {
		return err
	}
	s.log.Info("Partner deleted", "id", id)
	return nil
}
