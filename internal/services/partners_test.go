package services_test

import (
	"context"
	"testing"

	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/services"
	"github.com/dartbrigade/dartrank/internal/testutil"
)

func newPartnerService(t *testing.T) *services.PartnerService {
	t.Helper()
	return services.NewPartnerService(logger.New(), testutil.NewTestRepository(t))
}

func TestPartnerLifecycle(t *testing.T) {
	svc := newPartnerService(t)
	ctx := context.Background()

	partner := models.Partner{
		ID:        "dartshop",
		Name:      "The Dart Shop",
		LogoURL:   "https://example.com/logo.png",
		Category:  models.PartnerShop,
		LinkURL:   "https://dartshop.example.com",
		PromoCode: "RANKED10",
	}
	if err := svc.SavePartner(ctx, partner); err != nil {
		t.Fatalf("SavePartner failed: %v", err)
	}

	got, err := svc.GetPartner(ctx, "dartshop")
	if err != nil {
		t.Fatalf("GetPartner failed: %v", err)
	}
	if got.Name != "The Dart Shop" || got.PromoCode != "RANKED10" {
		t.Errorf("unexpected partner: %+v", got)
	}

	// Save with the same id updates in place.
	partner.Name = "The Darts Shop"
	if err := svc.SavePartner(ctx, partner); err != nil {
		t.Fatalf("SavePartner update failed: %v", err)
	}
	partners, err := svc.ListPartners(ctx)
	if err != nil {
		t.Fatalf("ListPartners failed: %v", err)
	}
	if len(partners) != 1 || partners[0].Name != "The Darts Shop" {
		t.Errorf("expected 1 updated partner, got %+v", partners)
	}

	if err := svc.DeletePartner(ctx, "dartshop"); err != nil {
		t.Fatalf("DeletePartner failed: %v", err)
	}
	if err := svc.DeletePartner(ctx, "dartshop"); err == nil {
		t.Error("expected not-found on second delete")
	}
}

func TestSavePartner_Validation(t *testing.T) {
	svc := newPartnerService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		partner models.Partner
	}{
		{"missing id", models.Partner{Name: "X", Category: models.PartnerShop}},
		{"empty name", models.Partner{ID: "x", Category: models.PartnerShop}},
		{"bad category", models.Partner{ID: "x", Name: "X", Category: "bank"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.SavePartner(ctx, tc.partner); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
