package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
	"github.com/dartbrigade/dartrank/internal/services"
	"github.com/dartbrigade/dartrank/internal/testutil"
)

func newPlayerService(t *testing.T) (*services.PlayerService, *repository.Repository, *services.SettingsService) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := logger.New()
	settingsSvc := services.NewSettingsService(log, repo)
	return services.NewPlayerService(log, repo, settingsSvc), repo, settingsSvc
}

func TestUpdatePlayer(t *testing.T) {
	svc, repo, _ := newPlayerService(t)
	ctx := context.Background()
	seedProfiles(t, ctx, repo, "anna")

	player, err := svc.GetPlayer(ctx, "anna")
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	player.Nickname = "The Machine"
	player.SponsorName = "Darts & Co"
	if err := svc.UpdatePlayer(ctx, *player); err != nil {
		t.Fatalf("UpdatePlayer failed: %v", err)
	}

	got, err := svc.GetPlayer(ctx, "anna")
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if got.Nickname != "The Machine" || got.SponsorName != "Darts & Co" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdatePlayer_Validation(t *testing.T) {
	svc, repo, _ := newPlayerService(t)
	ctx := context.Background()
	seedProfiles(t, ctx, repo, "anna")

	if err := svc.UpdatePlayer(ctx, models.PlayerProfile{ID: "", Name: "X"}); err == nil {
		t.Error("expected error for missing id")
	}
	if err := svc.UpdatePlayer(ctx, models.PlayerProfile{ID: "anna", Name: ""}); err == nil {
		t.Error("expected error for empty name")
	}
	// New profiles only appear through import.
	if err := svc.UpdatePlayer(ctx, models.PlayerProfile{ID: "ghost", Name: "Ghost"}); err == nil {
		t.Error("expected not-found for unknown id")
	}
}

func TestUpdateAvatar(t *testing.T) {
	svc, repo, _ := newPlayerService(t)
	ctx := context.Background()
	seedProfiles(t, ctx, repo, "anna")

	if err := svc.UpdateAvatar(ctx, "anna", "https://example.com/anna.png"); err != nil {
		t.Fatalf("UpdateAvatar failed: %v", err)
	}
	got, _ := svc.GetPlayer(ctx, "anna")
	if got.AvatarURL != "https://example.com/anna.png" {
		t.Errorf("avatar not updated: %+v", got)
	}

	if err := svc.UpdateAvatar(ctx, "anna", ""); err != nil {
		t.Fatalf("UpdateAvatar reset failed: %v", err)
	}
	got, _ = svc.GetPlayer(ctx, "anna")
	if !strings.Contains(got.AvatarURL, "picsum.photos") {
		t.Errorf("expected seeded avatar after reset, got %q", got.AvatarURL)
	}

	if err := svc.UpdateAvatar(ctx, "ghost", "x"); err == nil {
		t.Error("expected not-found for unknown player")
	}
}

func TestDeletePlayer(t *testing.T) {
	svc, repo, _ := newPlayerService(t)
	ctx := context.Background()
	seedProfiles(t, ctx, repo, "anna")

	if err := svc.DeletePlayer(ctx, "anna"); err != nil {
		t.Fatalf("DeletePlayer failed: %v", err)
	}
	if _, err := svc.GetPlayer(ctx, "anna"); err == nil {
		t.Error("expected player gone after delete")
	}
	if err := svc.DeletePlayer(ctx, "anna"); err == nil {
		t.Error("expected not-found on second delete")
	}
}

func TestClearAllData(t *testing.T) {
	svc, repo, _ := newPlayerService(t)
	ctx := context.Background()
	seedProfiles(t, ctx, repo, "anna")
	seedTournament(t, ctx, repo, "501", models.LeaguePremier, result("anna", 1, 50, 0, 0, 0))

	if err := svc.ClearAllData(ctx); err != nil {
		t.Fatalf("ClearAllData failed: %v", err)
	}
	players, err := svc.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("ListPlayers failed: %v", err)
	}
	if len(players) != 0 {
		t.Errorf("expected no players after wipe, got %d", len(players))
	}
	tournaments, err := repo.ListTournaments(ctx)
	if err != nil {
		t.Fatalf("ListTournaments failed: %v", err)
	}
	if len(tournaments) != 0 {
		t.Errorf("expected no tournaments after wipe, got %d", len(tournaments))
	}
}

func TestPlayerCardQR(t *testing.T) {
	svc, repo, settingsSvc := newPlayerService(t)
	ctx := context.Background()
	seedProfiles(t, ctx, repo, "anna")
	if err := settingsSvc.SetBaseURL(ctx, "http://192.168.1.20:8080/"); err != nil {
		t.Fatalf("SetBaseURL failed: %v", err)
	}

	png, err := svc.PlayerCardQR(ctx, "anna")
	if err != nil {
		t.Fatalf("PlayerCardQR failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected a PNG image")
	}

	if _, err := svc.PlayerCardQR(ctx, "ghost"); err == nil {
		t.Error("expected not-found for unknown player")
	}
}
