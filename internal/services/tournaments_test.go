package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
	"github.com/dartbrigade/dartrank/internal/services"
	"github.com/dartbrigade/dartrank/internal/testutil"
	"github.com/dartbrigade/dartrank/pkg/dartsbase"
)

func newTournamentService(t *testing.T, client dartsbase.Client) (*services.TournamentService, *repository.Repository, *services.SettingsService) {
	t.Helper()
	repo := testutil.NewTestRepository(t)
	log := logger.New()
	settingsSvc := services.NewSettingsService(log, repo)
	svc := services.NewTournamentService(log, repo, settingsSvc, client)
	return svc, repo, settingsSvc
}

func mockStats(id, name string, players ...dartsbase.PlayerRow) *dartsbase.TournamentStats {
	return &dartsbase.TournamentStats{
		ID:      id,
		Name:    name,
		Date:    time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC),
		Players: players,
	}
}

func TestImportTournaments(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "Friday 501",
			dartsbase.PlayerRow{PlayerID: "anna-m", Name: "Anna M", Rank: 1, Avg: 62.5, N180s: 2, HiOut: 130, BestLeg: 14},
			dartsbase.PlayerRow{PlayerID: "boris-k", Name: "Boris K", Rank: 2, Avg: 55.1},
		)),
	)
	svc, repo, _ := newTournamentService(t, client)
	ctx := context.Background()

	result, err := svc.ImportTournaments(ctx, "501", models.LeaguePremier)
	if err != nil {
		t.Fatalf("ImportTournaments failed: %v", err)
	}
	if len(result.ImportedIDs) != 1 || result.ImportedIDs[0] != "501" {
		t.Fatalf("expected imported id 501, got %v", result.ImportedIDs)
	}
	if result.NewPlayers != 2 {
		t.Errorf("expected 2 auto-created players, got %d", result.NewPlayers)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}

	// Stored results carry scored points.
	tournament, err := svc.GetTournament(ctx, "501")
	if err != nil {
		t.Fatalf("GetTournament failed: %v", err)
	}
	if tournament.League != models.LeaguePremier {
		t.Errorf("expected premier league, got %s", tournament.League)
	}
	// 100 base + 2*5 for 180s + 10 hi-out = 120
	if tournament.Players[0].Points != 120 {
		t.Errorf("expected winner scored at 120, got %d", tournament.Players[0].Points)
	}

	// Auto-created profile with placeholder identity.
	profile, err := repo.GetPlayer(ctx, "anna-m")
	if err != nil {
		t.Fatalf("GetPlayer failed: %v", err)
	}
	if profile.Name != "Anna M" || profile.Nickname != "Rookie" {
		t.Errorf("unexpected auto-created profile: %+v", profile)
	}
	if profile.AvatarURL == "" {
		t.Error("expected seeded avatar URL")
	}
}

func TestImportTournaments_ExtractsIDsFromFreeText(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "A", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
		dartsbase.WithTournament(mockStats("502", "B", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
	)
	svc, _, _ := newTournamentService(t, client)

	// Pasted URLs and commas are fine; only the digit runs matter.
	result, err := svc.ImportTournaments(context.Background(),
		"https://dartsbase.ru/tournaments/501, 502", models.LeaguePremier)
	if err != nil {
		t.Fatalf("ImportTournaments failed: %v", err)
	}
	if len(result.ImportedIDs) != 2 {
		t.Fatalf("expected 2 imports, got %v", result.ImportedIDs)
	}
}

func TestImportTournaments_PartialFailure(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "A", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
	)
	svc, _, _ := newTournamentService(t, client)

	result, err := svc.ImportTournaments(context.Background(), "501 999", models.LeaguePremier)
	if err != nil {
		t.Fatalf("ImportTournaments failed: %v", err)
	}
	if len(result.ImportedIDs) != 1 {
		t.Errorf("expected the good id imported, got %v", result.ImportedIDs)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "999") {
		t.Errorf("expected one failure naming id 999, got %v", result.Errors)
	}
}

func TestImportTournaments_InvalidInput(t *testing.T) {
	svc, _, _ := newTournamentService(t, dartsbase.NewMockClient())
	ctx := context.Background()

	if _, err := svc.ImportTournaments(ctx, "no digits here", models.LeaguePremier); err == nil {
		t.Error("expected error when no ids present")
	}
	if _, err := svc.ImportTournaments(ctx, "501", models.LeagueGeneral); err == nil {
		t.Error("expected error importing into the general aggregate")
	}
	if _, err := svc.ImportTournaments(ctx, "501", "superleague"); err == nil {
		t.Error("expected error for unknown league")
	}
}

func TestImportTournaments_ReimportOverwrites(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "First Pass", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
	)
	svc, repo, _ := newTournamentService(t, client)
	ctx := context.Background()

	if _, err := svc.ImportTournaments(ctx, "501", models.LeaguePremier); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	client2 := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "Second Pass",
			dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1},
			dartsbase.PlayerRow{PlayerID: "p2", Name: "P2", Rank: 2},
		)),
	)
	svc2 := services.NewTournamentService(logger.New(), repo, services.NewSettingsService(logger.New(), repo), client2)
	if _, err := svc2.ImportTournaments(ctx, "501", models.LeagueFirst); err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	tournament, err := svc2.GetTournament(ctx, "501")
	if err != nil {
		t.Fatalf("GetTournament failed: %v", err)
	}
	if tournament.Name != "Second Pass" || tournament.League != models.LeagueFirst {
		t.Errorf("re-import did not overwrite: %+v", tournament)
	}
	if len(tournament.Players) != 2 {
		t.Errorf("expected 2 players after re-import, got %d", len(tournament.Players))
	}
}

func TestImportTournaments_FetchError(t *testing.T) {
	client := dartsbase.NewMockClient(dartsbase.WithFetchError(errors.New("connection refused")))
	svc, _, _ := newTournamentService(t, client)

	result, err := svc.ImportTournaments(context.Background(), "501", models.LeaguePremier)
	if err != nil {
		t.Fatalf("ImportTournaments failed: %v", err)
	}
	if len(result.ImportedIDs) != 0 || len(result.Errors) != 1 {
		t.Errorf("expected 0 imports and 1 error, got %+v", result)
	}
}

func TestGetTournament_RescoredOnRead(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "A", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
	)
	svc, _, settingsSvc := newTournamentService(t, client)
	ctx := context.Background()

	if _, err := svc.ImportTournaments(ctx, "501", models.LeaguePremier); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	settings, _ := settingsSvc.GetScoringSettings(ctx, models.LeaguePremier)
	settings.PointsFor1st = 300
	if err := settingsSvc.UpdateScoringSettings(ctx, models.LeaguePremier, settings); err != nil {
		t.Fatalf("UpdateScoringSettings failed: %v", err)
	}

	tournament, err := svc.GetTournament(ctx, "501")
	if err != nil {
		t.Fatalf("GetTournament failed: %v", err)
	}
	if tournament.Players[0].Points != 300 {
		t.Errorf("expected stored result re-scored to 300, got %d", tournament.Players[0].Points)
	}
}

func TestGetTournament_NotFound(t *testing.T) {
	svc, _, _ := newTournamentService(t, dartsbase.NewMockClient())

	if _, err := svc.GetTournament(context.Background(), "nope"); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestDeleteAndClearTournaments(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "A", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
		dartsbase.WithTournament(mockStats("502", "B", dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1})),
	)
	svc, _, _ := newTournamentService(t, client)
	ctx := context.Background()

	if _, err := svc.ImportTournaments(ctx, "501 502", models.LeaguePremier); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if err := svc.DeleteTournament(ctx, "501"); err != nil {
		t.Fatalf("DeleteTournament failed: %v", err)
	}
	if err := svc.DeleteTournament(ctx, "501"); err == nil {
		t.Error("expected not-found on second delete")
	}

	if err := svc.ClearTournaments(ctx); err != nil {
		t.Fatalf("ClearTournaments failed: %v", err)
	}
	tournaments, err := svc.ListTournaments(ctx)
	if err != nil {
		t.Fatalf("ListTournaments failed: %v", err)
	}
	if len(tournaments) != 0 {
		t.Errorf("expected no tournaments after clear, got %d", len(tournaments))
	}
}

func TestPlayerHistory(t *testing.T) {
	client := dartsbase.NewMockClient(
		dartsbase.WithTournament(mockStats("501", "A",
			dartsbase.PlayerRow{PlayerID: "p1", Name: "P1", Rank: 1},
			dartsbase.PlayerRow{PlayerID: "p2", Name: "P2", Rank: 2},
		)),
		dartsbase.WithTournament(mockStats("502", "B", dartsbase.PlayerRow{PlayerID: "p2", Name: "P2", Rank: 5})),
	)
	svc, _, _ := newTournamentService(t, client)
	ctx := context.Background()

	if _, err := svc.ImportTournaments(ctx, "501 502", models.LeaguePremier); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	history, err := svc.PlayerHistory(ctx, "p2")
	if err != nil {
		t.Fatalf("PlayerHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history))
	}
	for _, h := range history {
		if h.PlayerID != "p2" {
			t.Errorf("foreign row in history: %+v", h)
		}
		if h.LeagueName == "" {
			t.Errorf("expected resolved league name, got %+v", h)
		}
	}

	history, err = svc.PlayerHistory(ctx, "p1")
	if err != nil {
		t.Fatalf("PlayerHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].PlayerPoints != 100 {
		t.Errorf("expected one win worth 100 for p1, got %+v", history)
	}
}
