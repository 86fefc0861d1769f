package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/dartbrigade/dartrank/internal/errors"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
	"github.com/dartbrigade/dartrank/internal/scoring"
	"github.com/dartbrigade/dartrank/pkg/dartsbase"
)

var tournamentIDRe = regexp.MustCompile(`\d+`)

// TournamentServiceRepository defines the repository methods needed by TournamentService
type TournamentServiceRepository interface {
	repository.TournamentRepository
	repository.PlayerRepository
}

// TournamentService handles tournament import and read paths
type TournamentService struct {
	log         logger.Logger
	repo        TournamentServiceRepository
	settings    SettingsServicer
	client      dartsbase.Client
	invalidator Invalidator
}

// NewTournamentService creates a new TournamentService
func NewTournamentService(log logger.Logger, repo TournamentServiceRepository, settings SettingsServicer, client dartsbase.Client) *TournamentService {
	return &TournamentService{log: log, repo: repo, settings: settings, client: client}
}

// SetInvalidator sets the ranking-cache invalidation hook
func (s *TournamentService) SetInvalidator(inv Invalidator) {
	s.invalidator = inv
}

func (s *TournamentService) invalidate() {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll()
	}
}

// ImportResult reports the outcome of one import batch. Individual
// tournament failures never abort the batch.
type ImportResult struct {
	ImportedIDs []string `json:"imported_ids"`
	NewPlayers  int      `json:"new_players"`
	Errors      []string `json:"errors,omitempty"`
}

// ImportTournaments scrapes every tournament id found in rawIDs from the
// results site, scores the results under the target league's current
// settings, auto-creates profiles for unseen players and upserts the
// tournament documents. Re-importing an id overwrites the stored event.
func (s *TournamentService) ImportTournaments(ctx context.Context, rawIDs string, league models.LeagueID) (*ImportResult, error) {
	if !models.ValidLeagueID(league) || league == models.LeagueGeneral {
		// General is an aggregate view; events are always recorded in a
		// concrete league.
		return nil, errors.InvalidInputf("cannot import into league %q", league)
	}

	ids := tournamentIDRe.FindAllString(rawIDs, -1)
	if len(ids) == 0 {
		return nil, errors.InvalidInput("no tournament ids found in input")
	}

	settings, err := s.settings.GetScoringSettings(ctx, league)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	knownPlayers := make(map[string]bool, len(existing))
	for _, p := range existing {
		knownPlayers[p.ID] = true
	}

	result := &ImportResult{}
	var tournaments []models.Tournament
	var newProfiles []models.PlayerProfile

	for _, id := range ids {
		stats, err := s.client.FetchTournamentStats(ctx, id)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("id %s: %v", id, err))
			continue
		}
		if len(stats.Players) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("id %s: no player rows", id))
			continue
		}

		tournament := models.Tournament{
			ID:     stats.ID,
			Name:   stats.Name,
			Date:   stats.Date.Format(time.RFC3339),
			League: league,
		}

		for _, row := range stats.Players {
			if !knownPlayers[row.PlayerID] {
				knownPlayers[row.PlayerID] = true
				newProfiles = append(newProfiles, newRookieProfile(row.PlayerID, row.Name))
			}

			playerResult := models.TournamentPlayerResult{
				ID:       row.PlayerID,
				Name:     row.Name,
				Nickname: rookieNickname,
				Rank:     row.Rank,
				Avg:      row.Avg,
				N180s:    row.N180s,
				HiOut:    row.HiOut,
				BestLeg:  row.BestLeg,
			}
			scoring.ScorePlayerResult(&playerResult, settings)
			tournament.Players = append(tournament.Players, playerResult)
		}

		tournaments = append(tournaments, tournament)
		result.ImportedIDs = append(result.ImportedIDs, tournament.ID)
	}

	if err := s.repo.UpsertPlayers(ctx, newProfiles); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertTournaments(ctx, tournaments); err != nil {
		return nil, err
	}
	result.NewPlayers = len(newProfiles)

	if len(tournaments) > 0 {
		s.log.Info("Tournaments imported", "count", len(tournaments),
			"league", league, "new_players", len(newProfiles), "failed", len(result.Errors))
		s.invalidate()
	}
	return result, nil
}

const rookieNickname = "Rookie"

// newRookieProfile builds the auto-created profile for a player first seen
// during import. The seeded avatar keeps the card from rendering empty
// until an admin uploads a real photo.
func newRookieProfile(id, name string) models.PlayerProfile {
	return models.PlayerProfile{
		ID:        id,
		Name:      name,
		Nickname:  rookieNickname,
		AvatarURL: seededAvatarURL(name),
		Bio:       "Profile auto-created on tournament import.",
		ImageHint: "person portrait",
	}
}

func seededAvatarURL(name string) string {
	return "https://picsum.photos/seed/" + url.QueryEscape(name) + "/400/400"
}

// ListTournaments returns all tournaments, newest first, re-scored with
// each tournament's own league's current settings.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.repo.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	allSettings, err := s.settings.GetAllScoringSettings(ctx)
	if err != nil {
		return nil, err
	}
	for ti := range tournaments {
		rescore(&tournaments[ti], allSettings)
	}
	return tournaments, nil
}

// GetTournament returns one tournament with its results re-scored under
// the current settings, so displayed bonus breakdowns always match the
// rules in force now, not the ones at import time.
func (s *TournamentService) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.repo.GetTournament(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("tournament %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetScoringSettings(ctx, tournament.League)
	if err != nil {
		return nil, err
	}
	for pi := range tournament.Players {
		scoring.ScorePlayerResult(&tournament.Players[pi], settings)
	}
	return tournament, nil
}

func rescore(t *models.Tournament, allSettings map[models.LeagueID]models.ScoringSettings) {
	settings, ok := allSettings[t.League]
	if !ok {
		return
	}
	for pi := range t.Players {
		scoring.ScorePlayerResult(&t.Players[pi], settings)
	}
}

// DeleteTournament removes one tournament from future aggregation
func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	err := s.repo.DeleteTournament(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("tournament %q not found", id)
	}
	if err != nil {
		return err
	}
	s.log.Info("Tournament deleted", "id", id)
	s.invalidate()
	return nil
}

// ClearTournaments removes every tournament
func (s *TournamentService) ClearTournaments(ctx context.Context) error {
	if err := s.repo.ClearTournaments(ctx); err != nil {
		return err
	}
	s.log.Warn("All tournament data cleared")
	s.invalidate()
	return nil
}

// PlayerHistory returns a player's per-tournament placements, newest
// first, with each row scored under current settings.
func (s *TournamentService) PlayerHistory(ctx context.Context, playerID string) ([]models.PlayerTournamentHistory, error) {
	tournaments, err := s.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	leagues, err := s.settings.GetLeagueSettings(ctx)
	if err != nil {
		return nil, err
	}

	var history []models.PlayerTournamentHistory
	for _, t := range tournaments {
		for _, p := range t.Players {
			if p.ID != playerID {
				continue
			}
			history = append(history, models.PlayerTournamentHistory{
				PlayerID:       playerID,
				TournamentID:   t.ID,
				TournamentName: t.Name,
				TournamentDate: t.Date,
				League:         t.League,
				LeagueName:     leagues[t.League].Name,
				PlayerRank:     p.Rank,
				PlayerPoints:   p.Points,
			})
		}
	}
	return history, nil
}
