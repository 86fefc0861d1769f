package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dartbrigade/dartrank/internal/errors"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/repository"
	"github.com/dartbrigade/dartrank/internal/scoring"
)

// cacheTTL bounds how stale a leaderboard can get without an explicit
// invalidation (for example after a direct database edit).
const cacheTTL = time.Hour

// RankingServiceRepository defines the repository methods needed by RankingService
type RankingServiceRepository interface {
	repository.PlayerRepository
	repository.TournamentRepository
}

// RankingService computes league leaderboards and memoizes them per league.
// Any mutation to tournaments, players or settings invalidates every
// league's cache at once: a single change can shift both the affected
// league and the general aggregate, so coarse invalidation is the only
// correct granularity.
type RankingService struct {
	log         logger.Logger
	repo        RankingServiceRepository
	settings    SettingsServicer
	broadcaster Broadcaster

	mu    sync.RWMutex
	cache map[models.LeagueID]cacheEntry
}

type cacheEntry struct {
	players  []models.Player
	computed time.Time
}

// NewRankingService creates a new RankingService
func NewRankingService(log logger.Logger, repo RankingServiceRepository, settings SettingsServicer) *RankingService {
	return &RankingService{
		log:      log,
		repo:     repo,
		settings: settings,
		cache:    make(map[models.LeagueID]cacheEntry),
	}
}

// SetBroadcaster sets the hub notified on every invalidation
func (s *RankingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// GetRankings returns the ranked player list for a league, serving from
// the per-league cache when it is fresh. Concurrent cache misses may
// recompute redundantly; the aggregation is a pure function of
// already-loaded data, so no coordination is needed.
func (s *RankingService) GetRankings(ctx context.Context, league models.LeagueID) ([]models.Player, error) {
	if !models.ValidLeagueID(league) {
		return nil, errors.InvalidInputf("unknown league %q", league)
	}

	s.mu.RLock()
	entry, ok := s.cache[league]
	s.mu.RUnlock()
	if ok && time.Since(entry.computed) < cacheTTL {
		return entry.players, nil
	}

	players, err := s.compute(ctx, league)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[league] = cacheEntry{players: players, computed: time.Now()}
	s.mu.Unlock()

	return players, nil
}

// GetPlayerRanking returns one player's aggregated view within a league
func (s *RankingService) GetPlayerRanking(ctx context.Context, league models.LeagueID, playerID string) (*models.Player, error) {
	players, err := s.GetRankings(ctx, league)
	if err != nil {
		return nil, err
	}
	for i := range players {
		if players[i].ID == playerID {
			return &players[i], nil
		}
	}
	return nil, errors.NotFoundf("player %q not found", playerID)
}

// InvalidateAll drops every league's cached leaderboard and notifies
// connected clients that rankings changed.
func (s *RankingService) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[models.LeagueID]cacheEntry)
	s.mu.Unlock()

	s.log.Debug("Ranking caches invalidated")
	if s.broadcaster != nil {
		s.broadcaster.BroadcastRankingsInvalidated()
	}
}

// compute loads everything and aggregates one league's leaderboard.
func (s *RankingService) compute(ctx context.Context, league models.LeagueID) ([]models.Player, error) {
	profiles, err := s.repo.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	tournaments, err := s.repo.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	allSettings, err := s.settings.GetAllScoringSettings(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	players := computeLeagueRankings(league, tournaments, profiles, allSettings)
	s.log.Debug("Rankings computed", "league", league,
		"players", len(players), "tournaments", len(tournaments),
		"elapsed", time.Since(start))
	return players, nil
}

// computeLeagueRankings is the aggregation core: a deterministic pure
// function from the full data set to a ranked player list for one scope.
func computeLeagueRankings(
	league models.LeagueID,
	tournaments []models.Tournament,
	profiles []models.PlayerProfile,
	allSettings map[models.LeagueID]models.ScoringSettings,
) []models.Player {
	// Scope filter: general is the union of everything.
	var inScope []models.Tournament
	for _, t := range tournaments {
		if league == models.LeagueGeneral || t.League == league {
			inScope = append(inScope, t)
		}
	}

	// Re-score every result under the CURRENT settings of the league the
	// tournament was recorded in - not the aggregation target's settings.
	// Persisted points are never trusted; this is what makes a scoring
	// rule change apply retroactively to history.
	resultsByPlayer := make(map[string][]models.TournamentPlayerResult)
	for ti := range inScope {
		settings, ok := allSettings[inScope[ti].League]
		if !ok {
			continue
		}
		for pi := range inScope[ti].Players {
			result := &inScope[ti].Players[pi]
			scoring.ScorePlayerResult(result, settings)
			resultsByPlayer[result.ID] = append(resultsByPlayer[result.ID], *result)
		}
	}

	ranked := make([]models.Player, 0, len(profiles))
	var unranked []models.Player

	for _, profile := range profiles {
		player := aggregatePlayer(profile, resultsByPlayer[profile.ID])
		if player.MatchesPlayed > 0 {
			ranked = append(ranked, player)
		} else {
			unranked = append(unranked, player)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.BasePoints != b.BasePoints {
			return a.BasePoints > b.BasePoints
		}
		if a.Avg != b.Avg {
			return a.Avg > b.Avg
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.MatchesPlayed > b.MatchesPlayed
	})

	// Competition ranking: players tied on all five sort keys share a rank
	// number, and the next distinct player takes their 1-based position,
	// so ties produce sequences like 1,1,3.
	for i := range ranked {
		if i > 0 && sortKeysEqual(ranked[i], ranked[i-1]) {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}

	// Zero-match players stay visible (rank 0, all stats zero) so admins
	// can manage profiles that have no results in this scope yet.
	return append(ranked, unranked...)
}

func sortKeysEqual(a, b models.Player) bool {
	return a.Points == b.Points &&
		a.BasePoints == b.BasePoints &&
		a.Avg == b.Avg &&
		a.Wins == b.Wins &&
		a.MatchesPlayed == b.MatchesPlayed
}

// aggregatePlayer folds one player's scored results into career totals.
func aggregatePlayer(profile models.PlayerProfile, results []models.TournamentPlayerResult) models.Player {
	player := models.Player{PlayerProfile: profile}

	var avgSum float64
	bestLeg := 0
	for _, r := range results {
		player.Points += r.Points
		player.BasePoints += r.BasePoints
		player.BonusPoints += r.BonusPoints
		player.MatchesPlayed++
		if r.Rank <= 8 {
			player.Wins++
		}
		player.N180s += r.N180s
		if r.HiOut > player.HiOut {
			player.HiOut = r.HiOut
		}
		// 0 is "no recorded leg", never a minimum candidate.
		if r.BestLeg > 0 && (bestLeg == 0 || r.BestLeg < bestLeg) {
			bestLeg = r.BestLeg
		}
		avgSum += r.Avg

		player.TotalPointsFor180s += r.PointsFor180s
		player.TotalPointsForHiOut += r.PointsForHiOut
		player.TotalPointsForAvg += r.PointsForAvg
		player.TotalPointsForBestLeg += r.PointsForBestLeg
		player.TotalPointsFor9Darter += r.PointsFor9Darter
	}

	player.BestLeg = bestLeg
	player.Losses = player.MatchesPlayed - player.Wins
	if len(results) > 0 {
		// Simple mean of per-tournament averages, not weighted by legs.
		player.Avg = avgSum / float64(len(results))
	}
	return player
}

// ExportCSV renders every visible league's leaderboard (ranked players
// only) as a CSV document.
func (s *RankingService) ExportCSV(ctx context.Context) (string, error) {
	leagues, err := s.settings.GetEnabledLeagues(ctx)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"League", "Rank", "Name", "Nickname", "Points", "Matches", "AVG", "180s", "Hi-Out"}); err != nil {
		return "", err
	}

	for _, league := range leagues {
		players, err := s.GetRankings(ctx, league.ID)
		if err != nil {
			return "", err
		}
		for _, p := range players {
			if p.MatchesPlayed == 0 {
				continue
			}
			record := []string{
				string(league.ID),
				strconv.Itoa(p.Rank),
				p.Name,
				p.Nickname,
				strconv.Itoa(p.Points),
				strconv.Itoa(p.MatchesPlayed),
				fmt.Sprintf("%.2f", p.Avg),
				strconv.Itoa(p.N180s),
				strconv.Itoa(p.HiOut),
			}
			if err := w.Write(record); err != nil {
				return "", err
			}
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}
