// Package scoring implements the points engine: the placement brackets and
// the configurable bonus rules that turn a raw tournament result into
// scored points. Everything here is pure computation over in-memory values.
package scoring

import "github.com/dartbrigade/dartrank/internal/models"

// PointsForRank returns the base points for a 1-based placement.
// Rank 17 and above, as well as anything outside the valid range
// (zero, negative, the 999 unranked sentinel), earns participation points.
func PointsForRank(rank int, settings models.ScoringSettings) int {
	switch {
	case rank == 1:
		return settings.PointsFor1st
	case rank == 2:
		return settings.PointsFor2nd
	case rank >= 3 && rank <= 4:
		return settings.PointsFor3rd4th
	case rank >= 5 && rank <= 8:
		return settings.PointsFor5th8th
	case rank >= 9 && rank <= 16:
		return settings.PointsFor9th16th
	default:
		return settings.ParticipationPoints
	}
}

// ScorePlayerResult recomputes every scoring field of result from its raw
// stats and the given settings. All bonus fields are reset first, so the
// function is idempotent: scoring an already-scored result again with the
// same settings yields the same output.
func ScorePlayerResult(result *models.TournamentPlayerResult, settings models.ScoringSettings) {
	result.BasePoints = PointsForRank(result.Rank, settings)

	result.BonusPoints = 0
	result.PointsFor180s = 0
	result.Is180BonusApplied = false
	result.PointsForHiOut = 0
	result.IsHiOutBonusApplied = false
	result.PointsForAvg = 0
	result.IsAvgBonusApplied = false
	result.PointsForBestLeg = 0
	result.IsBestLegBonusApplied = false
	result.PointsFor9Darter = 0
	result.Is9DarterBonusApplied = false

	if settings.Enable180Bonus && result.N180s > 0 {
		result.PointsFor180s = result.N180s * settings.BonusPer180
		result.Is180BonusApplied = true
		result.BonusPoints += result.PointsFor180s
	}
	if settings.EnableHiOutBonus && result.HiOut >= settings.HiOutThreshold {
		result.PointsForHiOut = settings.HiOutBonus
		result.IsHiOutBonusApplied = true
		result.BonusPoints += result.PointsForHiOut
	}
	if settings.EnableAvgBonus && result.Avg >= settings.AvgThreshold {
		result.PointsForAvg = settings.AvgBonus
		result.IsAvgBonusApplied = true
		result.BonusPoints += result.PointsForAvg
	}
	// BestLeg == 0 means no recorded leg, not a zero-dart leg; the bonus
	// only triggers on an actual record at or under the threshold.
	if settings.EnableShortLegBonus && result.BestLeg > 0 && result.BestLeg <= settings.ShortLegThreshold {
		result.PointsForBestLeg = settings.ShortLegBonus
		result.IsBestLegBonusApplied = true
		result.BonusPoints += result.PointsForBestLeg
	}
	if settings.Enable9DarterBonus && result.NineDarters > 0 {
		result.PointsFor9Darter = result.NineDarters * settings.BonusFor9Darter
		result.Is9DarterBonusApplied = true
		result.BonusPoints += result.PointsFor9Darter
	}

	result.Points = result.BasePoints + result.BonusPoints
}
