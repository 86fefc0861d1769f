package scoring

import (
	"encoding/json"

	"github.com/dartbrigade/dartrank/internal/models"
)

// baseDefaults is the build-time scoring configuration every league starts
// from. Stored overrides are merged on top of it field by field.
var baseDefaults = models.ScoringSettings{
	PointsFor1st:        100,
	PointsFor2nd:        75,
	PointsFor3rd4th:     50,
	PointsFor5th8th:     30,
	PointsFor9th16th:    20,
	ParticipationPoints: 10,

	Enable180Bonus: true,
	BonusPer180:    5,

	EnableHiOutBonus: true,
	HiOutThreshold:   100,
	HiOutBonus:       10,

	EnableAvgBonus: false,
	AvgThreshold:   60,
	AvgBonus:       10,

	EnableShortLegBonus: false,
	ShortLegThreshold:   15,
	ShortLegBonus:       10,

	Enable9DarterBonus: false,
	BonusFor9Darter:    50,
}

// defaultLeagues is the build-time league metadata. Only the general
// ranking starts enabled; the rest are switched on by an admin.
var defaultLeagues = map[models.LeagueID]models.League{
	models.LeagueGeneral: {ID: models.LeagueGeneral, Name: "Overall Ranking", Enabled: true},
	models.LeaguePremier: {ID: models.LeaguePremier, Name: "Premier League", Enabled: false},
	models.LeagueFirst:   {ID: models.LeagueFirst, Name: "First League", Enabled: false},
	models.LeagueCricket: {ID: models.LeagueCricket, Name: "Cricket", Enabled: false},
	models.LeagueSenior:  {ID: models.LeagueSenior, Name: "Seniors", Enabled: false},
	models.LeagueYouth:   {ID: models.LeagueYouth, Name: "Youth", Enabled: false},
	models.LeagueWomen:   {ID: models.LeagueWomen, Name: "Women's League", Enabled: false},
}

// DefaultSettings returns the default scoring configuration for a league.
func DefaultSettings(models.LeagueID) models.ScoringSettings {
	// Every league currently shares the same default table; the league
	// parameter keeps the call sites honest about scope.
	return baseDefaults
}

// DefaultLeague returns the default metadata for a league id.
func DefaultLeague(id models.LeagueID) models.League {
	return defaultLeagues[id]
}

// ResolveSettings merges a stored override document on top of the default
// configuration for the league. Fields present in the override replace the
// default value; absent fields keep it, so a configuration saved before a
// rule was added still resolves to a complete rule set.
func ResolveSettings(id models.LeagueID, overrideJSON []byte) (models.ScoringSettings, error) {
	merged := DefaultSettings(id)
	if len(overrideJSON) == 0 {
		return merged, nil
	}
	if err := json.Unmarshal(overrideJSON, &merged); err != nil {
		return models.ScoringSettings{}, err
	}
	return merged, nil
}
