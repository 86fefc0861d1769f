package models

// LeagueID identifies a ranking scope. The set is fixed; "general" is the
// union of all tournaments regardless of their assigned league.
type LeagueID string

const (
	LeagueGeneral LeagueID = "general"
	LeaguePremier LeagueID = "premier"
	LeagueFirst   LeagueID = "first"
	LeagueCricket LeagueID = "cricket"
	LeagueSenior  LeagueID = "senior"
	LeagueYouth   LeagueID = "youth"
	LeagueWomen   LeagueID = "women"
)

// AllLeagueIDs lists every known league in display order.
var AllLeagueIDs = []LeagueID{
	LeagueGeneral, LeaguePremier, LeagueFirst, LeagueCricket,
	LeagueSenior, LeagueYouth, LeagueWomen,
}

// ValidLeagueID reports whether id names a known league.
func ValidLeagueID(id LeagueID) bool {
	for _, l := range AllLeagueIDs {
		if l == id {
			return true
		}
	}
	return false
}

// League is the admin-editable metadata for one league scope.
type League struct {
	ID      LeagueID `json:"id"`
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
}

// PlayerProfile is the identity and cosmetic data for a person. Profiles are
// created on first tournament import or manually by an admin.
type PlayerProfile struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Nickname        string `json:"nickname"`
	AvatarURL       string `json:"avatar_url"`
	Bio             string `json:"bio"`
	ImageHint       string `json:"image_hint,omitempty"`
	BackgroundURL   string `json:"background_url,omitempty"`
	BackgroundHint  string `json:"background_hint,omitempty"`
	SponsorName     string `json:"sponsor_name,omitempty"`
	SponsorLogoURL  string `json:"sponsor_logo_url,omitempty"`
	SponsorLink     string `json:"sponsor_link,omitempty"`
	SponsorTemplate string `json:"sponsor_template,omitempty"`
	ShowSponsorCTA  bool   `json:"show_sponsor_cta,omitempty"`
	SponsorCTAText  string `json:"sponsor_cta_text,omitempty"`
}

// TournamentPlayerResult is one player's placement in one tournament. The
// raw stats come from the import; the scoring fields are recomputed from
// current settings on every read path, never trusted as persisted truth.
type TournamentPlayerResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`

	// Raw stats. A missing rank is imported as 999 (unranked, sorts last).
	Rank        int     `json:"rank"`
	Avg         float64 `json:"avg"`
	N180s       int     `json:"n180s"`
	HiOut       int     `json:"hi_out"`
	BestLeg     int     `json:"best_leg"`
	NineDarters int     `json:"nine_darters,omitempty"`

	// Computed scoring fields. Points == BasePoints + BonusPoints always.
	Points      int `json:"points"`
	BasePoints  int `json:"base_points"`
	BonusPoints int `json:"bonus_points"`

	PointsFor180s         int  `json:"points_for_180s"`
	Is180BonusApplied     bool `json:"is_180_bonus_applied"`
	PointsForHiOut        int  `json:"points_for_hi_out"`
	IsHiOutBonusApplied   bool `json:"is_hi_out_bonus_applied"`
	PointsForAvg          int  `json:"points_for_avg"`
	IsAvgBonusApplied     bool `json:"is_avg_bonus_applied"`
	PointsForBestLeg      int  `json:"points_for_best_leg"`
	IsBestLegBonusApplied bool `json:"is_best_leg_bonus_applied"`
	PointsFor9Darter      int  `json:"points_for_9_darter"`
	Is9DarterBonusApplied bool `json:"is_9_darter_bonus_applied"`
}

// Tournament is one imported event. The ID is the external tournament
// identifier and doubles as the document key, so re-importing the same id
// overwrites the stored event.
type Tournament struct {
	ID      string                   `json:"id"`
	Name    string                   `json:"name"`
	Date    string                   `json:"date"` // RFC 3339
	League  LeagueID                 `json:"league"`
	Players []TournamentPlayerResult `json:"players"`
}

// ScoringSettings is the full configurable rule set for one league: base
// points per rank bracket plus five independently toggleable bonuses.
// All numeric fields are non-negative.
type ScoringSettings struct {
	PointsFor1st        int `json:"points_for_1st"`
	PointsFor2nd        int `json:"points_for_2nd"`
	PointsFor3rd4th     int `json:"points_for_3rd_4th"`
	PointsFor5th8th     int `json:"points_for_5th_8th"`
	PointsFor9th16th    int `json:"points_for_9th_16th"`
	ParticipationPoints int `json:"participation_points"`

	Enable180Bonus bool `json:"enable_180_bonus"`
	BonusPer180    int  `json:"bonus_per_180"`

	EnableHiOutBonus bool `json:"enable_hi_out_bonus"`
	HiOutThreshold   int  `json:"hi_out_threshold"`
	HiOutBonus       int  `json:"hi_out_bonus"`

	EnableAvgBonus bool    `json:"enable_avg_bonus"`
	AvgThreshold   float64 `json:"avg_threshold"`
	AvgBonus       int     `json:"avg_bonus"`

	EnableShortLegBonus bool `json:"enable_short_leg_bonus"`
	ShortLegThreshold   int  `json:"short_leg_threshold"`
	ShortLegBonus       int  `json:"short_leg_bonus"`

	Enable9DarterBonus bool `json:"enable_9_darter_bonus"`
	BonusFor9Darter    int  `json:"bonus_for_9_darter"`
}

// Player is a profile merged with aggregated career statistics for one
// league scope. Derived, never persisted. Rank 0 means the player has no
// results in scope.
type Player struct {
	PlayerProfile

	Rank          int     `json:"rank"`
	Points        int     `json:"points"`
	BasePoints    int     `json:"base_points"`
	BonusPoints   int     `json:"bonus_points"`
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Avg           float64 `json:"avg"`
	N180s         int     `json:"n180s"`
	HiOut         int     `json:"hi_out"`
	BestLeg       int     `json:"best_leg"`

	TotalPointsFor180s    int `json:"total_points_for_180s"`
	TotalPointsForHiOut   int `json:"total_points_for_hi_out"`
	TotalPointsForAvg     int `json:"total_points_for_avg"`
	TotalPointsForBestLeg int `json:"total_points_for_best_leg"`
	TotalPointsFor9Darter int `json:"total_points_for_9_darter"`
}

// PlayerTournamentHistory is one row of a player's per-tournament history.
type PlayerTournamentHistory struct {
	PlayerID       string   `json:"player_id"`
	TournamentID   string   `json:"tournament_id"`
	TournamentName string   `json:"tournament_name"`
	TournamentDate string   `json:"tournament_date"`
	League         LeagueID `json:"league"`
	LeagueName     string   `json:"league_name"`
	PlayerRank     int      `json:"player_rank"`
	PlayerPoints   int      `json:"player_points"`
}

// PartnerCategory classifies a partner entry.
type PartnerCategory string

const (
	PartnerShop     PartnerCategory = "shop"
	PartnerPlatform PartnerCategory = "platform"
	PartnerMedia    PartnerCategory = "media"
	PartnerOther    PartnerCategory = "other"
)

// Partner is a sponsor or partner shown on the public site.
type Partner struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	LogoURL   string          `json:"logo_url"`
	Category  PartnerCategory `json:"category"`
	LinkURL   string          `json:"link_url,omitempty"`
	PromoCode string          `json:"promo_code,omitempty"`
}

// SponsorshipSettings holds the site-wide sponsorship contact links.
type SponsorshipSettings struct {
	AdminTelegramLink    string `json:"admin_telegram_link"`
	GroupTelegramLink    string `json:"group_telegram_link"`
	AdminVkLink          string `json:"admin_vk_link"`
	GroupVkLink          string `json:"group_vk_link"`
	ShowGlobalSponsorCTA bool   `json:"show_global_sponsor_cta"`
}

// WSMessage is the envelope for messages pushed over the WebSocket.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
