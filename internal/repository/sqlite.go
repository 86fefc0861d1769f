package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dartbrigade/dartrank/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			nickname TEXT,
			avatar_url TEXT,
			bio TEXT,
			image_hint TEXT,
			background_url TEXT,
			background_hint TEXT,
			sponsor_name TEXT,
			sponsor_logo_url TEXT,
			sponsor_link TEXT,
			sponsor_template TEXT,
			show_sponsor_cta BOOLEAN DEFAULT 0,
			sponsor_cta_text TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			date TEXT NOT NULL,
			league TEXT NOT NULL,
			results TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scoring_overrides (
			league TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS league_overrides (
			league TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			enabled BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS partners (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			logo_url TEXT,
			category TEXT NOT NULL DEFAULT 'other',
			link_url TEXT,
			promo_code TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sponsor_clicks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_id TEXT NOT NULL,
			player_name TEXT,
			sponsor_name TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tournaments_league ON tournaments(league)`,
		`CREATE INDEX IF NOT EXISTS idx_visits_created ON visits(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_clicks_player ON sponsor_clicks(player_id)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

// ==================== Player Methods ====================

const playerColumns = `id, name, nickname, avatar_url, bio, image_hint,
	background_url, background_hint, sponsor_name, sponsor_logo_url,
	sponsor_link, sponsor_template, show_sponsor_cta, sponsor_cta_text`

func scanPlayer(scanner interface{ Scan(...any) error }) (models.PlayerProfile, error) {
	var p models.PlayerProfile
	var nickname, avatarURL, bio, imageHint, backgroundURL, backgroundHint,
		sponsorName, sponsorLogoURL, sponsorLink, sponsorTemplate, sponsorCTAText sql.NullString
	err := scanner.Scan(&p.ID, &p.Name, &nickname, &avatarURL, &bio, &imageHint,
		&backgroundURL, &backgroundHint, &sponsorName, &sponsorLogoURL,
		&sponsorLink, &sponsorTemplate, &p.ShowSponsorCTA, &sponsorCTAText)
	if err != nil {
		return p, err
	}
	p.Nickname = nickname.String
	p.AvatarURL = avatarURL.String
	p.Bio = bio.String
	p.ImageHint = imageHint.String
	p.BackgroundURL = backgroundURL.String
	p.BackgroundHint = backgroundHint.String
	p.SponsorName = sponsorName.String
	p.SponsorLogoURL = sponsorLogoURL.String
	p.SponsorLink = sponsorLink.String
	p.SponsorTemplate = sponsorTemplate.String
	p.SponsorCTAText = sponsorCTAText.String
	return p, nil
}

// ListPlayers returns all player profiles ordered by name
func (r *Repository) ListPlayers(ctx context.Context) ([]models.PlayerProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []models.PlayerProfile
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetPlayer retrieves a player profile by id
func (r *Repository) GetPlayer(ctx context.Context, id string) (*models.PlayerProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPlayers writes the given profiles in one transaction, replacing
// existing rows with the same id (last writer wins).
func (r *Repository) UpsertPlayers(ctx context.Context, players []models.PlayerProfile) error {
	if len(players) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			nickname = excluded.nickname,
			avatar_url = excluded.avatar_url,
			bio = excluded.bio,
			image_hint = excluded.image_hint,
			background_url = excluded.background_url,
			background_hint = excluded.background_hint,
			sponsor_name = excluded.sponsor_name,
			sponsor_logo_url = excluded.sponsor_logo_url,
			sponsor_link = excluded.sponsor_link,
			sponsor_template = excluded.sponsor_template,
			show_sponsor_cta = excluded.show_sponsor_cta,
			sponsor_cta_text = excluded.sponsor_cta_text
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		_, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Nickname, p.AvatarURL,
			p.Bio, p.ImageHint, p.BackgroundURL, p.BackgroundHint,
			p.SponsorName, p.SponsorLogoURL, p.SponsorLink, p.SponsorTemplate,
			p.ShowSponsorCTA, p.SponsorCTAText)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeletePlayer deletes a player profile
func (r *Repository) DeletePlayer(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearPlayers removes every player profile
func (r *Repository) ClearPlayers(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM players`)
	return err
}

// ==================== Tournament Methods ====================

func scanTournament(scanner interface{ Scan(...any) error }) (models.Tournament, error) {
	var t models.Tournament
	var resultsJSON string
	if err := scanner.Scan(&t.ID, &t.Name, &t.Date, &t.League, &resultsJSON); err != nil {
		return t, err
	}
	if err := json.Unmarshal([]byte(resultsJSON), &t.Players); err != nil {
		return t, err
	}
	return t, nil
}

// ListTournaments returns all tournaments, newest first
func (r *Repository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, date, league, results FROM tournaments ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

// GetTournament retrieves a tournament by id
func (r *Repository) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, date, league, results FROM tournaments WHERE id = ?`, id)
	t, err := scanTournament(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpsertTournaments writes tournament documents in one transaction. An
// existing tournament with the same id is overwritten, which is how a
// re-import corrects previously scraped data.
func (r *Repository) UpsertTournaments(ctx context.Context, tournaments []models.Tournament) error {
	if len(tournaments) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tournaments (id, name, date, league, results)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			league = excluded.league,
			results = excluded.results
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tournaments {
		resultsJSON, err := json.Marshal(t.Players)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.Name, t.Date, t.League, string(resultsJSON)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteTournament deletes a single tournament
func (r *Repository) DeleteTournament(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearTournaments removes every tournament
func (r *Repository) ClearTournaments(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tournaments`)
	return err
}

// ==================== Config Methods ====================

// GetScoringOverride returns the stored scoring override document for a league
func (r *Repository) GetScoringOverride(ctx context.Context, league models.LeagueID) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM scoring_overrides WHERE league = ?`, league).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// SetScoringOverride stores the scoring override document for a league
func (r *Repository) SetScoringOverride(ctx context.Context, league models.LeagueID, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scoring_overrides (league, data) VALUES (?, ?)
		ON CONFLICT(league) DO UPDATE SET data = excluded.data
	`, league, string(data))
	return err
}

// ListScoringOverrides returns every stored scoring override keyed by league
func (r *Repository) ListScoringOverrides(ctx context.Context) (map[models.LeagueID][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT league, data FROM scoring_overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[models.LeagueID][]byte)
	for rows.Next() {
		var league, data string
		if err := rows.Scan(&league, &data); err != nil {
			return nil, err
		}
		overrides[models.LeagueID(league)] = []byte(data)
	}
	return overrides, rows.Err()
}

// ListLeagueOverrides returns the stored league metadata overrides
func (r *Repository) ListLeagueOverrides(ctx context.Context) (map[models.LeagueID]models.League, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT league, name, enabled FROM league_overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make(map[models.LeagueID]models.League)
	for rows.Next() {
		var l models.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Enabled); err != nil {
			return nil, err
		}
		overrides[l.ID] = l
	}
	return overrides, rows.Err()
}

// SetLeagueOverride stores the metadata override for one league
func (r *Repository) SetLeagueOverride(ctx context.Context, league models.League) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO league_overrides (league, name, enabled) VALUES (?, ?, ?)
		ON CONFLICT(league) DO UPDATE SET name = excluded.name, enabled = excluded.enabled
	`, league.ID, league.Name, league.Enabled)
	return err
}

// GetSetting retrieves an app setting value by key
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting stores an app setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// ==================== Partner Methods ====================

// ListPartners returns all partners ordered by name
func (r *Repository) ListPartners(ctx context.Context) ([]models.Partner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, logo_url, category, link_url, promo_code FROM partners ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []models.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func scanPartner(scanner interface{ Scan(...any) error }) (models.Partner, error) {
	var p models.Partner
	var logoURL, linkURL, promoCode sql.NullString
	if err := scanner.Scan(&p.ID, &p.Name, &logoURL, &p.Category, &linkURL, &promoCode); err != nil {
		return p, err
	}
	p.LogoURL = logoURL.String
	p.LinkURL = linkURL.String
	p.PromoCode = promoCode.String
	return p, nil
}

// GetPartner retrieves a partner by id
func (r *Repository) GetPartner(ctx context.Context, id string) (*models.Partner, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, logo_url, category, link_url, promo_code FROM partners WHERE id = ?`, id)
	p, err := scanPartner(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPartner creates or replaces a partner record
func (r *Repository) UpsertPartner(ctx context.Context, partner models.Partner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO partners (id, name, logo_url, category, link_url, promo_code)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			logo_url = excluded.logo_url,
			category = excluded.category,
			link_url = excluded.link_url,
			promo_code = excluded.promo_code
	`, partner.ID, partner.Name, partner.LogoURL, partner.Category, partner.LinkURL, partner.PromoCode)
	return err
}

// DeletePartner deletes a partner record
func (r *Repository) DeletePartner(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM partners WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ==================== Analytics Methods ====================

// LogVisit records one site visit
func (r *Repository) LogVisit(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO visits DEFAULT VALUES`)
	return err
}

// CountVisitsSince counts visits recorded at or after the given time
func (r *Repository) CountVisitsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM visits WHERE created_at >= ?`, since.UTC()).Scan(&count)
	return count, err
}

// CountVisits counts all recorded visits
func (r *Repository) CountVisits(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits`).Scan(&count)
	return count, err
}

// LogSponsorClick records one click on a player's sponsor link
func (r *Repository) LogSponsorClick(ctx context.Context, playerID, playerName, sponsorName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sponsor_clicks (player_id, player_name, sponsor_name) VALUES (?, ?, ?)
	`, playerID, playerName, sponsorName)
	return err
}

// ListSponsorClickCounts returns click totals grouped by player and
// sponsor, most-clicked first
func (r *Repository) ListSponsorClickCounts(ctx context.Context) ([]SponsorClickCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, COALESCE(player_name, ''), COALESCE(sponsor_name, ''), COUNT(*)
		FROM sponsor_clicks
		GROUP BY player_id, sponsor_name
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []SponsorClickCount
	for rows.Next() {
		var c SponsorClickCount
		if err := rows.Scan(&c.PlayerID, &c.PlayerName, &c.SponsorName, &c.Clicks); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
