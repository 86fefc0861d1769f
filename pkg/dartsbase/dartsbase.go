// Package dartsbase provides a client for the dartsbase.ru results site.
// It fetches a tournament's public stats page and extracts the raw results
// table; everything downstream (scoring, aggregation) happens elsewhere.
package dartsbase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dartbrigade/dartrank/internal/logger"
)

const (
	// DefaultBaseURL is the public results site.
	DefaultBaseURL = "https://dartsbase.ru"

	// The site blocks the default Go user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
)

// PlayerRow is one raw row of the scraped stats table. Numeric fields
// default to zero when a column is absent or unparseable; a missing rank
// is reported as 999 (unranked).
type PlayerRow struct {
	PlayerID string
	Name     string
	Rank     int
	Avg      float64
	N180s    int
	HiOut    int
	BestLeg  int
}

// TournamentStats is a parsed tournament page.
type TournamentStats struct {
	ID      string
	Name    string
	Date    time.Time
	Players []PlayerRow
}

// Client defines the interface for fetching tournament results
type Client interface {
	// FetchTournamentStats retrieves and parses one tournament's results
	FetchTournamentStats(ctx context.Context, tournamentID string) (*TournamentStats, error)
}

// HTTPClient talks to the real site
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// NewHTTPClient creates a client. An empty baseURL selects the public site.
func NewHTTPClient(baseURL string, log logger.Logger) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// FetchTournamentStats tries the dedicated stats page first and falls back
// to the tournament's main page; some events only publish the table there.
// A page only counts when its table actually carries an AVG column.
func (c *HTTPClient) FetchTournamentStats(ctx context.Context, tournamentID string) (*TournamentStats, error) {
	urls := []string{
		fmt.Sprintf("%s/tournaments/%s/stats", c.baseURL, tournamentID),
		fmt.Sprintf("%s/tournaments/%s", c.baseURL, tournamentID),
	}

	for _, url := range urls {
		html, err := c.fetch(ctx, url)
		if err != nil {
			c.log.Debug("Fetch failed, trying next URL", "url", url, "error", err)
			continue
		}

		stats, err := ParseTournamentPage(tournamentID, strings.NewReader(html))
		if err == ErrNoStatsTable {
			c.log.Debug("No stats table on page, trying next URL", "url", url)
			continue
		}
		if err != nil {
			return nil, err
		}
		return stats, nil
	}

	return nil, fmt.Errorf("tournament %s: no page with a stats table", tournamentID)
}

func (c *HTTPClient) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}
