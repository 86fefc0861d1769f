package dartsbase

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoStatsTable is returned when a page has no results table with an
// AVG column. The caller treats it as "try the next URL".
var ErrNoStatsTable = errors.New("no stats table on page")

// UnrankedSentinel is the rank recorded when a row carries no parseable
// placement. It sorts after every real placement.
const UnrankedSentinel = 999

var whitespaceRe = regexp.MustCompile(`\s+`)

// Slugify derives a stable player id from a display name when the row has
// no profile link to take the site's own id from.
func Slugify(name string) string {
	return strings.ToLower(whitespaceRe.ReplaceAllString(strings.TrimSpace(name), "-"))
}

// ParseTournamentPage extracts the tournament header and the stats table
// from a results page. The table's columns are located by header text, not
// position: the site reorders columns between event types.
func ParseTournamentPage(tournamentID string, html io.Reader) (*TournamentStats, error) {
	doc, err := goquery.NewDocumentFromReader(html)
	if err != nil {
		return nil, err
	}

	stats := &TournamentStats{ID: tournamentID}
	stats.Name, stats.Date = parseHeader(doc, tournamentID)

	table := doc.Find("table").First()
	cols := mapColumns(table)
	if cols.avg < 0 {
		return nil, ErrNoStatsTable
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		text := func(index int) string {
			if index < 0 || index >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(index).Text())
		}

		nameCell := cells.Eq(cols.name)
		link := nameCell.Find("a")
		name := strings.TrimSpace(link.Text())
		if name == "" {
			name = strings.TrimSpace(nameCell.Text())
		}
		if name == "" {
			return // spacer or summary row
		}

		playerID := Slugify(name)
		if href, ok := link.Attr("href"); ok {
			if slug := lastPathSegment(href); slug != "" {
				playerID = slug
			}
		}

		rank, err := strconv.Atoi(text(cols.rank))
		if err != nil || rank <= 0 {
			rank = UnrankedSentinel
		}

		stats.Players = append(stats.Players, PlayerRow{
			PlayerID: playerID,
			Name:     name,
			Rank:     rank,
			Avg:      parseFloat(text(cols.avg)),
			N180s:    parseInt(text(cols.n180s)),
			HiOut:    parseInt(text(cols.hiOut)),
			BestLeg:  parseInt(text(cols.bestLeg)),
		})
	})

	return stats, nil
}

// parseHeader pulls the tournament name and date out of the page heading.
// The name is the h1 text without its trailing date span; the date is a
// dd.mm.yyyy string inside that span.
func parseHeader(doc *goquery.Document, tournamentID string) (string, time.Time) {
	h1 := doc.Find("h1").First()

	clone := h1.Clone()
	clone.Find("span").Remove()
	name := strings.TrimSpace(clone.Text())
	if name == "" {
		name = "Tournament #" + tournamentID
	}

	date := time.Now().UTC()
	dateText := strings.TrimSpace(h1.Find("span.text-gray-500").First().Text())
	if parsed, err := time.Parse("02.01.2006", dateText); err == nil {
		date = parsed.UTC()
	}
	return name, date
}

// columnIndexes holds the resolved position of each stat column; -1 means
// the column is absent from this table.
type columnIndexes struct {
	rank, name, avg, n180s, hiOut, bestLeg int
}

func mapColumns(table *goquery.Selection) columnIndexes {
	cols := columnIndexes{rank: 0, name: 1, avg: -1, n180s: -1, hiOut: -1, bestLeg: -1}

	table.Find("thead tr th").Each(func(i int, th *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(th.Text()))
		switch {
		case strings.HasPrefix(header, "#"):
			cols.rank = i
		case header == "player" || header == "игрок":
			cols.name = i
		case header == "avg" || header == "ср":
			cols.avg = i
		case strings.Contains(header, "180"):
			cols.n180s = i
		case strings.Contains(header, "hi-out"):
			cols.hiOut = i
		case strings.Contains(header, "best leg"):
			cols.bestLeg = i
		}
	})
	return cols
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	// The site uses a decimal comma on localized pages.
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}

func lastPathSegment(href string) string {
	href = strings.TrimRight(href, "/")
	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}
	return href
}
