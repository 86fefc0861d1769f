package dartsbase

import (
	"strings"
	"testing"
	"time"
)

const statsPage = `<!DOCTYPE html>
<html><body>
<h1>Spring Open <span class="text-gray-500">15.03.2026</span></h1>
<table>
<thead><tr>
<th># </th><th>Player</th><th>AVG</th><th>180s</th><th>Hi-Out</th><th>Best Leg</th>
</tr></thead>
<tbody>
<tr><td>1</td><td><a href="/players/anna-m/">Anna M</a></td><td>62,51</td><td>2</td><td>130</td><td>14</td></tr>
<tr><td>2</td><td><a href="/players/boris-k">Boris K</a></td><td>55.1</td><td>0</td><td></td><td>18</td></tr>
<tr><td>-</td><td>Walk In</td><td>30,0</td><td></td><td></td><td></td></tr>
<tr><td></td><td></td><td></td><td></td><td></td><td></td></tr>
</tbody>
</table>
</body></html>`

func TestParseTournamentPage(t *testing.T) {
	stats, err := ParseTournamentPage("501", strings.NewReader(statsPage))
	if err != nil {
		t.Fatalf("ParseTournamentPage failed: %v", err)
	}

	if stats.ID != "501" || stats.Name != "Spring Open" {
		t.Errorf("unexpected header: id %q name %q", stats.ID, stats.Name)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !stats.Date.Equal(want) {
		t.Errorf("expected date %v, got %v", want, stats.Date)
	}

	// The empty spacer row is dropped.
	if len(stats.Players) != 3 {
		t.Fatalf("expected 3 player rows, got %d", len(stats.Players))
	}

	anna := stats.Players[0]
	if anna.PlayerID != "anna-m" || anna.Name != "Anna M" {
		t.Errorf("expected id from profile link, got %+v", anna)
	}
	if anna.Rank != 1 || anna.Avg != 62.51 || anna.N180s != 2 || anna.HiOut != 130 || anna.BestLeg != 14 {
		t.Errorf("unexpected stats for anna: %+v", anna)
	}

	boris := stats.Players[1]
	if boris.PlayerID != "boris-k" || boris.Avg != 55.1 {
		t.Errorf("unexpected stats for boris: %+v", boris)
	}
	// Empty numeric cells default to zero.
	if boris.HiOut != 0 {
		t.Errorf("expected hi-out 0, got %d", boris.HiOut)
	}

	// No link: id is slugged from the name. No rank: unranked sentinel.
	walkIn := stats.Players[2]
	if walkIn.PlayerID != "walk-in" {
		t.Errorf("expected slugged id, got %q", walkIn.PlayerID)
	}
	if walkIn.Rank != UnrankedSentinel {
		t.Errorf("expected rank %d, got %d", UnrankedSentinel, walkIn.Rank)
	}
	if walkIn.Avg != 30.0 {
		t.Errorf("expected decimal comma parsed, got %v", walkIn.Avg)
	}
}

func TestParseTournamentPage_RussianHeaders(t *testing.T) {
	page := `<html><body>
<h1>Весенний турнир <span class="text-gray-500">01.02.2026</span></h1>
<table>
<thead><tr><th>#</th><th>Игрок</th><th>Ср</th><th>180</th></tr></thead>
<tbody>
<tr><td>1</td><td><a href="/players/ivan-p">Иван П</a></td><td>48,7</td><td>1</td></tr>
</tbody>
</table>
</body></html>`

	stats, err := ParseTournamentPage("502", strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseTournamentPage failed: %v", err)
	}
	if stats.Name != "Весенний турнир" {
		t.Errorf("unexpected name %q", stats.Name)
	}
	if len(stats.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(stats.Players))
	}
	p := stats.Players[0]
	if p.PlayerID != "ivan-p" || p.Avg != 48.7 || p.N180s != 1 {
		t.Errorf("unexpected player row: %+v", p)
	}
	// Columns absent from the table parse as zero.
	if p.HiOut != 0 || p.BestLeg != 0 {
		t.Errorf("expected absent columns zeroed, got %+v", p)
	}
}

func TestParseTournamentPage_NoStatsTable(t *testing.T) {
	pages := []string{
		`<html><body><h1>Bracket Only</h1><p>No results yet.</p></body></html>`,
		`<html><body><h1>Seating</h1><table><thead><tr><th>Board</th><th>Pair</th></tr></thead><tbody><tr><td>1</td><td>A vs B</td></tr></tbody></table></body></html>`,
	}
	for _, page := range pages {
		if _, err := ParseTournamentPage("503", strings.NewReader(page)); err != ErrNoStatsTable {
			t.Errorf("expected ErrNoStatsTable, got %v", err)
		}
	}
}

func TestParseTournamentPage_MissingHeader(t *testing.T) {
	page := `<html><body>
<table>
<thead><tr><th>#</th><th>Player</th><th>AVG</th></tr></thead>
<tbody><tr><td>1</td><td>Solo</td><td>50</td></tr></tbody>
</table>
</body></html>`

	stats, err := ParseTournamentPage("504", strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseTournamentPage failed: %v", err)
	}
	if stats.Name != "Tournament #504" {
		t.Errorf("expected fallback name, got %q", stats.Name)
	}
	// No date span: defaults to now, which is never the zero time.
	if stats.Date.IsZero() {
		t.Error("expected a non-zero default date")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Anna M", "anna-m"},
		{"  Boris   K  ", "boris-k"},
		{"ИВАН", "иван"},
		{"single", "single"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
