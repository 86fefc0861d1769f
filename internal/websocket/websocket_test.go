package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/internal/models"
	"github.com/dartbrigade/dartrank/internal/services"
)

// mockSettingsService implements services.SettingsServicer for testing
type mockSettingsService struct{}

func (m *mockSettingsService) GetScoringSettings(ctx context.Context, league models.LeagueID) (models.ScoringSettings, error) {
	return models.ScoringSettings{}, nil
}
func (m *mockSettingsService) GetAllScoringSettings(ctx context.Context) (map[models.LeagueID]models.ScoringSettings, error) {
	return nil, nil
}
func (m *mockSettingsService) UpdateScoringSettings(ctx context.Context, league models.LeagueID, settings models.ScoringSettings) error {
	return nil
}
func (m *mockSettingsService) GetLeagueSettings(ctx context.Context) (map[models.LeagueID]models.League, error) {
	return nil, nil
}
func (m *mockSettingsService) GetEnabledLeagues(ctx context.Context) ([]models.League, error) {
	return []models.League{{ID: models.LeagueGeneral, Name: "Overall Ranking", Enabled: true}}, nil
}
func (m *mockSettingsService) UpdateLeagueSettings(ctx context.Context, leagues []models.League) error {
	return nil
}
func (m *mockSettingsService) GetBaseURL(ctx context.Context) (string, error)       { return "", nil }
func (m *mockSettingsService) SetBaseURL(ctx context.Context, url string) error     { return nil }
func (m *mockSettingsService) GetBackgroundURL(ctx context.Context) (string, error) { return "", nil }
func (m *mockSettingsService) SetBackgroundURL(ctx context.Context, url string) error {
	return nil
}
func (m *mockSettingsService) GetSponsorshipSettings(ctx context.Context) (models.SponsorshipSettings, error) {
	return models.SponsorshipSettings{}, nil
}
func (m *mockSettingsService) UpdateSponsorshipSettings(ctx context.Context, settings models.SponsorshipSettings) error {
	return nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func newTestHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := New(logger.New(), &mockSettingsService{})
	hub.Start()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) models.WSMessage {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.WSMessage
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return msg
}

func TestNew_CreatesHubWithDependencies(t *testing.T) {
	hub := New(logger.New(), &mockSettingsService{})

	if hub == nil {
		t.Fatal("expected hub to be created")
	}
	if hub.clients == nil || hub.broadcast == nil || hub.register == nil || hub.unregister == nil {
		t.Error("expected hub internals to be initialized")
	}
}

func TestServeWs_SendsLeaguesOnConnect(t *testing.T) {
	_, url := newTestHub(t)
	ws := dial(t, url)

	msg := readMessage(t, ws)
	if msg.Type != "leagues" {
		t.Errorf("expected leagues welcome message, got %q", msg.Type)
	}
}

func TestBroadcastRankingsInvalidated(t *testing.T) {
	hub, url := newTestHub(t)
	ws := dial(t, url)

	// Skip the welcome message.
	if msg := readMessage(t, ws); msg.Type != "leagues" {
		t.Fatalf("expected leagues first, got %q", msg.Type)
	}

	hub.BroadcastRankingsInvalidated()

	msg := readMessage(t, ws)
	if msg.Type != "rankings_invalidated" {
		t.Errorf("expected rankings_invalidated, got %q", msg.Type)
	}
}

func TestBroadcast_ReachesAllClients(t *testing.T) {
	hub, url := newTestHub(t)
	ws1 := dial(t, url)
	ws2 := dial(t, url)

	readMessage(t, ws1) // welcome
	readMessage(t, ws2)

	hub.BroadcastMessage("rankings_invalidated", nil)

	for _, ws := range []*websocket.Conn{ws1, ws2} {
		if msg := readMessage(t, ws); msg.Type != "rankings_invalidated" {
			t.Errorf("expected broadcast on every client, got %q", msg.Type)
		}
	}
}

func TestClientDisconnect_Unregisters(t *testing.T) {
	hub, url := newTestHub(t)
	ws := dial(t, url)
	readMessage(t, ws)

	ws.Close()

	// Unregistration is asynchronous; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hub.mutex.RLock()
		n := len(hub.clients)
		hub.mutex.RUnlock()
		if n == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("expected client to be unregistered after disconnect")
}
