package app

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dartbrigade/dartrank/internal/auth"
	"github.com/dartbrigade/dartrank/internal/logger"
	"github.com/dartbrigade/dartrank/pkg/dartsbase"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(logger.New(), ":memory:", dartsbase.NewMockClient(), auth.New("test-password"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestNew_InitializesApp(t *testing.T) {
	a := newTestApp(t)
	if a.handlers == nil || a.repo == nil {
		t.Error("expected app dependencies to be wired")
	}
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	_, err := New(logger.New(), "/nonexistent/dir/rankings.db", dartsbase.NewMockClient(), auth.New("pw"))
	if err == nil {
		t.Fatal("expected error for unwritable database path")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	a := newTestApp(t)
	server := httptest.NewServer(a.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/leagues")
	if err != nil {
		t.Fatalf("GET /api/leagues failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(server.URL + "/api/admin/stats")
	if err != nil {
		t.Fatalf("GET /api/admin/stats failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for protected route, got %d", resp.StatusCode)
	}
}

func TestGetPreferredIP_ReturnsValidIP(t *testing.T) {
	ip := getPreferredIP(realNetworkProvider{})
	if ip == "" {
		t.Error("expected non-empty IP or localhost fallback")
	}
	if ip != "localhost" && net.ParseIP(ip) == nil {
		t.Errorf("expected parseable IP, got %q", ip)
	}
}

func TestIsPrivate172(t *testing.T) {
	cases := []struct {
		ip   string
		want bool
	}{
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
	}
	for _, tc := range cases {
		if got := isPrivate172(net.ParseIP(tc.ip)); got != tc.want {
			t.Errorf("isPrivate172(%s) = %v, want %v", tc.ip, got, tc.want)
		}
	}
}
