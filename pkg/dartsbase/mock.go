package dartsbase

import (
	"context"
	"fmt"
)

// MockClient is a mock results-site client for testing
type MockClient struct {
	stats    map[string]*TournamentStats
	fetchErr error
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithTournament sets a tournament the mock will serve
func WithTournament(stats *TournamentStats) MockOption {
	return func(m *MockClient) {
		m.stats[stats.ID] = stats
	}
}

// WithFetchError sets an error to return from FetchTournamentStats
func WithFetchError(err error) MockOption {
	return func(m *MockClient) {
		m.fetchErr = err
	}
}

// NewMockClient creates a mock client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{stats: make(map[string]*TournamentStats)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchTournamentStats returns the configured tournament or an error
func (m *MockClient) FetchTournamentStats(_ context.Context, tournamentID string) (*TournamentStats, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	stats, ok := m.stats[tournamentID]
	if !ok {
		return nil, fmt.Errorf("tournament %s: no page with a stats table", tournamentID)
	}
	return stats, nil
}

var _ Client = (*MockClient)(nil)
