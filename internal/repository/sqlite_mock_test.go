package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// TestListTournaments_QueryError tests database error propagation
func TestListTournaments_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM tournaments").WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.ListTournaments(ctx); err == nil {
		t.Error("expected query error to propagate, got nil")
	}
}

// TestListTournaments_BadDocument tests that a corrupt results document
// surfaces as an error instead of a silently empty tournament
func TestListTournaments_BadDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "name", "date", "league", "results"}).
		AddRow("77", "Broken", "2026-01-01T00:00:00Z", "premier", "{not json")

	mock.ExpectQuery("SELECT (.+) FROM tournaments").WillReturnRows(rows)

	if _, err := repo.ListTournaments(ctx); err == nil {
		t.Error("expected error from corrupt results document, got nil")
	}
}

// TestListPlayers_ScanError tests row scanning error propagation
func TestListPlayers_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	// show_sponsor_cta should be a bool; a random string forces a scan error
	rows := sqlmock.NewRows([]string{
		"id", "name", "nickname", "avatar_url", "bio", "image_hint",
		"background_url", "background_hint", "sponsor_name", "sponsor_logo_url",
		"sponsor_link", "sponsor_template", "show_sponsor_cta", "sponsor_cta_text",
	}).AddRow("p1", "Player", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "definitely-not-bool", nil)

	mock.ExpectQuery("SELECT (.+) FROM players").WillReturnRows(rows)

	if _, err := repo.ListPlayers(ctx); err == nil {
		t.Error("expected scan error, got nil")
	}
}

// TestGetSetting_QueryError tests database error propagation for settings
func TestGetSetting_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	repo := &Repository{db: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT value FROM app_settings").WillReturnError(errors.New("database is locked"))

	if _, err := repo.GetSetting(ctx, "base_url"); err == nil {
		t.Error("expected query error to propagate, got nil")
	}
}
