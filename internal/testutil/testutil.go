package testutil

import (
	"testing"

	"github.com/dhanvarsha/backend/internal/database"
)

// NewTestDB opens a fresh in-memory database with the full schema. Every
// call yields an independent store, so tests cannot interfere with each
// other. The connection is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *database.Service {
	t.Helper()

	svc, err := database.NewService(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(svc.Close)

	if err := svc.InitSchema(); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return svc
}
