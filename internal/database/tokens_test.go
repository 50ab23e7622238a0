package database_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dhanvarsha/backend/internal/database"
	"github.com/dhanvarsha/backend/internal/testutil"
)

func seedAdmin(t *testing.T, db *database.Service) *database.AdminUser {
	t.Helper()
	// The hash value is irrelevant at this layer; password verification
	// happens above the store.
	if err := db.SeedAdmin("admin", "fake-hash"); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	admin, err := db.GetAdminByUsername(db.DB(), "admin")
	if err != nil {
		t.Fatalf("failed to load seeded admin: %v", err)
	}
	return admin
}

func TestSeedAdminOnlyOnce(t *testing.T) {
	db := testutil.NewTestDB(t)

	seedAdmin(t, db)
	if err := db.SeedAdmin("other", "hash"); err != nil {
		t.Fatalf("repeat seed failed: %v", err)
	}

	// A second seed attempt must be a no-op once an admin exists.
	if _, err := db.GetAdminByUsername(db.DB(), "other"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected no second admin, got err %v", err)
	}
}

func TestTokenLifecycle(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := seedAdmin(t, db)

	token := "opaque-test-token"
	if err := db.CreateToken(admin.ID, token, time.Now().Add(24*time.Hour)); err != nil {
		t.Fatalf("create token failed: %v", err)
	}

	at, err := db.GetValidToken(db.DB(), token)
	if err != nil {
		t.Fatalf("expected token to be valid: %v", err)
	}
	if at.AdminID != admin.ID {
		t.Errorf("token bound to wrong admin: %d", at.AdminID)
	}

	if err := db.DeleteToken(token); err != nil {
		t.Fatalf("delete token failed: %v", err)
	}
	if _, err := db.GetValidToken(db.DB(), token); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected revoked token to be invalid, got %v", err)
	}

	// Deleting again is idempotent.
	if err := db.DeleteToken(token); err != nil {
		t.Errorf("repeat delete should succeed, got %v", err)
	}
}

func TestUnknownTokenIsInvalid(t *testing.T) {
	db := testutil.NewTestDB(t)

	if _, err := db.GetValidToken(db.DB(), "never-issued"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected unknown token to be invalid, got %v", err)
	}
}

func TestExpiredTokenRowLingers(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := seedAdmin(t, db)

	token := "already-expired"
	if err := db.CreateToken(admin.ID, token, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("create token failed: %v", err)
	}

	// Expired means invalid...
	if _, err := db.GetValidToken(db.DB(), token); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected expired token to be invalid, got %v", err)
	}

	// ...but nothing sweeps the row; it persists until explicit deletion.
	var count int
	if err := db.DB().QueryRow(`SELECT COUNT(*) FROM admin_tokens WHERE token = ?;`, token).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected expired row to linger, found %d rows", count)
	}
}

func TestConcurrentTokensForOneAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := seedAdmin(t, db)

	expiry := time.Now().Add(24 * time.Hour)
	if err := db.CreateToken(admin.ID, "token-one", expiry); err != nil {
		t.Fatalf("create token failed: %v", err)
	}
	if err := db.CreateToken(admin.ID, "token-two", expiry); err != nil {
		t.Fatalf("create token failed: %v", err)
	}

	// Both sessions are simultaneously valid.
	if _, err := db.GetValidToken(db.DB(), "token-one"); err != nil {
		t.Errorf("token-one should be valid: %v", err)
	}
	if _, err := db.GetValidToken(db.DB(), "token-two"); err != nil {
		t.Errorf("token-two should be valid: %v", err)
	}
}

func TestDuplicateTokenRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := seedAdmin(t, db)

	expiry := time.Now().Add(24 * time.Hour)
	if err := db.CreateToken(admin.ID, "dup", expiry); err != nil {
		t.Fatalf("create token failed: %v", err)
	}
	if err := db.CreateToken(admin.ID, "dup", expiry); err == nil {
		t.Error("expected unique constraint violation for duplicate token")
	}
}

func TestUpdateAdminPassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	admin := seedAdmin(t, db)

	if err := db.UpdateAdminPassword(admin.ID, "new-hash"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated, err := db.GetAdminByID(db.DB(), admin.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if updated.PasswordHash != "new-hash" {
		t.Errorf("password hash not updated: %q", updated.PasswordHash)
	}

	if err := db.UpdateAdminPassword(9999, "x"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown admin, got %v", err)
	}
}
