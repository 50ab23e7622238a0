package database_test

import (
	"testing"

	"github.com/dhanvarsha/backend/internal/testutil"
)

func TestSubscriptionUpsertIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	if err := db.UpsertSubscription("https://push.example/ep1", "key1", "auth1"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := db.UpsertSubscription("https://push.example/ep1", "key2", "auth2"); err != nil {
		t.Fatalf("re-subscribe failed: %v", err)
	}

	subs, err := db.ListSubscriptions()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("re-subscribing must not duplicate the row; got %d rows", len(subs))
	}
	if subs[0].P256dh != "key2" || subs[0].Auth != "auth2" {
		t.Errorf("expected refreshed keys, got (%q, %q)", subs[0].P256dh, subs[0].Auth)
	}
}

func TestSubscriptionEmptyKeysAllowed(t *testing.T) {
	db := testutil.NewTestDB(t)

	if err := db.UpsertSubscription("https://push.example/ep1", "", ""); err != nil {
		t.Fatalf("subscribe without keys failed: %v", err)
	}

	count, err := db.CountSubscriptions()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 subscription, got %d", count)
	}
}

func TestSubscriptionDelete(t *testing.T) {
	db := testutil.NewTestDB(t)

	if err := db.UpsertSubscription("https://push.example/ep1", "k", "a"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := db.UpsertSubscription("https://push.example/ep2", "k", "a"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := db.DeleteSubscription("https://push.example/ep1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	count, err := db.CountSubscriptions()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining subscription, got %d", count)
	}

	// Deleting an unknown endpoint is not an error.
	if err := db.DeleteSubscription("https://push.example/gone"); err != nil {
		t.Errorf("delete of unknown endpoint should succeed, got %v", err)
	}
}
