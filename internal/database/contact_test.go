package database_test

import (
	"testing"

	"github.com/dhanvarsha/backend/internal/testutil"
)

func TestCreateContactSubmission(t *testing.T) {
	db := testutil.NewTestDB(t)

	phone := "555-0100"
	sub, err := db.CreateContactSubmission("Asha", "asha@example.com", &phone, "Hello there")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sub.ID == 0 {
		t.Error("expected an assigned id")
	}
	if sub.Phone == nil || *sub.Phone != phone {
		t.Errorf("phone not stored: %v", sub.Phone)
	}

	// Phone is optional and round-trips as nil.
	noPhone, err := db.CreateContactSubmission("Ravi", "ravi@example.com", nil, "Hi")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if noPhone.Phone != nil {
		t.Errorf("expected nil phone, got %q", *noPhone.Phone)
	}
}

func TestListContactSubmissionsNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)

	if _, err := db.CreateContactSubmission("First", "a@example.com", nil, "one"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := db.CreateContactSubmission("Second", "b@example.com", nil, "two"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	subs, err := db.ListContactSubmissions()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].Name != "Second" {
		t.Errorf("expected newest submission first, got %q", subs[0].Name)
	}
}
