package push

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/dhanvarsha/backend/internal/database"
	"github.com/dhanvarsha/backend/internal/testutil"
)

func subscribeAll(t *testing.T, db *database.Service, endpoints ...string) {
	t.Helper()
	for _, ep := range endpoints {
		if err := db.UpsertSubscription(ep, "p256dh", "auth"); err != nil {
			t.Fatalf("subscribe %s failed: %v", ep, err)
		}
	}
}

func TestBroadcastAllSucceed(t *testing.T) {
	db := testutil.NewTestDB(t)
	subscribeAll(t, db, "ep1", "ep2", "ep3")

	var delivered int64
	d := NewDispatcherWithSender(db, func(sub *database.PushSubscription, payload []byte) error {
		atomic.AddInt64(&delivered, 1)
		return nil
	})

	success, fail, err := d.Broadcast("Hi", "There")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if success != 3 || fail != 0 {
		t.Errorf("expected (3, 0), got (%d, %d)", success, fail)
	}
	if delivered != 3 {
		t.Errorf("expected one delivery attempt per endpoint, got %d", delivered)
	}
}

func TestBroadcastEmptyRegistry(t *testing.T) {
	db := testutil.NewTestDB(t)

	d := NewDispatcherWithSender(db, func(sub *database.PushSubscription, payload []byte) error {
		t.Error("sender must not run with an empty registry")
		return nil
	})

	if _, _, err := d.Broadcast("Hi", "There"); !errors.Is(err, ErrNoSubscribers) {
		t.Errorf("expected ErrNoSubscribers, got %v", err)
	}
}

func TestBroadcastPrunesGoneEndpoints(t *testing.T) {
	db := testutil.NewTestDB(t)
	subscribeAll(t, db, "ep-alive", "ep-gone")

	d := NewDispatcherWithSender(db, func(sub *database.PushSubscription, payload []byte) error {
		if sub.Endpoint == "ep-gone" {
			return ErrSubscriptionGone
		}
		return nil
	})

	success, fail, err := d.Broadcast("Hi", "There")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if success != 1 || fail != 1 {
		t.Errorf("expected (1, 1), got (%d, %d)", success, fail)
	}

	// The gone endpoint was pruned; the healthy one stays.
	count, err := db.CountSubscriptions()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining subscription, got %d", count)
	}
	subs, err := db.ListSubscriptions()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if subs[0].Endpoint != "ep-alive" {
		t.Errorf("wrong subscription survived: %q", subs[0].Endpoint)
	}
}

func TestBroadcastTransientFailureKeepsSubscription(t *testing.T) {
	db := testutil.NewTestDB(t)
	subscribeAll(t, db, "ep-flaky")

	d := NewDispatcherWithSender(db, func(sub *database.PushSubscription, payload []byte) error {
		return errors.New("provider timeout")
	})

	success, fail, err := d.Broadcast("Hi", "There")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if success != 0 || fail != 1 {
		t.Errorf("expected (0, 1), got (%d, %d)", success, fail)
	}

	// Transient failures do not prune; there is no retry either.
	count, err := db.CountSubscriptions()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected subscription to survive a transient failure, got %d rows", count)
	}
}

func TestBroadcastBarrierCountsEveryEndpoint(t *testing.T) {
	db := testutil.NewTestDB(t)

	// More endpoints than maxInFlight to exercise the semaphore.
	endpoints := make([]string, 100)
	for i := range endpoints {
		endpoints[i] = fmt.Sprintf("ep-%03d", i)
	}
	subscribeAll(t, db, endpoints...)

	d := NewDispatcherWithSender(db, func(sub *database.PushSubscription, payload []byte) error {
		// Fail every other delivery; the barrier must still account for all.
		if sub.Endpoint[len(sub.Endpoint)-1]%2 == 0 {
			return errors.New("boom")
		}
		return nil
	})

	success, fail, err := d.Broadcast("Hi", "There")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if success+fail != len(endpoints) {
		t.Errorf("success+fail must equal the pre-call subscriber count: %d+%d != %d", success, fail, len(endpoints))
	}
}
