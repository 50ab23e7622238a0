package push

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/dhanvarsha/backend/internal/database"
)

// ErrNoSubscribers is returned by Broadcast when the registry is empty.
var ErrNoSubscribers = errors.New("no subscriptions available")

// ErrSubscriptionGone signals that the push provider reported the endpoint
// permanently invalid (410 Gone or 404 Not Found). The dispatcher reacts by
// pruning the subscription row.
var ErrSubscriptionGone = errors.New("subscription no longer valid")

// maxInFlight bounds how many deliveries run concurrently during one
// broadcast. The broadcast itself is unbounded in width; this only caps how
// many in-flight HTTP requests we hold open at once.
const maxInFlight = 32

// VAPIDConfig holds the credentials used to sign push delivery requests.
type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subscriber string // contact address, "mailto:..." form
}

// SendFunc performs one delivery attempt for one subscription. It returns
// nil on success, ErrSubscriptionGone when the endpoint is permanently
// invalid, or any other error for failures that may be transient.
type SendFunc func(sub *database.PushSubscription, payload []byte) error

// Dispatcher maintains the push endpoint registry (via the database service)
// and performs best-effort parallel broadcast of notifications.
type Dispatcher struct {
	db  *database.Service
	cfg VAPIDConfig

	send SendFunc
}

// NewDispatcher creates a dispatcher backed by the given database service,
// delivering over the Web Push protocol.
func NewDispatcher(db *database.Service, cfg VAPIDConfig) *Dispatcher {
	d := &Dispatcher{db: db, cfg: cfg}
	d.send = d.sendWebPush
	return d
}

// NewDispatcherWithSender creates a dispatcher that delivers through a custom
// SendFunc instead of the real push provider. Used by tests.
func NewDispatcherWithSender(db *database.Service, send SendFunc) *Dispatcher {
	return &Dispatcher{db: db, send: send}
}

// notification is the payload shape the service worker expects.
type notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// Broadcast sends a notification to every registered endpoint and reports
// how many deliveries succeeded and failed. It launches one delivery task
// per subscription (at most maxInFlight running at a time) and does not
// return until every task has finished, success or failure. A failing
// delivery never aborts the others: errors are isolated per task. Endpoints
// the provider reports as permanently gone are deleted from the registry so
// the next broadcast skips them.
func (d *Dispatcher) Broadcast(title, body string) (successCount, failCount int, err error) {
	subs, err := d.db.ListSubscriptions()
	if err != nil {
		return 0, 0, fmt.Errorf("could not load subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return 0, 0, ErrNoSubscribers
	}

	payload, err := json.Marshal(notification{Title: title, Body: body, Icon: "/ganesh.png"})
	if err != nil {
		return 0, 0, err
	}

	var success, fail int64
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxInFlight)

	for _, sub := range subs {
		wg.Add(1)
		go func(sub *database.PushSubscription) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			sendErr := d.send(sub, payload)
			if sendErr == nil {
				atomic.AddInt64(&success, 1)
				return
			}

			atomic.AddInt64(&fail, 1)
			if errors.Is(sendErr, ErrSubscriptionGone) {
				// Self-healing: the provider told us this endpoint will
				// never work again, so drop it.
				if delErr := d.db.DeleteSubscription(sub.Endpoint); delErr != nil {
					log.Printf("WARN: failed to remove invalid subscription: %v", delErr)
				} else {
					log.Println("INFO: Removed invalid push subscription")
				}
				return
			}
			// Any other failure may be transient; keep the row, no retry.
			log.Printf("WARN: push delivery failed: %v", sendErr)
		}(sub)
	}

	wg.Wait()
	return int(success), int(fail), nil
}

// sendWebPush performs one real delivery via the Web Push protocol.
func (d *Dispatcher) sendWebPush(sub *database.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      d.cfg.Subscriber,
		VAPIDPublicKey:  d.cfg.PublicKey,
		VAPIDPrivateKey: d.cfg.PrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		return ErrSubscriptionGone
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
