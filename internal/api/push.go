package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dhanvarsha/backend/internal/push"
)

// subscribePayload mirrors the browser's PushSubscription JSON: an endpoint
// plus optional encryption keys.
type subscribePayload struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// sendPayload defines the JSON body for broadcasting a notification.
type sendPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// handleVapidPublicKey exposes the server's VAPID public key so browsers can
// create subscriptions addressed to us.
func (s *Server) handleVapidPublicKey(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, envelope{"publicKey": s.config.VapidPublicKey})
}

// handlePushSubscribe registers a browser push endpoint. Re-subscribing with
// a known endpoint refreshes its keys instead of creating a duplicate, so
// clients may call this as often as they like.
func (s *Server) handlePushSubscribe(w http.ResponseWriter, r *http.Request) {
	var payload subscribePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("invalid subscription"), http.StatusBadRequest)
		return
	}

	if payload.Endpoint == "" {
		s.errorJSON(w, errors.New("invalid subscription"), http.StatusBadRequest)
		return
	}

	if err := s.db.UpsertSubscription(payload.Endpoint, payload.Keys.P256dh, payload.Keys.Auth); err != nil {
		s.errorJSON(w, errors.New("failed to subscribe"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Subscribed to push notifications"})
}

// handlePushCount reports the current registry size.
func (s *Server) handlePushCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.db.CountSubscriptions()
	if err != nil {
		s.errorJSON(w, errors.New("failed to get count"), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{"count": count})
}

// handlePushSend broadcasts a notification to every subscriber. The request
// succeeds with a count summary even if every individual delivery failed;
// per-endpoint failures stay inside the dispatcher.
func (s *Server) handlePushSend(w http.ResponseWriter, r *http.Request) {
	var payload sendPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.Title == "" {
		s.errorJSON(w, errors.New("title is required"), http.StatusBadRequest)
		return
	}
	if payload.Message == "" {
		s.errorJSON(w, errors.New("message is required"), http.StatusBadRequest)
		return
	}

	successCount, failCount, err := s.push.Broadcast(payload.Title, payload.Message)
	if err != nil {
		if errors.Is(err, push.ErrNoSubscribers) {
			s.errorJSON(w, err, http.StatusBadRequest)
			return
		}
		s.errorJSON(w, errors.New("failed to send notifications"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{
		"success":      true,
		"message":      fmt.Sprintf("Notifications sent to %d subscriber(s)", successCount),
		"successCount": successCount,
		"failCount":    failCount,
	})
}
