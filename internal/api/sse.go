package api

import (
	"fmt"
	"net/http"
)

// handleResultsStream is the handler for the public live results stream.
// Every upserted result is broadcast to all connected clients as a
// Server-Sent Event.
func (s *Server) handleResultsStream(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Flusher is needed to push data to the client as it becomes available.
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.errorJSON(w, fmt.Errorf("streaming unsupported"), http.StatusInternalServerError)
		return
	}

	clientID, clientChan := s.broker.AddClient()
	defer s.broker.RemoveClient(clientID)

	for {
		select {
		case message, open := <-clientChan:
			if !open {
				// The channel was closed by the broker.
				return
			}
			// SSE wire format: "data: {...}\n\n"
			fmt.Fprintf(w, "data: %s\n\n", message)
			flusher.Flush()
		case <-r.Context().Done():
			// Client disconnected; the defer handles cleanup.
			return
		}
	}
}
