package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// contactPayload defines the JSON body for a contact form submission.
type contactPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Message string  `json:"message"`
}

// handleCreateContact stores a public contact submission. If SMTP forwarding
// is configured, a copy is mailed to the site inbox in the background;
// forwarding failures are logged and never affect the response, since the
// submission is already persisted.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var payload contactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.Name == "" || payload.Email == "" || payload.Message == "" {
		s.errorJSON(w, errors.New("name, email, and message are required"), http.StatusBadRequest)
		return
	}

	sub, err := s.db.CreateContactSubmission(payload.Name, payload.Email, payload.Phone, payload.Message)
	if err != nil {
		s.errorJSON(w, errors.New("failed to submit contact form"), http.StatusInternalServerError)
		return
	}

	if s.email.Enabled() {
		go func() {
			phone := ""
			if sub.Phone != nil {
				phone = *sub.Phone
			}
			if err := s.email.ForwardContactSubmission(sub.Name, sub.Email, phone, sub.Message); err != nil {
				log.Printf("WARN: could not forward contact submission %d: %v", sub.ID, err)
			}
		}()
	}

	s.writeJSON(w, http.StatusCreated, sub)
}

// handleListContact returns all contact submissions, newest first.
func (s *Server) handleListContact(w http.ResponseWriter, r *http.Request) {
	subs, err := s.db.ListContactSubmissions()
	if err != nil {
		s.errorJSON(w, errors.New("failed to fetch submissions"), http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, subs)
}
