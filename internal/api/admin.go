package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dhanvarsha/backend/internal/auth"
	"github.com/dhanvarsha/backend/internal/database"
)

// loginPayload defines the JSON body expected for admin login.
type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// changePasswordPayload defines the JSON body for rotating the admin password.
type changePasswordPayload struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// adminResponse is the DTO for the admin identity returned on login. Only
// safe fields are exposed; the password hash never leaves the server.
type adminResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// handleAdminLogin checks the credentials against the stored argon2id hash
// and, on success, issues a fresh opaque session token with a 24-hour
// expiry. An admin may hold any number of concurrently valid tokens;
// parallel logins are legitimate, not a conflict.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.Username == "" || payload.Password == "" {
		s.errorJSON(w, errors.New("username and password are required"), http.StatusBadRequest)
		return
	}

	admin, err := s.db.GetAdminByUsername(s.db.DB(), payload.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			s.errorJSON(w, errors.New("invalid credentials"), http.StatusUnauthorized)
			return
		}
		s.errorJSON(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	if !auth.CheckPasswordHash(payload.Password, admin.PasswordHash) {
		s.errorJSON(w, errors.New("invalid credentials"), http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		s.errorJSON(w, errors.New("could not generate token"), http.StatusInternalServerError)
		return
	}

	if err := s.db.CreateToken(admin.ID, token, time.Now().Add(auth.TokenTTL)); err != nil {
		s.errorJSON(w, errors.New("could not store token"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{
		"message": "Login successful",
		"admin":   adminResponse{ID: admin.ID, Username: admin.Username},
		"token":   token,
	})
}

// handleAdminCheck reports whether the presented token identifies a live
// admin session. This endpoint never errors: a missing, unknown or expired
// token simply answers `{"isAdmin": false}` with a 200. No side effects;
// checking does not refresh or extend the expiry.
func (s *Server) handleAdminCheck(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		s.writeJSON(w, http.StatusOK, envelope{"isAdmin": false})
		return
	}

	at, err := s.db.GetValidToken(s.db.DB(), token)
	if err != nil {
		s.writeJSON(w, http.StatusOK, envelope{"isAdmin": false})
		return
	}

	admin, err := s.db.GetAdminByID(s.db.DB(), at.AdminID)
	if err != nil {
		s.writeJSON(w, http.StatusOK, envelope{"isAdmin": false})
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"isAdmin": true, "username": admin.Username})
}

// handleChangePassword rotates the password of the admin identified by the
// session token. Other live tokens for the same admin remain valid: token
// validity is independent of the password value.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	adminID, err := s.getAdminIDFromContext(r)
	if err != nil {
		s.errorJSON(w, err, http.StatusUnauthorized)
		return
	}

	var payload changePasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.errorJSON(w, errors.New("bad request: could not decode JSON"), http.StatusBadRequest)
		return
	}

	if payload.OldPassword == "" || payload.NewPassword == "" {
		s.errorJSON(w, errors.New("both passwords are required"), http.StatusBadRequest)
		return
	}
	if len(payload.NewPassword) < 6 {
		s.errorJSON(w, errors.New("new password must be at least 6 characters"), http.StatusBadRequest)
		return
	}

	admin, err := s.db.GetAdminByID(s.db.DB(), adminID)
	if err != nil {
		s.errorJSON(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	if !auth.CheckPasswordHash(payload.OldPassword, admin.PasswordHash) {
		s.errorJSON(w, errors.New("current password is incorrect"), http.StatusUnauthorized)
		return
	}

	newHash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		s.errorJSON(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}

	if err := s.db.UpdateAdminPassword(adminID, newHash); err != nil {
		s.errorJSON(w, errors.New("failed to change password"), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, envelope{"message": "Password changed successfully"})
}

// handleAdminLogout revokes the presented token by deleting its row.
// Idempotent: logging out with an unknown or absent token still succeeds.
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := s.db.DeleteToken(token); err != nil {
			s.errorJSON(w, errors.New("failed to logout"), http.StatusInternalServerError)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, envelope{"message": "Logout successful"})
}
