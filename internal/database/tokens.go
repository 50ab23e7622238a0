package database

import (
	"database/sql"
	"time"
)

// --- Admin user queries ---

// GetAdminByUsername looks up an admin account by exact username.
func (s *Service) GetAdminByUsername(db DBorTx, username string) (*AdminUser, error) {
	query := `SELECT id, username, password_hash, created_at FROM admin_users WHERE username = ?;`
	admin := &AdminUser{}
	err := db.QueryRow(query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return admin, err
}

// GetAdminByID fetches an admin account by id.
func (s *Service) GetAdminByID(db DBorTx, id int64) (*AdminUser, error) {
	query := `SELECT id, username, password_hash, created_at FROM admin_users WHERE id = ?;`
	admin := &AdminUser{}
	err := db.QueryRow(query, id).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return admin, err
}

// UpdateAdminPassword overwrites the stored password hash for an admin.
// Existing session tokens stay valid; token validity is independent of the
// password value.
func (s *Service) UpdateAdminPassword(adminID int64, passwordHash string) error {
	return s.Write(func(tx *sql.Tx) error {
		res, err := tx.Exec(`UPDATE admin_users SET password_hash = ? WHERE id = ?;`, passwordHash, adminID)
		if err != nil {
			return err
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// --- Token queries ---

// CreateToken persists a freshly issued token with its expiry. The UNIQUE
// constraint on the token column guarantees no two live tokens collide.
func (s *Service) CreateToken(adminID int64, token string, expiresAt time.Time) error {
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO admin_tokens (admin_id, token, expires_at) VALUES (?, ?, ?);`,
			adminID, token, expiresAt.Unix(),
		)
		return err
	})
}

// GetValidToken returns the token row iff it exists and has not expired.
// Expired rows are never cleaned up by any background process, so the
// expiry predicate here is the sole authority on validity.
func (s *Service) GetValidToken(db DBorTx, token string) (*AdminToken, error) {
	query := `SELECT id, admin_id, token, expires_at FROM admin_tokens WHERE token = ? AND expires_at > ?;`
	at := &AdminToken{}
	var expiresAt int64
	err := db.QueryRow(query, token, time.Now().Unix()).Scan(
		&at.ID,
		&at.AdminID,
		&at.Token,
		&expiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	at.ExpiresAt = time.Unix(expiresAt, 0)
	return at, nil
}

// DeleteToken revokes a token by deleting its row. Idempotent: deleting a
// token that does not exist is not an error.
func (s *Service) DeleteToken(token string) error {
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM admin_tokens WHERE token = ?;`, token)
		return err
	})
}
