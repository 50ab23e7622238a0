package database

import (
	"database/sql"
)

// CreateContactSubmission stores a new contact form submission and returns
// the stored row. Phone may be nil.
func (s *Service) CreateContactSubmission(name, email string, phone *string, message string) (*ContactSubmission, error) {
	var id int64
	err := s.Write(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			`INSERT INTO contact_submissions (name, email, phone, message) VALUES (?, ?, ?, ?);`,
			name, email, phone, message,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetContactSubmissionByID(s.db, id)
}

// GetContactSubmissionByID fetches one submission by id.
func (s *Service) GetContactSubmissionByID(db DBorTx, id int64) (*ContactSubmission, error) {
	query := `SELECT id, name, email, phone, message, created_at FROM contact_submissions WHERE id = ?;`
	sub := &ContactSubmission{}
	err := db.QueryRow(query, id).Scan(
		&sub.ID,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.Message,
		&sub.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return sub, err
}

// ListContactSubmissions returns all submissions, newest first.
func (s *Service) ListContactSubmissions() ([]*ContactSubmission, error) {
	query := `SELECT id, name, email, phone, message, created_at FROM contact_submissions ORDER BY created_at DESC, id DESC;`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*ContactSubmission{}
	for rows.Next() {
		sub := &ContactSubmission{}
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &sub.Message, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
