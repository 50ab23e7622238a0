package database

import (
	"database/sql"
)

// UpsertSubscription registers a push endpoint, or refreshes its keys if the
// endpoint is already known. Re-subscribing never creates a duplicate row;
// the UNIQUE constraint on endpoint plus the conflict clause make this a
// single atomic statement.
func (s *Service) UpsertSubscription(endpoint, p256dh, auth string) error {
	return s.Write(func(tx *sql.Tx) error {
		query := `INSERT INTO push_subscriptions (endpoint, p256dh, auth)
			VALUES (?, ?, ?)
			ON CONFLICT(endpoint)
			DO UPDATE SET p256dh = excluded.p256dh, auth = excluded.auth;`
		_, err := tx.Exec(query, endpoint, p256dh, auth)
		return err
	})
}

// CountSubscriptions returns the number of registered endpoints.
func (s *Service) CountSubscriptions() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM push_subscriptions;`).Scan(&count)
	return count, err
}

// ListSubscriptions returns every registered endpoint with its keys.
func (s *Service) ListSubscriptions() ([]*PushSubscription, error) {
	rows, err := s.db.Query(`SELECT id, endpoint, p256dh, auth FROM push_subscriptions;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []*PushSubscription{}
	for rows.Next() {
		sub := &PushSubscription{}
		if err := rows.Scan(&sub.ID, &sub.Endpoint, &sub.P256dh, &sub.Auth); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// DeleteSubscription removes an endpoint from the registry. Used by the
// dispatcher when the push provider reports the endpoint permanently gone.
func (s *Service) DeleteSubscription(endpoint string) error {
	return s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM push_subscriptions WHERE endpoint = ?;`, endpoint)
		return err
	})
}
