package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite" // The pure Go SQLite driver
)

// ErrNotFound is returned by queries that target a single row by id or key
// when no such row exists. Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")

// Service is the central struct for managing all database interactions.
// It owns the single pooled connection to the store; every component that
// needs persistence receives this handle at construction time rather than
// reaching for a package-level global.
type Service struct {
	db *sql.DB

	// SQLite allows only one writer at a time. Serializing writes through a
	// mutex keeps concurrent requests from tripping over SQLITE_BUSY.
	writeMu sync.Mutex
}

// NewService opens the database at the given path and verifies the connection.
func NewService(dbPath string) (*Service, error) {
	// The foreign_keys pragma is crucial: admin_tokens references
	// admin_users with ON DELETE CASCADE and we want the engine enforcing it.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	// SQLite permits a single writer, so a larger pool buys nothing. One
	// connection also makes in-memory databases behave: every statement
	// sees the same store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB provides direct access to the underlying connection for read queries.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Write executes a write operation (INSERT, UPDATE, DELETE) within a
// transaction, protected by the write mutex to ensure serial access.
func (s *Service) Write(writeFunc func(tx *sql.Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := writeFunc(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// Close releases the database connection at shutdown.
func (s *Service) Close() {
	s.db.Close()
	log.Println("Database connection closed.")
}

// InitSchema sets up all tables if they don't exist. Idempotent and safe to
// run on every application start.
func (s *Service) InitSchema() error {
	return s.Write(func(tx *sql.Tx) error {
		// Admin accounts. Passwords are stored as argon2id hashes, never
		// in cleartext.
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS admin_users (
				id INTEGER PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);`)
		if err != nil {
			return err
		}

		// Opaque session tokens. Validity is derived from expires_at at
		// check time; there is no background sweep, so rows for expired
		// tokens linger until an explicit logout deletes them.
		// expires_at is stored as unix seconds so the expiry comparison
		// is integer arithmetic rather than text ordering.
		_, err = tx.Exec(`
			CREATE TABLE IF NOT EXISTS admin_tokens (
				id INTEGER PRIMARY KEY,
				admin_id INTEGER NOT NULL,
				token TEXT NOT NULL UNIQUE,
				expires_at INTEGER NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (admin_id) REFERENCES admin_users (id) ON DELETE CASCADE
			);`)
		if err != nil {
			return err
		}

		// One draw result per (date, slot), per game. The two games use
		// structurally identical tables; the unique constraint is what
		// makes the upsert conflict-resolving.
		for _, table := range []GameTable{GameResults, SuperGameResults} {
			_, err = tx.Exec(`
				CREATE TABLE IF NOT EXISTS ` + string(table) + ` (
					id INTEGER PRIMARY KEY,
					result_date TEXT NOT NULL,
					time_slot TEXT NOT NULL,
					number_1 INTEGER NOT NULL,
					number_2 INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(result_date, time_slot)
				);`)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(`
			CREATE TABLE IF NOT EXISTS contact_submissions (
				id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				phone TEXT,
				message TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);`)
		if err != nil {
			return err
		}

		// Browser push endpoints. Keys may be empty strings when the
		// client omitted them.
		_, err = tx.Exec(`
			CREATE TABLE IF NOT EXISTS push_subscriptions (
				id INTEGER PRIMARY KEY,
				endpoint TEXT NOT NULL UNIQUE,
				p256dh TEXT,
				auth TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);`)
		return err
	})
}

// SeedAdmin inserts a default admin account if the admin_users table is
// empty. The caller supplies the already-hashed password.
func (s *Service) SeedAdmin(username, passwordHash string) error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM admin_users;`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := s.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO admin_users (username, password_hash) VALUES (?, ?);`, username, passwordHash)
		return err
	})
	if err != nil {
		return err
	}
	log.Printf("INFO: Default admin user created (username: %s)", username)
	return nil
}
