package database

import (
	"time"
)

// AdminUser represents a record in the 'admin_users' table.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never serialized into responses
	CreatedAt    time.Time `json:"createdAt"`
}

// AdminToken represents an opaque session token row. A token is valid while
// `now < ExpiresAt`; revocation is simply deleting the row.
type AdminToken struct {
	ID        int64
	AdminID   int64
	Token     string
	ExpiresAt time.Time
}

// Result represents one draw outcome for a (date, slot) pair. Dates are
// stored as ISO "YYYY-MM-DD" strings, which keeps equality and range
// comparisons in SQL straightforward.
type Result struct {
	ID         int64     `json:"id"`
	ResultDate string    `json:"result_date"`
	TimeSlot   string    `json:"time_slot"`
	Number1    int       `json:"number_1"`
	Number2    int       `json:"number_2"`
	CreatedAt  time.Time `json:"-"`
}

// ContactSubmission represents a record in the 'contact_submissions' table.
// Phone is optional and may be NULL.
type ContactSubmission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// PushSubscription represents one browser push endpoint with its encryption
// keys. The endpoint is the uniqueness key; re-subscribing with the same
// endpoint overwrites the keys in place.
type PushSubscription struct {
	ID       int64  `json:"id"`
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}
