// Package session implements the cookie-backed session layer: a durable
// per-browser record, a manager that resolves exactly one record per request,
// and a flash queue with drain-once delivery across redirects.
package session

import "time"

// Flash kinds. The set is open; handlers may pass any tag the views know
// how to style.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

// Flash is one pending notice queued for the next render cycle.
type Flash struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// UserSnapshot is a denormalized copy of the authenticated user taken at
// login time. It is not a live reference; later credential changes do not
// propagate into existing sessions.
type UserSnapshot struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// recordVersion is bumped whenever Record gains or changes fields, so stored
// blobs from older deployments can be detected and migrated on load.
const recordVersion = 1

// Record is the server-side state tied to one browser via the session cookie.
// Invariant: IsLoggedIn implies User is non-nil.
type Record struct {
	ID         string        `json:"-"`
	Version    int           `json:"version"`
	User       *UserSnapshot `json:"user,omitempty"`
	IsLoggedIn bool          `json:"is_logged_in"`
	LoginAt    time.Time     `json:"login_at"`
	Flash      []Flash       `json:"flash,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	LastSeenAt time.Time     `json:"last_seen_at"`
	ExpiresAt  time.Time     `json:"expires_at"`
}

// NewRecord creates an empty anonymous record for the given session id.
func NewRecord(id string, ttl time.Duration) *Record {
	now := time.Now()
	return &Record{
		ID:         id,
		Version:    recordVersion,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}

// IsExpired reports whether the record's TTL has lapsed.
func (r *Record) IsExpired() bool {
	return r != nil && time.Now().After(r.ExpiresAt)
}

// Authenticate transitions the record to the authenticated state, storing a
// snapshot of the user and the login time.
func (r *Record) Authenticate(user UserSnapshot) {
	r.User = &user
	r.IsLoggedIn = true
	r.LoginAt = time.Now()
}

// AddFlash appends a notice to the pending queue, preserving insertion order.
func (r *Record) AddFlash(kind, message string) {
	r.Flash = append(r.Flash, Flash{Type: kind, Message: message})
}

// DrainFlash returns the pending queue and clears it in one step. The caller
// owns the returned slice; the record no longer references it.
func (r *Record) DrainFlash() []Flash {
	drained := r.Flash
	r.Flash = nil
	return drained
}

// Touch slides the expiry window forward to now + ttl.
func (r *Record) Touch(ttl time.Duration) {
	now := time.Now()
	r.LastSeenAt = now
	r.ExpiresAt = now.Add(ttl)
}
