package models

import "time"

// Session is a server-side login session. The access token carries the
// session ID, so deleting the row ends the session immediately.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
