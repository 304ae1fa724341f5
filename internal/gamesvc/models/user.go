package models

import (
	"time"
)

// User represents the users table in the database. The username doubles as
// the player's identity and display name.
type User struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
