package models

import "time"

type GameSession struct {
	ID        int64     `json:"id"`         // Primary key
	Name      string    `json:"name"`       // Unique, human readable room name
	GMUserID  int64     `json:"gm_user_id"` // FK to users(id), first user to join
	CreatedAt time.Time `json:"created_at"`
}

type PlayerSession struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`    // FK to users(id)
	SessionID int64     `json:"session_id"` // FK to game_sessions(id)
	JoinedAt  time.Time `json:"joined_at"`
}

// Player is a joined view of player_sessions and users used in the game-state snapshot.
type Player struct {
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	IsGM     bool      `json:"is_gm"`
	JoinedAt time.Time `json:"joined_at"`
}
