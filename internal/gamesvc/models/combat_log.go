package models

import "time"

const (
	ActionCreate = "create"
	ActionMove   = "move"
	ActionPlay   = "play"
)

// CombatLogEntry is one append-only row of the session audit trail.
type CombatLogEntry struct {
	ID          int64     `json:"id"`
	SessionID   int64     `json:"session_id"`
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	CardID      int64     `json:"card_id"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"action_description"`
	Timestamp   time.Time `json:"timestamp"`
}
