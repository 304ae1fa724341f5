package models

import "time"

// Zones the server assigns on its own. Every other zone name is chosen by clients.
const (
	ZoneCreatedStorage = "CreatedCardStorage"
	ZoneDiscardPile    = "DiscardPile"
)

type PlayerCardInstance struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`    // owner, FK to users(id)
	CardID    int64     `json:"card_id"`    // FK to cards(id)
	SessionID int64     `json:"session_id"` // FK to game_sessions(id)
	Location  string    `json:"location"`
	SlotID    *int      `json:"slot_id"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionCard is an instance joined with its definition.
type SessionCard struct {
	PlayerCardInstance
	Definition CardDefinition `json:"definition"`
}

// Relocation is a guarded update of one instance. The update only applies when
// the instance belongs to UserID in SessionID.
type Relocation struct {
	InstanceID int64
	UserID     int64
	SessionID  int64
	Location   string
	SlotID     *int
	IsActive   bool
	Action     string
}
