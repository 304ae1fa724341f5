package comm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
)

// inbound
const (
	TypeJoinGame   = "join-game"
	TypeCreateCard = "create-card"
	TypeMoveCard   = "move-card"
	TypePlayCard   = "play-card-action"
)

// outbound
const (
	TypeGameState    = "game-state"
	TypePlayerJoined = "player-joined"
	TypePlayerLeft   = "player-left"
	TypeCardCreated  = "card-created"
	TypeCardMoved    = "card-moved"
	TypeCardPlayed   = "card-played"
	TypeError        = "error"
)

type WSMessage struct {
	Type string          `json:"type"` // e.g. "join-game", "card-moved"
	Data json.RawMessage `json:"data"`
}

// NewMessage wraps payload into an envelope of the given type.
func NewMessage(msgType string, payload any) (*WSMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	return &WSMessage{Type: msgType, Data: data}, nil
}

type JoinGameRequest struct {
	SessionName string `json:"session_name"`
	Username    string `json:"username"`
}

func (r JoinGameRequest) Validate() error {
	if strings.TrimSpace(r.SessionName) == "" {
		return fmt.Errorf("%w: session_name is required", models.ErrInvalidRequest)
	}
	return validUsername(r.Username)
}

type CreateCardRequest struct {
	SessionID int64           `json:"session_id"`
	Username  string          `json:"username"`
	CardData  models.CardData `json:"card_data"`
}

func (r CreateCardRequest) Validate() error {
	if err := validSession(r.SessionID); err != nil {
		return err
	}
	return validUsername(r.Username)
}

type MoveCardRequest struct {
	SessionID  int64  `json:"session_id"`
	Username   string `json:"username"`
	InstanceID int64  `json:"instance_id"`
	FromZone   string `json:"from_zone"`
	ToZone     string `json:"to_zone"`
	SlotID     *int   `json:"slot_id"`
	IsActive   bool   `json:"is_active"`
}

func (r MoveCardRequest) Validate() error {
	if err := validSession(r.SessionID); err != nil {
		return err
	}
	if err := validUsername(r.Username); err != nil {
		return err
	}
	if r.InstanceID <= 0 {
		return fmt.Errorf("%w: instance_id is required", models.ErrInvalidRequest)
	}
	if strings.TrimSpace(r.ToZone) == "" {
		return fmt.Errorf("%w: to_zone is required", models.ErrInvalidRequest)
	}
	return nil
}

type PlayCardRequest struct {
	SessionID  int64  `json:"session_id"`
	Username   string `json:"username"`
	InstanceID int64  `json:"instance_id"`
	FromZone   string `json:"from_zone"`
}

func (r PlayCardRequest) Validate() error {
	if err := validSession(r.SessionID); err != nil {
		return err
	}
	if err := validUsername(r.Username); err != nil {
		return err
	}
	if r.InstanceID <= 0 {
		return fmt.Errorf("%w: instance_id is required", models.ErrInvalidRequest)
	}
	return nil
}

func validSession(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: session_id is required", models.ErrInvalidRequest)
	}
	return nil
}

func validUsername(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: username is required", models.ErrInvalidRequest)
	}
	return nil
}

// GameState is the snapshot sent to a connection when it joins a session.
type GameState struct {
	SessionID   int64                   `json:"session_id"`
	SessionName string                  `json:"session_name"`
	UserID      int64                   `json:"user_id"`
	Players     []models.Player         `json:"players"`
	Catalog     []models.CardDefinition `json:"catalog"`
	Cards       []models.SessionCard    `json:"cards"`
	CombatLog   []models.CombatLogEntry `json:"combat_log"`
}

type PlayerPresence struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type CardEvent struct {
	Card     *models.SessionCard `json:"card"`
	FromZone string              `json:"from_zone,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
