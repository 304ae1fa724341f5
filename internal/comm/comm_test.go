package comm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidation(t *testing.T) {
	slot := 3
	tests := []struct {
		name    string
		request interface{ Validate() error }
		wantErr bool
	}{
		{"join ok", JoinGameRequest{SessionName: "arena1", Username: "alice"}, false},
		{"join without session", JoinGameRequest{Username: "alice"}, true},
		{"join without user", JoinGameRequest{SessionName: "arena1", Username: " "}, true},
		{"create ok", CreateCardRequest{SessionID: 1, Username: "alice"}, false},
		{"create without session", CreateCardRequest{Username: "alice"}, true},
		{"move ok", MoveCardRequest{SessionID: 1, Username: "alice", InstanceID: 4, ToZone: "battlefield", SlotID: &slot}, false},
		{"move without zone", MoveCardRequest{SessionID: 1, Username: "alice", InstanceID: 4}, true},
		{"move without instance", MoveCardRequest{SessionID: 1, Username: "alice", ToZone: "battlefield"}, true},
		{"play ok", PlayCardRequest{SessionID: 1, Username: "alice", InstanceID: 4}, false},
		{"play without user", PlayCardRequest{SessionID: 1, InstanceID: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, models.ErrInvalidRequest), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMoveRequestNullSlot(t *testing.T) {
	var r MoveCardRequest
	raw := `{"session_id":2,"username":"bob","instance_id":9,"from_zone":"hand","to_zone":"bench","slot_id":null,"is_active":true}`
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Nil(t, r.SlotID)
	assert.True(t, r.IsActive)
	assert.Equal(t, "hand", r.FromZone)
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeError, ErrorPayload{Message: "boom"})
	require.NoError(t, err)
	assert.Equal(t, TypeError, msg.Type)
	assert.JSONEq(t, `{"message":"boom"}`, string(msg.Data))

	_, err = NewMessage(TypeError, func() {})
	assert.Error(t, err)
}
