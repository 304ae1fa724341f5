package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSnapshotAssemblesSession(t *testing.T) {
	sessions := new(mockSessionStore)
	cards := new(mockCardStore)
	instances := new(mockPlayerCardStore)
	combat := new(mockCombatLogStore)

	session := &models.GameSession{ID: 10, Name: "arena1", GMUserID: 1}
	players := []models.Player{{UserID: 1, Username: "alice", IsGM: true}}
	catalog := []models.CardDefinition{{ID: 3, Name: "Fire Bolt", Type: models.CardTypeAbility}}
	held := []models.SessionCard{{PlayerCardInstance: models.PlayerCardInstance{ID: 5, SessionID: 10}}}
	entries := []models.CombatLogEntry{{ID: 1, SessionID: 10, ActionType: models.ActionCreate}}

	sessions.On("ListPlayers", mock.Anything, int64(10)).Return(players, nil)
	cards.On("ListCatalog", mock.Anything, CatalogSize).Return(catalog, nil)
	instances.On("ListBySession", mock.Anything, int64(10)).Return(held, nil)
	combat.On("ListBySession", mock.Anything, int64(10)).Return(entries, nil)

	state, err := NewStateService(sessions, cards, instances, combat).Snapshot(context.Background(), session, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(10), state.SessionID)
	assert.Equal(t, "arena1", state.SessionName)
	assert.Equal(t, int64(2), state.UserID)
	assert.Equal(t, players, state.Players)
	assert.Equal(t, catalog, state.Catalog)
	assert.Equal(t, held, state.Cards)
	assert.Equal(t, entries, state.CombatLog)
}

func TestSnapshotFailsOnAnyQuery(t *testing.T) {
	sessions := new(mockSessionStore)
	cards := new(mockCardStore)
	instances := new(mockPlayerCardStore)
	combat := new(mockCombatLogStore)
	boom := errors.New("timeout")

	sessions.On("ListPlayers", mock.Anything, int64(10)).Return([]models.Player{}, nil)
	cards.On("ListCatalog", mock.Anything, CatalogSize).Return(nil, boom)

	_, err := NewStateService(sessions, cards, instances, combat).
		Snapshot(context.Background(), &models.GameSession{ID: 10}, 1)
	assert.ErrorIs(t, err, boom)
	instances.AssertNotCalled(t, "ListBySession", mock.Anything, mock.Anything)
	combat.AssertNotCalled(t, "ListBySession", mock.Anything, mock.Anything)
}
