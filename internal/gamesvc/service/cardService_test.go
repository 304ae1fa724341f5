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

func TestCreateReturnsPersistedCard(t *testing.T) {
	store := new(mockPlayerCardStore)
	stored := &models.SessionCard{
		PlayerCardInstance: models.PlayerCardInstance{ID: 5, UserID: 1, CardID: 3, SessionID: 10, Location: models.ZoneCreatedStorage},
		Definition:         models.CardDefinition{ID: 3, Name: "Fire Bolt", Type: models.CardTypeAbility},
	}

	store.On("CreateWithDefinition", mock.Anything, int64(1), int64(10), mock.MatchedBy(func(d *models.CardDefinition) bool {
		return d.Name == "Fire Bolt" && d.Type == models.CardTypeAbility
	})).Return(int64(5), nil)
	store.On("Get", mock.Anything, int64(5)).Return(stored, nil)

	card, err := NewCardService(store).Create(context.Background(), 1, 10, models.CardData{Name: "Fire Bolt", Type: "Ability"})
	require.NoError(t, err)
	assert.Equal(t, stored, card)
	store.AssertExpectations(t)
}

func TestCreateRejectsInvalidCardBeforeStore(t *testing.T) {
	store := new(mockPlayerCardStore)
	damage := 4

	_, err := NewCardService(store).Create(context.Background(), 1, 10, models.CardData{
		Name:           "Shield",
		Type:           "hero",
		VariantColumns: models.VariantColumns{Damage: &damage},
	})
	assert.True(t, errors.Is(err, models.ErrInvalidCard))
	store.AssertNotCalled(t, "CreateWithDefinition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveNotOwned(t *testing.T) {
	store := new(mockPlayerCardStore)
	store.On("Relocate", mock.Anything, mock.Anything).Return(models.ErrCardNotOwned)

	_, err := NewCardService(store).Move(context.Background(), 2, 10, 5, "battlefield", nil, true)
	assert.ErrorIs(t, err, models.ErrCardNotOwned)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestMovePassesDestination(t *testing.T) {
	store := new(mockPlayerCardStore)
	slot := 3
	moved := &models.SessionCard{PlayerCardInstance: models.PlayerCardInstance{ID: 5, Location: "battlefield", SlotID: &slot, IsActive: true}}

	store.On("Relocate", mock.Anything, models.Relocation{
		InstanceID: 5, UserID: 1, SessionID: 10,
		Location: "battlefield", SlotID: &slot, IsActive: true,
		Action: models.ActionMove,
	}).Return(nil)
	store.On("Get", mock.Anything, int64(5)).Return(moved, nil)

	card, err := NewCardService(store).Move(context.Background(), 1, 10, 5, "battlefield", &slot, true)
	require.NoError(t, err)
	assert.Equal(t, "battlefield", card.Location)
	store.AssertExpectations(t)
}

func TestPlayForcesDiscard(t *testing.T) {
	store := new(mockPlayerCardStore)
	store.On("Relocate", mock.Anything, mock.MatchedBy(func(r models.Relocation) bool {
		return r.Location == models.ZoneDiscardPile && r.SlotID == nil && !r.IsActive && r.Action == models.ActionPlay
	})).Return(nil)
	store.On("Get", mock.Anything, int64(5)).Return(&models.SessionCard{
		PlayerCardInstance: models.PlayerCardInstance{ID: 5, Location: models.ZoneDiscardPile},
	}, nil)

	card, err := NewCardService(store).Play(context.Background(), 1, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, models.ZoneDiscardPile, card.Location)
	assert.Nil(t, card.SlotID)
	assert.False(t, card.IsActive)
	store.AssertExpectations(t)
}
