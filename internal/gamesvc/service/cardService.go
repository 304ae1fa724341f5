package service

import (
	"context"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
)

type CardService struct {
	store PlayerCardStore
}

func NewCardService(store PlayerCardStore) *CardService {
	return &CardService{store: store}
}

// Create validates data, persists it as a new definition with one instance in
// the session's created-card storage, and returns the instance as stored.
func (s *CardService) Create(ctx context.Context, userID, sessionID int64, data models.CardData) (*models.SessionCard, error) {
	def, err := data.Definition()
	if err != nil {
		return nil, err
	}

	instanceID, err := s.store.CreateWithDefinition(ctx, userID, sessionID, def)
	if err != nil {
		return nil, err
	}

	return s.store.Get(ctx, instanceID)
}

// Move relocates an instance owned by userID in sessionID and returns it as
// stored after the update.
func (s *CardService) Move(ctx context.Context, userID, sessionID, instanceID int64, zone string, slotID *int, active bool) (*models.SessionCard, error) {
	return s.relocate(ctx, models.Relocation{
		InstanceID: instanceID,
		UserID:     userID,
		SessionID:  sessionID,
		Location:   zone,
		SlotID:     slotID,
		IsActive:   active,
		Action:     models.ActionMove,
	})
}

// Play discards an instance: it ends up in the discard pile, without a slot
// and inactive, whatever its previous state.
func (s *CardService) Play(ctx context.Context, userID, sessionID, instanceID int64) (*models.SessionCard, error) {
	return s.relocate(ctx, models.Relocation{
		InstanceID: instanceID,
		UserID:     userID,
		SessionID:  sessionID,
		Location:   models.ZoneDiscardPile,
		SlotID:     nil,
		IsActive:   false,
		Action:     models.ActionPlay,
	})
}

func (s *CardService) relocate(ctx context.Context, r models.Relocation) (*models.SessionCard, error) {
	if err := s.store.Relocate(ctx, r); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, r.InstanceID)
}
