package service

import (
	"context"

	"github.com/avvvet/cardgame-services/internal/comm"
	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
)

// CatalogSize is the number of card definitions included in a snapshot.
const CatalogSize = 50

// StateService assembles the game-state snapshot sent to joining players.
type StateService struct {
	sessions SessionStore
	cards    CardStore
	instance PlayerCardStore
	combat   CombatLogStore
}

func NewStateService(sessions SessionStore, cards CardStore, instances PlayerCardStore, combat CombatLogStore) *StateService {
	return &StateService{sessions: sessions, cards: cards, instance: instances, combat: combat}
}

func (s *StateService) Snapshot(ctx context.Context, session *models.GameSession, userID int64) (*comm.GameState, error) {
	players, err := s.sessions.ListPlayers(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.cards.ListCatalog(ctx, CatalogSize)
	if err != nil {
		return nil, err
	}

	cards, err := s.instance.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	entries, err := s.combat.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &comm.GameState{
		SessionID:   session.ID,
		SessionName: session.Name,
		UserID:      userID,
		Players:     players,
		Catalog:     catalog,
		Cards:       cards,
		CombatLog:   entries,
	}, nil
}
