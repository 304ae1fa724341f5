package service

import (
	"context"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/stretchr/testify/mock"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) GetOrCreate(ctx context.Context, name string, gmUserID int64) (*models.GameSession, bool, error) {
	args := m.Called(ctx, name, gmUserID)
	s, _ := args.Get(0).(*models.GameSession)
	return s, args.Bool(1), args.Error(2)
}

func (m *mockSessionStore) AddPlayer(ctx context.Context, userID, sessionID int64) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *mockSessionStore) ListPlayers(ctx context.Context, sessionID int64) ([]models.Player, error) {
	args := m.Called(ctx, sessionID)
	p, _ := args.Get(0).([]models.Player)
	return p, args.Error(1)
}

type mockCardStore struct{ mock.Mock }

func (m *mockCardStore) ListCatalog(ctx context.Context, limit int) ([]models.CardDefinition, error) {
	args := m.Called(ctx, limit)
	d, _ := args.Get(0).([]models.CardDefinition)
	return d, args.Error(1)
}

type mockPlayerCardStore struct{ mock.Mock }

func (m *mockPlayerCardStore) CreateWithDefinition(ctx context.Context, userID, sessionID int64, def *models.CardDefinition) (int64, error) {
	args := m.Called(ctx, userID, sessionID, def)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPlayerCardStore) Relocate(ctx context.Context, r models.Relocation) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockPlayerCardStore) Get(ctx context.Context, instanceID int64) (*models.SessionCard, error) {
	args := m.Called(ctx, instanceID)
	c, _ := args.Get(0).(*models.SessionCard)
	return c, args.Error(1)
}

func (m *mockPlayerCardStore) ListBySession(ctx context.Context, sessionID int64) ([]models.SessionCard, error) {
	args := m.Called(ctx, sessionID)
	c, _ := args.Get(0).([]models.SessionCard)
	return c, args.Error(1)
}

type mockCombatLogStore struct{ mock.Mock }

func (m *mockCombatLogStore) ListBySession(ctx context.Context, sessionID int64) ([]models.CombatLogEntry, error) {
	args := m.Called(ctx, sessionID)
	e, _ := args.Get(0).([]models.CombatLogEntry)
	return e, args.Error(1)
}
