package service

import (
	"context"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
)

// Store contracts the services depend on. The pgx stores in package store
// satisfy them.

type UserStore interface {
	GetOrCreate(ctx context.Context, username string) (*models.User, error)
}

type SessionStore interface {
	GetOrCreate(ctx context.Context, name string, gmUserID int64) (*models.GameSession, bool, error)
	AddPlayer(ctx context.Context, userID, sessionID int64) error
	ListPlayers(ctx context.Context, sessionID int64) ([]models.Player, error)
}

type CardStore interface {
	ListCatalog(ctx context.Context, limit int) ([]models.CardDefinition, error)
}

type PlayerCardStore interface {
	CreateWithDefinition(ctx context.Context, userID, sessionID int64, def *models.CardDefinition) (int64, error)
	Relocate(ctx context.Context, r models.Relocation) error
	Get(ctx context.Context, instanceID int64) (*models.SessionCard, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.SessionCard, error)
}

type CombatLogStore interface {
	ListBySession(ctx context.Context, sessionID int64) ([]models.CombatLogEntry, error)
}
