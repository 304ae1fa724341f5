package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	log "github.com/sirupsen/logrus"
)

type SessionService struct {
	users    *UserService
	sessions SessionStore
}

func NewSessionService(users *UserService, sessions SessionStore) *SessionService {
	return &SessionService{users: users, sessions: sessions}
}

// Membership is the outcome of resolving a join request.
type Membership struct {
	User    *models.User
	Session *models.GameSession
	Created bool // the session did not exist before this join
}

// Join resolves the user and the named session, creating either when unseen,
// and records the player's membership. A newly created session gets the
// joining user as game master.
func (s *SessionService) Join(ctx context.Context, sessionName, username string) (*Membership, error) {
	if strings.TrimSpace(sessionName) == "" {
		return nil, fmt.Errorf("%w: session_name is required", models.ErrInvalidRequest)
	}

	user, err := s.users.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	session, created, err := s.sessions.GetOrCreate(ctx, sessionName, user.ID)
	if err != nil {
		return nil, err
	}
	if created {
		log.Infof("session %q (%d) created with game master %s", session.Name, session.ID, user.Username)
	}

	if err := s.sessions.AddPlayer(ctx, user.ID, session.ID); err != nil {
		return nil, err
	}

	return &Membership{User: user, Session: session, Created: created}, nil
}
