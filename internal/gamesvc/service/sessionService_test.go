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

func TestJoinCreatesSessionWithGameMaster(t *testing.T) {
	users := new(mockUserStore)
	sessions := new(mockSessionStore)

	users.On("GetOrCreate", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)
	sessions.On("GetOrCreate", mock.Anything, "arena1", int64(1)).
		Return(&models.GameSession{ID: 10, Name: "arena1", GMUserID: 1}, true, nil)
	sessions.On("AddPlayer", mock.Anything, int64(1), int64(10)).Return(nil)

	svc := NewSessionService(NewUserService(users), sessions)
	m, err := svc.Join(context.Background(), "arena1", "alice")
	require.NoError(t, err)

	assert.True(t, m.Created)
	assert.Equal(t, int64(10), m.Session.ID)
	assert.Equal(t, int64(1), m.Session.GMUserID)
	assert.Equal(t, "alice", m.User.Username)
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestJoinExistingSessionKeepsGameMaster(t *testing.T) {
	users := new(mockUserStore)
	sessions := new(mockSessionStore)

	users.On("GetOrCreate", mock.Anything, "bob").Return(&models.User{ID: 2, Username: "bob"}, nil)
	sessions.On("GetOrCreate", mock.Anything, "arena1", int64(2)).
		Return(&models.GameSession{ID: 10, Name: "arena1", GMUserID: 1}, false, nil)
	sessions.On("AddPlayer", mock.Anything, int64(2), int64(10)).Return(nil)

	m, err := NewSessionService(NewUserService(users), sessions).Join(context.Background(), "arena1", "bob")
	require.NoError(t, err)

	assert.False(t, m.Created)
	assert.Equal(t, int64(1), m.Session.GMUserID)
}

func TestJoinValidation(t *testing.T) {
	users := new(mockUserStore)
	sessions := new(mockSessionStore)
	svc := NewSessionService(NewUserService(users), sessions)

	_, err := svc.Join(context.Background(), "", "alice")
	assert.True(t, errors.Is(err, models.ErrInvalidRequest))

	_, err = svc.Join(context.Background(), "arena1", "")
	assert.True(t, errors.Is(err, models.ErrInvalidRequest))

	users.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	sessions.AssertNotCalled(t, "AddPlayer", mock.Anything, mock.Anything, mock.Anything)
}

func TestJoinStopsWhenMembershipFails(t *testing.T) {
	users := new(mockUserStore)
	sessions := new(mockSessionStore)
	boom := errors.New("pool closed")

	users.On("GetOrCreate", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)
	sessions.On("GetOrCreate", mock.Anything, "arena1", int64(1)).
		Return(&models.GameSession{ID: 10, Name: "arena1", GMUserID: 1}, false, nil)
	sessions.On("AddPlayer", mock.Anything, int64(1), int64(10)).Return(boom)

	_, err := NewSessionService(NewUserService(users), sessions).Join(context.Background(), "arena1", "alice")
	assert.ErrorIs(t, err, boom)
}
