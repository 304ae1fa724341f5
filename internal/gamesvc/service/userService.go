package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
)

// UserService struct represents the user service layer
type UserService struct {
	userStore UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(userStore UserStore) *UserService {
	return &UserService{
		userStore: userStore,
	}
}

// Resolve returns the user for username, creating it on first reference.
// Usernames are matched exactly, case included.
func (s *UserService) Resolve(ctx context.Context, username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("%w: username is required", models.ErrInvalidRequest)
	}
	return s.userStore.GetOrCreate(ctx, username)
}
