package store

import (
	"context"
	"fmt"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreate returns the user with the given username, inserting it first if
// needed. The unique constraint on username makes concurrent first references
// converge on a single row.
func (r *UserStore) GetOrCreate(ctx context.Context, username string) (*models.User, error) {
	query := `
        INSERT INTO users (username)
        VALUES ($1)
        ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
        RETURNING id, username, created_at;
    `

	u := &models.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not resolve user %q: %w", username, err)
	}

	return u, nil
}
