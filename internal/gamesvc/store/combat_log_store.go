package store

import (
	"context"
	"fmt"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CombatLogStore struct {
	db *pgxpool.Pool
}

func NewCombatLogStore(db *pgxpool.Pool) *CombatLogStore {
	return &CombatLogStore{db: db}
}

// ListBySession returns the full log of a session, oldest first.
func (s *CombatLogStore) ListBySession(ctx context.Context, sessionID int64) ([]models.CombatLogEntry, error) {
	query := `
		SELECT cl.id, cl.session_id, cl.user_id, u.username, cl.card_id,
		       cl.action_type, cl.action_description, cl.created_at
		FROM combat_log cl
		JOIN users u ON u.id = cl.user_id
		WHERE cl.session_id = $1
		ORDER BY cl.created_at, cl.id
	`

	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list combat log: %w", err)
	}
	defer rows.Close()

	entries := []models.CombatLogEntry{}
	for rows.Next() {
		var e models.CombatLogEntry
		err := rows.Scan(
			&e.ID,
			&e.SessionID,
			&e.UserID,
			&e.Username,
			&e.CardID,
			&e.ActionType,
			&e.Description,
			&e.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
