package store

import (
	"context"
	"fmt"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionStore struct {
	db *pgxpool.Pool
}

func NewSessionStore(db *pgxpool.Pool) *SessionStore {
	return &SessionStore{db: db}
}

// GetOrCreate resolves a session by name. A new session records gmUserID as its
// game master; an existing one keeps its original game master. created reports
// whether this call inserted the row.
func (s *SessionStore) GetOrCreate(ctx context.Context, name string, gmUserID int64) (*models.GameSession, bool, error) {
	const query = `
INSERT INTO game_sessions (name, gm_user_id)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, gm_user_id, created_at, (xmax = 0) AS inserted;
`
	gs := &models.GameSession{}
	var created bool
	err := s.db.QueryRow(ctx, query, name, gmUserID).Scan(
		&gs.ID,
		&gs.Name,
		&gs.GMUserID,
		&gs.CreatedAt,
		&created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve session %q: %w", name, err)
	}

	return gs, created, nil
}

// AddPlayer records that userID joined sessionID. Repeated joins are no-ops.
func (s *SessionStore) AddPlayer(ctx context.Context, userID, sessionID int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_sessions (user_id, session_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT unique_session_player DO NOTHING
	`, userID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to add player %d to session %d: %w", userID, sessionID, err)
	}
	return nil
}

func (s *SessionStore) ListPlayers(ctx context.Context, sessionID int64) ([]models.Player, error) {
	query := `
		SELECT u.id, u.username, u.id = gs.gm_user_id, ps.joined_at
		FROM player_sessions ps
		JOIN users u ON u.id = ps.user_id
		JOIN game_sessions gs ON gs.id = ps.session_id
		WHERE ps.session_id = $1
		ORDER BY ps.joined_at, ps.id
	`

	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.UserID, &p.Username, &p.IsGM, &p.JoinedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return players, rows.Err()
}
