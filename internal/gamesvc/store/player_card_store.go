package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const instanceColumns = `pc.id, pc.user_id, pc.card_id, pc.session_id, pc.location, pc.slot_id, pc.is_active, pc.updated_at`

type PlayerCardStore struct {
	db *pgxpool.Pool
}

func NewPlayerCardStore(db *pgxpool.Pool) *PlayerCardStore {
	return &PlayerCardStore{db: db}
}

func sessionCardDest(sc *models.SessionCard) []any {
	pc := &sc.PlayerCardInstance
	dest := []any{&pc.ID, &pc.UserID, &pc.CardID, &pc.SessionID, &pc.Location, &pc.SlotID, &pc.IsActive, &pc.UpdatedAt}
	return append(dest, cardDest(&sc.Definition)...)
}

// CreateWithDefinition inserts the definition, one instance of it in
// sessionID's created-card storage and the matching combat log row. The three
// inserts run as a single statement so they commit or fail together.
func (s *PlayerCardStore) CreateWithDefinition(ctx context.Context, userID, sessionID int64, def *models.CardDefinition) (int64, error) {
	const query = `
WITH def AS (
  INSERT INTO cards (name, card_type, description, is_active, power_level,
    health, attack, defense, speed, hero_class, special_ability,
    mana_cost, cooldown, effect_range, duration, effect, target_type,
    suit, rank, color, face_value,
    damage, durability, weight, weapon_class, attack_speed)
  VALUES ($1, $2, $3, $4, $5,
    $6, $7, $8, $9, $10, $11,
    $12, $13, $14, $15, $16, $17,
    $18, $19, $20, $21,
    $22, $23, $24, $25, $26)
  RETURNING id, name
), inst AS (
  INSERT INTO player_cards (user_id, card_id, session_id, location, slot_id, is_active)
  SELECT $27::bigint, def.id, $28::bigint, $29::text, NULL::integer, FALSE
  FROM def
  RETURNING id, card_id
), logged AS (
  INSERT INTO combat_log (session_id, user_id, card_id, action_type, action_description)
  SELECT $28::bigint, $27::bigint, inst.card_id, $30::text, 'created ' || def.name
  FROM inst JOIN def ON def.id = inst.card_id
)
SELECT id FROM inst;
`
	args := append(cardArgs(def), userID, sessionID, models.ZoneCreatedStorage, models.ActionCreate)

	var instanceID int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&instanceID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, fmt.Errorf("%w: unknown session %d", models.ErrInvalidRequest, sessionID)
		}
		return 0, fmt.Errorf("failed to create card: %w", err)
	}

	return instanceID, nil
}

var actionVerbs = map[string]string{
	models.ActionMove: "moved",
	models.ActionPlay: "played",
}

// Relocate applies r if the instance belongs to r.UserID in r.SessionID and
// logs it in the same statement. It returns models.ErrCardNotOwned when no row
// matched, in which case nothing was written.
func (s *PlayerCardStore) Relocate(ctx context.Context, r models.Relocation) error {
	const query = `
WITH moved AS (
  UPDATE player_cards
  SET location = $1, slot_id = $2, is_active = $3, updated_at = now()
  WHERE id = $4 AND user_id = $5 AND session_id = $6
  RETURNING id, user_id, card_id, session_id, location
), logged AS (
  INSERT INTO combat_log (session_id, user_id, card_id, action_type, action_description)
  SELECT m.session_id, m.user_id, m.card_id, $7::text, $8::text || ' ' || c.name || ' to ' || m.location
  FROM moved m JOIN cards c ON c.id = m.card_id
)
SELECT id FROM moved;
`
	verb, ok := actionVerbs[r.Action]
	if !ok {
		return fmt.Errorf("%w: unknown action %q", models.ErrInvalidRequest, r.Action)
	}

	var id int64
	err := s.db.QueryRow(ctx, query,
		r.Location, r.SlotID, r.IsActive,
		r.InstanceID, r.UserID, r.SessionID,
		r.Action, verb,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrCardNotOwned
		}
		return fmt.Errorf("failed to relocate card %d: %w", r.InstanceID, err)
	}

	return nil
}

// Get returns one instance joined with its definition.
func (s *PlayerCardStore) Get(ctx context.Context, instanceID int64) (*models.SessionCard, error) {
	query := `
		SELECT ` + instanceColumns + `, ` + cardColumns + `
		FROM player_cards pc
		JOIN cards c ON c.id = pc.card_id
		WHERE pc.id = $1
	`

	sc := &models.SessionCard{}
	err := s.db.QueryRow(ctx, query, instanceID).Scan(sessionCardDest(sc)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card instance %d: %w", instanceID, err)
	}

	return sc, nil
}

func (s *PlayerCardStore) ListBySession(ctx context.Context, sessionID int64) ([]models.SessionCard, error) {
	query := `
		SELECT ` + instanceColumns + `, ` + cardColumns + `
		FROM player_cards pc
		JOIN cards c ON c.id = pc.card_id
		WHERE pc.session_id = $1
		ORDER BY pc.id
	`

	rows, err := s.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session cards: %w", err)
	}
	defer rows.Close()

	cards := []models.SessionCard{}
	for rows.Next() {
		var sc models.SessionCard
		if err := rows.Scan(sessionCardDest(&sc)...); err != nil {
			return nil, err
		}
		cards = append(cards, sc)
	}

	return cards, rows.Err()
}
