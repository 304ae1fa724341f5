package store

import (
	"context"
	"fmt"

	"github.com/avvvet/cardgame-services/internal/gamesvc/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// cardColumns selects a full cards row under alias c, in cardDest order.
const cardColumns = `c.id, c.name, c.card_type, c.description, c.is_active, c.power_level,
	c.health, c.attack, c.defense, c.speed, c.hero_class, c.special_ability,
	c.mana_cost, c.cooldown, c.effect_range, c.duration, c.effect, c.target_type,
	c.suit, c.rank, c.color, c.face_value,
	c.damage, c.durability, c.weight, c.weapon_class, c.attack_speed,
	c.created_at`

func cardDest(d *models.CardDefinition) []any {
	v := &d.VariantColumns
	return []any{
		&d.ID, &d.Name, &d.Type, &d.Description, &d.IsActive, &d.PowerLevel,
		&v.Health, &v.Attack, &v.Defense, &v.Speed, &v.HeroClass, &v.SpecialAbility,
		&v.ManaCost, &v.Cooldown, &v.Range, &v.Duration, &v.Effect, &v.TargetType,
		&v.Suit, &v.Rank, &v.Color, &v.FaceValue,
		&v.Damage, &v.Durability, &v.Weight, &v.WeaponClass, &v.AttackSpeed,
		&d.CreatedAt,
	}
}

// cardArgs returns the insert arguments for the 26 definition columns.
func cardArgs(d *models.CardDefinition) []any {
	v := d.VariantColumns
	return []any{
		d.Name, string(d.Type), d.Description, d.IsActive, d.PowerLevel,
		v.Health, v.Attack, v.Defense, v.Speed, v.HeroClass, v.SpecialAbility,
		v.ManaCost, v.Cooldown, v.Range, v.Duration, v.Effect, v.TargetType,
		v.Suit, v.Rank, v.Color, v.FaceValue,
		v.Damage, v.Durability, v.Weight, v.WeaponClass, v.AttackSpeed,
	}
}

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

// ListCatalog returns the first limit card definitions ordered by id.
func (s *CardStore) ListCatalog(ctx context.Context, limit int) ([]models.CardDefinition, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards c
		ORDER BY c.id
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list card catalog: %w", err)
	}
	defer rows.Close()

	cards := []models.CardDefinition{}
	for rows.Next() {
		var d models.CardDefinition
		if err := rows.Scan(cardDest(&d)...); err != nil {
			return nil, err
		}
		cards = append(cards, d)
	}

	return cards, rows.Err()
}
