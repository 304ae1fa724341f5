package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type CardType string

const (
	CardTypeHero    CardType = "hero"
	CardTypeAbility CardType = "ability"
	CardTypeSuit    CardType = "suit"
	CardTypeWeapon  CardType = "weapon"
)

// ParseCardType normalizes a client supplied card type. Only the four known
// variants are accepted.
func ParseCardType(s string) (CardType, error) {
	t := CardType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case CardTypeHero, CardTypeAbility, CardTypeSuit, CardTypeWeapon:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown card type %q", ErrInvalidCard, s)
	}
}

// VariantColumns mirrors the nullable variant columns of the cards table. Only
// the subset belonging to the card's type may be set.
type VariantColumns struct {
	// hero
	Health         *int    `json:"health,omitempty"`
	Attack         *int    `json:"attack,omitempty"`
	Defense        *int    `json:"defense,omitempty"`
	Speed          *int    `json:"speed,omitempty"`
	HeroClass      *string `json:"hero_class,omitempty"`
	SpecialAbility *string `json:"special_ability,omitempty"`

	// ability
	ManaCost   *int    `json:"mana_cost,omitempty"`
	Cooldown   *int    `json:"cooldown,omitempty"`
	Range      *int    `json:"range,omitempty"`
	Duration   *int    `json:"duration,omitempty"`
	Effect     *string `json:"effect,omitempty"`
	TargetType *string `json:"target_type,omitempty"`

	// suit
	Suit      *string `json:"suit,omitempty"`
	Rank      *string `json:"rank,omitempty"`
	Color     *string `json:"color,omitempty"`
	FaceValue *int    `json:"face_value,omitempty"`

	// weapon
	Damage      *int     `json:"damage,omitempty"`
	Durability  *int     `json:"durability,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	WeaponClass *string  `json:"weapon_class,omitempty"`
	AttackSpeed *float64 `json:"attack_speed,omitempty"`
}

// CardDefinition is a row of the cards catalog. It is persisted flat and
// exposed to clients with its variant attributes nested under "attributes".
type CardDefinition struct {
	ID          int64
	Name        string
	Type        CardType
	Description string
	IsActive    bool
	PowerLevel  int
	CreatedAt   time.Time
	VariantColumns
}

type cardDefinitionJSON struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Type        CardType        `json:"type"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
	PowerLevel  int             `json:"power_level"`
	CreatedAt   time.Time       `json:"created_at"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
}

func (d CardDefinition) MarshalJSON() ([]byte, error) {
	attrs, err := json.Marshal(d.Attributes())
	if err != nil {
		return nil, err
	}
	return json.Marshal(cardDefinitionJSON{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		IsActive:    d.IsActive,
		PowerLevel:  d.PowerLevel,
		CreatedAt:   d.CreatedAt,
		Attributes:  attrs,
	})
}

func (d *CardDefinition) UnmarshalJSON(b []byte) error {
	var v cardDefinitionJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*d = CardDefinition{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		Description: v.Description,
		IsActive:    v.IsActive,
		PowerLevel:  v.PowerLevel,
		CreatedAt:   v.CreatedAt,
	}
	if len(v.Attributes) > 0 && string(v.Attributes) != "null" {
		return json.Unmarshal(v.Attributes, &d.VariantColumns)
	}
	return nil
}
