package models

import (
	"fmt"
	"strings"
)

// CardAttributes is the type specific part of a card definition. Exactly one
// implementation exists per CardType.
type CardAttributes interface {
	CardType() CardType
}

type HeroAttributes struct {
	Health         *int    `json:"health,omitempty"`
	Attack         *int    `json:"attack,omitempty"`
	Defense        *int    `json:"defense,omitempty"`
	Speed          *int    `json:"speed,omitempty"`
	HeroClass      *string `json:"hero_class,omitempty"`
	SpecialAbility *string `json:"special_ability,omitempty"`
}

type AbilityAttributes struct {
	ManaCost   *int    `json:"mana_cost,omitempty"`
	Cooldown   *int    `json:"cooldown,omitempty"`
	Range      *int    `json:"range,omitempty"`
	Duration   *int    `json:"duration,omitempty"`
	Effect     *string `json:"effect,omitempty"`
	TargetType *string `json:"target_type,omitempty"`
}

type SuitAttributes struct {
	Suit      *string `json:"suit,omitempty"`
	Rank      *string `json:"rank,omitempty"`
	Color     *string `json:"color,omitempty"`
	FaceValue *int    `json:"face_value,omitempty"`
}

type WeaponAttributes struct {
	Damage      *int     `json:"damage,omitempty"`
	Durability  *int     `json:"durability,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	WeaponClass *string  `json:"weapon_class,omitempty"`
	AttackSpeed *float64 `json:"attack_speed,omitempty"`
}

func (HeroAttributes) CardType() CardType    { return CardTypeHero }
func (AbilityAttributes) CardType() CardType { return CardTypeAbility }
func (SuitAttributes) CardType() CardType    { return CardTypeSuit }
func (WeaponAttributes) CardType() CardType  { return CardTypeWeapon }

// Attributes returns the variant view of the definition, or nil when the
// stored type is not one of the known variants.
func (d *CardDefinition) Attributes() CardAttributes {
	c := d.VariantColumns
	switch d.Type {
	case CardTypeHero:
		return HeroAttributes{c.Health, c.Attack, c.Defense, c.Speed, c.HeroClass, c.SpecialAbility}
	case CardTypeAbility:
		return AbilityAttributes{c.ManaCost, c.Cooldown, c.Range, c.Duration, c.Effect, c.TargetType}
	case CardTypeSuit:
		return SuitAttributes{c.Suit, c.Rank, c.Color, c.FaceValue}
	case CardTypeWeapon:
		return WeaponAttributes{c.Damage, c.Durability, c.Weight, c.WeaponClass, c.AttackSpeed}
	}
	return nil
}

// CardData is the card-data object of a create-card request: the common
// fields plus any variant attributes, flat.
type CardData struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	PowerLevel  int    `json:"power_level"`
	VariantColumns
}

var attributeOwner = map[string]CardType{
	"health": CardTypeHero, "attack": CardTypeHero, "defense": CardTypeHero,
	"speed": CardTypeHero, "hero_class": CardTypeHero, "special_ability": CardTypeHero,

	"mana_cost": CardTypeAbility, "cooldown": CardTypeAbility, "range": CardTypeAbility,
	"duration": CardTypeAbility, "effect": CardTypeAbility, "target_type": CardTypeAbility,

	"suit": CardTypeSuit, "rank": CardTypeSuit, "color": CardTypeSuit, "face_value": CardTypeSuit,

	"damage": CardTypeWeapon, "durability": CardTypeWeapon, "weight": CardTypeWeapon,
	"weapon_class": CardTypeWeapon, "attack_speed": CardTypeWeapon,
}

func (c *VariantColumns) present() []string {
	var names []string
	add := func(name string, set bool) {
		if set {
			names = append(names, name)
		}
	}
	add("health", c.Health != nil)
	add("attack", c.Attack != nil)
	add("defense", c.Defense != nil)
	add("speed", c.Speed != nil)
	add("hero_class", c.HeroClass != nil)
	add("special_ability", c.SpecialAbility != nil)
	add("mana_cost", c.ManaCost != nil)
	add("cooldown", c.Cooldown != nil)
	add("range", c.Range != nil)
	add("duration", c.Duration != nil)
	add("effect", c.Effect != nil)
	add("target_type", c.TargetType != nil)
	add("suit", c.Suit != nil)
	add("rank", c.Rank != nil)
	add("color", c.Color != nil)
	add("face_value", c.FaceValue != nil)
	add("damage", c.Damage != nil)
	add("durability", c.Durability != nil)
	add("weight", c.Weight != nil)
	add("weapon_class", c.WeaponClass != nil)
	add("attack_speed", c.AttackSpeed != nil)
	return names
}

// Definition validates the request and converts it into a catalog row. It
// rejects unknown types and attributes that belong to a different variant.
func (d CardData) Definition() (*CardDefinition, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCard)
	}
	t, err := ParseCardType(d.Type)
	if err != nil {
		return nil, err
	}
	for _, attr := range d.VariantColumns.present() {
		if owner := attributeOwner[attr]; owner != t {
			return nil, fmt.Errorf("%w: %s is a %s attribute, not valid on a %s card", ErrInvalidCard, attr, owner, t)
		}
	}
	return &CardDefinition{
		Name:           name,
		Type:           t,
		Description:    d.Description,
		IsActive:       d.IsActive,
		PowerLevel:     d.PowerLevel,
		VariantColumns: d.VariantColumns,
	}, nil
}
