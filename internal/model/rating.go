package model

import "time"

// RatingRecord tracks a player's skill rating for ranked play.
// Created on first reference with the default rating; mutated only by
// the rating service after a ranked match; never deleted.
type RatingRecord struct {
	PlayerID       PlayerID  `json:"player_id"`
	Rating         int       `json:"rating"` // never negative
	PlacementCount int       `json:"placement_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Tier is a named skill band derived from rating.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
	TierMaster   Tier = "master"
)

// Division is a sub-band within a tier, IV (lowest) through I (highest).
// The top tier is undivided and reports DivisionNone.
type Division string

const (
	DivisionNone Division = ""
	DivisionIV   Division = "IV"
	DivisionIII  Division = "III"
	DivisionII   Division = "II"
	DivisionI    Division = "I"
)
