package model

// PlayerID uniquely identifies a player across the system.
// It is an opaque identity string owned by the transport layer;
// the core only ever stores it by value.
type PlayerID string

// ConnID identifies a single live connection. A player reconnecting
// gets a fresh ConnID while keeping the same PlayerID.
type ConnID string

// CosmeticLoadout is the set of cosmetic selections a player queues with.
// The core carries it through matchmaking so the opponent's client can
// render it; it has no gameplay effect.
type CosmeticLoadout struct {
	PaddleSkin string `json:"paddle_skin,omitempty"`
	BallSkin   string `json:"ball_skin,omitempty"`
	Trail      string `json:"trail,omitempty"`
}
