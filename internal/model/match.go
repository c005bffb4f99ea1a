package model

import "time"

// MatchID uniquely identifies a match.
type MatchID string

// MatchStatus represents the lifecycle phase of a match.
type MatchStatus string

const (
	MatchStatusWaiting   MatchStatus = "waiting"   // created, second player not joined yet
	MatchStatusActive    MatchStatus = "active"    // both players in, simulation may run
	MatchStatusCompleted MatchStatus = "completed" // terminal, winner decided
	MatchStatusCancelled MatchStatus = "cancelled" // terminal, no winner
)

// Terminal reports whether the status is a terminal state.
func (s MatchStatus) Terminal() bool {
	return s == MatchStatusCompleted || s == MatchStatusCancelled
}

// MatchParticipant binds an identity and its connection to a paddle slot.
type MatchParticipant struct {
	PlayerID PlayerID
	Conn     ConnID
	Rating   int
	Loadout  CosmeticLoadout
}

// Match is one two-player game. It is exclusively owned by the lifecycle
// coordinator; the simulator borrows its state only for the duration of
// the tick loop.
type Match struct {
	ID        MatchID
	Class     QueueClass
	Player1   MatchParticipant
	Player2   *MatchParticipant // nil while waiting
	Status    MatchStatus
	Winner    PlayerID // empty until completed
	CreatedAt time.Time
}

// Slot returns the paddle slot (1 or 2) for the given identity,
// or 0 if the identity is not a participant.
func (m *Match) Slot(id PlayerID) int {
	if m.Player1.PlayerID == id {
		return 1
	}
	if m.Player2 != nil && m.Player2.PlayerID == id {
		return 2
	}
	return 0
}

// Opponent returns the other participant, or nil if the identity is not
// a participant or the match is still waiting.
func (m *Match) Opponent(id PlayerID) *MatchParticipant {
	switch m.Slot(id) {
	case 1:
		return m.Player2
	case 2:
		return &m.Player1
	}
	return nil
}

// MatchSummary is the deterministic, serializable outcome record handed
// to the persistence and settlement collaborators.
type MatchSummary struct {
	MatchID     MatchID    `json:"match_id"`
	Class       QueueClass `json:"queue_class"`
	Player1     PlayerID   `json:"player1"`
	Player2     PlayerID   `json:"player2"`
	Score1      int        `json:"score1"`
	Score2      int        `json:"score2"`
	Winner      PlayerID   `json:"winner"`
	Delta1      int        `json:"rating_delta1"` // zero for unranked
	Delta2      int        `json:"rating_delta2"`
	Forfeit     bool       `json:"forfeit"`
	CompletedAt time.Time  `json:"completed_at"`
}
