package model

import "time"

// QueueClass selects the matchmaking pool a player waits in.
type QueueClass string

const (
	QueueRanked   QueueClass = "ranked"   // skill-matched
	QueueUnranked QueueClass = "unranked" // first-available
)

// Valid reports whether the class names a known queue.
func (c QueueClass) Valid() bool {
	return c == QueueRanked || c == QueueUnranked
}

// QueueEntry is one player waiting for an opponent.
// At most one entry per identity per queue class.
type QueueEntry struct {
	Conn       ConnID
	PlayerID   PlayerID
	Class      QueueClass
	Rating     int
	EnqueuedAt time.Time
	Loadout    CosmeticLoadout
}
