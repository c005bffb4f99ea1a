package model

// EventType identifies the type of outbound boundary event.
type EventType string

const (
	EventSearching      EventType = "searching"
	EventMatchFound     EventType = "match_found"
	EventGameState      EventType = "game_state_update"
	EventMatchEnded     EventType = "match_ended"
	EventMatchCancelled EventType = "match_cancelled"
	EventQueueTimeout   EventType = "queue_timeout"
	EventPlayerRating   EventType = "player_rating"
)

// SearchingPayload is sent when a player starts waiting in a queue.
type SearchingPayload struct {
	QueueClass QueueClass `json:"queue_class"`
	Rating     int        `json:"rating"`
}

// MatchFoundPayload is sent to each participant when a pairing succeeds.
type MatchFoundPayload struct {
	MatchID           MatchID         `json:"match_id"`
	QueueClass        QueueClass      `json:"queue_class"`
	Slot              int             `json:"slot"` // 1 = left paddle, 2 = right paddle
	Opponent          PlayerID        `json:"opponent"`
	OpponentRating    int             `json:"opponent_rating"`
	OpponentCosmetics CosmeticLoadout `json:"opponent_cosmetics"`
}

// GameStatePayload carries a delta snapshot: only the fields that changed
// since the previous tick, keyed by the SimulationState JSON field names.
type GameStatePayload struct {
	MatchID MatchID        `json:"match_id"`
	Delta   map[string]any `json:"delta"`
}

// MatchEndedPayload is sent to each participant at match completion.
// RatingChange and NewRating are zero for unranked matches.
type MatchEndedPayload struct {
	MatchID      MatchID    `json:"match_id"`
	QueueClass   QueueClass `json:"queue_class"`
	Winner       PlayerID   `json:"winner"`
	Score1       int        `json:"score1"`
	Score2       int        `json:"score2"`
	RatingChange int        `json:"rating_change"`
	NewRating    int        `json:"new_rating"`
	Forfeit      bool       `json:"forfeit,omitempty"`
}

// MatchCancelledPayload is sent when a match ends without a winner.
type MatchCancelledPayload struct {
	MatchID MatchID `json:"match_id"`
	Reason  string  `json:"reason"`
}

// QueueTimeoutPayload is sent when a queue entry expires unmatched.
type QueueTimeoutPayload struct {
	QueueClass QueueClass `json:"queue_class"`
}

// PlayerRatingPayload answers a rating lookup.
type PlayerRatingPayload struct {
	Rating         int      `json:"rating"`
	Tier           Tier     `json:"tier"`
	Division       Division `json:"division,omitempty"`
	PlacementCount int      `json:"placement_count"`
	IsPlacement    bool     `json:"is_placement"`
}
