package response

import (
	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/matchmaking"
)

// QueueJoinedResponse is returned when a join request lands in a queue
// or produces an immediate pairing.
type QueueJoinedResponse struct {
	Status     string         `json:"status"` // "searching" or "matched"
	QueueClass string         `json:"queue_class"`
	Rating     int            `json:"rating"`
	MatchID    *model.MatchID `json:"match_id,omitempty"`
}

// RatingResponse answers GET /players/{id}/rating
type RatingResponse struct {
	PlayerID model.PlayerID `json:"player_id"`
	model.PlayerRatingPayload
}

// QueueStatsResponse answers GET /queue/stats
type QueueStatsResponse struct {
	Stats matchmaking.Stats `json:"stats"`
}

// MatchHistoryResponse answers GET /players/{id}/matches
type MatchHistoryResponse struct {
	Matches []*model.MatchSummary `json:"matches"`
}
