package push

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/services/rating"
	"github.com/mcoot/pongarena-go/internal/services/simulation"
)

// Broadcaster turns core events into SSE messages on player hubs.
// A player with no hub simply misses the event; delivery is best-effort.
type Broadcaster struct {
	hubManager    *HubManager
	ratingService *rating.Service
	logger        *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, ratingService *rating.Service, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager:    hubManager,
		ratingService: ratingService,
		logger:        logger.With(slog.String("component", "broadcaster")),
	}
}

// MatchSinks binds a new match's outbound events to this broadcaster
func (b *Broadcaster) MatchSinks(players ...model.PlayerID) match.Sinks {
	return match.Sinks{
		OnDelta: func(id model.MatchID, delta simulation.Delta) {
			b.GameStateUpdate(id, players, delta)
		},
		OnEnded:     b.MatchEnded,
		OnCancelled: b.MatchCancelled,
	}
}

// send marshals a payload and pushes it to a single player
func (b *Broadcaster) send(playerID model.PlayerID, event model.EventType, payload any) {
	hub := b.hubManager.GetHub(playerID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("failed to marshal event",
			slog.String("event", string(event)),
			slog.Any("error", err))
		return
	}
	hub.Broadcast(formatSSEMessage(string(event), data))
}

// Searching tells a player they are waiting in a queue
func (b *Broadcaster) Searching(playerID model.PlayerID, class model.QueueClass, ratingValue int) {
	b.send(playerID, model.EventSearching, model.SearchingPayload{
		QueueClass: class,
		Rating:     ratingValue,
	})
}

// MatchFound tells both participants about a fresh pairing
func (b *Broadcaster) MatchFound(m *model.Match) {
	parts := []model.MatchParticipant{m.Player1, *m.Player2}
	for slot, p := range parts {
		opp := parts[1-slot]
		b.send(p.PlayerID, model.EventMatchFound, model.MatchFoundPayload{
			MatchID:           m.ID,
			QueueClass:        m.Class,
			Slot:              slot + 1,
			Opponent:          opp.PlayerID,
			OpponentRating:    opp.Rating,
			OpponentCosmetics: opp.Loadout,
		})
	}
}

// GameStateUpdate pushes a delta snapshot to the given participants
func (b *Broadcaster) GameStateUpdate(matchID model.MatchID, players []model.PlayerID, delta simulation.Delta) {
	payload := model.GameStatePayload{MatchID: matchID, Delta: delta}
	for _, playerID := range players {
		b.send(playerID, model.EventGameState, payload)
	}
}

// MatchEnded tells both participants the result, each with their own
// rating movement. ratings is nil for unranked matches.
func (b *Broadcaster) MatchEnded(m *model.Match, summary *model.MatchSummary, ratings map[model.PlayerID]*model.RatingRecord) {
	deltas := map[model.PlayerID]int{
		summary.Player1: summary.Delta1,
		summary.Player2: summary.Delta2,
	}
	for _, playerID := range []model.PlayerID{summary.Player1, summary.Player2} {
		payload := model.MatchEndedPayload{
			MatchID:    summary.MatchID,
			QueueClass: summary.Class,
			Winner:     summary.Winner,
			Score1:     summary.Score1,
			Score2:     summary.Score2,
			Forfeit:    summary.Forfeit,
		}
		rec, ranked := ratings[playerID]
		if ranked {
			payload.RatingChange = deltas[playerID]
			payload.NewRating = rec.Rating
		}
		b.send(playerID, model.EventMatchEnded, payload)

		// Ranked results move the player's rank display too
		if ranked {
			tier, division := rating.TierFor(rec.Rating)
			b.send(playerID, model.EventPlayerRating, model.PlayerRatingPayload{
				Rating:         rec.Rating,
				Tier:           tier,
				Division:       division,
				PlacementCount: rec.PlacementCount,
				IsPlacement:    b.ratingService.IsPlacement(rec),
			})
		}
	}
}

// MatchCancelled tells both seated participants the match ended with no
// winner
func (b *Broadcaster) MatchCancelled(m *model.Match, reason string) {
	payload := model.MatchCancelledPayload{MatchID: m.ID, Reason: reason}
	b.send(m.Player1.PlayerID, model.EventMatchCancelled, payload)
	if m.Player2 != nil {
		b.send(m.Player2.PlayerID, model.EventMatchCancelled, payload)
	}
}

// QueueTimeout tells a player their queue entry expired unmatched
func (b *Broadcaster) QueueTimeout(entry *model.QueueEntry) {
	b.send(entry.PlayerID, model.EventQueueTimeout, model.QueueTimeoutPayload{
		QueueClass: entry.Class,
	})
}

// formatSSEMessage frames an event for the SSE wire. Payloads are single
// JSON lines, so no multi-line data splitting is needed.
func formatSSEMessage(eventName string, data []byte) []byte {
	msg := make([]byte, 0, len(eventName)+len(data)+16)
	msg = append(msg, "event: "...)
	msg = append(msg, eventName...)
	msg = append(msg, "\ndata: "...)
	msg = append(msg, data...)
	msg = append(msg, "\n\n"...)
	return msg
}
