package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mcoot/pongarena-go/internal/api/apierr"
	"github.com/mcoot/pongarena-go/internal/api/middleware"
	"github.com/mcoot/pongarena-go/internal/api/request"
	"github.com/mcoot/pongarena-go/internal/api/response"
	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/push"
	"github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/services/matchmaking"
)

// QueueHandler handles matchmaking intents
type QueueHandler struct {
	queue       *matchmaking.Queue
	coordinator *match.Coordinator
	broadcaster *push.Broadcaster
	logger      *slog.Logger
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queue *matchmaking.Queue, coordinator *match.Coordinator, broadcaster *push.Broadcaster, logger *slog.Logger) *QueueHandler {
	return &QueueHandler{
		queue:       queue,
		coordinator: coordinator,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Join handles POST /api/v1/queue
func (h *QueueHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinQueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if !req.QueueClass.Valid() {
		apierr.WriteError(w, model.ErrInvalidQueueClass)
		return
	}

	playerID := middleware.GetPlayer(r.Context())
	record, err := h.coordinator.LoadOrCreateRating(r.Context(), playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	entry := &model.QueueEntry{
		Conn:     middleware.GetConn(r.Context()),
		PlayerID: playerID,
		Class:    req.QueueClass,
		Rating:   record.Rating,
		Loadout:  req.Cosmetics,
	}

	opponent, err := h.queue.Enqueue(entry)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	if opponent == nil {
		h.broadcaster.Searching(playerID, entry.Class, entry.Rating)
		response.JSON(w, http.StatusAccepted, response.QueueJoinedResponse{
			Status:     "searching",
			QueueClass: string(entry.Class),
			Rating:     entry.Rating,
		})
		return
	}

	m, err := h.coordinator.StartMatch(opponent, entry, h.broadcaster.MatchSinks(opponent.PlayerID, entry.PlayerID))
	if err != nil {
		h.logger.Error("failed to start match from pairing",
			slog.String("player", string(playerID)),
			slog.String("opponent", string(opponent.PlayerID)),
			slog.String("error", err.Error()),
		)
		apierr.WriteError(w, err)
		return
	}

	h.broadcaster.MatchFound(m)
	response.JSON(w, http.StatusOK, response.QueueJoinedResponse{
		Status:     "matched",
		QueueClass: string(entry.Class),
		Rating:     entry.Rating,
		MatchID:    &m.ID,
	})
}

// Leave handles DELETE /api/v1/queue
func (h *QueueHandler) Leave(w http.ResponseWriter, r *http.Request) {
	if !h.queue.Dequeue(middleware.GetConn(r.Context())) {
		apierr.WriteError(w, model.ErrNotQueued)
		return
	}
	response.NoContent(w)
}

// Stats handles GET /api/v1/queue/stats
func (h *QueueHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.QueueStatsResponse{Stats: h.queue.Stats()})
}
