package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/pongarena-go/internal/api/apierr"
	"github.com/mcoot/pongarena-go/internal/api/middleware"
	"github.com/mcoot/pongarena-go/internal/api/request"
	"github.com/mcoot/pongarena-go/internal/api/response"
	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/services/simulation"
)

// MatchHandler handles in-match intents
type MatchHandler struct {
	coordinator *match.Coordinator
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(coordinator *match.Coordinator) *MatchHandler {
	return &MatchHandler{coordinator: coordinator}
}

func matchID(r *http.Request) model.MatchID {
	return model.MatchID(mux.Vars(r)["id"])
}

// Paddle handles POST /api/v1/matches/{id}/paddle
func (h *MatchHandler) Paddle(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePaddleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.PaddleY == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("paddle_y is required"))
		return
	}
	// Out-of-range positions are malformed input, rejected here; the
	// simulator additionally clamps whatever it is handed
	if *req.PaddleY < 0 || *req.PaddleY > simulation.ArenaHeight {
		apierr.WriteError(w, apierr.NewInvalidRequestError("paddle_y out of range"))
		return
	}

	err := h.coordinator.ApplyPaddleInput(matchID(r), middleware.GetPlayer(r.Context()), *req.PaddleY)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Cancel handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req request.CancelMatchRequest
	// Body is optional for cancellation
	_ = json.NewDecoder(r.Body).Decode(&req)
	reason := req.Reason
	if reason == "" {
		reason = "cancelled_by_player"
	}

	id := matchID(r)
	playerID := middleware.GetPlayer(r.Context())

	m, err := h.coordinator.GetMatch(id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	if m.Slot(playerID) == 0 {
		apierr.WriteError(w, model.ErrNotParticipant)
		return
	}

	if _, err := h.coordinator.Cancel(id, reason); err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Disconnect handles POST /api/v1/matches/{id}/disconnect, called by the
// connection gateway when a participant's connection drops.
func (h *MatchHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	err := h.coordinator.ResolveDisconnect(matchID(r), middleware.GetPlayer(r.Context()))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.NoContent(w)
}
