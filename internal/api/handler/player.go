package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/pongarena-go/internal/api/apierr"
	"github.com/mcoot/pongarena-go/internal/api/response"
	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/match"
	"github.com/mcoot/pongarena-go/internal/services/rating"
	"github.com/mcoot/pongarena-go/internal/storage"
)

// PlayerHandler handles rating and history lookups
type PlayerHandler struct {
	coordinator   *match.Coordinator
	ratingService *rating.Service
	storage       storage.Storage
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(coordinator *match.Coordinator, ratingService *rating.Service, store storage.Storage) *PlayerHandler {
	return &PlayerHandler{
		coordinator:   coordinator,
		ratingService: ratingService,
		storage:       store,
	}
}

// GetRating handles GET /api/v1/players/{id}/rating
func (h *PlayerHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	record, err := h.coordinator.LoadOrCreateRating(r.Context(), playerID)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	tier, division := rating.TierFor(record.Rating)
	response.JSON(w, http.StatusOK, response.RatingResponse{
		PlayerID: playerID,
		PlayerRatingPayload: model.PlayerRatingPayload{
			Rating:         record.Rating,
			Tier:           tier,
			Division:       division,
			PlacementCount: record.PlacementCount,
			IsPlacement:    h.ratingService.IsPlacement(record),
		},
	})
}

// GetMatches handles GET /api/v1/players/{id}/matches
func (h *PlayerHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be 1-100"))
			return
		}
		limit = parsed
	}

	summaries, err := h.storage.ListMatchSummaries(r.Context(), playerID, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MatchHistoryResponse{Matches: summaries})
}
