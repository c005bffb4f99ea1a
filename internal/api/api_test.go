package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/pongarena-go/internal/api"
	"github.com/mcoot/pongarena-go/internal/api/apierr"
	"github.com/mcoot/pongarena-go/internal/api/response"
	"github.com/mcoot/pongarena-go/internal/factory"
	"github.com/mcoot/pongarena-go/internal/model"
	"github.com/mcoot/pongarena-go/internal/services/match"
)

// testServer wires the full router over an in-memory app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Long tick interval so the background match loop never fires
	// underneath a test; match resolution is driven by API intents.
	app := factory.NewTestAppWithConfig(factory.Config{
		Logger:      logger,
		MatchConfig: &match.Config{TickInterval: time.Hour},
	})

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		Queue:         app.Queue,
		Coordinator:   app.Coordinator,
		RatingService: app.RatingService,
		Storage:       app.Storage,
		Broadcaster:   app.Broadcaster,
		HubManager:    app.HubManager,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, playerID string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if playerID != "" {
		req.Header.Set("X-Player-Id", playerID)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeJSON[apierr.ErrorResponse](t, rr)
	return resp.Error.Code
}

// pairPlayers queues alice then bob into the ranked pool and returns the
// resulting match ID.
func pairPlayers(t *testing.T, ts *testServer) model.MatchID {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "alice")
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "bob")
	require.Equal(t, http.StatusOK, rr.Code)

	joined := decodeJSON[response.QueueJoinedResponse](t, rr)
	require.Equal(t, "matched", joined.Status)
	require.NotNil(t, joined.MatchID)
	return *joined.MatchID
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestJoinQueueSearching(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "alice")
	assert.Equal(t, http.StatusAccepted, rr.Code)

	joined := decodeJSON[response.QueueJoinedResponse](t, rr)
	assert.Equal(t, "searching", joined.Status)
	assert.Equal(t, "ranked", joined.QueueClass)
	assert.Equal(t, 1000, joined.Rating)
	assert.Nil(t, joined.MatchID)
}

func TestJoinQueuePairsSecondPlayer(t *testing.T) {
	ts := newTestServer(t)

	matchID := pairPlayers(t, ts)
	assert.NotEmpty(t, matchID)
}

func TestJoinQueueInvalidClass(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "blitz"}, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidQueueClass, errorCode(t, rr))
}

func TestJoinQueueRequiresIdentity(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, errorCode(t, rr))
}

func TestJoinQueueRejectsMalformedIdentity(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "bad player!")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJoinQueueDuplicate(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "alice")
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "alice")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadyQueued, errorCode(t, rr))
}

func TestLeaveQueue(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "alice")
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/queue", nil, "alice")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/queue", nil, "alice")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotQueued, errorCode(t, rr))
}

func TestQueueStats(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "ranked"}, "alice")
	require.Equal(t, http.StatusAccepted, rr.Code)
	rr = ts.request(http.MethodPost, "/api/v1/queue", map[string]string{"queue_class": "unranked"}, "bob")
	require.Equal(t, http.StatusAccepted, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/queue/stats", nil, "alice")
	assert.Equal(t, http.StatusOK, rr.Code)

	stats := decodeJSON[response.QueueStatsResponse](t, rr)
	assert.Equal(t, 1, stats.Stats.Waiting[model.QueueRanked])
	assert.Equal(t, 1, stats.Stats.Waiting[model.QueueUnranked])
}

func TestPaddleInput(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/matches/%s/paddle", matchID),
		map[string]float64{"paddle_y": 100}, "alice")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestPaddleMissingPosition(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/matches/%s/paddle", matchID),
		map[string]string{}, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestPaddleOutOfRange(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/matches/%s/paddle", matchID),
		map[string]float64{"paddle_y": 500}, "alice")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPaddleNonParticipant(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/matches/%s/paddle", matchID),
		map[string]float64{"paddle_y": 100}, "carol")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotParticipant, errorCode(t, rr))
}

func TestPaddleUnknownMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches/nope/paddle",
		map[string]float64{"paddle_y": 100}, "alice")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, errorCode(t, rr))
}

func TestCancelMatch(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/matches/%s", matchID),
		map[string]string{"reason": "opponent_left"}, "alice")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Cancellation tears the match down, so a repeat cancel has nothing
	// to find.
	rr = ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/matches/%s", matchID), nil, "alice")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, errorCode(t, rr))
}

func TestCancelMatchNonParticipant(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodDelete, fmt.Sprintf("/api/v1/matches/%s", matchID), nil, "carol")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotParticipant, errorCode(t, rr))
}

func TestDisconnectForfeitsAndAdjustsRatings(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/matches/%s/disconnect", matchID), nil, "alice")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Alice forfeited; bob takes the win at the placement multiplier.
	rr = ts.request(http.MethodGet, "/api/v1/players/bob/rating", nil, "bob")
	require.Equal(t, http.StatusOK, rr.Code)
	bob := decodeJSON[response.RatingResponse](t, rr)
	assert.Equal(t, 1032, bob.Rating)

	rr = ts.request(http.MethodGet, "/api/v1/players/alice/rating", nil, "alice")
	require.Equal(t, http.StatusOK, rr.Code)
	alice := decodeJSON[response.RatingResponse](t, rr)
	assert.Equal(t, 968, alice.Rating)
}

func TestGetRatingCreatesDefault(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/newguy/rating", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	resp := decodeJSON[response.RatingResponse](t, rr)
	assert.Equal(t, model.PlayerID("newguy"), resp.PlayerID)
	assert.Equal(t, 1000, resp.Rating)
	assert.Equal(t, model.TierSilver, resp.Tier)
	assert.Equal(t, model.DivisionIV, resp.Division)
	assert.Equal(t, 0, resp.PlacementCount)
	assert.True(t, resp.IsPlacement)
}

func TestGetMatchHistory(t *testing.T) {
	ts := newTestServer(t)
	matchID := pairPlayers(t, ts)

	rr := ts.request(http.MethodPost, fmt.Sprintf("/api/v1/matches/%s/disconnect", matchID), nil, "alice")
	require.Equal(t, http.StatusNoContent, rr.Code)

	// Summary persistence happens off the request path
	require.Eventually(t, func() bool {
		rr := ts.request(http.MethodGet, "/api/v1/players/alice/matches", nil, "")
		if rr.Code != http.StatusOK {
			return false
		}
		history := decodeJSON[response.MatchHistoryResponse](t, rr)
		return len(history.Matches) == 1
	}, 2*time.Second, 10*time.Millisecond)

	rr = ts.request(http.MethodGet, "/api/v1/players/bob/matches", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	history := decodeJSON[response.MatchHistoryResponse](t, rr)
	require.Len(t, history.Matches, 1)
	assert.Equal(t, matchID, history.Matches[0].MatchID)
}

func TestGetMatchHistoryInvalidLimit(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/alice/matches?limit=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

func TestEventStreamRequiresIdentity(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/events", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEventStreamConnects(t *testing.T) {
	ts := newTestServer(t)

	// A pre-cancelled context lets the stream handler write its hello
	// and return immediately.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil).WithContext(ctx)
	req.Header.Set("X-Player-Id", "alice")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "event: connected")
}
