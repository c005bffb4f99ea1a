package match

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mcoot/pongarena-go/internal/model"
)

// persistTimeout bounds the background persistence/settlement calls so a
// wedged collaborator cannot leak goroutines forever.
const persistTimeout = 10 * time.Second

// finalize resolves a decided match exactly once: flips it to completed,
// applies ratings for ranked play, emits the terminal event, and tears
// the runtime down. Persistence and settlement are fire-and-forget;
// their failure never rolls back the in-memory result.
func (c *Coordinator) finalize(rt *matchRuntime, winnerSlot int, forfeit bool) {
	rt.mu.Lock()
	if rt.finalized || rt.match.Status.Terminal() {
		rt.mu.Unlock()
		return
	}
	rt.finalized = true

	m := rt.match
	sinks := rt.sinks

	winner := m.Player1.PlayerID
	if winnerSlot == 2 {
		winner = m.Player2.PlayerID
	}
	m.Status = model.MatchStatusCompleted
	m.Winner = winner

	var score1, score2 int
	if rt.sim != nil {
		st := rt.sim.Snapshot()
		score1, score2 = st.Score1, st.Score2
	}
	rt.mu.Unlock()

	summary := &model.MatchSummary{
		MatchID:     m.ID,
		Class:       m.Class,
		Player1:     m.Player1.PlayerID,
		Player2:     m.Player2.PlayerID,
		Score1:      score1,
		Score2:      score2,
		Winner:      winner,
		Forfeit:     forfeit,
		CompletedAt: c.clock.Now(),
	}

	var ratings map[model.PlayerID]*model.RatingRecord
	if m.Class == model.QueueRanked {
		ratings = c.applyRatings(summary, winnerSlot)
	}

	c.teardown(rt)

	c.logger.Info("match resolved",
		slog.String("match_id", string(m.ID)),
		slog.String("class", string(m.Class)),
		slog.String("winner", string(winner)),
		slog.Bool("forfeit", forfeit),
		slog.Int("score1", score1),
		slog.Int("score2", score2),
	)

	go c.persistOutcome(summary)

	if sinks.OnEnded != nil {
		sinks.OnEnded(m, summary, ratings)
	}
}

// applyRatings loads both rating records, runs the rating engine, and
// persists the results. Storage failures are logged and swallowed; the
// in-memory deltas stand regardless.
func (c *Coordinator) applyRatings(summary *model.MatchSummary, winnerSlot int) map[model.PlayerID]*model.RatingRecord {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	rec1, err1 := c.LoadOrCreateRating(ctx, summary.Player1)
	rec2, err2 := c.LoadOrCreateRating(ctx, summary.Player2)
	if err1 != nil || err2 != nil {
		c.logger.Error("failed to load rating records, skipping rating update",
			slog.String("match_id", string(summary.MatchID)),
			slog.Any("error", errors.Join(err1, err2)),
		)
		return nil
	}

	winnerRec, loserRec := rec1, rec2
	if winnerSlot == 2 {
		winnerRec, loserRec = rec2, rec1
	}

	winnerDelta, loserDelta := c.rating.ApplyResult(winnerRec, loserRec)
	if winnerSlot == 1 {
		summary.Delta1, summary.Delta2 = winnerDelta, loserDelta
	} else {
		summary.Delta1, summary.Delta2 = loserDelta, winnerDelta
	}

	now := c.clock.Now()
	for _, rec := range []*model.RatingRecord{rec1, rec2} {
		rec.UpdatedAt = now
		if err := c.storage.SaveRating(ctx, rec); err != nil {
			c.logger.Error("failed to persist rating",
				slog.String("player_id", string(rec.PlayerID)),
				slog.String("error", err.Error()),
			)
		}
	}

	return map[model.PlayerID]*model.RatingRecord{
		rec1.PlayerID: rec1,
		rec2.PlayerID: rec2,
	}
}

// persistOutcome saves the summary and submits it for settlement,
// best-effort and at most once.
func (c *Coordinator) persistOutcome(summary *model.MatchSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.storage.SaveMatchSummary(ctx, summary); err != nil {
		c.logger.Error("failed to persist match summary",
			slog.String("match_id", string(summary.MatchID)),
			slog.String("error", err.Error()),
		)
	}

	if err := c.settlement.SubmitOutcome(ctx, summary); err != nil {
		c.logger.Error("settlement submission failed",
			slog.String("match_id", string(summary.MatchID)),
			slog.String("error", err.Error()),
		)
	}
}
