package simulation

import (
	"math"

	"github.com/mcoot/pongarena-go/internal/model"
)

// Delta is a partial state snapshot: only the fields that changed since
// the last emitted snapshot, keyed by the SimulationState JSON names.
type Delta map[string]any

// snapshotFields flattens a state into broadcast fields. Continuous
// fields are rounded to two decimals so sub-visible jitter never emits;
// discrete and boolean fields are exact.
func snapshotFields(st model.SimulationState) map[string]any {
	return map[string]any{
		"ball_x":     round2(st.BallX),
		"ball_y":     round2(st.BallY),
		"ball_vx":    round2(st.BallVX),
		"ball_vy":    round2(st.BallVY),
		"ball_speed": round2(st.BallSpeed),
		"paddle1_y":  round2(st.Paddle1Y),
		"paddle2_y":  round2(st.Paddle2Y),
		"score1":     st.Score1,
		"score2":     st.Score2,
		"countdown":  st.Countdown,
		"started":    st.Started,
	}
}

// emitDelta diffs the current state against the last emitted snapshot
// and caches the full snapshot. The first emission for a match is always
// the full snapshot. Returns nil when nothing changed. Caller must hold
// s.mu.
func (s *Simulator) emitDelta() Delta {
	fields := snapshotFields(s.state)

	if s.lastEmitted == nil {
		s.lastEmitted = fields
		return fields
	}

	delta := make(Delta)
	for name, value := range fields {
		if s.lastEmitted[name] != value {
			delta[name] = value
		}
	}
	s.lastEmitted = fields

	if len(delta) == 0 {
		return nil
	}
	return delta
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
