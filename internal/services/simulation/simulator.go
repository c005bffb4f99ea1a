package simulation

import (
	"math"
	"sync"

	"github.com/mcoot/pongarena-go/internal/dependencies/random"
	"github.com/mcoot/pongarena-go/internal/model"
)

// Simulator owns the authoritative physics state for one match.
//
// Its mutex serializes the two writers the state has: the tick loop and
// paddle updates arriving from the transport boundary. Simulators for
// different matches share nothing.
type Simulator struct {
	mu    sync.Mutex
	state model.SimulationState
	rng   random.Random

	countdownTicks int
	finished       bool
	winnerSlot     int

	// last emitted snapshot, keyed by field name; nil until first emit
	lastEmitted map[string]any
}

// New creates a simulator in the pre-countdown state with a randomized
// opening serve.
func New(rng random.Random) *Simulator {
	s := &Simulator{rng: rng}
	s.state.Paddle1Y = (ArenaHeight - PaddleHeight) / 2
	s.state.Paddle2Y = (ArenaHeight - PaddleHeight) / 2

	// Opening serve direction is a coin flip
	toward := 1
	if s.rng.Intn(2) == 1 {
		toward = 2
	}
	s.resetBall(toward)
	return s
}

// resetBall centers the ball and launches it toward the given slot at
// serve speed, re-entering the countdown. Caller must hold s.mu (or be
// the constructor).
func (s *Simulator) resetBall(towardSlot int) {
	angle := (s.rng.Float64()*2 - 1) * ServeAngleMax

	s.state.BallX = ArenaWidth / 2
	s.state.BallY = ArenaHeight / 2
	s.state.BallSpeed = ServeSpeed
	s.state.BallVX = math.Cos(angle) * ServeSpeed
	s.state.BallVY = math.Sin(angle) * ServeSpeed
	if towardSlot == 1 {
		s.state.BallVX = -s.state.BallVX
	}

	s.state.Countdown = CountdownStart
	s.state.Started = false
	s.countdownTicks = 0
}

// Finished reports whether the simulation has produced a winner
func (s *Simulator) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Snapshot returns a copy of the current state
func (s *Simulator) Snapshot() model.SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetPaddle sets the vertical position of the given slot's paddle,
// clamped inside the arena. Accepted at any time; the update lands
// before the next tick integrates the ball.
func (s *Simulator) SetPaddle(slot int, y float64) {
	y = clamp(y, 0, ArenaHeight-PaddleHeight)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch slot {
	case 1:
		s.state.Paddle1Y = y
	case 2:
		s.state.Paddle2Y = y
	}
}

// Tick advances the simulation by one fixed step and returns the delta
// snapshot to broadcast (nil when nothing visible changed) and the
// winning slot (0 while play continues). After a winner is reported
// further ticks are no-ops.
func (s *Simulator) Tick() (Delta, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.finished {
		return nil, 0
	}

	if !s.state.Started {
		s.tickCountdown()
	} else {
		s.stepPhysics()
	}

	return s.emitDelta(), s.winnerSlot
}

// tickCountdown accumulates ticks and decrements the countdown once per
// second's worth. No position update happens while counting down.
func (s *Simulator) tickCountdown() {
	s.countdownTicks++
	if s.countdownTicks%ticksPerCountdownStep != 0 {
		return
	}
	s.state.Countdown--
	if s.state.Countdown <= 0 {
		s.state.Countdown = 0
		s.state.Started = true
	}
}

// stepPhysics integrates the ball by one tick and resolves collisions
// and scoring.
func (s *Simulator) stepPhysics() {
	st := &s.state
	st.BallX += st.BallVX
	st.BallY += st.BallVY

	// Vertical walls reflect; clamp so the ball never tunnels out
	if st.BallY-BallSize/2 < 0 {
		st.BallY = BallSize / 2
		st.BallVY = -st.BallVY
	} else if st.BallY+BallSize/2 > ArenaHeight {
		st.BallY = ArenaHeight - BallSize/2
		st.BallVY = -st.BallVY
	}

	s.collidePaddles()

	// Scoring: crossing the left edge scores for the right player and
	// serves back toward the loser; symmetric on the right edge
	if st.BallX < 0 {
		st.Score2++
		s.resolvePoint(2, 1)
	} else if st.BallX > ArenaWidth {
		st.Score1++
		s.resolvePoint(1, 2)
	}
}

// collidePaddles bounces the ball off a paddle it overlaps, but only
// when moving toward that paddle so a slow ball inside the paddle band
// cannot re-trigger.
func (s *Simulator) collidePaddles() {
	st := &s.state

	const leftFace = PaddleOffset + PaddleWidth
	const rightFace = ArenaWidth - PaddleOffset - PaddleWidth

	if st.BallVX < 0 &&
		st.BallX-BallSize/2 <= leftFace &&
		st.BallX+BallSize/2 >= PaddleOffset &&
		overlapsPaddle(st.BallY, st.Paddle1Y) {
		s.launchOffPaddle(st.Paddle1Y, 1)
		st.BallX = leftFace + BallSize/2
	} else if st.BallVX > 0 &&
		st.BallX+BallSize/2 >= rightFace &&
		st.BallX-BallSize/2 <= ArenaWidth-PaddleOffset &&
		overlapsPaddle(st.BallY, st.Paddle2Y) {
		s.launchOffPaddle(st.Paddle2Y, -1)
		st.BallX = rightFace - BallSize/2
	}
}

func overlapsPaddle(ballY, paddleY float64) bool {
	return ballY+BallSize/2 >= paddleY && ballY-BallSize/2 <= paddleY+PaddleHeight
}

// launchOffPaddle recomputes the ball velocity from the impact offset
// along the paddle: dead center leaves horizontally, the extremes leave
// at the maximum launch angle. Each hit speeds the ball up to the cap.
// dirX is +1 leaving the left paddle, -1 leaving the right.
func (s *Simulator) launchOffPaddle(paddleY float64, dirX float64) {
	st := &s.state

	offset := clamp((st.BallY-paddleY)/PaddleHeight, 0, 1)
	angle := (offset - 0.5) * 2 * LaunchAngleMax

	st.BallSpeed = math.Min(st.BallSpeed+SpeedIncrement, MaxSpeed)
	st.BallVX = dirX * math.Cos(angle) * st.BallSpeed
	st.BallVY = math.Sin(angle) * st.BallSpeed
}

// resolvePoint either finishes the match or resets for the next serve
func (s *Simulator) resolvePoint(scorerSlot, loserSlot int) {
	score := s.state.Score1
	if scorerSlot == 2 {
		score = s.state.Score2
	}

	if score >= WinningScore {
		s.finished = true
		s.winnerSlot = scorerSlot
		return
	}

	s.resetBall(loserSlot)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
