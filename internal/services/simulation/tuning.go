package simulation

import (
	"math"
	"time"
)

// Arena geometry, in logical units. Clients scale to their own canvas.
const (
	ArenaWidth  = 800.0
	ArenaHeight = 450.0

	BallSize     = 12.0
	PaddleWidth  = 10.0
	PaddleHeight = 80.0
	// PaddleOffset is the gap between each wall and its paddle face
	PaddleOffset = 30.0
)

// Simulation pacing
const (
	TickRate     = 60
	TickInterval = time.Second / TickRate

	// CountdownStart is the number of seconds counted down before play
	CountdownStart = 3
	// ticksPerCountdownStep is how many ticks one countdown second takes
	ticksPerCountdownStep = TickRate
)

// Ball behavior
const (
	ServeSpeed = 3.0
	// ServeAngleMax bounds the serve angle either side of horizontal
	ServeAngleMax = 22.5 * math.Pi / 180

	// SpeedIncrement is added to ball speed on every paddle hit
	SpeedIncrement = 0.3
	MaxSpeed       = 12.0

	// LaunchAngleMax bounds the outgoing angle off a paddle
	LaunchAngleMax = 60 * math.Pi / 180
)

// WinningScore ends the match for the first player to reach it
const WinningScore = 11
