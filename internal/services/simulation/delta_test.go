package simulation

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/pongarena-go/internal/dependencies/mocks"
)

type DeltaSuite struct {
	suite.Suite
	sim *Simulator
}

func TestDeltaSuite(t *testing.T) {
	suite.Run(t, new(DeltaSuite))
}

func (s *DeltaSuite) SetupTest() {
	s.sim = New(mocks.NewMockRandom())
}

func (s *DeltaSuite) TestFirstTickEmitsFullSnapshot() {
	delta, _ := s.sim.Tick()

	s.Require().NotNil(delta)
	s.Len(delta, 11)
	s.Equal(ArenaWidth/2, delta["ball_x"])
	s.Equal(CountdownStart, delta["countdown"])
	s.Equal(false, delta["started"])
}

func (s *DeltaSuite) TestQuietTickEmitsNothing() {
	s.sim.Tick()

	// Mid-countdown ticks change no broadcast field
	delta, _ := s.sim.Tick()
	s.Nil(delta)
}

func (s *DeltaSuite) TestCountdownStepEmitsOnlyCountdown() {
	for i := 0; i < TickRate-1; i++ {
		s.sim.Tick()
	}

	delta, _ := s.sim.Tick()
	s.Require().NotNil(delta)
	s.Len(delta, 1)
	s.Equal(CountdownStart-1, delta["countdown"])
}

func (s *DeltaSuite) TestMovingBallEmitsOnlyMovedFields() {
	for i := 0; i < CountdownStart*TickRate; i++ {
		s.sim.Tick()
	}

	// Ball serves horizontally, so only ball_x changes each tick
	delta, _ := s.sim.Tick()
	s.Require().NotNil(delta)
	s.Len(delta, 1)
	s.Equal(ArenaWidth/2-ServeSpeed, delta["ball_x"])
}

func (s *DeltaSuite) TestSubVisibleMotionDoesNotEmit() {
	s.sim.Tick()

	// A move below the 2-decimal resolution rounds to the same value
	s.sim.state.BallX += 0.003
	delta, _ := s.sim.Tick()
	s.Nil(delta)
}

func (s *DeltaSuite) TestContinuousFieldsRoundToTwoDecimals() {
	s.sim.Tick()

	s.sim.state.Paddle1Y = 123.456789
	delta, _ := s.sim.Tick()
	s.Require().NotNil(delta)
	s.Equal(123.46, delta["paddle1_y"])
}

func (s *DeltaSuite) TestPaddleMoveEmitsBetweenTicks() {
	s.sim.Tick()

	s.sim.SetPaddle(2, 40)
	delta, _ := s.sim.Tick()
	s.Require().NotNil(delta)
	s.Equal(40.0, delta["paddle2_y"])
}
