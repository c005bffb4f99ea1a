package model

// SimulationState is the authoritative physics state of one match.
// Mutated only by the simulator's tick or an authorized paddle update.
type SimulationState struct {
	BallX     float64 `json:"ball_x"`
	BallY     float64 `json:"ball_y"`
	BallVX    float64 `json:"ball_vx"`
	BallVY    float64 `json:"ball_vy"`
	BallSpeed float64 `json:"ball_speed"`
	Paddle1Y  float64 `json:"paddle1_y"`
	Paddle2Y  float64 `json:"paddle2_y"`
	Score1    int     `json:"score1"`
	Score2    int     `json:"score2"`
	Countdown int     `json:"countdown"`
	Started   bool    `json:"started"`
}
