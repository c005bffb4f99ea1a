package mocks

import (
	"github.com/mcoot/pongarena-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// Float64Results is a queue of results to return from Float64
	Float64Results []float64
	float64Index   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// Float64 returns the next queued result, or 0.5 if none remaining.
// 0.5 keeps a simulated serve perfectly horizontal, which makes
// ball trajectories easy to reason about in tests.
func (r *MockRandom) Float64() float64 {
	if r.float64Index >= len(r.Float64Results) {
		return 0.5
	}
	result := r.Float64Results[r.float64Index]
	r.float64Index++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueFloat64 adds values to the Float64 result queue
func (r *MockRandom) QueueFloat64(values ...float64) {
	r.Float64Results = append(r.Float64Results, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.Float64Results = nil
	r.float64Index = 0
}
