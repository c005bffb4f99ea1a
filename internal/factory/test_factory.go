package factory

import (
	"time"

	"github.com/mcoot/pongarena-go/internal/dependencies/mocks"
	"github.com/mcoot/pongarena-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(Config{})
}

// NewTestAppWithConfig creates a TestApp with the given config applied
// over in-memory storage and mocked clock/random
func NewTestAppWithConfig(cfg Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := NewWithDependencies(cfg, store, mockClock, mockRandom, nil)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
