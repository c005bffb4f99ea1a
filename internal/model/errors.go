package model

import "errors"

// Common errors used across the application
var (
	// Queue errors
	ErrInvalidQueueClass = errors.New("unknown queue class")
	ErrAlreadyQueued     = errors.New("identity already waiting in this queue class")
	ErrNotQueued         = errors.New("connection is not waiting in any queue")

	// Match errors
	ErrMatchNotFound     = errors.New("match not found")
	ErrMatchFull         = errors.New("match already has two players")
	ErrMatchNotWaiting   = errors.New("match is not waiting for players")
	ErrMatchNotActive    = errors.New("match is not active")
	ErrMatchFinished     = errors.New("match already finished")
	ErrNotParticipant    = errors.New("player is not a participant in this match")
	ErrLoopAlreadyRunning = errors.New("tick loop already running for this match")

	// Rating errors
	ErrRatingNotFound = errors.New("rating record not found")
)
