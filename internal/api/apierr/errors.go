package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/pongarena-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidQueueClass = "INVALID_QUEUE_CLASS"
	CodeAlreadyQueued     = "ALREADY_QUEUED"
	CodeNotQueued         = "NOT_QUEUED"
	CodeMatchNotFound     = "MATCH_NOT_FOUND"
	CodeMatchFinished     = "MATCH_FINISHED"
	CodeMatchNotActive    = "MATCH_NOT_ACTIVE"
	CodeNotParticipant    = "NOT_PARTICIPANT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidQueueClass):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidQueueClass, "Queue class must be ranked or unranked"}}
	case errors.Is(err, model.ErrAlreadyQueued):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyQueued, "Already waiting in this queue"}}
	case errors.Is(err, model.ErrNotQueued):
		return &httpError{http.StatusNotFound, APIError{CodeNotQueued, "Not waiting in any queue"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrMatchFull), errors.Is(err, model.ErrMatchNotWaiting),
		errors.Is(err, model.ErrMatchFinished):
		return &httpError{http.StatusConflict, APIError{CodeMatchFinished, "Match already finished or full"}}
	case errors.Is(err, model.ErrMatchNotActive), errors.Is(err, model.ErrLoopAlreadyRunning):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotActive, "Match is not active"}}
	case errors.Is(err, model.ErrNotParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotParticipant, "Not a participant in this match"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
