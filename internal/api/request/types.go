package request

import "github.com/mcoot/pongarena-go/internal/model"

// JoinQueueRequest is the body for POST /queue
type JoinQueueRequest struct {
	QueueClass model.QueueClass      `json:"queue_class"`
	Cosmetics  model.CosmeticLoadout `json:"cosmetics"`
}

// UpdatePaddleRequest is the body for POST /matches/{id}/paddle
type UpdatePaddleRequest struct {
	PaddleY *float64 `json:"paddle_y"`
}

// CancelMatchRequest is the body for DELETE /matches/{id}
type CancelMatchRequest struct {
	Reason string `json:"reason"`
}
