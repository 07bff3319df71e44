package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskProductChanged is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskProductChanged = "product:changed"
)

// ChangeKind names the command that produced a product change.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ProductChangedPayload is the JSON payload of a product:changed task.
type ProductChangedPayload struct {
	ProductID  string     `json:"product_id"`
	Kind       ChangeKind `json:"kind"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// NewProductChangedTask constructs an Asynq task for a product change.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default")
//   - Timeout(30s): kill the task if the handler runs longer than 30 seconds
func NewProductChangedTask(p ProductChangedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskProductChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
