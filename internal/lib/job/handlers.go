package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleProductChangedTask records a product change in the audit log.
func (j *JobService) handleProductChangedTask(ctx context.Context, t *asynq.Task) error {
	var p ProductChangedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Malformed payloads will never succeed; skip retries.
		return fmt.Errorf("failed to unmarshal product changed payload: %v: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskProductChanged).
		Str("product_id", p.ProductID).
		Str("kind", string(p.Kind)).
		Time("occurred_at", p.OccurredAt).
		Msg("product changed")

	return nil
}
