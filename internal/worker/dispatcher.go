// Package worker runs the async verification audit: after every successful
// write the service enqueues a job, and pool workers re-read the row and
// recompute its fingerprint. A mismatch means the persisted payload diverged
// from what was stamped — logged loudly, never surfaced to the writer.
package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const QueueVerification = "jobs:verify"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// VerifyPayload identifies the record to re-verify.
type VerifyPayload struct {
	CollectionID string `json:"collection_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueVerification pushes a fingerprint re-check job to Redis.
// Best effort: writers never wait on the audit.
func (d *Dispatcher) EnqueueVerification(ctx context.Context, collectionID string) error {
	return d.enqueue(ctx, QueueVerification, "verify", VerifyPayload{CollectionID: collectionID})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
