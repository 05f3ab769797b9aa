// Package mailqueue delivers mail in the background through a Redis-backed queue.
package mailqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/mailx"
	"github.com/go-redis/redis/v8"
)

// Job is one queued delivery
type Job struct {
	ID         string        `json:"id"`
	Message    mailx.Message `json:"message"`
	Attempts   int           `json:"attempts"`
	LastError  string        `json:"last_error,omitempty"`
	EnqueuedAt time.Time     `json:"enqueued_at"`
}

// Queue stores pending deliveries
type Queue interface {
	Enqueue(ctx context.Context, job *Job) error
	// Dequeue blocks up to timeout and returns nil when nothing is ready
	Dequeue(ctx context.Context, timeout time.Duration) (*Job, error)
	EnqueueDelayed(ctx context.Context, job *Job, delay time.Duration) error
	MoveDelayedToReady(ctx context.Context) (int, error)
}

// RedisQueue keeps ready jobs in a list and delayed jobs in a sorted set scored by due time
type RedisQueue struct {
	client    *redis.Client
	queueName string
}

var _ Queue = (*RedisQueue)(nil)

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, job *Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal mail job %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue mail job %s: %w", job.ID, err)
	}
	return nil
}

// Dequeue pops the oldest ready job
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue mail job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal mail job: %w (data: %s)", err, result[1])
	}
	return &job, nil
}

// EnqueueDelayed schedules a job for a later retry
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job *Job, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed mail job %s: %w", job.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed mail job %s: %w", job.ID, err)
	}
	return nil
}

// MoveDelayedToReady moves due jobs back to the ready list
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed mail jobs: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, job := range due {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedKey(), job)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed mail jobs to ready: %w", err)
	}

	return len(due), nil
}

// Stats reports ready and delayed queue sizes
func (q *RedisQueue) Stats(ctx context.Context) (map[string]any, error) {
	ready, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return nil, fmt.Errorf("get queue size: %w", err)
	}

	delayed, err := q.client.ZCard(ctx, q.delayedKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("get delayed queue size: %w", err)
	}

	return map[string]any{
		"queue_name":   q.queueName,
		"ready_jobs":   ready,
		"delayed_jobs": delayed,
		"total_jobs":   ready + delayed,
	}, nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
