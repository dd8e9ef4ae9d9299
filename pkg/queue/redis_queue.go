package queue

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxAttempts  = 5
	defaultRetryBackoff = 30 * time.Second
	claimBatchSize      = 16
)

// RedisQueue implements DelayedQueue on a Redis sorted set: members are job
// keys scored by fire time, payloads live in plain keys alongside. Multiple
// worker processes may run the poll loop concurrently; ZREM acts as the
// claim, so each fire is handed to exactly one worker.
type RedisQueue struct {
	rdb          *redis.Client
	scheduleKey  string
	pollInterval time.Duration
	maxAttempts  int
	retryBackoff time.Duration

	now func() time.Time
}

type RedisQueueOption func(*RedisQueue)

func WithPollInterval(d time.Duration) RedisQueueOption {
	return func(q *RedisQueue) { q.pollInterval = d }
}

func WithRetryPolicy(maxAttempts int, backoff time.Duration) RedisQueueOption {
	return func(q *RedisQueue) {
		q.maxAttempts = maxAttempts
		q.retryBackoff = backoff
	}
}

func NewRedisQueue(rdb *redis.Client, namespace string, opts ...RedisQueueOption) *RedisQueue {
	q := &RedisQueue{
		rdb:          rdb,
		scheduleKey:  namespace + ":schedule",
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
		retryBackoff: defaultRetryBackoff,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RedisQueue) payloadKey(key string) string {
	return q.scheduleKey + ":payload:" + key
}

func (q *RedisQueue) attemptsKey(key string) string {
	return q.scheduleKey + ":attempts:" + key
}

func (q *RedisQueue) Enqueue(ctx context.Context, key string, payload []byte, delay time.Duration) error {
	fireAt := q.now().Add(delay)

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.payloadKey(key), payload, 0)
	pipe.Del(ctx, q.attemptsKey(key))
	pipe.ZAdd(ctx, q.scheduleKey, redis.Z{Score: float64(fireAt.UnixMilli()), Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to enqueue delayed job %s: %w", key, err)
	}
	return nil
}

func (q *RedisQueue) Cancel(ctx context.Context, key string) (bool, error) {
	removed, err := q.rdb.ZRem(ctx, q.scheduleKey, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to cancel delayed job %s: %w", key, err)
	}
	// Payload cleanup is best-effort; a stale payload without a schedule
	// entry never fires.
	q.rdb.Del(ctx, q.payloadKey(key), q.attemptsKey(key))
	return removed > 0, nil
}

// Run polls for due jobs until ctx is cancelled. Safe to run from several
// workers at once.
func (q *RedisQueue) Run(ctx context.Context, handler Handler) error {
	ticker := time.NewTicker(q.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := q.drainDue(ctx, handler); err != nil {
				log.Printf("[WARN] delayed queue poll failed: %v", err)
			}
		}
	}
}

func (q *RedisQueue) drainDue(ctx context.Context, handler Handler) error {
	nowMs := q.now().UnixMilli()
	due, err := q.rdb.ZRangeByScore(ctx, q.scheduleKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   fmt.Sprintf("%d", nowMs),
		Count: claimBatchSize,
	}).Result()
	if err != nil {
		return err
	}

	for _, key := range due {
		// ZREM is the claim: only one worker gets a non-zero result.
		claimed, err := q.rdb.ZRem(ctx, q.scheduleKey, key).Result()
		if err != nil {
			return err
		}
		if claimed == 0 {
			continue
		}
		q.fire(ctx, key, handler)
	}
	return nil
}

func (q *RedisQueue) fire(ctx context.Context, key string, handler Handler) {
	payload, err := q.rdb.Get(ctx, q.payloadKey(key)).Bytes()
	if err == redis.Nil {
		// Cancelled between claim and read. Nothing to do.
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to load payload for job %s: %v", key, err)
		q.requeue(ctx, key, nil)
		return
	}

	if err := handler(ctx, payload); err != nil {
		log.Printf("[WARN] job %s failed: %v", key, err)
		q.requeue(ctx, key, payload)
		return
	}

	q.rdb.Del(ctx, q.payloadKey(key), q.attemptsKey(key))
}

// requeue applies bounded exponential backoff. After maxAttempts the job is
// dropped with a log line; the state store remains authoritative so a
// dropped check-in simply never transitions to sent.
func (q *RedisQueue) requeue(ctx context.Context, key string, payload []byte) {
	attempts, err := q.rdb.Incr(ctx, q.attemptsKey(key)).Result()
	if err != nil {
		log.Printf("[ERROR] failed to track attempts for job %s: %v", key, err)
		return
	}
	if int(attempts) >= q.maxAttempts {
		log.Printf("[ERROR] job %s dropped after %d attempts", key, attempts)
		q.rdb.Del(ctx, q.payloadKey(key), q.attemptsKey(key))
		return
	}

	backoff := time.Duration(float64(q.retryBackoff) * math.Pow(2, float64(attempts-1)))
	fireAt := q.now().Add(backoff)

	pipe := q.rdb.TxPipeline()
	if payload != nil {
		pipe.Set(ctx, q.payloadKey(key), payload, 0)
	}
	pipe.ZAdd(ctx, q.scheduleKey, redis.Z{Score: float64(fireAt.UnixMilli()), Member: key})
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[ERROR] failed to requeue job %s: %v", key, err)
	}
}
