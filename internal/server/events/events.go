// Package events publishes domain events after successful writes.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// Event types.
const (
	MessageSent      = "message.sent"
	MeasurementAdded = "measurement.added"
)

// Event is a fact about a committed change.
type Event struct {
	Type     string
	EntityID int64
	UserID   int64
	At       time.Time
	Data     map[string]any
}

// Publisher delivers events. Callers treat delivery as best-effort.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// RedisStream appends events to a Redis stream with XADD.
type RedisStream struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisStream publishes to stream using client. maxLen > 0 caps the stream
// length approximately.
func NewRedisStream(client *redis.Client, stream string, maxLen int64) *RedisStream {
	return &RedisStream{client: client, stream: stream, maxLen: maxLen}
}

func (p *RedisStream) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}

	at := e.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":      e.Type,
			"entity_id": strconv.FormatInt(e.EntityID, 10),
			"user_id":   strconv.FormatInt(e.UserID, 10),
			"timestamp": strconv.FormatInt(at.Unix(), 10),
			"data":      string(data),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	return p.client.XAdd(ctx, args).Err()
}

// Close releases the Redis client.
func (p *RedisStream) Close() error {
	return p.client.Close()
}
